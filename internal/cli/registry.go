package cli

import (
	"fmt"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/noteweaver/noteweaver/internal/core"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins/ai"
	"github.com/noteweaver/noteweaver/internal/plugins/ai/anthropic"
	"github.com/noteweaver/noteweaver/internal/plugins/ai/azure"
	"github.com/noteweaver/noteweaver/internal/plugins/ai/azureaigateway"
	"github.com/noteweaver/noteweaver/internal/plugins/ai/bedrock"
	"github.com/noteweaver/noteweaver/internal/plugins/ai/dryrun"
	"github.com/noteweaver/noteweaver/internal/plugins/ai/gemini"
	"github.com/noteweaver/noteweaver/internal/plugins/ai/lmstudio"
	"github.com/noteweaver/noteweaver/internal/plugins/ai/ollama"
	"github.com/noteweaver/noteweaver/internal/plugins/ai/openai"
	"github.com/noteweaver/noteweaver/internal/plugins/ai/perplexity"
	"github.com/noteweaver/noteweaver/internal/plugins/db"
	"github.com/noteweaver/noteweaver/internal/plugins/db/fsdb"
	"github.com/noteweaver/noteweaver/internal/plugins/db/sqlitedb"
	"github.com/noteweaver/noteweaver/internal/plugins/db/supadb"
)

// PluginRegistry owns the vendors, prompts and storage backend of one run.
type PluginRegistry struct {
	ConfigDir string
	Vendors   *ai.VendorsManager
	Prompts   *fsdb.PromptsEntity
}

// NewPluginRegistry loads <configDir>/.env and registers every known vendor.
func NewPluginRegistry(configDir string) *PluginRegistry {
	envFile := filepath.Join(configDir, ".env")
	if err := godotenv.Load(envFile); err != nil {
		debuglog.Debug(debuglog.Detailed, "no env file loaded from %s: %v", envFile, err)
	}

	ret := &PluginRegistry{
		ConfigDir: configDir,
		Vendors:   ai.NewVendorsManager(),
		Prompts:   fsdb.NewPromptsEntity(filepath.Join(configDir, "prompts")),
	}
	ret.Vendors.AddVendors(
		openai.NewClient(),
		azure.NewClient(),
		azureaigateway.NewClient(),
		anthropic.NewClient(),
		gemini.NewClient(),
		ollama.NewClient(),
		lmstudio.NewClient(),
		perplexity.NewClient(),
		bedrock.NewClient(),
		dryrun.NewClient(),
	)
	return ret
}

// OpenStore opens the storage backend selected by currentFlags.
func (o *PluginRegistry) OpenStore(currentFlags *Flags) (db.Store, error) {
	switch currentFlags.Backend {
	case "", "sqlite":
		path, err := currentFlags.ResolveDBPath(o.ConfigDir)
		if err != nil {
			return nil, err
		}
		debuglog.Debug(debuglog.Basic, "using sqlite database %s", path)
		return sqlitedb.New(path)
	case "supabase":
		return supadb.NewClientFromEnv()
	default:
		return nil, fmt.Errorf("unknown storage backend %s", currentFlags.Backend)
	}
}

// NewGateway configures the chosen vendor and applies the step model overrides.
func (o *PluginRegistry) NewGateway(currentFlags *Flags) (*ai.Gateway, error) {
	vendor, err := o.Vendors.Get(currentFlags.Vendor)
	if err != nil {
		return nil, err
	}
	stepModels, err := loadStepModels(o.ConfigDir)
	if err != nil {
		return nil, err
	}
	return ai.NewGateway(vendor, currentFlags.BuildChatOptions()).
		WithStepModels(stepModels).
		WithTimeout(currentFlags.timeoutOrZero()), nil
}

// Pipeline is the set of core components built on one gateway and store.
type Pipeline struct {
	Organizer  *core.Organizer
	Chatter    *core.Chatter
	Classifier *core.Classifier
}

func (o *PluginRegistry) NewPipeline(gateway core.Gateway, store db.Store, currentFlags *Flags) *Pipeline {
	return &Pipeline{
		Organizer:  core.NewOrganizer(gateway, o.Prompts),
		Chatter:    core.NewChatter(store, gateway, o.Prompts, currentFlags.AnswerMaxTokens),
		Classifier: core.NewClassifier(gateway, o.Prompts, store),
	}
}
