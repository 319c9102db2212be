package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"github.com/noteweaver/noteweaver/internal/domain"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/util"
)

// Flags holds every command line option. Options with a yaml tag can also come from the config file.
type Flags struct {
	Vendor          string        `short:"V" long:"vendor" yaml:"vendor" description:"Choose a vendor" default:"openai"`
	Model           string        `short:"m" long:"model" yaml:"model" description:"Choose a model"`
	Temperature     float64       `short:"t" long:"temperature" yaml:"temperature" description:"Set temperature, 0 keeps the vendor default"`
	Timeout         time.Duration `long:"timeout" yaml:"timeout" description:"Timeout for each model call" default:"5m"`
	MaxTokens       int           `long:"maxtokens" yaml:"maxtokens" description:"Token budget of one organize call" default:"20000"`
	AnswerMaxTokens int           `long:"answermaxtokens" yaml:"answermaxtokens" description:"Token budget for the notes sent to the answer step, 0 for unlimited" default:"20000"`
	Backend         string        `long:"backend" yaml:"backend" description:"Storage backend" choice:"sqlite" choice:"supabase" default:"sqlite"`
	DBPath          string        `long:"db" yaml:"db" description:"SQLite database file (default ~/.config/noteweaver/noteweaver.db)"`
	Address         string        `long:"address" yaml:"address" description:"REST API listen address" default:":8080"`
	APIKey          string        `long:"api-key" yaml:"api-key" description:"Require this key in the X-API-Key header of /api requests"`
	Language        string        `short:"g" long:"language" yaml:"language" description:"Language of messages, e.g. en or es"`
	Debug           int           `long:"debug" yaml:"debug" description:"Debug level: 0=off, 1=basic, 2=detailed, 3=trace, 4=wire" default:"0"`
	Config          string        `long:"config" description:"Path to YAML config file"`

	Serve        bool   `long:"serve" description:"Serve the REST API"`
	Organize     bool   `long:"organize" description:"Suggest folders for the notes that have none"`
	Apply        bool   `long:"apply" description:"With --organize, create the folders and assign the notes"`
	Ask          string `short:"a" long:"ask" description:"Ask a question about your notes"`
	Session      string `short:"s" long:"session" description:"Chat session of --ask, a new one is created when empty"`
	NewSession   string `long:"newsession" description:"Create a chat session with this title"`
	ListSessions bool   `long:"listsessions" description:"List chat sessions"`
	Import       string `long:"import" description:"Import a text file as a note, - reads stdin"`
	Copy         bool   `short:"c" long:"copy" description:"Copy the answer to the clipboard"`

	ListVendors    bool   `long:"listvendors" description:"List all vendors"`
	ListModels     bool   `short:"L" long:"listmodels" description:"List the models of every configured vendor"`
	ListPrompts    bool   `long:"listprompts" description:"List prompts and whether they are overridden"`
	ExportPrompt   string `long:"exportprompt" description:"Write a built-in prompt to the prompts directory for editing"`
	SetStepModel   string `long:"setstepmodel" description:"Use a model for one pipeline step, STEP=MODEL"`
	UnsetStepModel string `long:"unsetstepmodel" description:"Remove the model override of a pipeline step"`
	ListStepModels bool   `long:"liststepmodels" description:"List pipeline step model overrides"`
	Validate       string `long:"validate" description:"Validate JSON read from stdin against a response schema"`
	Version        bool   `long:"version" description:"Print current version"`
}

// Init parses the command line and merges the YAML config file into it.
func Init() (*Flags, error) {
	return parseArgs(os.Args[1:])
}

func parseArgs(args []string) (ret *Flags, err error) {
	ret = &Flags{}
	parser := flags.NewParser(ret, flags.Default)
	var extra []string
	if extra, err = parser.ParseArgs(args); err != nil {
		return nil, err
	}
	if len(extra) > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(extra, " "))
	}

	configPath := ret.Config
	if configPath == "" {
		if configPath, err = util.GetDefaultConfigPath(); err != nil {
			return nil, err
		}
	} else if configPath, err = util.GetAbsolutePath(configPath); err != nil {
		return nil, err
	}
	if configPath == "" {
		return ret, nil
	}

	var fromFile *Flags
	if fromFile, err = loadYAMLConfig(configPath); err != nil {
		return nil, err
	}
	mergeConfig(ret, fromFile, usedFlags(parser, args))
	return ret, nil
}

func loadYAMLConfig(path string) (*Flags, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	ret := &Flags{}
	if err = yaml.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	debuglog.Debug(debuglog.Detailed, "loaded config from %s", path)
	return ret, nil
}

// usedFlags returns the long names of the options given on the command line.
func usedFlags(parser *flags.Parser, args []string) map[string]bool {
	ret := map[string]bool{}
	for _, arg := range args {
		if arg == "--" {
			break
		}
		switch {
		case strings.HasPrefix(arg, "--"):
			name, _, _ := strings.Cut(strings.TrimPrefix(arg, "--"), "=")
			ret[name] = true
		case strings.HasPrefix(arg, "-") && len(arg) > 1:
			// -t0.5 and -sV both start with a short name
			if opt := parser.FindOptionByShortName(rune(arg[1])); opt != nil {
				ret[opt.LongName] = true
			}
		}
	}
	return ret
}

// mergeConfig copies the non-zero config file values of options not given on the command line.
func mergeConfig(target, fromFile *Flags, used map[string]bool) {
	targetValue := reflect.ValueOf(target).Elem()
	fileValue := reflect.ValueOf(fromFile).Elem()
	t := targetValue.Type()
	for i := range t.NumField() {
		field := t.Field(i)
		if field.Tag.Get("yaml") == "" || used[field.Tag.Get("long")] {
			continue
		}
		if value := fileValue.Field(i); !value.IsZero() {
			targetValue.Field(i).Set(value)
		}
	}
}

// BuildChatOptions returns the vendor options shared by every pipeline step.
func (o *Flags) BuildChatOptions() *domain.ChatOptions {
	return &domain.ChatOptions{
		Model:       o.Model,
		Temperature: o.Temperature,
	}
}

// ResolveDBPath returns the sqlite file, defaulting to noteweaver.db in configDir.
func (o *Flags) ResolveDBPath(configDir string) (string, error) {
	if o.DBPath == "" {
		return filepath.Join(configDir, "noteweaver.db"), nil
	}
	return util.GetAbsolutePath(o.DBPath)
}

// timeoutOrZero keeps negative durations from reaching the gateway.
func (o *Flags) timeoutOrZero() time.Duration {
	if o.Timeout < 0 {
		return 0
	}
	return o.Timeout
}
