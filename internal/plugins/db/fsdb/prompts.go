package fsdb

import (
	"github.com/noteweaver/noteweaver/internal/core"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
)

// PromptsEntity loads prompt templates from <dir>/<name>.md, falling back to the
// built-in prompt when no override file exists.
type PromptsEntity struct {
	*StorageEntity
	Fallback core.PromptLoader
}

func NewPromptsEntity(dir string) *PromptsEntity {
	return &PromptsEntity{
		StorageEntity: &StorageEntity{Label: "prompt", Dir: dir, FileExtension: ".md"},
		Fallback:      core.DefaultPrompts(),
	}
}

func (o *PromptsEntity) Load(name string) (ret string, err error) {
	if !o.Exists(name) {
		return o.Fallback.Load(name)
	}
	var content []byte
	if content, err = o.StorageEntity.Load(name); err != nil {
		return
	}
	debuglog.Debug(debuglog.Detailed, "using prompt override %s", o.BuildFilePathByName(name))
	ret = string(content)
	return
}

// Export writes the built-in prompt called name into the override directory so it can be edited.
func (o *PromptsEntity) Export(name string) (err error) {
	var content string
	if content, err = o.Fallback.Load(name); err != nil {
		return
	}
	return o.Save(name, []byte(content))
}
