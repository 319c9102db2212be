package core

import (
	"embed"
	"fmt"

	"github.com/noteweaver/noteweaver/internal/plugins/template"
)

//go:embed prompts/*.md
var defaultPromptFS embed.FS

const (
	systemOrganize = "You are a helpful assistant that organizes notes into folders."
	systemSelect   = "You are a helpful assistant that helps find relevant information in a note collection."
	systemAnswer   = "You are a helpful assistant that answers questions based on the user's notes."
	systemClassify = "You are a helpful assistant that classifies notes as inspiration or tasks."
)

// PromptLoader returns the template text of a named prompt.
type PromptLoader interface {
	Load(name string) (string, error)
}

type embeddedPrompts struct{}

// DefaultPrompts serves the prompt templates compiled into the binary.
func DefaultPrompts() PromptLoader {
	return embeddedPrompts{}
}

func (embeddedPrompts) Load(name string) (string, error) {
	content, err := defaultPromptFS.ReadFile("prompts/" + name + ".md")
	if err != nil {
		return "", fmt.Errorf("unknown prompt %q: %w", name, err)
	}
	return string(content), nil
}

func renderPrompt(loader PromptLoader, name string, variables map[string]string) (string, error) {
	if loader == nil {
		loader = DefaultPrompts()
	}
	content, err := loader.Load(name)
	if err != nil {
		return "", err
	}
	rendered, err := template.ApplyTemplate(content, variables)
	if err != nil {
		return "", fmt.Errorf("rendering prompt %s: %w", name, err)
	}
	return rendered, nil
}
