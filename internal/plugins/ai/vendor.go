package ai

import (
	"context"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins"
)

// Vendor is a language model provider.
type Vendor interface {
	plugins.Plugin
	// SchemaProvider is the key schema.Manager uses for structured output handling.
	SchemaProvider() string
	ListModels() ([]string, error)
	// Send returns the text of the model reply. When opts carries a schema the reply must be the JSON document.
	Send(ctx context.Context, msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (string, error)
}
