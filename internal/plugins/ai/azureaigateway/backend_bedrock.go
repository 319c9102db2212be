package azureaigateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/i18n"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
)

const (
	bedrockAnthropicVersion = "bedrock-2023-05-31"
	bedrockDefaultMaxTokens = 4096
)

// BedrockBackend speaks the Anthropic Messages format that Bedrock's invoke endpoint accepts.
// Structured output goes through a forced tool call.
type BedrockBackend struct {
	subscriptionKey string
}

func NewBedrockBackend(subscriptionKey string) *BedrockBackend {
	return &BedrockBackend{subscriptionKey: subscriptionKey}
}

// ListModels returns the inference profiles the gateway usually exposes.
func (b *BedrockBackend) ListModels() ([]string, error) {
	return []string{
		"us.anthropic.claude-3-5-haiku-20241022-v1:0",
		"us.anthropic.claude-3-7-sonnet-20250219-v1:0",
		"us.anthropic.claude-haiku-4-5-20251001-v1:0",
		"us.anthropic.claude-opus-4-1-20250805-v1:0",
		"us.anthropic.claude-sonnet-4-20250514-v1:0",
		"us.anthropic.claude-sonnet-4-5-20250929-v1:0",
	}, nil
}

func (b *BedrockBackend) BuildEndpoint(baseURL, model string) string {
	return fmt.Sprintf("%s/model/%s/invoke", strings.TrimSuffix(baseURL, "/"), url.PathEscape(model))
}

func (b *BedrockBackend) AuthHeader() (string, string) {
	return "Authorization", "Bearer " + b.subscriptionKey
}

func (b *BedrockBackend) PrepareRequest(msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) ([]byte, error) {
	system, conversation := splitSystem(msgs)
	messages := make([]map[string]any, 0, len(conversation))
	for _, msg := range conversation {
		messages = append(messages, map[string]any{
			"role":    msg.Role,
			"content": msg.Content,
		})
	}
	if len(messages) == 0 {
		return nil, errors.New(i18n.T("azureaigateway_no_valid_messages"))
	}
	debuglog.Debug(debuglog.Basic, "Bedrock backend: %d input, %d API messages", len(msgs), len(messages))

	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = bedrockDefaultMaxTokens
	}
	body := map[string]any{
		"anthropic_version": bedrockAnthropicVersion,
		"max_tokens":        maxTokens,
		"messages":          messages,
	}
	if system != "" {
		body["system"] = system
	}
	if opts.Temperature > 0 {
		body["temperature"] = opts.Temperature
	}
	if opts.SchemaContent != "" {
		tool := map[string]any{
			"name":         schema.ToolName,
			"description":  "Record the response as structured output",
			"input_schema": json.RawMessage(opts.SchemaContent),
		}
		body["tools"] = []any{tool}
		body["tool_choice"] = map[string]any{"type": "tool", "name": schema.ToolName}
	}
	return json.Marshal(body)
}

// ParseResponse returns the structured output tool input, or the joined text blocks.
func (b *BedrockBackend) ParseResponse(body []byte) (string, error) {
	var resp struct {
		Content []struct {
			Type  string          `json:"type"`
			Text  string          `json:"text"`
			Name  string          `json:"name"`
			Input json.RawMessage `json:"input"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf(i18n.T("azureaigateway_parse_response_failed"), "Bedrock", err)
	}

	var parts []string
	for _, block := range resp.Content {
		switch {
		case block.Type == "tool_use" && block.Name == schema.ToolName:
			return string(block.Input), nil
		case block.Type == "text" && block.Text != "":
			parts = append(parts, block.Text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf(i18n.T("azureaigateway_no_content"), "Bedrock")
	}
	return strings.Join(parts, ""), nil
}
