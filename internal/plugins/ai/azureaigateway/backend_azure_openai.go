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
)

const azureOpenAIVersion = "2024-10-21"

// AzureOpenAIBackend speaks the OpenAI chat completions format.
type AzureOpenAIBackend struct {
	subscriptionKey string
}

func NewAzureOpenAIBackend(subscriptionKey string) *AzureOpenAIBackend {
	return &AzureOpenAIBackend{subscriptionKey: subscriptionKey}
}

// ListModels returns common deployment names; the gateway has no listing endpoint.
func (b *AzureOpenAIBackend) ListModels() ([]string, error) {
	return []string{
		"gpt-4.1",
		"gpt-4.1-mini",
		"gpt-4o",
		"gpt-4o-mini",
		"o3-mini",
	}, nil
}

func (b *AzureOpenAIBackend) BuildEndpoint(baseURL, deploymentName string) string {
	return fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		strings.TrimSuffix(baseURL, "/"), url.PathEscape(deploymentName), azureOpenAIVersion)
}

func (b *AzureOpenAIBackend) AuthHeader() (string, string) {
	return "api-key", b.subscriptionKey
}

func (b *AzureOpenAIBackend) PrepareRequest(msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) ([]byte, error) {
	var messages []map[string]string
	for _, msg := range msgs {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		messages = append(messages, map[string]string{
			"role":    msg.Role,
			"content": msg.Content,
		})
	}
	if len(messages) == 0 {
		return nil, errors.New(i18n.T("azureaigateway_no_valid_messages"))
	}
	debuglog.Debug(debuglog.Basic, "Azure OpenAI backend: %d input, %d API messages", len(msgs), len(messages))

	body := map[string]any{
		"messages": messages,
	}
	if opts.Temperature > 0 {
		body["temperature"] = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		body["max_tokens"] = opts.MaxTokens
	}
	if opts.SchemaContent != "" {
		jsonSchema := map[string]any{
			"name":   opts.SchemaName,
			"schema": json.RawMessage(opts.SchemaContent),
			"strict": false,
		}
		body["response_format"] = map[string]any{
			"type":        "json_schema",
			"json_schema": jsonSchema,
		}
	}
	return json.Marshal(body)
}

func (b *AzureOpenAIBackend) ParseResponse(body []byte) (string, error) {
	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("failed to parse Azure OpenAI response: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in Azure OpenAI response")
	}
	return resp.Choices[0].Message.Content, nil
}
