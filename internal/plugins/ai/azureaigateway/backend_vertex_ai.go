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

// VertexAIBackend speaks the Gemini generateContent format.
type VertexAIBackend struct {
	subscriptionKey string
}

func NewVertexAIBackend(subscriptionKey string) *VertexAIBackend {
	return &VertexAIBackend{subscriptionKey: subscriptionKey}
}

func (b *VertexAIBackend) ListModels() ([]string, error) {
	return []string{
		"gemini-2.5-pro",
		"gemini-2.5-flash",
		"gemini-2.5-flash-lite",
		"gemini-2.0-flash",
	}, nil
}

// BuildEndpoint uses the publisher path the gateway proxies to Vertex AI.
func (b *VertexAIBackend) BuildEndpoint(baseURL, model string) string {
	return fmt.Sprintf("%s/publishers/google/models/%s:generateContent",
		strings.TrimSuffix(baseURL, "/"), url.PathEscape(model))
}

func (b *VertexAIBackend) AuthHeader() (string, string) {
	return "x-goog-api-key", b.subscriptionKey
}

func (b *VertexAIBackend) PrepareRequest(msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) ([]byte, error) {
	system, conversation := splitSystem(msgs)
	contents := make([]map[string]any, 0, len(conversation))
	for _, msg := range conversation {
		role := msg.Role
		if role == chat.ChatMessageRoleAssistant {
			role = "model"
		}
		contents = append(contents, map[string]any{
			"role":  role,
			"parts": []map[string]string{{"text": msg.Content}},
		})
	}
	if len(contents) == 0 {
		return nil, errors.New(i18n.T("azureaigateway_no_valid_messages"))
	}
	debuglog.Debug(debuglog.Basic, "Vertex AI backend: %d input, %d API messages", len(msgs), len(contents))

	body := map[string]any{
		"contents": contents,
	}
	if system != "" {
		body["systemInstruction"] = map[string]any{
			"parts": []map[string]string{{"text": system}},
		}
	}

	generationConfig := map[string]any{}
	if opts.Temperature > 0 {
		generationConfig["temperature"] = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		generationConfig["maxOutputTokens"] = opts.MaxTokens
	}
	if opts.SchemaContent != "" {
		generationConfig["responseMimeType"] = "application/json"
		generationConfig["responseJsonSchema"] = json.RawMessage(opts.SchemaContent)
	}
	if len(generationConfig) > 0 {
		body["generationConfig"] = generationConfig
	}
	return json.Marshal(body)
}

// ParseResponse joins the text parts of the first candidate, skipping thoughts.
func (b *VertexAIBackend) ParseResponse(body []byte) (string, error) {
	var resp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text    string `json:"text"`
					Thought bool   `json:"thought"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf(i18n.T("azureaigateway_parse_response_failed"), "Vertex AI", err)
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf(i18n.T("azureaigateway_no_content"), "Vertex AI")
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" && !part.Thought {
			parts = append(parts, part.Text)
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf(i18n.T("azureaigateway_no_content"), "Vertex AI")
	}
	return strings.Join(parts, ""), nil
}
