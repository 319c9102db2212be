package perplexity

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	perplexity "github.com/sgaunet/perplexity-go/v2"
)

const providerName = "Perplexity"

var models = []string{
	"sonar", "sonar-pro", "sonar-reasoning", "sonar-reasoning-pro",
}

type Client struct {
	*plugins.PluginBase
	APIKey *plugins.SetupQuestion
	client *perplexity.Client
}

func NewClient() *Client {
	c := &Client{}
	c.PluginBase = &plugins.PluginBase{
		Name:            providerName,
		EnvNamePrefix:   plugins.BuildEnvVariablePrefix(providerName),
		ConfigureCustom: c.configure,
	}
	c.APIKey = c.AddSetupQuestion("API_KEY", true)
	return c
}

func (c *Client) configure() error {
	c.client = perplexity.NewClient(c.APIKey.Value)
	return nil
}

func (c *Client) SchemaProvider() string {
	return "perplexity"
}

// ListModels returns a fixed list; Perplexity has no model listing endpoint.
func (c *Client) ListModels() ([]string, error) {
	return models, nil
}

func (c *Client) Send(ctx context.Context, msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (string, error) {
	if c.client == nil {
		return "", fmt.Errorf("%s client is not configured", providerName)
	}
	request, err := c.buildRequest(msgs, opts)
	if err != nil {
		return "", err
	}

	// The perplexity client has no context support, so cancellation is only honoured before the call.
	if err = ctx.Err(); err != nil {
		return "", err
	}
	resp, err := c.client.SendCompletionRequest(request)
	if err != nil {
		return "", fmt.Errorf("perplexity API request failed: %w", err)
	}
	if results := resp.GetSearchResults(); len(results) > 0 {
		debuglog.Debug(debuglog.Detailed, "perplexity returned %d search results, dropped from structured output", len(results))
	}
	return schema.Default().HandleResponseParsing(c.SchemaProvider(), resp)
}

func (c *Client) buildRequest(msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (*perplexity.CompletionRequest, error) {
	messages := make([]perplexity.Message, 0, len(msgs))
	for _, msg := range msgs {
		messages = append(messages, perplexity.Message{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}

	requestOptions := []perplexity.CompletionRequestOption{
		perplexity.WithModel(opts.Model),
		perplexity.WithMessages(messages),
	}
	if opts.MaxTokens > 0 {
		requestOptions = append(requestOptions, perplexity.WithMaxTokens(opts.MaxTokens))
	}
	if opts.Temperature > 0 {
		requestOptions = append(requestOptions, perplexity.WithTemperature(opts.Temperature))
	}

	responseSchema, err := responseSchema(opts)
	if err != nil {
		return nil, err
	}
	if responseSchema != nil {
		requestOptions = append(requestOptions, perplexity.WithJSONSchemaResponseFormat(responseSchema))
	}
	return perplexity.NewCompletionRequest(requestOptions...), nil
}

// responseSchema takes the schema out of the transformed {"json_schema": {"schema": ...}}
// value, falling back to parsing SchemaContent.
func responseSchema(opts *domain.ChatOptions) (map[string]any, error) {
	if transformed, ok := opts.TransformedSchema.(map[string]any); ok {
		if wrapper, ok := transformed["json_schema"].(map[string]any); ok {
			if s, ok := wrapper["schema"].(map[string]any); ok {
				return s, nil
			}
		}
	}
	if opts.SchemaContent == "" {
		return nil, nil
	}
	var ret map[string]any
	if err := json.Unmarshal([]byte(opts.SchemaContent), &ret); err != nil {
		return nil, fmt.Errorf("failed to parse schema content: %w", err)
	}
	return ret, nil
}
