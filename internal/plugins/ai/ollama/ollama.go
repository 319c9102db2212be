package ollama

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	ollamaapi "github.com/ollama/ollama/api"
)

const DefaultBaseUrl = "http://localhost:11434"

func NewClient() (ret *Client) {
	vendorName := "Ollama"
	ret = &Client{}

	ret.PluginBase = &plugins.PluginBase{
		Name:            vendorName,
		EnvNamePrefix:   plugins.BuildEnvVariablePrefix(vendorName),
		ConfigureCustom: ret.configure,
	}

	ret.ApiUrl = ret.AddSetupQuestionCustom("API URL", true,
		"Enter your Ollama URL (as a reminder, it is usually http://localhost:11434')")
	ret.ApiUrl.Value = DefaultBaseUrl
	ret.ApiKey = ret.AddSetupQuestion("API key", false)
	ret.ApiKey.Value = ""
	ret.ApiHttpTimeout = ret.AddSetupQuestionCustom("HTTP Timeout", true,
		"Specify HTTP timeout duration for Ollama requests (e.g. 30s, 5m, 1h)")
	ret.ApiHttpTimeout.Value = "20m"

	return
}

type Client struct {
	*plugins.PluginBase
	ApiUrl         *plugins.SetupQuestion
	ApiKey         *plugins.SetupQuestion
	ApiHttpTimeout *plugins.SetupQuestion

	apiUrl *url.URL
	client *ollamaapi.Client
}

// bearerTransport adds the API key for Ollama instances behind an authenticating proxy.
type bearerTransport struct {
	underlying http.RoundTripper
	apiKey     *plugins.SetupQuestion
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if key := strings.TrimSpace(t.apiKey.Value); key != "" {
		req.Header.Set("Authorization", "Bearer "+key)
	}
	return t.underlying.RoundTrip(req)
}

func (o *Client) configure() (err error) {
	if o.apiUrl, err = url.Parse(o.ApiUrl.Value); err != nil {
		return fmt.Errorf("cannot parse Ollama URL %q: %w", o.ApiUrl.Value, err)
	}

	timeout := 20 * time.Minute
	if o.ApiHttpTimeout != nil && o.ApiHttpTimeout.Value != "" {
		parsed, parseErr := time.ParseDuration(o.ApiHttpTimeout.Value)
		if parseErr != nil || parsed <= 0 {
			debuglog.Warn("Invalid Ollama HTTP timeout %q, using default %s", o.ApiHttpTimeout.Value, timeout)
		} else {
			timeout = parsed
		}
	}

	o.client = ollamaapi.NewClient(o.apiUrl, &http.Client{
		Timeout:   timeout,
		Transport: &bearerTransport{underlying: http.DefaultTransport, apiKey: o.ApiKey},
	})
	return
}

func (o *Client) SchemaProvider() string {
	return "ollama"
}

func (o *Client) ListModels() (ret []string, err error) {
	if o.client == nil {
		return nil, fmt.Errorf("%s client is not configured", o.GetName())
	}
	var resp *ollamaapi.ListResponse
	if resp, err = o.client.List(context.Background()); err != nil {
		return
	}
	for _, model := range resp.Models {
		ret = append(ret, model.Name)
	}
	return
}

func (o *Client) Send(ctx context.Context, msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (ret string, err error) {
	if o.client == nil {
		return "", fmt.Errorf("%s client is not configured", o.GetName())
	}
	req := o.createChatRequest(msgs, opts)

	var content strings.Builder
	respFunc := func(resp ollamaapi.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	}
	if err = o.client.Chat(ctx, req, respFunc); err != nil {
		debuglog.Debug(debuglog.Basic, "Ollama chat request failed: %v", err)
		return
	}
	return schema.Default().HandleResponseParsing(o.SchemaProvider(), content.String())
}

func (o *Client) createChatRequest(msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (ret *ollamaapi.ChatRequest) {
	messages := make([]ollamaapi.Message, len(msgs))
	for i, msg := range msgs {
		messages[i] = ollamaapi.Message{Role: msg.Role, Content: msg.Content}
	}

	stream := false
	ret = &ollamaapi.ChatRequest{
		Model:    opts.Model,
		Messages: messages,
		Stream:   &stream,
		Options:  map[string]any{},
	}
	if opts.Temperature > 0 {
		ret.Options["temperature"] = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		ret.Options["num_predict"] = opts.MaxTokens
	}

	ret.Format = formatFromOptions(opts)
	return
}

// formatFromOptions prefers the transformed {"format": schema} value and falls back to the raw schema text.
func formatFromOptions(opts *domain.ChatOptions) json.RawMessage {
	if transformed, ok := opts.TransformedSchema.(map[string]any); ok {
		if format, ok := transformed["format"]; ok {
			if raw, err := json.Marshal(format); err == nil {
				return raw
			}
		}
	}
	if opts.SchemaContent != "" {
		return json.RawMessage(opts.SchemaContent)
	}
	return nil
}
