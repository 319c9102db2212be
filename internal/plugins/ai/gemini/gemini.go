package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	"google.golang.org/genai"
)

const modelsPrefix = "models/"

func NewClient() (ret *Client) {
	vendorName := "Gemini"
	ret = &Client{}

	ret.PluginBase = &plugins.PluginBase{
		Name:            vendorName,
		EnvNamePrefix:   plugins.BuildEnvVariablePrefix(vendorName),
		ConfigureCustom: ret.configure,
	}
	ret.ApiKey = ret.AddSetupQuestion("API key", true)
	ret.ApiBaseURL = ret.AddSetupQuestion("API Base URL", false)

	return
}

type Client struct {
	*plugins.PluginBase
	ApiKey     *plugins.SetupQuestion
	ApiBaseURL *plugins.SetupQuestion

	client *genai.Client
}

func (o *Client) configure() (err error) {
	cfg := &genai.ClientConfig{
		APIKey:  o.ApiKey.Value,
		Backend: genai.BackendGeminiAPI,
	}
	if o.ApiBaseURL.Value != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: o.ApiBaseURL.Value}
	}
	o.client, err = genai.NewClient(context.Background(), cfg)
	return
}

func (o *Client) SchemaProvider() string {
	return "gemini"
}

func (o *Client) ListModels() (ret []string, err error) {
	if o.client == nil {
		return nil, fmt.Errorf("%s client is not configured", o.GetName())
	}
	for model, iterErr := range o.client.Models.All(context.Background()) {
		if iterErr != nil {
			return nil, iterErr
		}
		ret = append(ret, strings.TrimPrefix(model.Name, modelsPrefix))
	}
	return
}

func (o *Client) Send(ctx context.Context, msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (ret string, err error) {
	if o.client == nil {
		return "", fmt.Errorf("%s client is not configured", o.GetName())
	}
	contents, cfg := o.buildRequest(msgs, opts)

	var resp *genai.GenerateContentResponse
	if resp, err = o.client.Models.GenerateContent(ctx, strings.TrimPrefix(opts.Model, modelsPrefix), contents, cfg); err != nil {
		return
	}
	return schema.Default().HandleResponseParsing(o.SchemaProvider(), resp)
}

func (o *Client) buildRequest(msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (contents []*genai.Content, cfg *genai.GenerateContentConfig) {
	cfg = &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(opts.Temperature))
	}
	if opts.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxTokens)
	}

	var system []string
	for _, msg := range msgs {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		switch msg.Role {
		case chat.ChatMessageRoleSystem:
			system = append(system, msg.Content)
		case chat.ChatMessageRoleAssistant:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}
	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}

	if responseSchema, ok := opts.TransformedSchema.(*genai.Schema); ok {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = responseSchema
	} else if opts.SchemaContent != "" {
		cfg.ResponseMIMEType = "application/json"
	}
	return
}
