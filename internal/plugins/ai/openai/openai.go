package openai

import (
	"context"
	"fmt"
	"strings"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const DefaultBaseURL = "https://api.openai.com/v1"

func NewClient() (ret *Client) {
	return NewClientCompatible("OpenAI", DefaultBaseURL, nil)
}

// NewClientCompatible builds a client for any OpenAI-compatible Chat Completions API.
func NewClientCompatible(vendorName string, defaultBaseURL string, configureCustom func() error) (ret *Client) {
	ret = NewClientCompatibleNoSetupQuestions(vendorName, configureCustom)

	ret.ApiKey = ret.AddSetupQuestion("API Key", true)
	ret.ApiBaseURL = ret.AddSetupQuestion("API Base URL", false)
	ret.ApiBaseURL.Value = defaultBaseURL

	return
}

// NewClientCompatibleNoSetupQuestions leaves the setup questions to the caller.
func NewClientCompatibleNoSetupQuestions(vendorName string, configureCustom func() error) (ret *Client) {
	ret = &Client{schemaProvider: "openai"}

	if configureCustom == nil {
		configureCustom = ret.configure
	}

	ret.PluginBase = &plugins.PluginBase{
		Name:            vendorName,
		EnvNamePrefix:   plugins.BuildEnvVariablePrefix(vendorName),
		ConfigureCustom: configureCustom,
	}

	return
}

type Client struct {
	*plugins.PluginBase
	ApiKey     *plugins.SetupQuestion
	ApiBaseURL *plugins.SetupQuestion
	ApiClient  *openai.Client

	schemaProvider string
}

func (o *Client) configure() error {
	opts := []option.RequestOption{option.WithAPIKey(o.ApiKey.Value)}
	if o.ApiBaseURL.Value != "" {
		opts = append(opts, option.WithBaseURL(o.ApiBaseURL.Value))
	}
	client := openai.NewClient(opts...)
	o.ApiClient = &client
	return nil
}

// SetSchemaProvider is used by compatible vendors whose structured output format differs from OpenAI's.
func (o *Client) SetSchemaProvider(provider string) {
	o.schemaProvider = provider
}

func (o *Client) SchemaProvider() string {
	return o.schemaProvider
}

func (o *Client) ListModels() (ret []string, err error) {
	if o.ApiClient == nil {
		return nil, fmt.Errorf("%s client is not configured", o.GetName())
	}
	iter := o.ApiClient.Models.ListAutoPaging(context.Background())
	for iter.Next() {
		ret = append(ret, iter.Current().ID)
	}
	err = iter.Err()
	return
}

func (o *Client) Send(ctx context.Context, msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (ret string, err error) {
	if o.ApiClient == nil {
		return "", fmt.Errorf("%s client is not configured", o.GetName())
	}
	params := o.buildChatCompletionParams(msgs, opts)

	var resp *openai.ChatCompletion
	if resp, err = o.ApiClient.Chat.Completions.New(ctx, params); err != nil {
		return
	}
	return schema.Default().HandleResponseParsing(o.schemaProvider, resp)
}

func (o *Client) buildChatCompletionParams(msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (ret openai.ChatCompletionNewParams) {
	ret = openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(opts.Model),
		Messages: convertMessages(msgs),
	}
	if opts.Temperature > 0 {
		ret.Temperature = openai.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		ret.MaxCompletionTokens = openai.Int(int64(opts.MaxTokens))
	}

	if format, ok := jsonSchemaFormat(opts.TransformedSchema); ok {
		ret.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{OfJSONSchema: format}
	} else if opts.SchemaContent != "" {
		ret.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{OfJSONObject: &shared.ResponseFormatJSONObjectParam{}}
	}
	return
}

// jsonSchemaFormat accepts both the flat OpenAI shape and the nested
// {"json_schema": {...}} shape used by LM Studio.
func jsonSchemaFormat(transformed any) (*shared.ResponseFormatJSONSchemaParam, bool) {
	m, ok := transformed.(map[string]any)
	if !ok {
		return nil, false
	}
	if nested, ok := m["json_schema"].(map[string]any); ok {
		m = nested
	}
	schemaValue, ok := m["schema"]
	if !ok {
		return nil, false
	}
	name, _ := m["name"].(string)
	if name == "" {
		name = "structured_output"
	}
	strict, _ := m["strict"].(bool)
	return &shared.ResponseFormatJSONSchemaParam{
		JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
			Name:   name,
			Schema: schemaValue,
			Strict: openai.Bool(strict),
		},
	}, true
}

func convertMessages(msgs []*chat.ChatCompletionMessage) (ret []openai.ChatCompletionMessageParamUnion) {
	for _, msg := range msgs {
		switch strings.ToLower(msg.Role) {
		case chat.ChatMessageRoleSystem:
			ret = append(ret, openai.SystemMessage(msg.Content))
		case chat.ChatMessageRoleAssistant:
			ret = append(ret, openai.AssistantMessage(msg.Content))
		default:
			ret = append(ret, openai.UserMessage(msg.Content))
		}
	}
	return
}
