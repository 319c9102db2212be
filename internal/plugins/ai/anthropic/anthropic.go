package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
)

const (
	defaultBaseURL   = "https://api.anthropic.com"
	defaultMaxTokens = 4096
)

func NewClient() (ret *Client) {
	vendorName := "Anthropic"
	ret = &Client{}

	ret.PluginBase = &plugins.PluginBase{
		Name:            vendorName,
		EnvNamePrefix:   plugins.BuildEnvVariablePrefix(vendorName),
		ConfigureCustom: ret.configure,
	}

	ret.ApiBaseURL = ret.AddSetupQuestion("API Base URL", false)
	ret.ApiBaseURL.Value = defaultBaseURL
	ret.ApiKey = ret.AddSetupQuestion("API key", true)

	return
}

type Client struct {
	*plugins.PluginBase
	ApiBaseURL *plugins.SetupQuestion
	ApiKey     *plugins.SetupQuestion

	client *anthropic.Client
}

func (an *Client) configure() error {
	opts := []option.RequestOption{option.WithAPIKey(an.ApiKey.Value)}
	if an.ApiBaseURL.Value != "" {
		opts = append(opts, option.WithBaseURL(an.ApiBaseURL.Value))
	}
	client := anthropic.NewClient(opts...)
	an.client = &client
	return nil
}

func (an *Client) SchemaProvider() string {
	return "anthropic"
}

func (an *Client) ListModels() (ret []string, err error) {
	if an.client == nil {
		return nil, fmt.Errorf("%s client is not configured", an.GetName())
	}
	iter := an.client.Models.ListAutoPaging(context.Background(), anthropic.ModelListParams{})
	for iter.Next() {
		ret = append(ret, iter.Current().ID)
	}
	err = iter.Err()
	return
}

func (an *Client) Send(ctx context.Context, msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (ret string, err error) {
	if an.client == nil {
		return "", fmt.Errorf("%s client is not configured", an.GetName())
	}
	var params anthropic.MessageNewParams
	if params, err = an.buildMessageParams(msgs, opts); err != nil {
		return
	}

	var message *anthropic.Message
	if message, err = an.client.Messages.New(ctx, params); err != nil {
		return
	}
	return schema.Default().HandleResponseParsing(an.SchemaProvider(), message)
}

// buildMessageParams lifts system messages into the top-level system prompt and
// forces the structured output tool when a schema is present.
func (an *Client) buildMessageParams(msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (ret anthropic.MessageNewParams, err error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	ret = anthropic.MessageNewParams{
		Model:     anthropic.Model(opts.Model),
		MaxTokens: int64(maxTokens),
	}
	if opts.Temperature > 0 {
		ret.Temperature = anthropic.Float(opts.Temperature)
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
			ret.Messages = append(ret.Messages, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			ret.Messages = append(ret.Messages, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		}
	}
	if len(system) > 0 {
		ret.System = []anthropic.TextBlockParam{{Text: strings.Join(system, "\n\n")}}
	}
	if len(ret.Messages) == 0 {
		return ret, fmt.Errorf("no user message to send to %s", an.GetName())
	}

	if opts.TransformedSchema == nil {
		return
	}
	var tool *anthropic.ToolParam
	if tool, err = toolFromSchema(opts.TransformedSchema); err != nil {
		return
	}
	ret.Tools = []anthropic.ToolUnionParam{{OfTool: tool}}
	ret.ToolChoice = anthropic.ToolChoiceParamOfTool(tool.Name)
	return
}

func toolFromSchema(transformed any) (*anthropic.ToolParam, error) {
	spec, ok := transformed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected anthropic tool definition, got %T", transformed)
	}
	inputSchema, ok := spec["input_schema"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("anthropic tool definition has no input_schema")
	}
	name, _ := spec["name"].(string)
	if name == "" {
		name = schema.ToolName
	}
	description, _ := spec["description"].(string)

	tool := &anthropic.ToolParam{
		Name:        name,
		Description: anthropic.String(description),
		InputSchema: anthropic.ToolInputSchemaParam{
			Properties: inputSchema["properties"],
		},
	}
	if required, ok := inputSchema["required"].([]any); ok {
		for _, r := range required {
			if s, ok := r.(string); ok {
				tool.InputSchema.Required = append(tool.InputSchema.Required, s)
			}
		}
	}
	return tool, nil
}
