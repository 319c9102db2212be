package bedrock

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/document"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
)

const defaultMaxTokens = 4096

type converseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

type modelsAPI interface {
	ListFoundationModels(ctx context.Context, params *bedrock.ListFoundationModelsInput, optFns ...func(*bedrock.Options)) (*bedrock.ListFoundationModelsOutput, error)
}

// NewClient builds the AWS Bedrock vendor. Credentials come from the default AWS chain.
func NewClient() (ret *Client) {
	vendorName := "Bedrock"
	ret = &Client{}

	ret.PluginBase = &plugins.PluginBase{
		Name:            vendorName,
		EnvNamePrefix:   plugins.BuildEnvVariablePrefix(vendorName),
		ConfigureCustom: ret.configure,
	}
	ret.Region = ret.AddSetupQuestionCustom("AWS Region", true, "Enter the AWS region hosting your Bedrock models, e.g. us-east-1")

	return
}

type Client struct {
	*plugins.PluginBase
	Region *plugins.SetupQuestion

	runtime converseAPI
	control modelsAPI
}

func (b *Client) configure() error {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(b.Region.Value))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}
	b.runtime = bedrockruntime.NewFromConfig(cfg)
	b.control = bedrock.NewFromConfig(cfg)
	return nil
}

func (b *Client) SchemaProvider() string {
	return "bedrock"
}

func (b *Client) ListModels() (ret []string, err error) {
	if b.control == nil {
		return nil, fmt.Errorf("%s client is not configured", b.GetName())
	}
	var out *bedrock.ListFoundationModelsOutput
	if out, err = b.control.ListFoundationModels(context.Background(), &bedrock.ListFoundationModelsInput{}); err != nil {
		return
	}
	for _, summary := range out.ModelSummaries {
		ret = append(ret, aws.ToString(summary.ModelId))
	}
	return
}

func (b *Client) Send(ctx context.Context, msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (ret string, err error) {
	if b.runtime == nil {
		return "", fmt.Errorf("%s client is not configured", b.GetName())
	}
	var input *bedrockruntime.ConverseInput
	if input, err = buildConverseInput(msgs, opts); err != nil {
		return
	}

	var out *bedrockruntime.ConverseOutput
	if out, err = b.runtime.Converse(ctx, input); err != nil {
		return
	}
	message, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("unexpected bedrock output type %T", out.Output)
	}
	debuglog.Debug(debuglog.Detailed, "bedrock stop reason: %s", out.StopReason)
	return schema.Default().HandleResponseParsing(b.SchemaProvider(), &message.Value)
}

func buildConverseInput(msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (*bedrockruntime.ConverseInput, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}
	input := &bedrockruntime.ConverseInput{
		ModelId:         aws.String(opts.Model),
		InferenceConfig: &types.InferenceConfiguration{MaxTokens: aws.Int32(int32(maxTokens))},
	}
	if opts.Temperature > 0 {
		input.InferenceConfig.Temperature = aws.Float32(float32(opts.Temperature))
	}

	for _, msg := range msgs {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		switch msg.Role {
		case chat.ChatMessageRoleSystem:
			input.System = append(input.System, &types.SystemContentBlockMemberText{Value: msg.Content})
		case chat.ChatMessageRoleAssistant:
			input.Messages = append(input.Messages, textMessage(types.ConversationRoleAssistant, msg.Content))
		default:
			input.Messages = append(input.Messages, textMessage(types.ConversationRoleUser, msg.Content))
		}
	}
	if len(input.Messages) == 0 {
		return nil, fmt.Errorf("no user message to send to bedrock")
	}

	if opts.TransformedSchema != nil {
		toolConfig, err := toolConfiguration(opts.TransformedSchema)
		if err != nil {
			return nil, err
		}
		input.ToolConfig = toolConfig
	}
	return input, nil
}

func textMessage(role types.ConversationRole, content string) types.Message {
	return types.Message{
		Role:    role,
		Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: content}},
	}
}

// toolConfiguration turns the transformed {"tools": [{"toolSpec": ...}]} value into a
// single forced tool whose input is the structured output.
func toolConfiguration(transformed any) (*types.ToolConfiguration, error) {
	root, ok := transformed.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected bedrock tool configuration, got %T", transformed)
	}
	tools, _ := root["tools"].([]any)
	if len(tools) == 0 {
		return nil, fmt.Errorf("bedrock tool configuration has no tools")
	}
	first, _ := tools[0].(map[string]any)
	spec, _ := first["toolSpec"].(map[string]any)
	inputSchema, _ := spec["inputSchema"].(map[string]any)
	jsonSchema, ok := inputSchema["json"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("bedrock tool spec has no JSON input schema")
	}
	name, _ := spec["name"].(string)
	if name == "" {
		name = schema.ToolName
	}
	description, _ := spec["description"].(string)

	toolSpec := types.ToolSpecification{
		Name:        aws.String(name),
		InputSchema: &types.ToolInputSchemaMemberJson{Value: document.NewLazyDocument(jsonSchema)},
	}
	if description != "" {
		toolSpec.Description = aws.String(description)
	}
	return &types.ToolConfiguration{
		Tools:      []types.Tool{&types.ToolMemberToolSpec{Value: toolSpec}},
		ToolChoice: &types.ToolChoiceMemberTool{Value: types.SpecificToolChoice{Name: aws.String(name)}},
	}, nil
}
