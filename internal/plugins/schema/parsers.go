package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/openai/openai-go"
	perplexity "github.com/sgaunet/perplexity-go/v2"
	"google.golang.org/genai"

	bedrockTypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types" // Alias to avoid conflict with schema.types
)

// AnthropicParser handles Anthropic-specific response parsing
type AnthropicParser struct{}

// NewAnthropicParser creates a new Anthropic response parser
func NewAnthropicParser() *AnthropicParser {
	return &AnthropicParser{}
}

// ParseResponse returns the input of the structured output tool call, falling back to the first text block.
func (p *AnthropicParser) ParseResponse(rawResponse any) (string, error) {
	message, ok := rawResponse.(*anthropic.Message)
	if !ok {
		if s, ok := rawResponse.(string); ok {
			return s, nil
		}
		return "", fmt.Errorf("expected *anthropic.Message, got %T", rawResponse)
	}

	var textParts []string
	for _, block := range message.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.ToolUseBlock:
			if variant.Name == ToolName {
				return string(variant.Input), nil
			}
		case anthropic.TextBlock:
			textParts = append(textParts, variant.Text)
		}
	}

	if len(textParts) == 0 {
		return "", fmt.Errorf("no structured output found in anthropic response")
	}
	return strings.Join(textParts, ""), nil
}

// OpenAIParser handles OpenAI Chat Completions responses, including Azure and LM Studio
type OpenAIParser struct{}

// NewOpenAIParser creates a new OpenAI response parser
func NewOpenAIParser() *OpenAIParser {
	return &OpenAIParser{}
}

func (p *OpenAIParser) ParseResponse(rawResponse any) (string, error) {
	switch response := rawResponse.(type) {
	case *openai.ChatCompletion:
		if len(response.Choices) == 0 {
			return "", fmt.Errorf("no choices in openai chat completion response")
		}
		return response.Choices[0].Message.Content, nil
	case string:
		return response, nil
	default:
		return "", fmt.Errorf("expected *openai.ChatCompletion, got %T", rawResponse)
	}
}

// PerplexityParser handles Perplexity-specific response parsing
type PerplexityParser struct{}

// NewPerplexityParser creates a new Perplexity response parser
func NewPerplexityParser() *PerplexityParser {
	return &PerplexityParser{}
}

// ParseResponse drops any <think> section that reasoning models emit before the JSON.
func (p *PerplexityParser) ParseResponse(rawResponse any) (string, error) {
	var content string
	switch resp := rawResponse.(type) {
	case *perplexity.CompletionResponse:
		if resp == nil || len(resp.Choices) == 0 {
			return "", fmt.Errorf("no choices in perplexity response")
		}
		content = resp.GetLastContent()
	case string:
		content = resp
	default:
		return "", fmt.Errorf("expected *perplexity.CompletionResponse, got %T", rawResponse)
	}
	return StripThinkBlock(content), nil
}

// BedrockParser handles Bedrock Converse responses
type BedrockParser struct{}

// NewBedrockParser creates a new Bedrock response parser
func NewBedrockParser() *BedrockParser {
	return &BedrockParser{}
}

func (p *BedrockParser) ParseResponse(rawResponse any) (string, error) {
	message, ok := rawResponse.(*bedrockTypes.Message)
	if !ok {
		if s, ok := rawResponse.(string); ok {
			return s, nil
		}
		return "", fmt.Errorf("unsupported bedrock response type: %T", rawResponse)
	}

	var textParts []string
	for _, block := range message.Content {
		switch b := block.(type) {
		case *bedrockTypes.ContentBlockMemberToolUse:
			if b.Value.Input == nil {
				continue
			}
			var input map[string]any
			if err := b.Value.Input.UnmarshalSmithyDocument(&input); err != nil {
				return "", fmt.Errorf("failed to decode tool_use input: %w", err)
			}
			jsonBytes, err := json.Marshal(input)
			if err != nil {
				return "", fmt.Errorf("failed to marshal tool_use input: %w", err)
			}
			return string(jsonBytes), nil
		case *bedrockTypes.ContentBlockMemberText:
			textParts = append(textParts, b.Value)
		}
	}

	if len(textParts) == 0 {
		return "", fmt.Errorf("no content found in bedrock message")
	}
	return strings.Join(textParts, ""), nil
}

// GeminiParser handles Gemini-specific response parsing
type GeminiParser struct{}

// NewGeminiParser creates a new Gemini response parser
func NewGeminiParser() *GeminiParser {
	return &GeminiParser{}
}

func (p *GeminiParser) ParseResponse(rawResponse any) (string, error) {
	response, ok := rawResponse.(*genai.GenerateContentResponse)
	if !ok {
		if s, ok := rawResponse.(string); ok {
			return s, nil
		}
		return "", fmt.Errorf("unsupported gemini response type: %T", rawResponse)
	}
	if response == nil {
		return "", fmt.Errorf("nil gemini response")
	}

	var textContent strings.Builder
	for _, candidate := range response.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" && !part.Thought {
				textContent.WriteString(part.Text)
			}
		}
	}

	if textContent.Len() == 0 {
		return "", fmt.Errorf("no text content in gemini response")
	}
	return textContent.String(), nil
}

// OllamaParser handles providers that already return the JSON document as a string
type OllamaParser struct{}

// NewOllamaParser creates a new Ollama response parser
func NewOllamaParser() *OllamaParser {
	return &OllamaParser{}
}

func (p *OllamaParser) ParseResponse(rawResponse any) (string, error) {
	if stringResponse, ok := rawResponse.(string); ok {
		return stringResponse, nil
	}
	return "", fmt.Errorf("expected string response, got %T", rawResponse)
}

// StripThinkBlock returns the content after the last </think> tag, if any.
func StripThinkBlock(content string) string {
	const thinkEndTag = "</think>"
	if idx := strings.LastIndex(content, thinkEndTag); idx != -1 {
		return strings.TrimSpace(content[idx+len(thinkEndTag):])
	}
	return content
}

// ExtractJSON trims reasoning preambles and markdown code fences models sometimes wrap JSON in.
func ExtractJSON(content string) string {
	content = strings.TrimSpace(StripThinkBlock(content))
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		if nl := strings.IndexByte(content, '\n'); nl != -1 {
			content = content[nl+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}
