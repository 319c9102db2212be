package schema

import (
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"
	"google.golang.org/genai"
)

// ToolName is the forced tool used by tool-based providers to return structured output.
const ToolName = "record_structured_output"

// DefaultSchemaPlugin provides the default implementation of SchemaPlugin
type DefaultSchemaPlugin struct {
	providerConfigs map[string]*ProviderRequirements
	parsers         map[string]ResponseParser
}

// NewDefaultSchemaPlugin creates a new default schema plugin with built-in provider support
func NewDefaultSchemaPlugin() *DefaultSchemaPlugin {
	openaiRequirements := &ProviderRequirements{
		RequiresResponseFormat: true,
		SupportedFormats:       []string{"json_schema", "json_object"},
		MaxSchemaSize:          50000,
		ResponseType:           ResponseTypeStructured,
	}
	ret := &DefaultSchemaPlugin{
		providerConfigs: map[string]*ProviderRequirements{
			"anthropic": {
				RequiresTools:    true,
				SupportedFormats: []string{"json_schema"},
				MaxSchemaSize:    10000,
				ResponseType:     ResponseTypeTool,
				ToolName:         ToolName,
			},
			"openai": openaiRequirements,
			"azure":  openaiRequirements,
			"gemini": {
				RequiresResponseFormat: true,
				SupportedFormats:       []string{"json_schema"},
				MaxSchemaSize:          25000,
				ResponseType:           ResponseTypeStructured,
			},
			"ollama": {
				RequiresResponseFormat: true,
				SupportedFormats:       []string{"json_schema"},
				MaxSchemaSize:          15000,
				ResponseType:           ResponseTypeStructured,
			},
			"dryrun": {
				SupportedFormats: []string{"json_schema"},
				MaxSchemaSize:    100000, // No real limits for dry run
				ResponseType:     ResponseTypeText,
			},
			"perplexity": {
				RequiresResponseFormat: true,
				SupportedFormats:       []string{"json_schema", "regex"},
				MaxSchemaSize:          50000,
				ResponseType:           ResponseTypeStructured,
			},
			"lmstudio": {
				RequiresResponseFormat: true,
				SupportedFormats:       []string{"json_schema"},
				MaxSchemaSize:          50000,
				ResponseType:           ResponseTypeStructured,
			},
			"azureaigateway": {
				RequiresResponseFormat: true,
				SupportedFormats:       []string{"json_schema"},
				MaxSchemaSize:          50000,
				ResponseType:           ResponseTypeStructured,
			},
			"bedrock": {
				RequiresTools:    true,
				SupportedFormats: []string{"json_schema"},
				MaxSchemaSize:    100000,
				ResponseType:     ResponseTypeTool,
				ToolName:         ToolName,
			},
		},
		parsers: make(map[string]ResponseParser),
	}

	openaiParser := NewOpenAIParser()
	ret.parsers["anthropic"] = NewAnthropicParser()
	ret.parsers["openai"] = openaiParser
	ret.parsers["azure"] = openaiParser
	ret.parsers["lmstudio"] = openaiParser
	ret.parsers["gemini"] = NewGeminiParser()
	ret.parsers["ollama"] = NewOllamaParser()
	ret.parsers["bedrock"] = NewBedrockParser()
	ret.parsers["perplexity"] = NewPerplexityParser()
	ret.parsers["dryrun"] = NewOllamaParser()
	// the gateway backends decode their own wire formats and hand over text
	ret.parsers["azureaigateway"] = NewOllamaParser()

	return ret
}

// Transform transforms schema content for provider-specific format requirements
func (sp *DefaultSchemaPlugin) Transform(schemaContent, providerName string) (any, error) {
	requirements := sp.GetProviderRequirements(providerName)
	if requirements == nil {
		return nil, fmt.Errorf("unsupported provider: %s", providerName)
	}

	var schema any
	if err := json.Unmarshal([]byte(schemaContent), &schema); err != nil {
		return nil, fmt.Errorf("invalid JSON schema: %w", err)
	}

	if requirements.MaxSchemaSize > 0 && len(schemaContent) > requirements.MaxSchemaSize {
		return nil, fmt.Errorf("schema size (%d bytes) exceeds provider limit (%d bytes)",
			len(schemaContent), requirements.MaxSchemaSize)
	}

	switch providerName {
	case "anthropic":
		return sp.transformForAnthropic(schema)
	case "openai", "azure":
		return sp.transformForOpenAI(schema)
	case "gemini":
		return sp.convertToGenaiSchema(schema)
	case "ollama":
		return sp.transformForOllama(schema)
	case "perplexity":
		return sp.transformForPerplexity(schema)
	case "lmstudio":
		return sp.transformForLMStudio(schema)
	case "bedrock":
		return sp.transformForBedrock(schema)
	default:
		return schema, nil
	}
}

// Validate validates output against the provided JSON schema
func (sp *DefaultSchemaPlugin) Validate(output, schemaContent string) error {
	if schemaContent == "" {
		return nil // No schema to validate against
	}

	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(output)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("error during schema validation: %w", err)
	}

	if !result.Valid() {
		errorString := "output failed schema validation:"
		for _, desc := range result.Errors() {
			errorString += fmt.Sprintf("\n- %s", desc)
		}
		return fmt.Errorf("%s", errorString)
	}

	return nil
}

// SupportsStructuredOutput checks if provider supports structured outputs
func (sp *DefaultSchemaPlugin) SupportsStructuredOutput(providerName string) bool {
	return sp.GetProviderRequirements(providerName) != nil
}

// GetProviderRequirements returns the schema requirements for a specific provider
func (sp *DefaultSchemaPlugin) GetProviderRequirements(providerName string) *ProviderRequirements {
	return sp.providerConfigs[providerName]
}

// ParseResponse parses response using provider-specific logic
func (sp *DefaultSchemaPlugin) ParseResponse(rawResponse any, providerName string) (string, error) {
	parser, exists := sp.parsers[providerName]
	if !exists {
		return "", fmt.Errorf("no parser available for provider: %s", providerName)
	}
	return parser.ParseResponse(rawResponse)
}

func schemaTitle(schema any) (title, description string) {
	if schemaMap, ok := schema.(map[string]any); ok {
		title, _ = schemaMap["title"].(string)
		description, _ = schemaMap["description"].(string)
	}
	if title == "" {
		title = "structured_output"
	}
	return
}

func (sp *DefaultSchemaPlugin) transformForAnthropic(schema any) (any, error) {
	_, description := schemaTitle(schema)
	if description == "" {
		description = "Generate structured output according to the provided schema"
	}
	return map[string]any{
		"name":         ToolName,
		"description":  description,
		"input_schema": schema,
	}, nil
}

func (sp *DefaultSchemaPlugin) transformForOpenAI(schema any) (any, error) {
	// Strict mode would require every property to be listed as required, which optional fields like folder color are not.
	name, _ := schemaTitle(schema)
	return map[string]any{
		"type":   "json_schema",
		"name":   name,
		"schema": schema,
		"strict": false,
	}, nil
}

// convertToGenaiSchema converts a JSON schema (map) to a genai.Schema struct
func (sp *DefaultSchemaPlugin) convertToGenaiSchema(schema any) (*genai.Schema, error) {
	schemaMap, ok := schema.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("schema is not a JSON object")
	}

	genaiSchema := &genai.Schema{}

	if title, ok := schemaMap["title"].(string); ok {
		genaiSchema.Title = title
	}
	if description, ok := schemaMap["description"].(string); ok {
		genaiSchema.Description = description
	}

	switch schemaType := schemaMap["type"].(type) {
	case string:
		genaiSchema.Type = sp.convertToGenaiType(schemaType)
	case []any:
		// ["string", "null"] becomes a nullable string
		for _, t := range schemaType {
			typeStr, _ := t.(string)
			if typeStr == "null" {
				genaiSchema.Nullable = genai.Ptr(true)
				continue
			}
			if genaiSchema.Type == "" || genaiSchema.Type == genai.TypeUnspecified {
				genaiSchema.Type = sp.convertToGenaiType(typeStr)
			}
		}
	}

	if properties, ok := schemaMap["properties"].(map[string]any); ok {
		genaiSchema.Properties = make(map[string]*genai.Schema)
		for propName, propSchema := range properties {
			if convertedProp, err := sp.convertToGenaiSchema(propSchema); err == nil {
				genaiSchema.Properties[propName] = convertedProp
			}
		}
	}

	if required, ok := schemaMap["required"].([]any); ok {
		for _, req := range required {
			if reqStr, ok := req.(string); ok {
				genaiSchema.Required = append(genaiSchema.Required, reqStr)
			}
		}
	}

	if enum, ok := schemaMap["enum"].([]any); ok {
		for _, enumVal := range enum {
			if enumStr, ok := enumVal.(string); ok {
				genaiSchema.Enum = append(genaiSchema.Enum, enumStr)
			}
		}
	}

	if items, exists := schemaMap["items"]; exists {
		if itemSchema, err := sp.convertToGenaiSchema(items); err == nil {
			genaiSchema.Items = itemSchema
		}
	}

	return genaiSchema, nil
}

// convertToGenaiType converts a JSON schema type string to genai.Type
func (sp *DefaultSchemaPlugin) convertToGenaiType(typeStr string) genai.Type {
	switch typeStr {
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object":
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}

func (sp *DefaultSchemaPlugin) transformForBedrock(schema any) (any, error) {
	schemaMap, ok := schema.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("bedrock schema is not a JSON object")
	}
	_, description := schemaTitle(schema)

	return map[string]any{
		"tools": []any{
			map[string]any{
				"toolSpec": map[string]any{
					"name":        ToolName,
					"description": description,
					"inputSchema": map[string]any{
						"json": schemaMap,
					},
				},
			},
		},
	}, nil
}

func (sp *DefaultSchemaPlugin) transformForOllama(schema any) (any, error) {
	// Ollama uses format parameter with the raw JSON schema
	return map[string]any{
		"format": schema,
	}, nil
}

func (sp *DefaultSchemaPlugin) transformForPerplexity(schema any) (any, error) {
	if _, ok := schema.(map[string]any); ok {
		return map[string]any{
			"type": "json_schema",
			"json_schema": map[string]any{
				"schema": schema,
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported schema format for perplexity: expected JSON object, got %T", schema)
}

func (sp *DefaultSchemaPlugin) transformForLMStudio(schema any) (any, error) {
	name, _ := schemaTitle(schema)
	return map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   name,
			"strict": false,
			"schema": schema,
		},
	}, nil
}
