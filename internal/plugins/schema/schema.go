package schema

// SchemaPlugin handles structured output schema processing for different AI providers
type SchemaPlugin interface {
	// Transform schema content for provider-specific format requirements
	Transform(schemaContent string, providerName string) (any, error)

	// Validate output against the provided JSON schema
	Validate(output, schemaContent string) error

	// Check if provider supports structured outputs
	SupportsStructuredOutput(providerName string) bool

	// Get provider-specific schema format requirements
	GetProviderRequirements(providerName string) *ProviderRequirements

	// Parse response using provider-specific logic
	ParseResponse(rawResponse any, providerName string) (string, error)
}

// ProviderRequirements defines how each provider handles structured outputs
type ProviderRequirements struct {
	RequiresTools          bool     // Anthropic and Bedrock use a forced tool call
	RequiresResponseFormat bool     // OpenAI-style response_format
	SupportedFormats       []string // ["json_schema", "json_object", etc.]
	MaxSchemaSize          int      // Provider schema size limits

	ResponseType ResponseType
	ToolName     string // For tool-based providers
}

// ResponseType indicates how the provider returns structured output responses
type ResponseType int

const (
	ResponseTypeText       ResponseType = iota // Standard text response
	ResponseTypeTool                           // Tool-based response (Anthropic, Bedrock)
	ResponseTypeStructured                     // Structured response format (OpenAI)
)

// ResponseParser extracts the JSON document from a provider-specific response value
type ResponseParser interface {
	ParseResponse(rawResponse any) (string, error)
}
