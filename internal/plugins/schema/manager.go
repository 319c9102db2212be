package schema

import (
	"fmt"

	"github.com/noteweaver/noteweaver/internal/domain"
)

// Manager orchestrates schema handling across different AI providers
type Manager struct {
	plugin SchemaPlugin
}

// NewManager creates a new schema manager with the default plugin
func NewManager() *Manager {
	return &Manager{
		plugin: NewDefaultSchemaPlugin(),
	}
}

// NewManagerWithPlugin creates a new schema manager with a custom plugin
func NewManagerWithPlugin(plugin SchemaPlugin) *Manager {
	return &Manager{
		plugin: plugin,
	}
}

// Prepare loads the named schema into opts and transforms it for the provider.
// This should be called before sending requests to the AI provider.
func (m *Manager) Prepare(providerName, schemaName string, opts *domain.ChatOptions) (err error) {
	if schemaName == "" {
		return nil
	}
	if opts.SchemaContent, err = Get(schemaName); err != nil {
		return err
	}
	opts.SchemaName = schemaName
	return m.HandleSchemaTransformation(providerName, opts)
}

// HandleSchemaTransformation prepares schema for provider-specific usage
func (m *Manager) HandleSchemaTransformation(providerName string, opts *domain.ChatOptions) error {
	if opts.SchemaContent == "" {
		return nil // No schema to handle
	}

	if !m.plugin.SupportsStructuredOutput(providerName) {
		return fmt.Errorf("provider '%s' does not support structured outputs", providerName)
	}

	transformedSchema, err := m.plugin.Transform(opts.SchemaContent, providerName)
	if err != nil {
		return fmt.Errorf("failed to transform schema for provider '%s': %w", providerName, err)
	}

	opts.TransformedSchema = transformedSchema
	return nil
}

// HandleResponseParsing extracts the structured output from a provider-specific response value
func (m *Manager) HandleResponseParsing(providerName string, rawResponse any) (string, error) {
	parsedResponse, err := m.plugin.ParseResponse(rawResponse, providerName)
	if err != nil {
		return "", fmt.Errorf("failed to parse structured response from provider '%s': %w", providerName, err)
	}
	return parsedResponse, nil
}

// ValidateOutput validates the final output against the provided schema
func (m *Manager) ValidateOutput(output string, schemaContent string) error {
	return m.plugin.Validate(output, schemaContent)
}

// GetProviderRequirements returns the schema requirements for a specific provider
func (m *Manager) GetProviderRequirements(providerName string) *ProviderRequirements {
	return m.plugin.GetProviderRequirements(providerName)
}

// SupportsStructuredOutput checks if a provider supports structured outputs
func (m *Manager) SupportsStructuredOutput(providerName string) bool {
	return m.plugin.SupportsStructuredOutput(providerName)
}

var defaultManager = NewManager()

// Default returns the shared manager backed by the default plugin.
func Default() *Manager {
	return defaultManager
}
