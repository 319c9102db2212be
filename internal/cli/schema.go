package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/noteweaver/noteweaver/internal/plugins/schema"
)

// validateOutputWithSchema checks a model reply against the named response schema.
// Code fences and <think> preambles are stripped first, as the gateway does.
func validateOutputWithSchema(output, schemaName string) error {
	schemaContent, err := schema.Get(schemaName)
	if err != nil {
		return err
	}
	content := schema.ExtractJSON(output)
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("no JSON to validate")
	}
	return schema.Default().ValidateOutput(content, schemaContent)
}

func (a *app) validate(schemaName string) error {
	output, err := io.ReadAll(a.in)
	if err != nil {
		return err
	}
	if err = validateOutputWithSchema(string(output), schemaName); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "valid %s output\n", schemaName)
	return nil
}
