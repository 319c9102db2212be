package cli

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// CopyToClipboard puts message on the system clipboard.
func CopyToClipboard(message string) error {
	if err := clipboard.WriteAll(message); err != nil {
		return fmt.Errorf("could not copy to clipboard: %w", err)
	}
	return nil
}
