package core

import (
	"fmt"
	"strings"

	"github.com/noteweaver/noteweaver/internal/domain"
)

const (
	historyWindow = 5
	noHistory     = "No previous conversation"
)

// renderHistory renders the last historyWindow messages oldest first, one "role: content" line each.
func renderHistory(history []*domain.ChatMessage) string {
	if len(history) == 0 {
		return noHistory
	}
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	var b strings.Builder
	for _, msg := range history {
		fmt.Fprintf(&b, "%s: %s\n", msg.Role, msg.Content)
	}
	return b.String()
}
