package core

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelect_NoFoldersMakesNoCall(t *testing.T) {
	gw := &fakeGateway{}
	got, err := NewFolderSelector(gw, nil).Select(context.Background(), "anything?", nil, nil)
	require.NoError(t, err)
	assert.Empty(t, gw.calls)
	assert.NotNil(t, got.SelectedFolderIDs)
	assert.Empty(t, got.SelectedFolderIDs)
}

func TestSelect_FiltersAndDedupes(t *testing.T) {
	folders := []*domain.Folder{{ID: "f1", Name: "Travel"}, {ID: "f2", Name: "Work"}, {ID: "f3", Name: "Recipes"}}
	gw := &fakeGateway{respond: func(*domain.PromptCall) (any, error) {
		return domain.FolderSelection{Reasoning: "trips", SelectedFolderIDs: []string{"f3", "bogus", "f1", "f3"}}, nil
	}}

	got, err := NewFolderSelector(gw, nil).Select(context.Background(), "Where did I eat in Lisbon?", folders, nil)
	require.NoError(t, err)
	assert.Equal(t, "trips", got.Reasoning)
	assert.Equal(t, []string{"f3", "f1"}, got.SelectedFolderIDs)

	require.Len(t, gw.calls, 1)
	call := gw.calls[0]
	assert.Equal(t, schema.SelectFolders, call.Schema)
	assert.Contains(t, call.User, "Question: Where did I eat in Lisbon?")
	assert.Contains(t, call.User, `"id": "f2"`)
	assert.Contains(t, call.User, `"name": "Recipes"`)
	assert.Contains(t, call.User, noHistory)
}

func TestRenderHistory(t *testing.T) {
	assert.Equal(t, noHistory, renderHistory(nil))

	var history []*domain.ChatMessage
	for i := 1; i <= 7; i++ {
		role := chat.ChatMessageRoleUser
		if i%2 == 0 {
			role = chat.ChatMessageRoleAssistant
		}
		history = append(history, &domain.ChatMessage{Role: role, Content: fmt.Sprintf("msg %d", i)})
	}

	got := renderHistory(history)
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	assert.Equal(t, []string{
		"user: msg 3",
		"assistant: msg 4",
		"user: msg 5",
		"assistant: msg 6",
		"user: msg 7",
	}, lines)
}

func TestSelect_PropagatesGatewayError(t *testing.T) {
	gw := &fakeGateway{respond: func(*domain.PromptCall) (any, error) {
		return nil, fmt.Errorf("%w: bad reply", domain.ErrValidation)
	}}
	_, err := NewFolderSelector(gw, nil).Select(context.Background(), "q", []*domain.Folder{{ID: "f1", Name: "A"}}, nil)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
