package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrganize_EmptyNotesMakesNoCall(t *testing.T) {
	gw := &fakeGateway{}
	got, err := NewOrganizer(gw, nil).Organize(context.Background(), nil, []*domain.Folder{{ID: "f1", Name: "Work"}}, 100)
	require.NoError(t, err)
	assert.Empty(t, gw.calls)
	assert.NotNil(t, got.SuggestedFolders)
	assert.NotNil(t, got.Assignments)
	assert.Empty(t, got.SuggestedFolders)
	assert.Empty(t, got.Assignments)
}

func TestOrganize_SingleCallWhenWithinBudget(t *testing.T) {
	notes := []*domain.Note{newNote("n1", "Flight", "TAP to Lisbon"), newNote("n2", "Standup", "notes")}
	gw := &fakeGateway{respond: func(call *domain.PromptCall) (any, error) {
		return domain.OrganizationResult{
			SuggestedFolders: []domain.SuggestedFolder{{Name: "Travel", Color: ptr("#0EA5E9")}},
			Assignments: []domain.Assignment{
				{NoteID: "n1", FolderNames: []string{"travel"}},
				{NoteID: "n2", FolderNames: []string{"work"}},
			},
		}, nil
	}}

	got, err := NewOrganizer(gw, nil).Organize(context.Background(), notes, []*domain.Folder{{ID: "f1", Name: "Work"}}, 0)
	require.NoError(t, err)
	require.Len(t, gw.calls, 1)

	call := gw.calls[0]
	assert.Equal(t, schema.Organize, call.Schema)
	assert.Equal(t, systemOrganize, call.System)
	assert.Contains(t, call.User, "Existing folders: Work")
	assert.Contains(t, call.User, RenderNote(notes[0]))
	assert.Contains(t, call.User, RenderNote(notes[1]))

	want := &domain.OrganizationResult{
		SuggestedFolders: []domain.SuggestedFolder{{Name: "Travel", Color: ptr("#0EA5E9")}},
		Assignments: []domain.Assignment{
			{NoteID: "n1", FolderNames: []string{"Travel"}},
			{NoteID: "n2", FolderNames: []string{"Work"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Organize() mismatch (-want +got):\n%s", diff)
	}
}

func TestOrganize_DropsInvalidReplyParts(t *testing.T) {
	notes := []*domain.Note{newNote("n1", "a", "b")}
	gw := &fakeGateway{respond: func(*domain.PromptCall) (any, error) {
		return domain.OrganizationResult{
			SuggestedFolders: []domain.SuggestedFolder{{Name: " "}, {Name: "WORK"}, {Name: "Ideas"}, {Name: "ideas"}},
			Assignments: []domain.Assignment{
				{NoteID: "n1", FolderNames: []string{"Ideas", "Nonexistent", "IDEAS", "work"}},
				{NoteID: "ghost", FolderNames: []string{"Ideas"}},
				{NoteID: "n1", FolderNames: []string{"Nonexistent"}},
			},
		}, nil
	}}

	got, err := NewOrganizer(gw, nil).Organize(context.Background(), notes, []*domain.Folder{{ID: "f1", Name: "Work"}}, 0)
	require.NoError(t, err)

	want := &domain.OrganizationResult{
		SuggestedFolders: []domain.SuggestedFolder{{Name: "Ideas"}},
		Assignments:      []domain.Assignment{{NoteID: "n1", FolderNames: []string{"Ideas", "Work"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Organize() mismatch (-want +got):\n%s", diff)
	}
}

func TestOrganize_ChunkedEndToEnd(t *testing.T) {
	var notes []*domain.Note
	for i := 1; i <= 3; i++ {
		note := newNote(fmt.Sprintf("n%d", i), fmt.Sprintf("Note %d", i), strings.Repeat("z", 170))
		notes = append(notes, note)
		tokens := EstimateTokens(RenderNote(note))
		require.InDelta(t, 50, tokens, 10, "note %d should cost about 50 tokens", i)
	}
	existing := []*domain.Folder{{ID: "f1", Name: "Work"}, {ID: "f2", Name: "Personal"}}

	replies := []domain.OrganizationResult{
		{
			SuggestedFolders: []domain.SuggestedFolder{{Name: "Travel"}},
			Assignments:      []domain.Assignment{{NoteID: "n1", FolderNames: []string{"Travel"}}},
		},
		{
			SuggestedFolders: []domain.SuggestedFolder{{Name: "travel"}, {Name: "Health"}},
			Assignments:      []domain.Assignment{{NoteID: "n2", FolderNames: []string{"TRAVEL", "Health"}}},
		},
		{
			SuggestedFolders: []domain.SuggestedFolder{{Name: "personal"}},
			Assignments:      []domain.Assignment{{NoteID: "n3", FolderNames: []string{"Personal", "health"}}},
		},
	}
	gw := &fakeGateway{}
	gw.respond = func(*domain.PromptCall) (any, error) {
		return replies[len(gw.calls)-1], nil
	}

	got, err := NewOrganizer(gw, nil).Organize(context.Background(), notes, existing, 40)
	require.NoError(t, err)
	require.Len(t, gw.calls, 3)

	assert.Contains(t, gw.calls[0].User, "Existing folders: Work, Personal\n")
	assert.Contains(t, gw.calls[1].User, "Existing folders: Work, Personal, Travel\n")
	assert.Contains(t, gw.calls[2].User, "Existing folders: Work, Personal, Travel, Health\n")
	for i, call := range gw.calls {
		assert.Contains(t, call.User, RenderNote(notes[i]))
	}

	want := &domain.OrganizationResult{
		SuggestedFolders: []domain.SuggestedFolder{{Name: "Travel"}, {Name: "Health"}},
		Assignments: []domain.Assignment{
			{NoteID: "n1", FolderNames: []string{"Travel"}},
			{NoteID: "n2", FolderNames: []string{"Travel", "Health"}},
			{NoteID: "n3", FolderNames: []string{"Personal", "Health"}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Organize() mismatch (-want +got):\n%s", diff)
	}
}

func TestOrganize_EveryBatchFitsBudgetAsFoldersGrow(t *testing.T) {
	const budget = 600
	var notes []*domain.Note
	for i := 1; i <= 60; i++ {
		notes = append(notes, newNote(fmt.Sprintf("n%02d", i), fmt.Sprintf("Note %02d", i), strings.Repeat("b", 27)))
	}
	existing := []*domain.Folder{{ID: "f1", Name: "Work"}}

	gw := &fakeGateway{}
	gw.respond = func(*domain.PromptCall) (any, error) {
		reply := domain.NewOrganizationResult()
		for j := 1; j <= 8; j++ {
			reply.SuggestedFolders = append(reply.SuggestedFolders, domain.SuggestedFolder{Name: fmt.Sprintf("Topic %d-%d", len(gw.calls), j)})
		}
		return reply, nil
	}

	_, err := NewOrganizer(gw, nil).Organize(context.Background(), notes, existing, budget)
	require.NoError(t, err)
	require.Greater(t, len(gw.calls), 2)

	sent := 0
	for i, call := range gw.calls {
		tokens := EstimateTokens(call.System) + EstimateTokens(call.User)
		assert.LessOrEqual(t, tokens, budget, "call %d", i+1)
		for _, note := range notes {
			if strings.Contains(call.User, RenderNote(note)) {
				sent++
			}
		}
	}
	assert.Equal(t, len(notes), sent, "every note is sent exactly once")
	assert.Contains(t, gw.calls[len(gw.calls)-1].User, "Topic 1-1", "later batches see earlier suggestions")
}

func TestOrganize_BatchFailureFailsWholeCall(t *testing.T) {
	notes := []*domain.Note{
		newNote("n1", "a", strings.Repeat("x", 200)),
		newNote("n2", "b", strings.Repeat("y", 200)),
	}
	gw := &fakeGateway{}
	gw.respond = func(*domain.PromptCall) (any, error) {
		if len(gw.calls) == 2 {
			return nil, fmt.Errorf("%w: organize response is not valid JSON", domain.ErrValidation)
		}
		return domain.OrganizationResult{
			SuggestedFolders: []domain.SuggestedFolder{{Name: "A"}},
			Assignments:      []domain.Assignment{{NoteID: "n1", FolderNames: []string{"A"}}},
		}, nil
	}

	got, err := NewOrganizer(gw, nil).Organize(context.Background(), notes, nil, 10)
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domain.ErrValidation))
	assert.Contains(t, err.Error(), "batch 2 (1 of 2 notes left)")
}

func TestOrganize_CustomPrompt(t *testing.T) {
	prompts := promptMap{schema.Organize: "folders={{existing_folders}} notes={{notes}}"}
	gw := &fakeGateway{respond: func(*domain.PromptCall) (any, error) { return domain.NewOrganizationResult(), nil }}

	_, err := NewOrganizer(gw, prompts).Organize(context.Background(), []*domain.Note{newNote("n1", "t", "b")}, nil, 0)
	require.NoError(t, err)
	require.Len(t, gw.calls, 1)
	assert.Equal(t, "folders=None notes=[\n"+`{"id":"n1","title":"t","body":"b"}`+"\n]", gw.calls[0].User)
}

type promptMap map[string]string

func (p promptMap) Load(name string) (string, error) {
	if content, ok := p[name]; ok {
		return content, nil
	}
	return DefaultPrompts().Load(name)
}
