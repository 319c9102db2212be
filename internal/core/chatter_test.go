package core

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/i18n"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepGateway answers the folder selection and answer steps with fixed replies.
func stepGateway(selection domain.FolderSelection, answer domain.Answer) *fakeGateway {
	return &fakeGateway{respond: func(call *domain.PromptCall) (any, error) {
		switch call.Schema {
		case schema.SelectFolders:
			return selection, nil
		case schema.Answer:
			return answer, nil
		}
		return nil, errors.New("unexpected schema " + call.Schema)
	}}
}

func TestAnswer_EndToEnd(t *testing.T) {
	lisbon := newNote("n1", "Lisbon", "Best pasteis at Belem")
	standup := newNote("n2", "Standup", "Ship the release on Friday")
	store := newMemStore().addSession("s1").
		addFolder("f1", "Travel", lisbon).
		addFolder("f2", "Work", standup)
	store.messages["s1"] = []*domain.ChatMessage{
		{ID: "old1", SessionID: "s1", Role: chat.ChatMessageRoleUser, Content: "What trips did I take?"},
		{ID: "old2", SessionID: "s1", Role: chat.ChatMessageRoleAssistant, Content: "You went to Lisbon."},
	}

	gw := stepGateway(
		domain.FolderSelection{Reasoning: "pastries are travel", SelectedFolderIDs: []string{"f1"}},
		domain.Answer{Reasoning: "n1 says Belem", Answer: "At Belem.", ReferencedNoteIDs: []string{"n1"}},
	)

	got, err := NewChatter(store, gw, nil, 0).Answer(context.Background(), "s1", "Where were the pastries?")
	require.NoError(t, err)

	selectCalls := gw.callsFor(schema.SelectFolders)
	require.Len(t, selectCalls, 1)
	assert.Contains(t, selectCalls[0].User, "user: What trips did I take?\nassistant: You went to Lisbon.\n")

	answerCalls := gw.callsFor(schema.Answer)
	require.Len(t, answerCalls, 1)
	assert.Contains(t, answerCalls[0].User, RenderNote(lisbon))
	assert.NotContains(t, answerCalls[0].User, `"id":"n2"`)

	wantThinking := &domain.ThinkingTrace{
		Step1Reasoning:  "pastries are travel",
		SelectedFolders: []domain.FolderRef{{ID: "f1", Name: "Travel"}},
		Step2Reasoning:  "n1 says Belem",
		ExaminedNotes:   []domain.NoteRef{{ID: "n1", Title: "Lisbon"}},
	}
	if diff := cmp.Diff(wantThinking, got.Thinking); diff != "" {
		t.Errorf("thinking mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "At Belem.", got.Content)
	assert.Equal(t, []string{"n1"}, got.ReferencedNoteIDs)

	stored := store.messages["s1"]
	require.Len(t, stored, 4)
	assert.Equal(t, chat.ChatMessageRoleUser, stored[2].Role)
	assert.Equal(t, "Where were the pastries?", stored[2].Content)
	assert.Equal(t, []string{}, stored[2].ReferencedNoteIDs)
	assert.Nil(t, stored[2].Thinking)
	assert.Same(t, got, stored[3])
	assert.Equal(t, chat.ChatMessageRoleAssistant, got.Role)
	assert.NotEmpty(t, got.ID)
}

func TestAnswer_BootstrapWithoutNotes(t *testing.T) {
	store := newMemStore().addSession("s1")
	gw := &fakeGateway{}

	got, err := NewChatter(store, gw, nil, 0).Answer(context.Background(), "s1", "Anything here?")
	require.NoError(t, err)

	assert.Empty(t, gw.calls)
	assert.Equal(t, i18n.T("chat_bootstrap_message"), got.Content)
	assert.NotNil(t, got.ReferencedNoteIDs)
	assert.Empty(t, got.ReferencedNoteIDs)
	assert.Len(t, store.messages["s1"], 2)
}

func TestAnswer_NotesWithoutFoldersSkipSelection(t *testing.T) {
	store := newMemStore().addSession("s1").addNotes(newNote("n1", "Idea", "A bike shed"), newNote("n2", "Todo", "Paint it"))
	gw := stepGateway(domain.FolderSelection{}, domain.Answer{Answer: "Paint the bike shed.", ReferencedNoteIDs: []string{"n1", "n2"}})

	got, err := NewChatter(store, gw, nil, 0).Answer(context.Background(), "s1", "What should I do?")
	require.NoError(t, err)

	assert.Empty(t, gw.callsFor(schema.SelectFolders))
	require.Len(t, gw.callsFor(schema.Answer), 1)
	assert.Len(t, got.Thinking.ExaminedNotes, 2)
	assert.Empty(t, got.Thinking.SelectedFolders)
}

func TestAnswer_EmptySelectionSearchesAllNotes(t *testing.T) {
	store := newMemStore().addSession("s1").
		addFolder("f1", "Travel", newNote("n1", "Lisbon", "pasteis")).
		addNotes(newNote("n2", "Loose", "not in any folder"))
	gw := stepGateway(
		domain.FolderSelection{Reasoning: "nothing fits", SelectedFolderIDs: []string{"unknown"}},
		domain.Answer{Answer: "Found it.", ReferencedNoteIDs: []string{"n2"}},
	)

	got, err := NewChatter(store, gw, nil, 0).Answer(context.Background(), "s1", "Where is the loose note?")
	require.NoError(t, err)

	answerCalls := gw.callsFor(schema.Answer)
	require.Len(t, answerCalls, 1)
	assert.Contains(t, answerCalls[0].User, `"id":"n1"`)
	assert.Contains(t, answerCalls[0].User, `"id":"n2"`)
	assert.Empty(t, got.Thinking.SelectedFolders)
	assert.Len(t, got.Thinking.ExaminedNotes, 2)
}

func TestAnswer_SelectedFoldersWithoutNotes(t *testing.T) {
	store := newMemStore().addSession("s1").
		addFolder("f1", "Empty").
		addFolder("f2", "Travel", newNote("n1", "Lisbon", "pasteis"))
	gw := stepGateway(domain.FolderSelection{Reasoning: "empty one", SelectedFolderIDs: []string{"f1"}}, domain.Answer{})

	got, err := NewChatter(store, gw, nil, 0).Answer(context.Background(), "s1", "What is in Empty?")
	require.NoError(t, err)

	assert.Len(t, gw.calls, 1)
	assert.Equal(t, i18n.T("chat_nothing_in_folders"), got.Content)
	assert.Equal(t, "empty one", got.Thinking.Step1Reasoning)
	assert.Equal(t, []domain.FolderRef{{ID: "f1", Name: "Empty"}}, got.Thinking.SelectedFolders)
	assert.Empty(t, got.Thinking.ExaminedNotes)
	assert.Len(t, store.messages["s1"], 2)
}

func TestAnswer_FoldersWithoutAnyNotes(t *testing.T) {
	store := newMemStore().addSession("s1").addFolder("f1", "Travel").addFolder("f2", "Work")
	gw := stepGateway(domain.FolderSelection{Reasoning: "nothing fits", SelectedFolderIDs: []string{}}, domain.Answer{})

	got, err := NewChatter(store, gw, nil, 0).Answer(context.Background(), "s1", "Where did I park?")
	require.NoError(t, err)

	assert.Len(t, gw.calls, 1)
	assert.Empty(t, gw.callsFor(schema.Answer))
	assert.Equal(t, i18n.T("chat_no_notes_yet"), got.Content)
	assert.NotEqual(t, i18n.T("chat_nothing_in_folders"), got.Content)
	assert.Equal(t, "nothing fits", got.Thinking.Step1Reasoning)
	assert.Empty(t, got.Thinking.SelectedFolders)
	assert.Len(t, store.messages["s1"], 2)
}

func TestAnswer_MultipleFoldersUnionNotes(t *testing.T) {
	shared := newNote("n1", "Lisbon trip budget", "spent 800")
	store := newMemStore().addSession("s1").
		addFolder("f1", "Travel", shared, newNote("n2", "Porto", "francesinha")).
		addFolder("f2", "Finance", shared)
	gw := stepGateway(
		domain.FolderSelection{SelectedFolderIDs: []string{"f2", "f1"}},
		domain.Answer{Answer: "800.", ReferencedNoteIDs: []string{"n1"}},
	)

	got, err := NewChatter(store, gw, nil, 0).Answer(context.Background(), "s1", "How much did Lisbon cost?")
	require.NoError(t, err)

	want := []domain.NoteRef{{ID: "n1", Title: "Lisbon trip budget"}, {ID: "n2", Title: "Porto"}}
	assert.Equal(t, want, got.Thinking.ExaminedNotes)
	assert.Equal(t, []domain.FolderRef{{ID: "f2", Name: "Finance"}, {ID: "f1", Name: "Travel"}}, got.Thinking.SelectedFolders)
}

func TestAnswer_Errors(t *testing.T) {
	t.Run("missing session id", func(t *testing.T) {
		_, err := NewChatter(newMemStore(), &fakeGateway{}, nil, 0).Answer(context.Background(), " ", "q")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("missing question", func(t *testing.T) {
		_, err := NewChatter(newMemStore().addSession("s1"), &fakeGateway{}, nil, 0).Answer(context.Background(), "s1", "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown session", func(t *testing.T) {
		store := newMemStore()
		gw := &fakeGateway{}
		_, err := NewChatter(store, gw, nil, 0).Answer(context.Background(), "nope", "q")
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Empty(t, gw.calls)
		assert.Empty(t, store.messages)
	})

	t.Run("selection failure persists nothing", func(t *testing.T) {
		store := newMemStore().addSession("s1").addFolder("f1", "Travel", newNote("n1", "t", "b"))
		gw := &fakeGateway{respond: func(*domain.PromptCall) (any, error) {
			return nil, domain.ErrValidation
		}}
		_, err := NewChatter(store, gw, nil, 0).Answer(context.Background(), "s1", "q")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.ErrorContains(t, err, "selecting folders")
		assert.Empty(t, store.messages["s1"])
	})

	t.Run("answer failure persists nothing", func(t *testing.T) {
		store := newMemStore().addSession("s1").addFolder("f1", "Travel", newNote("n1", "t", "b"))
		gw := &fakeGateway{respond: func(call *domain.PromptCall) (any, error) {
			if call.Schema == schema.Answer {
				return nil, domain.ErrValidation
			}
			return domain.FolderSelection{SelectedFolderIDs: []string{"f1"}}, nil
		}}
		_, err := NewChatter(store, gw, nil, 0).Answer(context.Background(), "s1", "q")
		assert.ErrorContains(t, err, "synthesizing answer")
		assert.Empty(t, store.messages["s1"])
	})

	t.Run("assistant append failure keeps user message", func(t *testing.T) {
		store := newMemStore().addSession("s1").addFolder("f1", "Travel", newNote("n1", "t", "b"))
		store.appendErr = func(msg *domain.ChatMessage) error {
			if msg.Role == chat.ChatMessageRoleAssistant {
				return errors.New("disk full")
			}
			return nil
		}
		gw := stepGateway(domain.FolderSelection{SelectedFolderIDs: []string{"f1"}}, domain.Answer{Answer: "a"})
		_, err := NewChatter(store, gw, nil, 0).Answer(context.Background(), "s1", "q")
		assert.ErrorContains(t, err, "saving assistant message")
		require.Len(t, store.messages["s1"], 1)
		assert.True(t, store.messages["s1"][0].IsUser())
	})
}
