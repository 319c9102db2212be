package supadb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient points a Client at a fake PostgREST server that answers each table with rows[table].
func newTestClient(t *testing.T, rows map[string]any) (*Client, *[]*http.Request) {
	t.Helper()
	var requests []*http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, r)
		table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
		w.Header().Set("Content-Type", "application/json")
		body, ok := rows[table]
		if !ok {
			body = []any{}
		}
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, "service-role-key")
	require.NoError(t, err)
	return client, &requests
}

func TestGetNotesInFolder(t *testing.T) {
	noteID, folderID := uuid.New(), uuid.New()
	client, requests := newTestClient(t, map[string]any{
		tableNoteFolders: []NoteFolder{{NoteID: noteID, FolderID: folderID}},
		tableNotes:       []Note{{ID: noteID, Title: "Lisbon", Body: "pasteis"}},
	})

	notes, err := client.GetNotesInFolder(context.Background(), folderID.String())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, noteID.String(), notes[0].ID)
	assert.Equal(t, []string{folderID.String()}, notes[0].FolderIDs)

	require.NotEmpty(t, *requests)
	assert.Equal(t, "eq."+folderID.String(), (*requests)[0].URL.Query().Get("folder_id"))
	assert.Equal(t, "service-role-key", (*requests)[0].Header.Get("apikey"))
}

func TestGetAllFoldersCountsNotes(t *testing.T) {
	travel, work := uuid.New(), uuid.New()
	client, _ := newTestClient(t, map[string]any{
		tableFolders: []Folder{{ID: travel, Name: "Travel"}, {ID: work, Name: "Work"}},
		tableNoteFolders: []NoteFolder{
			{NoteID: uuid.New(), FolderID: travel},
			{NoteID: uuid.New(), FolderID: travel},
		},
	})

	folders, err := client.GetAllFolders(context.Background())
	require.NoError(t, err)
	require.Len(t, folders, 2)
	assert.Equal(t, 2, folders[0].NoteCount)
	assert.Equal(t, 0, folders[1].NoteCount)
}

func TestMissingRecords(t *testing.T) {
	client, requests := newTestClient(t, map[string]any{})
	ctx := context.Background()

	session, err := client.GetSession(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, session)

	session, err = client.GetSession(ctx, "not-a-uuid")
	require.NoError(t, err)
	assert.Nil(t, session)

	err = client.AppendMessage(ctx, &domain.ChatMessage{SessionID: uuid.NewString(), Role: "user", Content: "hi"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, client.DeleteFolder(ctx, uuid.NewString()), domain.ErrNotFound)
	assert.ErrorIs(t, client.DeleteNote(ctx, "not-a-uuid"), domain.ErrNotFound)

	for _, r := range *requests {
		assert.NotEqual(t, "/rest/v1/"+tableMessages, r.URL.Path, "no message is written for a missing session")
	}
}

func TestGetMessagesDecodesThinking(t *testing.T) {
	sessionID := uuid.New()
	thinking := &domain.ThinkingTrace{
		Step1Reasoning:  "travel",
		SelectedFolders: []domain.FolderRef{{ID: "f1", Name: "Travel"}},
		ExaminedNotes:   []domain.NoteRef{{ID: "n1", Title: "Lisbon"}},
	}
	client, _ := newTestClient(t, map[string]any{
		tableMessages: []Message{
			{ID: uuid.New(), SessionID: sessionID, Role: "user", Content: "Where?"},
			{ID: uuid.New(), SessionID: sessionID, Role: "assistant", Content: "Lisbon.", Thinking: thinking, ReferencedNoteIDs: []string{"n1"}},
		},
	})

	msgs, err := client.GetMessages(context.Background(), sessionID.String())
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, []string{}, msgs[0].ReferencedNoteIDs)
	assert.Equal(t, thinking, msgs[1].Thinking)
}

func TestPostgRESTErrorsAreWrapped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"code":"XX000","message":"database unavailable"}`))
	}))
	t.Cleanup(server.Close)
	client, err := NewClient(server.URL, "service-role-key")
	require.NoError(t, err)
	ctx := context.Background()

	_, err = client.GetAllFolders(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "querying folders")
	assert.Contains(t, err.Error(), "database unavailable")

	_, err = client.CreateSession(ctx, "trip")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserting chat session")

	err = client.Ping(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pinging supabase")
}
