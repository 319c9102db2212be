// Package core holds the note organization and question answering logic.
// It talks to the language model only through Gateway and to storage only through Store.
package core

import (
	"context"

	"github.com/noteweaver/noteweaver/internal/domain"
)

// Gateway sends one structured prompt to a language model.
// On success out was decoded from JSON that matched the schema named by the call;
// otherwise the error wraps domain.ErrValidation or the transport failure.
type Gateway interface {
	Invoke(ctx context.Context, call *domain.PromptCall, out any) error
}

// Store is the storage the chat pipeline reads and appends to.
// Single-record getters return nil, nil when the record does not exist.
type Store interface {
	GetAllNotes(ctx context.Context) ([]*domain.Note, error)
	GetNotesInFolder(ctx context.Context, folderID string) ([]*domain.Note, error)
	GetAllFolders(ctx context.Context) ([]*domain.Folder, error)
	GetSession(ctx context.Context, id string) (*domain.ChatSession, error)
	// GetMessages returns the messages of a session oldest first.
	GetMessages(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error)
	// AppendMessage stores msg, filling in its ID and CreatedAt.
	AppendMessage(ctx context.Context, msg *domain.ChatMessage) error
}

// NoteStore is what the classifier needs to read and flag a note.
type NoteStore interface {
	GetNote(ctx context.Context, id string) (*domain.Note, error)
	UpdateNote(ctx context.Context, id string, update *domain.NoteUpdate) (*domain.Note, error)
}
