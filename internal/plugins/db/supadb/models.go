package supadb

import (
	"time"

	"github.com/google/uuid"

	"github.com/noteweaver/noteweaver/internal/domain"
)

// Note is a row of the notes table.
type Note struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	IsInspiration bool      `json:"is_inspiration"`
	IsAnalyzed    bool      `json:"is_analyzed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (o *Note) toDomain() *domain.Note {
	return &domain.Note{
		ID:            o.ID.String(),
		Title:         o.Title,
		Body:          o.Body,
		FolderIDs:     []string{},
		IsInspiration: o.IsInspiration,
		IsAnalyzed:    o.IsAnalyzed,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// Folder is a row of the folders table.
type Folder struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

func (o *Folder) toDomain() *domain.Folder {
	return &domain.Folder{ID: o.ID.String(), Name: o.Name, Color: o.Color, CreatedAt: o.CreatedAt}
}

// NoteFolder is a row of the note_folders join table.
type NoteFolder struct {
	NoteID   uuid.UUID `json:"note_id"`
	FolderID uuid.UUID `json:"folder_id"`
	Position int       `json:"position"`
}

// Session is a row of the chat_sessions table.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Session) toDomain() *domain.ChatSession {
	return &domain.ChatSession{ID: o.ID.String(), Title: o.Title, CreatedAt: o.CreatedAt, UpdatedAt: o.UpdatedAt}
}

// Message is a row of the chat_messages table. Thinking and the referenced ids are jsonb columns.
type Message struct {
	ID                uuid.UUID             `json:"id"`
	SessionID         uuid.UUID             `json:"session_id"`
	Role              string                `json:"role"`
	Content           string                `json:"content"`
	Thinking          *domain.ThinkingTrace `json:"thinking"`
	ReferencedNoteIDs []string              `json:"referenced_note_ids"`
	CreatedAt         time.Time             `json:"created_at"`
}

func (o *Message) toDomain() *domain.ChatMessage {
	referenced := o.ReferencedNoteIDs
	if referenced == nil {
		referenced = []string{}
	}
	return &domain.ChatMessage{
		ID:                o.ID.String(),
		SessionID:         o.SessionID.String(),
		Role:              o.Role,
		Content:           o.Content,
		Thinking:          o.Thinking,
		ReferencedNoteIDs: referenced,
		CreatedAt:         o.CreatedAt,
	}
}
