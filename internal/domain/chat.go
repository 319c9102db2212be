package domain

import (
	"time"

	"github.com/noteweaver/noteweaver/internal/chat"
)

const DefaultSessionTitle = "New Chat"

type ChatSession struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatMessage is one turn of a session. Messages are append-only.
type ChatMessage struct {
	ID                string         `json:"id"`
	SessionID         string         `json:"session_id"`
	Role              string         `json:"role"`
	Content           string         `json:"content"`
	Thinking          *ThinkingTrace `json:"thinking,omitempty"`
	ReferencedNoteIDs []string       `json:"referenced_note_ids"`
	CreatedAt         time.Time      `json:"created_at"`
}

func (m *ChatMessage) IsUser() bool {
	return m.Role == chat.ChatMessageRoleUser
}

type FolderRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type NoteRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ThinkingTrace records how an assistant answer was produced.
type ThinkingTrace struct {
	Step1Reasoning  string      `json:"step1_reasoning"`
	SelectedFolders []FolderRef `json:"selected_folders"`
	Step2Reasoning  string      `json:"step2_reasoning"`
	ExaminedNotes   []NoteRef   `json:"examined_notes"`
}

// PromptCall is a single structured request to a language model.
// Schema names the JSON schema the response must satisfy.
type PromptCall struct {
	Schema string
	System string
	User   string
}

// ChatOptions tunes vendor requests.
type ChatOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
	// SchemaName and SchemaContent identify the JSON schema the response must satisfy.
	SchemaName    string
	SchemaContent string
	// TransformedSchema is SchemaContent in the shape the vendor expects, see schema.Manager.
	TransformedSchema any
}
