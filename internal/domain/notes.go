package domain

import (
	"strings"
	"time"
)

// Note is a free-text note owned by the user.
type Note struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Body          string    `json:"body"`
	FolderIDs     []string  `json:"folder_ids"`
	IsInspiration bool      `json:"is_inspiration"`
	IsAnalyzed    bool      `json:"is_analyzed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsOrganized reports whether the note belongs to at least one folder.
func (n *Note) IsOrganized() bool {
	return len(n.FolderIDs) > 0
}

// Folder is a named grouping of notes. A note may live in many folders.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color,omitempty"`
	NoteCount int       `json:"note_count"`
	CreatedAt time.Time `json:"created_at"`
}

// FolderKey normalizes a folder name for case-insensitive comparison.
func FolderKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NoteUpdate carries the mutable parts of a note. Nil fields are left untouched.
type NoteUpdate struct {
	Title         *string `json:"title,omitempty"`
	Body          *string `json:"body,omitempty"`
	IsInspiration *bool   `json:"is_inspiration,omitempty"`
	IsAnalyzed    *bool   `json:"is_analyzed,omitempty"`
}

// ApplyResult summarizes what applying an organization result changed.
type ApplyResult struct {
	FoldersCreated []*Folder `json:"folders_created"`
	NotesAssigned  int       `json:"notes_assigned"`
}
