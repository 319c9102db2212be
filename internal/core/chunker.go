package core

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"

	"github.com/noteweaver/noteweaver/internal/domain"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
)

type promptNote struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// RenderNote is the canonical form of a note in prompts and token estimates:
// compact JSON with id, title and body.
func RenderNote(note *domain.Note) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encoding a struct of strings cannot fail.
	_ = enc.Encode(promptNote{ID: note.ID, Title: note.Title, Body: note.Body})
	return strings.TrimSuffix(buf.String(), "\n")
}

// renderNoteList renders notes as a JSON array with one RenderNote per line.
func renderNoteList(notes []*domain.Note) string {
	if len(notes) == 0 {
		return "[]"
	}
	rendered := make([]string, len(notes))
	for i, note := range notes {
		rendered[i] = RenderNote(note)
	}
	return "[\n" + strings.Join(rendered, ",\n") + "\n]"
}

// noteListEntry is a note as it appears inside renderNoteList, separator included.
func noteListEntry(note *domain.Note) string {
	return RenderNote(note) + ",\n"
}

// ChunkNotes splits notes, in order, into chunks whose estimated size stays within maxTokens.
// Each note is charged at its cost as an entry of the prompt's note list.
// A note larger than maxTokens on its own gets a chunk of its own.
func ChunkNotes(notes []*domain.Note, maxTokens int, estimator Estimator) (ret [][]*domain.Note) {
	if estimator == nil {
		estimator = DefaultEstimator
	}
	for rest := notes; len(rest) > 0; {
		chunk := nextChunk(rest, maxTokens, estimator)
		ret = append(ret, chunk)
		rest = rest[len(chunk):]
	}

	debuglog.Debug(debuglog.Basic, "split %d notes into %d chunks of at most %d tokens", len(notes), len(ret), maxTokens)
	return
}

// nextChunk returns the leading notes that make up the first chunk. It holds at least one note
// when notes is not empty.
func nextChunk(notes []*domain.Note, maxTokens int, estimator Estimator) []*domain.Note {
	used := 0
	for i, note := range notes {
		tokens := estimator.Estimate(noteListEntry(note))
		if i > 0 && used+tokens > maxTokens {
			return slices.Clip(notes[:i])
		}
		if tokens > maxTokens {
			debuglog.Debug(debuglog.Basic, "note %s needs %d tokens, over the %d token chunk budget", note.ID, tokens, maxTokens)
		}
		used += tokens
	}
	return slices.Clip(notes)
}
