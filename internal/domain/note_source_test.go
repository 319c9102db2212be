package domain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoteSourceToNote(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "trip.md")
	require.NoError(t, os.WriteFile(path, []byte("# Lisbon trip\n\nBook the tram tour.\nPack sunscreen.\n"), 0o644))

	src, err := NewNoteSource(path)
	require.NoError(t, err)

	note, err := src.ToNote()
	require.NoError(t, err)
	assert.Equal(t, "Lisbon trip", note.Title)
	assert.Equal(t, "Book the tram tour.\nPack sunscreen.", note.Body)
}

func TestNoteSourceRejectsBinary(t *testing.T) {
	src := &NoteSource{Content: []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}}
	_, err := src.ToNote()
	assert.Error(t, err)
}

func TestFolderKey(t *testing.T) {
	assert.Equal(t, "travel", FolderKey("  Travel "))
	assert.Equal(t, FolderKey("WORK"), FolderKey("work"))
}
