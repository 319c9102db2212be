package db

import (
	"context"
	"fmt"
	"testing"

	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFolders struct {
	folders    []*domain.Folder
	assigned   map[string][]string
	missingIDs map[string]bool
}

func (f *fakeFolders) GetAllFolders(context.Context) ([]*domain.Folder, error) {
	return f.folders, nil
}

func (f *fakeFolders) CreateFolder(_ context.Context, name string, color *string) (*domain.Folder, error) {
	folder := &domain.Folder{ID: fmt.Sprintf("f%d", len(f.folders)+1), Name: name, Color: color}
	f.folders = append(f.folders, folder)
	return folder, nil
}

func (f *fakeFolders) SetNoteFolders(_ context.Context, noteID string, folderIDs []string) error {
	if f.missingIDs[noteID] {
		return fmt.Errorf("note %s: %w", noteID, domain.ErrNotFound)
	}
	f.assigned[noteID] = folderIDs
	return nil
}

func TestApplyOrganization(t *testing.T) {
	red := "#ff0000"
	store := &fakeFolders{
		folders:  []*domain.Folder{{ID: "f1", Name: "Work"}},
		assigned: map[string][]string{},
	}
	result := &domain.OrganizationResult{
		SuggestedFolders: []domain.SuggestedFolder{{Name: " Travel ", Color: &red}, {Name: "work"}, {Name: ""}},
		Assignments: []domain.Assignment{
			{NoteID: "n1", FolderNames: []string{"travel", "WORK", "Travel"}},
			{NoteID: "n2", FolderNames: []string{"Unknown"}},
		},
	}

	got, err := ApplyOrganization(context.Background(), store, result)
	require.NoError(t, err)

	require.Len(t, got.FoldersCreated, 1)
	assert.Equal(t, "Travel", got.FoldersCreated[0].Name)
	assert.Equal(t, &red, got.FoldersCreated[0].Color)
	assert.Equal(t, 1, got.NotesAssigned)
	assert.Equal(t, map[string][]string{"n1": {"f2", "f1"}}, store.assigned)
}

func TestApplyOrganization_NilResult(t *testing.T) {
	got, err := ApplyOrganization(context.Background(), &fakeFolders{}, nil)
	require.NoError(t, err)
	assert.Empty(t, got.FoldersCreated)
	assert.Zero(t, got.NotesAssigned)
}

func TestApplyOrganization_MissingNote(t *testing.T) {
	store := &fakeFolders{
		folders:    []*domain.Folder{{ID: "f1", Name: "Work"}},
		assigned:   map[string][]string{},
		missingIDs: map[string]bool{"gone": true},
	}
	result := &domain.OrganizationResult{Assignments: []domain.Assignment{{NoteID: "gone", FolderNames: []string{"Work"}}}}
	_, err := ApplyOrganization(context.Background(), store, result)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
