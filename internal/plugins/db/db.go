// Package db defines the storage backend contract shared by sqlitedb and supadb.
package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/noteweaver/noteweaver/internal/core"
	"github.com/noteweaver/noteweaver/internal/domain"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/samber/lo"
)

// Store is everything the CLI and REST server need from a backend.
// Single-record getters return nil, nil when the record does not exist; deletes and
// updates of missing records return an error wrapping domain.ErrNotFound.
type Store interface {
	core.Store
	core.NoteStore
	FolderWriter

	CreateNote(ctx context.Context, note *domain.Note) error
	DeleteNote(ctx context.Context, id string) error
	GetUnorganizedNotes(ctx context.Context) ([]*domain.Note, error)

	GetFolder(ctx context.Context, id string) (*domain.Folder, error)
	DeleteFolder(ctx context.Context, id string) error
	ApplyOrganization(ctx context.Context, result *domain.OrganizationResult) (*domain.ApplyResult, error)

	ListSessions(ctx context.Context) ([]*domain.ChatSession, error)
	CreateSession(ctx context.Context, title string) (*domain.ChatSession, error)
	DeleteSession(ctx context.Context, id string) error

	Close() error
}

// FolderWriter is the subset of Store that ApplyOrganization needs.
type FolderWriter interface {
	GetAllFolders(ctx context.Context) ([]*domain.Folder, error)
	CreateFolder(ctx context.Context, name string, color *string) (*domain.Folder, error)
	SetNoteFolders(ctx context.Context, noteID string, folderIDs []string) error
}

// ApplyOrganization creates the suggested folders that do not exist yet, matching names
// case-insensitively, then replaces the folders of every assigned note.
func ApplyOrganization(ctx context.Context, store FolderWriter, result *domain.OrganizationResult) (ret *domain.ApplyResult, err error) {
	ret = &domain.ApplyResult{FoldersCreated: []*domain.Folder{}}
	if result == nil {
		return
	}

	var folders []*domain.Folder
	if folders, err = store.GetAllFolders(ctx); err != nil {
		return nil, err
	}
	byKey := lo.KeyBy(folders, func(folder *domain.Folder) string { return domain.FolderKey(folder.Name) })

	for _, suggestion := range result.SuggestedFolders {
		key := domain.FolderKey(suggestion.Name)
		if key == "" {
			continue
		}
		if _, ok := byKey[key]; ok {
			continue
		}
		var created *domain.Folder
		if created, err = store.CreateFolder(ctx, strings.TrimSpace(suggestion.Name), suggestion.Color); err != nil {
			return nil, fmt.Errorf("creating folder %q: %w", suggestion.Name, err)
		}
		byKey[key] = created
		ret.FoldersCreated = append(ret.FoldersCreated, created)
	}

	for _, assignment := range result.Assignments {
		folderIDs := lo.Uniq(lo.FilterMap(assignment.FolderNames, func(name string, _ int) (string, bool) {
			folder, ok := byKey[domain.FolderKey(name)]
			if !ok {
				return "", false
			}
			return folder.ID, true
		}))
		if len(folderIDs) == 0 {
			debuglog.Debug(debuglog.Detailed, "note %s: no known folders in assignment, skipped", assignment.NoteID)
			continue
		}
		if err = store.SetNoteFolders(ctx, assignment.NoteID, folderIDs); err != nil {
			return nil, fmt.Errorf("assigning note %s: %w", assignment.NoteID, err)
		}
		ret.NotesAssigned++
	}
	return
}
