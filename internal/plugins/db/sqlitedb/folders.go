package sqlitedb

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins/db"
)

const folderQuery = `SELECT f.id, f.name, f.color, f.created_at, COUNT(nf.note_id)
	FROM folders f LEFT JOIN note_folders nf ON nf.folder_id = f.id`

func scanFolder(row interface{ Scan(...any) error }) (*domain.Folder, error) {
	folder := &domain.Folder{}
	var color sql.NullString
	if err := row.Scan(&folder.ID, &folder.Name, &color, &folder.CreatedAt, &folder.NoteCount); err != nil {
		return nil, err
	}
	if color.Valid {
		folder.Color = &color.String
	}
	return folder, nil
}

// GetAllFolders returns every folder with its note count, oldest first.
func (s *Store) GetAllFolders(ctx context.Context) ([]*domain.Folder, error) {
	rows, err := s.db.QueryContext(ctx, folderQuery+` GROUP BY f.id ORDER BY f.created_at, f.rowid`)
	if err != nil {
		return nil, errors.Wrap(err, "querying folders")
	}
	defer rows.Close()

	ret := []*domain.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning folder row")
		}
		ret = append(ret, folder)
	}
	return ret, errors.Wrap(rows.Err(), "iterating folder rows")
}

func (s *Store) GetFolder(ctx context.Context, id string) (*domain.Folder, error) {
	folder, err := scanFolder(s.db.QueryRowContext(ctx, folderQuery+` WHERE f.id = ? GROUP BY f.id`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying folder")
	}
	return folder, nil
}

func (s *Store) CreateFolder(ctx context.Context, name string, color *string) (*domain.Folder, error) {
	folder := &domain.Folder{ID: newID(), Name: name, Color: color, CreatedAt: s.now()}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO folders (id, name, color, created_at) VALUES (?, ?, ?, ?)`,
		folder.ID, folder.Name, folder.Color, folder.CreatedAt); err != nil {
		return nil, errors.Wrap(err, "inserting folder")
	}
	return folder, nil
}

// DeleteFolder removes the folder; its notes stay and lose the membership.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "deleting folder")
	}
	return checkAffected(res, "folder", id)
}

func (s *Store) ApplyOrganization(ctx context.Context, result *domain.OrganizationResult) (*domain.ApplyResult, error) {
	return db.ApplyOrganization(ctx, s, result)
}
