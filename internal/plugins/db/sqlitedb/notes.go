package sqlitedb

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pkg/errors"

	"github.com/noteweaver/noteweaver/internal/domain"
)

const noteColumns = `id, title, body, is_inspiration, is_analyzed, created_at, updated_at`

func scanNote(row interface{ Scan(...any) error }) (*domain.Note, error) {
	note := &domain.Note{FolderIDs: []string{}}
	err := row.Scan(&note.ID, &note.Title, &note.Body, &note.IsInspiration, &note.IsAnalyzed, &note.CreatedAt, &note.UpdatedAt)
	return note, err
}

// queryNotes runs a notes query and attaches folder ids to the results.
func (s *Store) queryNotes(ctx context.Context, query string, args ...any) ([]*domain.Note, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}
	defer rows.Close()

	ret := []*domain.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning note row")
		}
		ret = append(ret, note)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating note rows")
	}
	if err = s.attachFolders(ctx, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func (s *Store) attachFolders(ctx context.Context, notes []*domain.Note) error {
	if len(notes) == 0 {
		return nil
	}
	byID := make(map[string]*domain.Note, len(notes))
	for _, note := range notes {
		byID[note.ID] = note
	}

	rows, err := s.db.QueryContext(ctx, `SELECT note_id, folder_id FROM note_folders ORDER BY note_id, position`)
	if err != nil {
		return errors.Wrap(err, "querying note folders")
	}
	defer rows.Close()
	for rows.Next() {
		var noteID, folderID string
		if err = rows.Scan(&noteID, &folderID); err != nil {
			return errors.Wrap(err, "scanning note folder row")
		}
		if note, ok := byID[noteID]; ok {
			note.FolderIDs = append(note.FolderIDs, folderID)
		}
	}
	return errors.Wrap(rows.Err(), "iterating note folder rows")
}

func (s *Store) GetAllNotes(ctx context.Context) ([]*domain.Note, error) {
	return s.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY created_at, rowid`)
}

// GetUnorganizedNotes returns notes that belong to no folder.
func (s *Store) GetUnorganizedNotes(ctx context.Context) ([]*domain.Note, error) {
	return s.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes
		WHERE id NOT IN (SELECT note_id FROM note_folders)
		ORDER BY created_at, rowid`)
}

func (s *Store) GetNotesInFolder(ctx context.Context, folderID string) ([]*domain.Note, error) {
	return s.queryNotes(ctx, `SELECT n.id, n.title, n.body, n.is_inspiration, n.is_analyzed, n.created_at, n.updated_at
		FROM notes n JOIN note_folders nf ON nf.note_id = n.id
		WHERE nf.folder_id = ?
		ORDER BY n.created_at, n.rowid`, folderID)
}

func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	notes, err := s.queryNotes(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(notes) == 0 {
		return nil, nil
	}
	return notes[0], nil
}

// CreateNote assigns the id and timestamps, then inserts the note with its folders.
func (s *Store) CreateNote(ctx context.Context, note *domain.Note) (err error) {
	now := s.now()
	note.ID = newID()
	note.CreatedAt, note.UpdatedAt = now, now
	if note.FolderIDs == nil {
		note.FolderIDs = []string{}
	}

	var tx *sql.Tx
	if tx, err = s.db.BeginTx(ctx, nil); err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `INSERT INTO notes (`+noteColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		note.ID, note.Title, note.Body, note.IsInspiration, note.IsAnalyzed, note.CreatedAt, note.UpdatedAt); err != nil {
		return errors.Wrap(err, "inserting note")
	}
	if err = insertNoteFolders(ctx, tx, note.ID, note.FolderIDs); err != nil {
		return
	}
	return errors.Wrap(tx.Commit(), "committing note")
}

// UpdateNote applies the non-nil fields of update and returns the stored note.
func (s *Store) UpdateNote(ctx context.Context, id string, update *domain.NoteUpdate) (*domain.Note, error) {
	var (
		sets []string
		args []any
	)
	if update.Title != nil {
		sets, args = append(sets, "title = ?"), append(args, *update.Title)
	}
	if update.Body != nil {
		sets, args = append(sets, "body = ?"), append(args, *update.Body)
	}
	if update.IsInspiration != nil {
		sets, args = append(sets, "is_inspiration = ?"), append(args, *update.IsInspiration)
	}
	if update.IsAnalyzed != nil {
		sets, args = append(sets, "is_analyzed = ?"), append(args, *update.IsAnalyzed)
	}
	sets, args = append(sets, "updated_at = ?"), append(args, s.now(), id)

	res, err := s.db.ExecContext(ctx, `UPDATE notes SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return nil, errors.Wrap(err, "updating note")
	}
	if err = checkAffected(res, "note", id); err != nil {
		return nil, err
	}
	return s.GetNote(ctx, id)
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "deleting note")
	}
	return checkAffected(res, "note", id)
}

// SetNoteFolders replaces the folders of a note.
func (s *Store) SetNoteFolders(ctx context.Context, noteID string, folderIDs []string) (err error) {
	var tx *sql.Tx
	if tx, err = s.db.BeginTx(ctx, nil); err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes WHERE id = ?`, noteID).Scan(&exists); err != nil {
		return errors.Wrap(err, "looking up note")
	}
	if exists == 0 {
		return errors.Wrapf(domain.ErrNotFound, "note %s", noteID)
	}
	if _, err = tx.ExecContext(ctx, `DELETE FROM note_folders WHERE note_id = ?`, noteID); err != nil {
		return errors.Wrap(err, "clearing note folders")
	}
	if err = insertNoteFolders(ctx, tx, noteID, folderIDs); err != nil {
		return
	}
	if _, err = tx.ExecContext(ctx, `UPDATE notes SET updated_at = ? WHERE id = ?`, s.now(), noteID); err != nil {
		return errors.Wrap(err, "touching note")
	}
	return errors.Wrap(tx.Commit(), "committing note folders")
}

func insertNoteFolders(ctx context.Context, tx *sql.Tx, noteID string, folderIDs []string) error {
	for i, folderID := range folderIDs {
		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO note_folders (note_id, folder_id, position) VALUES (?, ?, ?)`,
			noteID, folderID, i); err != nil {
			if strings.Contains(err.Error(), "FOREIGN KEY") {
				return errors.Wrapf(domain.ErrNotFound, "folder %s", folderID)
			}
			return errors.Wrap(err, "inserting note folder")
		}
	}
	return nil
}
