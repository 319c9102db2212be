package supadb

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	postgrest "github.com/supabase-community/postgrest-go"

	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins/db"
)

var oldestFirst = &postgrest.OrderOpts{Ascending: true}

func (c *Client) GetAllNotes(_ context.Context) ([]*domain.Note, error) {
	var rows []Note
	if _, err := c.client.From(tableNotes).Select("*", "", false).Order("created_at", oldestFirst).ExecuteTo(&rows); err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}
	return c.withFolders(rows)
}

// GetUnorganizedNotes returns notes that belong to no folder.
func (c *Client) GetUnorganizedNotes(ctx context.Context) ([]*domain.Note, error) {
	notes, err := c.GetAllNotes(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(notes, func(note *domain.Note, _ int) bool { return !note.IsOrganized() }), nil
}

func (c *Client) GetNotesInFolder(_ context.Context, folderID string) ([]*domain.Note, error) {
	var links []NoteFolder
	if _, err := c.client.From(tableNoteFolders).Select("*", "", false).Eq("folder_id", folderID).ExecuteTo(&links); err != nil {
		return nil, errors.Wrap(err, "querying folder notes")
	}
	if len(links) == 0 {
		return []*domain.Note{}, nil
	}
	ids := lo.Map(links, func(link NoteFolder, _ int) string { return link.NoteID.String() })

	var rows []Note
	if _, err := c.client.From(tableNotes).Select("*", "", false).In("id", ids).Order("created_at", oldestFirst).ExecuteTo(&rows); err != nil {
		return nil, errors.Wrap(err, "querying notes in folder")
	}
	return c.withFolders(rows)
}

func (c *Client) GetNote(_ context.Context, id string) (*domain.Note, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var rows []Note
	if _, err := c.client.From(tableNotes).Select("*", "", false).Eq("id", id).Limit(1, "").ExecuteTo(&rows); err != nil {
		return nil, errors.Wrap(err, "querying note")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	notes, err := c.withFolders(rows)
	if err != nil {
		return nil, err
	}
	return notes[0], nil
}

func (c *Client) CreateNote(_ context.Context, note *domain.Note) error {
	now := c.now()
	row := Note{ID: uuid.New(), Title: note.Title, Body: note.Body, IsInspiration: note.IsInspiration, IsAnalyzed: note.IsAnalyzed, CreatedAt: now, UpdatedAt: now}
	if _, _, err := c.client.From(tableNotes).Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return errors.Wrap(err, "inserting note")
	}
	note.ID, note.CreatedAt, note.UpdatedAt = row.ID.String(), now, now
	if note.FolderIDs == nil {
		note.FolderIDs = []string{}
	}
	return c.insertLinks(note.ID, note.FolderIDs)
}

func (c *Client) UpdateNote(_ context.Context, id string, update *domain.NoteUpdate) (*domain.Note, error) {
	payload := map[string]any{"updated_at": c.now()}
	if update.Title != nil {
		payload["title"] = *update.Title
	}
	if update.Body != nil {
		payload["body"] = *update.Body
	}
	if update.IsInspiration != nil {
		payload["is_inspiration"] = *update.IsInspiration
	}
	if update.IsAnalyzed != nil {
		payload["is_analyzed"] = *update.IsAnalyzed
	}

	var rows []Note
	if _, err := c.client.From(tableNotes).Update(payload, "representation", "").Eq("id", id).ExecuteTo(&rows); err != nil {
		return nil, errors.Wrap(err, "updating note")
	}
	if len(rows) == 0 {
		return nil, notFound("note", id)
	}
	notes, err := c.withFolders(rows)
	if err != nil {
		return nil, err
	}
	return notes[0], nil
}

func (c *Client) DeleteNote(_ context.Context, id string) error {
	return c.deleteByID(tableNotes, "note", id)
}

// SetNoteFolders replaces the folders of a note. PostgREST has no transactions, so a
// failure after the delete leaves the note unorganized.
func (c *Client) SetNoteFolders(ctx context.Context, noteID string, folderIDs []string) error {
	note, err := c.GetNote(ctx, noteID)
	if err != nil {
		return err
	}
	if note == nil {
		return notFound("note", noteID)
	}
	if _, _, err = c.client.From(tableNoteFolders).Delete("minimal", "").Eq("note_id", noteID).Execute(); err != nil {
		return errors.Wrap(err, "clearing note folders")
	}
	return c.insertLinks(noteID, folderIDs)
}

func (c *Client) insertLinks(noteID string, folderIDs []string) error {
	if len(folderIDs) == 0 {
		return nil
	}
	noteUUID, err := uuid.Parse(noteID)
	if err != nil {
		return notFound("note", noteID)
	}
	links := make([]NoteFolder, 0, len(folderIDs))
	for i, folderID := range lo.Uniq(folderIDs) {
		folderUUID, err := uuid.Parse(folderID)
		if err != nil {
			return notFound("folder", folderID)
		}
		links = append(links, NoteFolder{NoteID: noteUUID, FolderID: folderUUID, Position: i})
	}
	_, _, err = c.client.From(tableNoteFolders).Insert(links, false, "", "minimal", "").Execute()
	return errors.Wrap(err, "inserting note folders")
}

// withFolders converts rows and fills in their folder ids.
func (c *Client) withFolders(rows []Note) ([]*domain.Note, error) {
	ret := lo.Map(rows, func(row Note, _ int) *domain.Note { return row.toDomain() })
	if len(ret) == 0 {
		return ret, nil
	}

	var links []NoteFolder
	query := c.client.From(tableNoteFolders).Select("*", "", false)
	if len(ret) == 1 {
		query = query.Eq("note_id", ret[0].ID)
	}
	if _, err := query.Order("position", oldestFirst).ExecuteTo(&links); err != nil {
		return nil, errors.Wrap(err, "querying note folders")
	}
	byNote := lo.GroupBy(links, func(link NoteFolder) string { return link.NoteID.String() })
	for _, note := range ret {
		for _, link := range byNote[note.ID] {
			note.FolderIDs = append(note.FolderIDs, link.FolderID.String())
		}
	}
	return ret, nil
}

// GetAllFolders returns every folder with its note count, oldest first.
func (c *Client) GetAllFolders(_ context.Context) ([]*domain.Folder, error) {
	var rows []Folder
	if _, err := c.client.From(tableFolders).Select("*", "", false).Order("created_at", oldestFirst).ExecuteTo(&rows); err != nil {
		return nil, errors.Wrap(err, "querying folders")
	}
	var links []NoteFolder
	if _, err := c.client.From(tableNoteFolders).Select("folder_id", "", false).ExecuteTo(&links); err != nil {
		return nil, errors.Wrap(err, "counting folder notes")
	}
	counts := lo.CountValuesBy(links, func(link NoteFolder) string { return link.FolderID.String() })
	return lo.Map(rows, func(row Folder, _ int) *domain.Folder {
		folder := row.toDomain()
		folder.NoteCount = counts[folder.ID]
		return folder
	}), nil
}

func (c *Client) GetFolder(ctx context.Context, id string) (*domain.Folder, error) {
	folders, err := c.GetAllFolders(ctx)
	if err != nil {
		return nil, err
	}
	folder, _ := lo.Find(folders, func(folder *domain.Folder) bool { return folder.ID == id })
	return folder, nil
}

func (c *Client) CreateFolder(_ context.Context, name string, color *string) (*domain.Folder, error) {
	row := Folder{ID: uuid.New(), Name: name, Color: color, CreatedAt: c.now()}
	if _, _, err := c.client.From(tableFolders).Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return nil, errors.Wrap(err, "inserting folder")
	}
	return row.toDomain(), nil
}

func (c *Client) DeleteFolder(_ context.Context, id string) error {
	return c.deleteByID(tableFolders, "folder", id)
}

func (c *Client) ApplyOrganization(ctx context.Context, result *domain.OrganizationResult) (*domain.ApplyResult, error) {
	return db.ApplyOrganization(ctx, c, result)
}

// ListSessions returns sessions, most recently active first.
func (c *Client) ListSessions(_ context.Context) ([]*domain.ChatSession, error) {
	var rows []Session
	if _, err := c.client.From(tableSessions).Select("*", "", false).Order("updated_at", &postgrest.OrderOpts{Ascending: false}).ExecuteTo(&rows); err != nil {
		return nil, errors.Wrap(err, "querying chat sessions")
	}
	return lo.Map(rows, func(row Session, _ int) *domain.ChatSession { return row.toDomain() }), nil
}

func (c *Client) GetSession(_ context.Context, id string) (*domain.ChatSession, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var rows []Session
	if _, err := c.client.From(tableSessions).Select("*", "", false).Eq("id", id).Limit(1, "").ExecuteTo(&rows); err != nil {
		return nil, errors.Wrap(err, "querying chat session")
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(), nil
}

// CreateSession stores a new session. A blank title becomes domain.DefaultSessionTitle.
func (c *Client) CreateSession(_ context.Context, title string) (*domain.ChatSession, error) {
	if strings.TrimSpace(title) == "" {
		title = domain.DefaultSessionTitle
	}
	now := c.now()
	row := Session{ID: uuid.New(), Title: title, CreatedAt: now, UpdatedAt: now}
	if _, _, err := c.client.From(tableSessions).Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return nil, errors.Wrap(err, "inserting chat session")
	}
	return row.toDomain(), nil
}

// DeleteSession removes the session; the foreign key cascade removes its messages.
func (c *Client) DeleteSession(_ context.Context, id string) error {
	return c.deleteByID(tableSessions, "chat session", id)
}

// GetMessages returns the messages of a session oldest first.
func (c *Client) GetMessages(_ context.Context, sessionID string) ([]*domain.ChatMessage, error) {
	if _, err := uuid.Parse(sessionID); err != nil {
		return []*domain.ChatMessage{}, nil
	}
	var rows []Message
	if _, err := c.client.From(tableMessages).Select("*", "", false).Eq("session_id", sessionID).Order("created_at", oldestFirst).ExecuteTo(&rows); err != nil {
		return nil, errors.Wrap(err, "querying chat messages")
	}
	return lo.Map(rows, func(row Message, _ int) *domain.ChatMessage { return row.toDomain() }), nil
}

// AppendMessage stores msg with a new id and timestamp and bumps the session's updated_at.
func (c *Client) AppendMessage(_ context.Context, msg *domain.ChatMessage) error {
	sessionUUID, err := uuid.Parse(msg.SessionID)
	if err != nil {
		return notFound("chat session", msg.SessionID)
	}
	if msg.ReferencedNoteIDs == nil {
		msg.ReferencedNoteIDs = []string{}
	}
	row := Message{
		ID:                uuid.New(),
		SessionID:         sessionUUID,
		Role:              msg.Role,
		Content:           msg.Content,
		Thinking:          msg.Thinking,
		ReferencedNoteIDs: msg.ReferencedNoteIDs,
		CreatedAt:         c.now(),
	}

	var touched []Session
	if _, err = c.client.From(tableSessions).Update(map[string]any{"updated_at": row.CreatedAt}, "representation", "").
		Eq("id", msg.SessionID).ExecuteTo(&touched); err != nil {
		return errors.Wrap(err, "touching chat session")
	}
	if len(touched) == 0 {
		return notFound("chat session", msg.SessionID)
	}
	if _, _, err = c.client.From(tableMessages).Insert(row, false, "", "minimal", "").Execute(); err != nil {
		return errors.Wrap(err, "inserting chat message")
	}
	msg.ID, msg.CreatedAt = row.ID.String(), row.CreatedAt
	return nil
}

func (c *Client) deleteByID(table, what, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return notFound(what, id)
	}
	var deleted []map[string]any
	if _, err := c.client.From(table).Delete("representation", "").Eq("id", id).ExecuteTo(&deleted); err != nil {
		return errors.Wrapf(err, "deleting %s", what)
	}
	if len(deleted) == 0 {
		return notFound(what, id)
	}
	return nil
}
