package sqlitedb

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/noteweaver/noteweaver/internal/domain"
)

func scanSession(row interface{ Scan(...any) error }) (*domain.ChatSession, error) {
	session := &domain.ChatSession{}
	err := row.Scan(&session.ID, &session.Title, &session.CreatedAt, &session.UpdatedAt)
	return session, err
}

// ListSessions returns sessions, most recently active first.
func (s *Store) ListSessions(ctx context.Context) ([]*domain.ChatSession, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, created_at, updated_at FROM chat_sessions ORDER BY updated_at DESC, rowid DESC`)
	if err != nil {
		return nil, errors.Wrap(err, "querying sessions")
	}
	defer rows.Close()

	ret := []*domain.ChatSession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scanning session row")
		}
		ret = append(ret, session)
	}
	return ret, errors.Wrap(rows.Err(), "iterating session rows")
}

func (s *Store) GetSession(ctx context.Context, id string) (*domain.ChatSession, error) {
	session, err := scanSession(s.db.QueryRowContext(ctx, `SELECT id, title, created_at, updated_at FROM chat_sessions WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "querying session")
	}
	return session, nil
}

// CreateSession stores a new session. A blank title becomes domain.DefaultSessionTitle.
func (s *Store) CreateSession(ctx context.Context, title string) (*domain.ChatSession, error) {
	if strings.TrimSpace(title) == "" {
		title = domain.DefaultSessionTitle
	}
	now := s.now()
	session := &domain.ChatSession{ID: newID(), Title: title, CreatedAt: now, UpdatedAt: now}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO chat_sessions (id, title, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		session.ID, session.Title, session.CreatedAt, session.UpdatedAt); err != nil {
		return nil, errors.Wrap(err, "inserting session")
	}
	return session, nil
}

// DeleteSession removes the session and, through the cascade, its messages.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = ?`, id)
	if err != nil {
		return errors.Wrap(err, "deleting session")
	}
	return checkAffected(res, "chat session", id)
}

// GetMessages returns the messages of a session in the order they were appended.
func (s *Store) GetMessages(ctx context.Context, sessionID string) ([]*domain.ChatMessage, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, session_id, role, content, thinking, referenced_note_ids, created_at
		FROM chat_messages WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "querying messages")
	}
	defer rows.Close()

	ret := []*domain.ChatMessage{}
	for rows.Next() {
		msg := &domain.ChatMessage{}
		var (
			thinking   sql.NullString
			referenced string
		)
		if err = rows.Scan(&msg.ID, &msg.SessionID, &msg.Role, &msg.Content, &thinking, &referenced, &msg.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scanning message row")
		}
		if thinking.Valid {
			msg.Thinking = &domain.ThinkingTrace{}
			if err = json.Unmarshal([]byte(thinking.String), msg.Thinking); err != nil {
				return nil, errors.Wrap(err, "unmarshaling thinking trace")
			}
		}
		if err = json.Unmarshal([]byte(referenced), &msg.ReferencedNoteIDs); err != nil {
			return nil, errors.Wrap(err, "unmarshaling referenced note ids")
		}
		ret = append(ret, msg)
	}
	return ret, errors.Wrap(rows.Err(), "iterating message rows")
}

// AppendMessage assigns the id and timestamp, stores the message and bumps the session's updated_at.
func (s *Store) AppendMessage(ctx context.Context, msg *domain.ChatMessage) (err error) {
	msg.ID = newID()
	msg.CreatedAt = s.now()
	if msg.ReferencedNoteIDs == nil {
		msg.ReferencedNoteIDs = []string{}
	}

	var thinking sql.NullString
	if msg.Thinking != nil {
		var raw []byte
		if raw, err = json.Marshal(msg.Thinking); err != nil {
			return errors.Wrap(err, "marshaling thinking trace")
		}
		thinking = sql.NullString{String: string(raw), Valid: true}
	}
	var referenced []byte
	if referenced, err = json.Marshal(msg.ReferencedNoteIDs); err != nil {
		return errors.Wrap(err, "marshaling referenced note ids")
	}

	var tx *sql.Tx
	if tx, err = s.db.BeginTx(ctx, nil); err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	defer func() { _ = tx.Rollback() }()

	var res sql.Result
	if res, err = tx.ExecContext(ctx, `UPDATE chat_sessions SET updated_at = ? WHERE id = ?`, msg.CreatedAt, msg.SessionID); err != nil {
		return errors.Wrap(err, "touching session")
	}
	if err = checkAffected(res, "chat session", msg.SessionID); err != nil {
		return
	}
	if _, err = tx.ExecContext(ctx, `INSERT INTO chat_messages (id, session_id, role, content, thinking, referenced_note_ids, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		msg.ID, msg.SessionID, msg.Role, msg.Content, thinking, string(referenced), msg.CreatedAt); err != nil {
		return errors.Wrap(err, "inserting message")
	}
	return errors.Wrap(tx.Commit(), "committing message")
}
