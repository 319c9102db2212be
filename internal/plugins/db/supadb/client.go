// Package supadb stores notes and chat history in Supabase through its PostgREST API.
package supadb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	supabase "github.com/supabase-community/supabase-go"

	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins/db"
)

const (
	tableNotes       = "notes"
	tableFolders     = "folders"
	tableNoteFolders = "note_folders"
	tableSessions    = "chat_sessions"
	tableMessages    = "chat_messages"
)

// Client implements db.Store against a Supabase project.
type Client struct {
	client *supabase.Client
	now    func() time.Time
}

var _ db.Store = (*Client)(nil)

// NewClientFromEnv instantiates the Supabase client when credentials are present.
func NewClientFromEnv() (*Client, error) {
	url := os.Getenv("SUPABASE_URL")
	key := os.Getenv("SUPABASE_SERVICE_ROLE_KEY")
	if url == "" || key == "" {
		return nil, fmt.Errorf("supabase credentials missing: SUPABASE_URL or SUPABASE_SERVICE_ROLE_KEY not set")
	}
	return NewClient(url, key)
}

func NewClient(url, key string) (*Client, error) {
	client, err := supabase.NewClient(url, key, nil)
	if err != nil {
		return nil, errors.Wrap(err, "creating supabase client")
	}
	return &Client{client: client, now: func() time.Time { return time.Now().UTC() }}, nil
}

// Ping verifies the Supabase connection with a one-row read.
func (c *Client) Ping(_ context.Context) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("supabase client not initialized")
	}
	_, err := c.client.From(tableSessions).Select("id", "", false).Limit(1, "").ExecuteTo(&[]Session{})
	return errors.Wrap(err, "pinging supabase")
}

// Close is a no-op; the REST client holds no connection.
func (c *Client) Close() error {
	return nil
}

func notFound(what, id string) error {
	return fmt.Errorf("%s %s: %w", what, id, domain.ErrNotFound)
}
