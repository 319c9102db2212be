package dryrun

import (
	"context"
	"fmt"
	"strings"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
)

const Model = "dry-run-model"

// cannedReplies are minimal documents that satisfy each response schema.
var cannedReplies = map[string]string{
	schema.Organize:      `{"suggested_folders":[],"assignments":[]}`,
	schema.SelectFolders: `{"reasoning":"dry run: no folders selected","selected_folder_ids":[]}`,
	schema.Answer:        `{"reasoning":"dry run","answer":"","referenced_note_ids":[]}`,
	schema.Classify:      `{"classification":"inspiration","confidence":0,"reasoning":"dry run"}`,
}

// Client logs the prompts it would send and answers with a schema-valid empty reply.
type Client struct {
	*plugins.PluginBase
}

func NewClient() *Client {
	return &Client{PluginBase: &plugins.PluginBase{Name: "DryRun"}}
}

func (c *Client) SchemaProvider() string {
	return "dryrun"
}

func (c *Client) ListModels() ([]string, error) {
	return []string{Model}, nil
}

func (c *Client) Send(_ context.Context, msgs []*chat.ChatCompletionMessage, opts *domain.ChatOptions) (string, error) {
	var b strings.Builder
	b.WriteString("Dry run: Would send the following request:\n\n")
	for _, msg := range msgs {
		fmt.Fprintf(&b, "%s:\n%s\n\n", strings.ToUpper(msg.Role), msg.Content)
	}
	fmt.Fprintf(&b, "Model: %s\n", opts.Model)
	if opts.SchemaName != "" {
		fmt.Fprintf(&b, "Schema: %s\n", opts.SchemaName)
	}
	debuglog.Log("%s", b.String())

	if opts.SchemaName == "" {
		return b.String(), nil
	}
	reply, ok := cannedReplies[opts.SchemaName]
	if !ok {
		return "", fmt.Errorf("dry run has no reply for schema %q", opts.SchemaName)
	}
	return schema.Default().HandleResponseParsing(c.SchemaProvider(), reply)
}
