package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/i18n"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins/db"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	"github.com/noteweaver/noteweaver/internal/plugins/template"
	restapi "github.com/noteweaver/noteweaver/internal/server"
)

const sessionTitleLength = 60

func (a *app) listVendors() error {
	fmt.Fprintln(a.out, i18n.T("available_vendors_header"))
	for _, name := range a.registry.Vendors.Names() {
		fmt.Fprintf(a.out, "\t%s\n", name)
	}
	return nil
}

func (a *app) listModels(ctx context.Context) error {
	a.registry.Vendors.Configure()
	models := a.registry.Vendors.GetModels(ctx)
	vendors := lo.Keys(models)
	sort.Strings(vendors)

	fmt.Fprintln(a.out, i18n.T("available_models_header"))
	for _, vendor := range vendors {
		fmt.Fprintf(a.out, "\n%s\n", vendor)
		for i, model := range models[vendor] {
			fmt.Fprintf(a.out, "\t[%d]\t%s\n", i+1, model)
		}
	}
	return nil
}

func (a *app) listPrompts() error {
	for _, name := range schema.Names() {
		if a.registry.Prompts.Exists(name) {
			fmt.Fprintf(a.out, "%s\t%s\n", name, a.registry.Prompts.BuildFilePathByName(name))
			continue
		}
		fmt.Fprintln(a.out, name)
	}
	return nil
}

func (a *app) exportPrompt(name string) error {
	if !lo.Contains(schema.Names(), name) {
		return fmt.Errorf("unknown prompt %q, expected one of %s", name, strings.Join(schema.Names(), ", "))
	}
	if err := a.registry.Prompts.Export(name); err != nil {
		return err
	}
	fmt.Fprintln(a.out, a.registry.Prompts.BuildFilePathByName(name))
	return nil
}

func (a *app) newSession(ctx context.Context, store db.Store, title string) error {
	session, err := store.CreateSession(ctx, title)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, session.ID)
	return nil
}

func (a *app) listSessions(ctx context.Context, store db.Store) error {
	sessions, err := store.ListSessions(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, i18n.T("sessions_header"))
	for _, session := range sessions {
		fmt.Fprintf(a.out, "%s\t%s\t%s\n", session.ID, session.UpdatedAt.Format("2006-01-02 15:04"), session.Title)
	}
	return nil
}

// importNote stores a text file, or stdin for "-", as a note unless the same title and body exist already.
func (a *app) importNote(ctx context.Context, store db.Store, path string) (err error) {
	var source *domain.NoteSource
	if path == "-" {
		var content []byte
		if content, err = io.ReadAll(a.in); err != nil {
			return
		}
		source = &domain.NoteSource{Content: content}
	} else if source, err = domain.NewNoteSource(path); err != nil {
		return
	}

	var note *domain.Note
	if note, err = source.ToNote(); err != nil {
		return
	}
	if note.Title == "" {
		return errors.New(i18n.T("note_title_required"))
	}

	var existing []*domain.Note
	if existing, err = store.GetAllNotes(ctx); err != nil {
		return
	}
	hash := template.ComputeNoteHash(note.Title, note.Body)
	if lo.ContainsBy(existing, func(n *domain.Note) bool { return template.ComputeNoteHash(n.Title, n.Body) == hash }) {
		return errors.New(i18n.T("import_duplicate_note"))
	}

	if err = store.CreateNote(ctx, note); err != nil {
		return
	}
	fmt.Fprintln(a.out, note.ID)
	return
}

func (a *app) serve(store db.Store, pipeline *Pipeline) error {
	deps := &restapi.Deps{
		Store:            store,
		Organizer:        pipeline.Organizer,
		Chatter:          pipeline.Chatter,
		Classifier:       pipeline.Classifier,
		MaxTokensPerCall: a.flags.MaxTokens,
	}
	if pinger, ok := store.(restapi.Pinger); ok {
		deps.Pinger = pinger
	}
	return restapi.Serve(deps, a.flags.Address, a.flags.APIKey)
}

// organize suggests folders for the notes without any. The result is printed unless --apply is set.
func (a *app) organize(ctx context.Context, store db.Store, pipeline *Pipeline) error {
	notes, err := store.GetUnorganizedNotes(ctx)
	if err != nil {
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(a.out, i18n.T("organize_nothing_to_do"))
		return nil
	}
	folders, err := store.GetAllFolders(ctx)
	if err != nil {
		return err
	}

	result, err := pipeline.Organizer.Organize(ctx, notes, folders, a.flags.MaxTokens)
	if err != nil {
		return err
	}
	if !a.flags.Apply {
		encoder := json.NewEncoder(a.out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	}

	applied, err := store.ApplyOrganization(ctx, result)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, i18n.T("organize_applied")+"\n", len(applied.FoldersCreated), applied.NotesAssigned)
	return nil
}

// ask answers a question inside --session, or inside a new session named after the question.
func (a *app) ask(ctx context.Context, store db.Store, pipeline *Pipeline) error {
	sessionID := a.flags.Session
	if sessionID == "" {
		session, err := store.CreateSession(ctx, sessionTitle(a.flags.Ask))
		if err != nil {
			return err
		}
		sessionID = session.ID
		debuglog.Log("%s %s", i18n.T("chat_session_created"), sessionID)
	}

	message, err := pipeline.Chatter.Answer(ctx, sessionID, a.flags.Ask)
	if err != nil {
		return err
	}
	logThinking(message.Thinking)

	fmt.Fprintln(a.out, message.Content)
	if len(message.ReferencedNoteIDs) > 0 {
		fmt.Fprintf(a.out, "\n%s %s\n", i18n.T("chat_referenced_notes"), strings.Join(message.ReferencedNoteIDs, ", "))
	}
	if a.flags.Copy {
		return CopyToClipboard(message.Content)
	}
	return nil
}

func logThinking(trace *domain.ThinkingTrace) {
	if trace == nil {
		return
	}
	folders := lo.Map(trace.SelectedFolders, func(f domain.FolderRef, _ int) string { return f.Name })
	notes := lo.Map(trace.ExaminedNotes, func(n domain.NoteRef, _ int) string { return n.Title })
	debuglog.Debug(debuglog.Basic, "step 1: %s\nselected folders: %s", trace.Step1Reasoning, strings.Join(folders, ", "))
	debuglog.Debug(debuglog.Basic, "step 2: %s\nexamined notes: %s", trace.Step2Reasoning, strings.Join(notes, ", "))
}

func sessionTitle(question string) string {
	question = strings.Join(strings.Fields(question), " ")
	runes := []rune(question)
	if len(runes) <= sessionTitleLength {
		return question
	}
	return strings.TrimSpace(string(runes[:sessionTitleLength])) + "..."
}
