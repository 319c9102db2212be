package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/noteweaver/noteweaver/internal/chat"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/i18n"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/samber/lo"
)

// Chatter answers questions in a chat session: select folders, gather their notes,
// synthesize an answer, then append the user and assistant messages.
type Chatter struct {
	store       Store
	selector    *FolderSelector
	synthesizer *AnswerSynthesizer
}

func NewChatter(store Store, gateway Gateway, prompts PromptLoader, answerMaxTokens int) *Chatter {
	return &Chatter{
		store:       store,
		selector:    NewFolderSelector(gateway, prompts),
		synthesizer: NewAnswerSynthesizer(gateway, prompts, answerMaxTokens),
	}
}

// Answer runs one chat turn and returns the stored assistant message.
// Nothing is stored when a step before persistence fails; if storing the assistant
// message fails, the user message stays.
func (o *Chatter) Answer(ctx context.Context, sessionID, question string) (ret *domain.ChatMessage, err error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, i18n.T("session_id_required"))
	}
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, i18n.T("question_required"))
	}

	var session *domain.ChatSession
	if session, err = o.store.GetSession(ctx, sessionID); err != nil {
		return
	}
	if session == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(i18n.T("chat_session_not_found"), sessionID))
	}

	var history []*domain.ChatMessage
	if history, err = o.store.GetMessages(ctx, sessionID); err != nil {
		return
	}

	var folders []*domain.Folder
	if folders, err = o.store.GetAllFolders(ctx); err != nil {
		return
	}

	var allNotes []*domain.Note
	if len(folders) == 0 {
		if allNotes, err = o.store.GetAllNotes(ctx); err != nil {
			return
		}
		if len(allNotes) == 0 {
			debuglog.Debug(debuglog.Basic, "session %s: no notes or folders yet, answering without a model call", sessionID)
			return o.persistTurn(ctx, sessionID, question, &domain.ChatMessage{
				Content:           i18n.T("chat_bootstrap_message"),
				Thinking:          &domain.ThinkingTrace{SelectedFolders: []domain.FolderRef{}, ExaminedNotes: []domain.NoteRef{}},
				ReferencedNoteIDs: []string{},
			})
		}
	}

	var selection *domain.FolderSelection
	if selection, err = o.selector.Select(ctx, question, folders, history); err != nil {
		return nil, fmt.Errorf("selecting folders: %w", err)
	}
	selectedFolders := selectedRefs(folders, selection.SelectedFolderIDs)

	var candidates []*domain.Note
	if candidates, err = o.gather(ctx, selection.SelectedFolderIDs, allNotes); err != nil {
		return
	}
	debuglog.Debug(debuglog.Basic, "session %s: %d folders selected, %d candidate notes", sessionID, len(selectedFolders), len(candidates))

	if len(candidates) == 0 {
		thinking := &domain.ThinkingTrace{
			Step1Reasoning:  selection.Reasoning,
			SelectedFolders: selectedFolders,
			ExaminedNotes:   []domain.NoteRef{},
		}
		// Nothing selected means every note was searched, so no folder is to blame.
		content := i18n.T("chat_nothing_in_folders")
		if len(selection.SelectedFolderIDs) == 0 {
			content = i18n.T("chat_no_notes_yet")
		}
		return o.persistTurn(ctx, sessionID, question, &domain.ChatMessage{
			Content:           content,
			Thinking:          thinking,
			ReferencedNoteIDs: []string{},
		})
	}

	var answer *domain.Answer
	if answer, err = o.synthesizer.Synthesize(ctx, question, candidates, history); err != nil {
		return nil, fmt.Errorf("synthesizing answer: %w", err)
	}

	examined := lo.Map(answer.ExaminedNotes, func(note *domain.Note, _ int) domain.NoteRef {
		return domain.NoteRef{ID: note.ID, Title: note.Title}
	})
	thinking := &domain.ThinkingTrace{
		Step1Reasoning:  selection.Reasoning,
		SelectedFolders: selectedFolders,
		Step2Reasoning:  answer.Reasoning,
		ExaminedNotes:   examined,
	}
	return o.persistTurn(ctx, sessionID, question, &domain.ChatMessage{
		Content:           answer.Answer,
		Thinking:          thinking,
		ReferencedNoteIDs: answer.ReferencedNoteIDs,
	})
}

// gather returns the union of the notes in folderIDs, first occurrence first.
// With no folders selected it falls back to every note.
func (o *Chatter) gather(ctx context.Context, folderIDs []string, allNotes []*domain.Note) (ret []*domain.Note, err error) {
	if len(folderIDs) == 0 {
		if allNotes != nil {
			return allNotes, nil
		}
		return o.store.GetAllNotes(ctx)
	}
	for _, folderID := range folderIDs {
		var notes []*domain.Note
		if notes, err = o.store.GetNotesInFolder(ctx, folderID); err != nil {
			return
		}
		ret = append(ret, notes...)
	}
	return lo.UniqBy(ret, func(note *domain.Note) string { return note.ID }), nil
}

func (o *Chatter) persistTurn(ctx context.Context, sessionID, question string, assistant *domain.ChatMessage) (*domain.ChatMessage, error) {
	user := &domain.ChatMessage{
		SessionID:         sessionID,
		Role:              chat.ChatMessageRoleUser,
		Content:           question,
		ReferencedNoteIDs: []string{},
	}
	if err := o.store.AppendMessage(ctx, user); err != nil {
		return nil, fmt.Errorf("saving user message: %w", err)
	}

	assistant.SessionID = sessionID
	assistant.Role = chat.ChatMessageRoleAssistant
	if err := o.store.AppendMessage(ctx, assistant); err != nil {
		return nil, fmt.Errorf("saving assistant message: %w", err)
	}
	return assistant, nil
}

func selectedRefs(folders []*domain.Folder, ids []string) []domain.FolderRef {
	byID := lo.KeyBy(folders, func(folder *domain.Folder) string { return folder.ID })
	ret := make([]domain.FolderRef, 0, len(ids))
	for _, id := range ids {
		if folder, ok := byID[id]; ok {
			ret = append(ret, domain.FolderRef{ID: folder.ID, Name: folder.Name})
		}
	}
	return ret
}
