package core

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/noteweaver/noteweaver/internal/domain"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	"github.com/samber/lo"
)

// FolderSelector is the first chat step: it picks the folders likely to hold the answer.
type FolderSelector struct {
	gateway Gateway
	prompts PromptLoader
}

func NewFolderSelector(gateway Gateway, prompts PromptLoader) *FolderSelector {
	return &FolderSelector{gateway: gateway, prompts: prompts}
}

// Select returns the chosen folder ids in reply order, limited to folders and without duplicates.
// An empty selection means every note should be searched. With no folders no call is made.
func (s *FolderSelector) Select(ctx context.Context, question string, folders []*domain.Folder, history []*domain.ChatMessage) (*domain.FolderSelection, error) {
	if len(folders) == 0 {
		return &domain.FolderSelection{SelectedFolderIDs: []string{}}, nil
	}

	refs := lo.Map(folders, func(folder *domain.Folder, _ int) domain.FolderRef {
		return domain.FolderRef{ID: folder.ID, Name: folder.Name}
	})
	foldersJSON, err := json.MarshalIndent(refs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding folders: %w", err)
	}

	user, err := renderPrompt(s.prompts, schema.SelectFolders, map[string]string{
		"question":             question,
		"folders":              string(foldersJSON),
		"conversation_history": renderHistory(history),
	})
	if err != nil {
		return nil, err
	}

	var reply domain.FolderSelection
	if err = s.gateway.Invoke(ctx, &domain.PromptCall{Schema: schema.SelectFolders, System: systemSelect, User: user}, &reply); err != nil {
		return nil, err
	}

	known := lo.SliceToMap(folders, func(folder *domain.Folder) (string, struct{}) { return folder.ID, struct{}{} })
	selected := lo.Uniq(lo.Filter(reply.SelectedFolderIDs, func(id string, _ int) bool {
		_, ok := known[id]
		return ok
	}))
	if dropped := len(reply.SelectedFolderIDs) - len(selected); dropped > 0 {
		debuglog.Debug(debuglog.Detailed, "ignored %d unknown or repeated folder ids from selection", dropped)
	}
	return &domain.FolderSelection{Reasoning: reply.Reasoning, SelectedFolderIDs: selected}, nil
}
