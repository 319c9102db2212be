package core

import (
	"context"
	"fmt"

	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/i18n"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
)

// Classifier labels notes as inspiration or task and records the outcome on the note.
type Classifier struct {
	gateway Gateway
	prompts PromptLoader
	notes   NoteStore
}

func NewClassifier(gateway Gateway, prompts PromptLoader, notes NoteStore) *Classifier {
	return &Classifier{gateway: gateway, prompts: prompts, notes: notes}
}

// Classify asks the model about a single note without touching storage.
func (c *Classifier) Classify(ctx context.Context, note *domain.Note) (*domain.Classification, error) {
	user, err := renderPrompt(c.prompts, schema.Classify, map[string]string{
		"title": note.Title,
		"body":  note.Body,
	})
	if err != nil {
		return nil, err
	}
	var ret domain.Classification
	if err = c.gateway.Invoke(ctx, &domain.PromptCall{Schema: schema.Classify, System: systemClassify, User: user}, &ret); err != nil {
		return nil, err
	}
	return &ret, nil
}

// ClassifyNote classifies the stored note and marks it analyzed, setting is_inspiration from the label.
func (c *Classifier) ClassifyNote(ctx context.Context, noteID string) (*domain.Classification, *domain.Note, error) {
	note, err := c.notes.GetNote(ctx, noteID)
	if err != nil {
		return nil, nil, err
	}
	if note == nil {
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrNotFound, fmt.Sprintf(i18n.T("note_not_found"), noteID))
	}

	classification, err := c.Classify(ctx, note)
	if err != nil {
		return nil, nil, err
	}

	isInspiration := classification.Classification == domain.ClassificationInspiration
	analyzed := true
	updated, err := c.notes.UpdateNote(ctx, noteID, &domain.NoteUpdate{IsInspiration: &isInspiration, IsAnalyzed: &analyzed})
	if err != nil {
		return nil, nil, err
	}
	return classification, updated, nil
}
