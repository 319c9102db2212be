package core

import (
	"context"
	"strings"

	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/i18n"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	"github.com/samber/lo"
)

// AnswerSynthesizer is the second chat step: it answers from the full text of the candidate notes.
type AnswerSynthesizer struct {
	gateway   Gateway
	prompts   PromptLoader
	estimator Estimator

	// MaxTokens is a soft ceiling on the notes placed in the prompt. Notes are taken in order
	// until it is reached, always at least one. Zero sends every note.
	MaxTokens int
}

func NewAnswerSynthesizer(gateway Gateway, prompts PromptLoader, maxTokens int) *AnswerSynthesizer {
	return &AnswerSynthesizer{gateway: gateway, prompts: prompts, estimator: DefaultEstimator, MaxTokens: maxTokens}
}

// Synthesize answers question from notes. Referenced ids are limited to the notes sent,
// and an empty answer is replaced with a localized "nothing found" reply.
func (s *AnswerSynthesizer) Synthesize(ctx context.Context, question string, notes []*domain.Note, history []*domain.ChatMessage) (*domain.Answer, error) {
	examined := s.fitBudget(notes)

	user, err := renderPrompt(s.prompts, schema.Answer, map[string]string{
		"question":             question,
		"notes":                renderNoteList(examined),
		"conversation_history": renderHistory(history),
	})
	if err != nil {
		return nil, err
	}

	var reply domain.Answer
	if err = s.gateway.Invoke(ctx, &domain.PromptCall{Schema: schema.Answer, System: systemAnswer, User: user}, &reply); err != nil {
		return nil, err
	}

	sent := lo.SliceToMap(examined, func(note *domain.Note) (string, struct{}) { return note.ID, struct{}{} })
	referenced := lo.Uniq(lo.Filter(reply.ReferencedNoteIDs, func(id string, _ int) bool {
		_, ok := sent[id]
		return ok
	}))
	ret := &domain.Answer{
		Reasoning:         reply.Reasoning,
		Answer:            reply.Answer,
		ReferencedNoteIDs: referenced,
		ExaminedNotes:     examined,
	}
	if strings.TrimSpace(ret.Answer) == "" {
		ret.Answer = i18n.T("chat_no_info_found")
	}
	return ret, nil
}

func (s *AnswerSynthesizer) fitBudget(notes []*domain.Note) []*domain.Note {
	if s.MaxTokens <= 0 || len(notes) == 0 {
		return notes
	}
	estimator := s.estimator
	if estimator == nil {
		estimator = DefaultEstimator
	}

	used := 0
	for i, note := range notes {
		tokens := estimator.Estimate(RenderNote(note))
		if i > 0 && used+tokens > s.MaxTokens {
			debuglog.Debug(debuglog.Basic, "answer budget of %d tokens reached, sending %d of %d notes", s.MaxTokens, i, len(notes))
			return notes[:i]
		}
		used += tokens
	}
	return notes
}
