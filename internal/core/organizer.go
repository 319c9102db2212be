package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/noteweaver/noteweaver/internal/domain"
	debuglog "github.com/noteweaver/noteweaver/internal/log"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	"github.com/samber/lo"
)

// Organizer proposes folders for notes, splitting the work into batches that fit the per-call token budget.
type Organizer struct {
	gateway   Gateway
	prompts   PromptLoader
	estimator Estimator
}

func NewOrganizer(gateway Gateway, prompts PromptLoader) *Organizer {
	return &Organizer{gateway: gateway, prompts: prompts, estimator: DefaultEstimator}
}

// WithEstimator replaces the token estimator.
func (o *Organizer) WithEstimator(estimator Estimator) *Organizer {
	o.estimator = estimator
	return o
}

// Organize returns a proposal; nothing is persisted. A maxTokensPerCall of zero or less disables chunking.
// If any batch fails the whole call fails.
func (o *Organizer) Organize(ctx context.Context, notes []*domain.Note, existing []*domain.Folder, maxTokensPerCall int) (*domain.OrganizationResult, error) {
	if len(notes) == 0 {
		return domain.NewOrganizationResult(), nil
	}

	known := lo.Map(existing, func(folder *domain.Folder, _ int) string { return folder.Name })

	total, err := o.callTokens(notes, known)
	if err != nil {
		return nil, err
	}
	if maxTokensPerCall <= 0 || total <= maxTokensPerCall {
		debuglog.Debug(debuglog.Basic, "organizing %d notes in one call (%d tokens)", len(notes), total)
		result, _, err := o.organizeBatch(ctx, notes, known)
		return result, err
	}

	debuglog.Debug(debuglog.Basic, "organizing %d notes (%d tokens) in batches of at most %d tokens", len(notes), total, maxTokensPerCall)
	var results []*domain.OrganizationResult
	for rest := notes; len(rest) > 0; {
		batch, err := o.nextBatch(rest, known, maxTokensPerCall)
		if err != nil {
			return nil, err
		}
		var result *domain.OrganizationResult
		if result, known, err = o.organizeBatch(ctx, batch, known); err != nil {
			return nil, fmt.Errorf("organizing batch %d (%d of %d notes left): %w", len(results)+1, len(rest), len(notes), err)
		}
		results = append(results, result)
		rest = rest[len(batch):]
	}
	return MergeOrganizationResults(results), nil
}

// nextBatch takes the leading notes that fit one call next to the prompt for known.
// The first note is always taken, even when it alone is over budget.
func (o *Organizer) nextBatch(notes []*domain.Note, known []string, maxTokensPerCall int) ([]*domain.Note, error) {
	overhead, err := o.callTokens(nil, known)
	if err != nil {
		return nil, err
	}
	batch := nextChunk(notes, max(maxTokensPerCall-overhead, 1), o.estimator)

	// Estimates of the parts round down separately, so the rendered call can still be over.
	for len(batch) > 1 {
		tokens, err := o.callTokens(batch, known)
		if err != nil {
			return nil, err
		}
		if tokens <= maxTokensPerCall {
			break
		}
		batch = batch[:len(batch)-1]
	}
	debuglog.Debug(debuglog.Detailed, "next organize batch: %d notes, prompt overhead %d with %d known folders", len(batch), overhead, len(known))
	return batch, nil
}

// callTokens estimates the system and user prompt of one organize call over batch.
func (o *Organizer) callTokens(batch []*domain.Note, known []string) (int, error) {
	user, err := o.renderUserPrompt(batch, known)
	if err != nil {
		return 0, err
	}
	return o.estimator.Estimate(systemOrganize) + o.estimator.Estimate(user), nil
}

func (o *Organizer) renderUserPrompt(batch []*domain.Note, known []string) (string, error) {
	return renderPrompt(o.prompts, schema.Organize, map[string]string{
		"existing_folders": folderNamesText(known),
		"notes":            renderNoteList(batch),
	})
}

// organizeBatch runs one model call and cleans its reply. It returns the batch result
// and known extended with the folders this batch suggested; known itself is not modified.
func (o *Organizer) organizeBatch(ctx context.Context, batch []*domain.Note, known []string) (*domain.OrganizationResult, []string, error) {
	user, err := o.renderUserPrompt(batch, known)
	if err != nil {
		return nil, known, err
	}

	debuglog.Debug(debuglog.Detailed, "organize batch: %d notes, %d known folders", len(batch), len(known))
	var reply domain.OrganizationResult
	if err = o.gateway.Invoke(ctx, &domain.PromptCall{Schema: schema.Organize, System: systemOrganize, User: user}, &reply); err != nil {
		return nil, known, err
	}

	spelling := map[string]string{}
	for _, name := range known {
		if key := domain.FolderKey(name); key != "" {
			if _, ok := spelling[key]; !ok {
				spelling[key] = name
			}
		}
	}

	result := domain.NewOrganizationResult()
	nextKnown := slices.Clone(known)
	for _, folder := range reply.SuggestedFolders {
		name := strings.TrimSpace(folder.Name)
		key := domain.FolderKey(name)
		if key == "" {
			continue
		}
		if _, exists := spelling[key]; exists {
			debuglog.Debug(debuglog.Detailed, "dropping suggested folder %q, it already exists", name)
			continue
		}
		spelling[key] = name
		nextKnown = append(nextKnown, name)
		result.SuggestedFolders = append(result.SuggestedFolders, domain.SuggestedFolder{Name: name, Color: folder.Color})
	}

	inBatch := lo.SliceToMap(batch, func(note *domain.Note) (string, struct{}) { return note.ID, struct{}{} })
	for _, assignment := range reply.Assignments {
		if _, ok := inBatch[assignment.NoteID]; !ok {
			debuglog.Debug(debuglog.Detailed, "dropping assignment for note %q outside the batch", assignment.NoteID)
			continue
		}
		names := make([]string, 0, len(assignment.FolderNames))
		for _, name := range assignment.FolderNames {
			canonical, ok := spelling[domain.FolderKey(name)]
			if !ok {
				debuglog.Debug(debuglog.Detailed, "dropping unknown folder %q from note %s", name, assignment.NoteID)
				continue
			}
			names = append(names, canonical)
		}
		if names = lo.Uniq(names); len(names) == 0 {
			continue
		}
		result.Assignments = append(result.Assignments, domain.Assignment{NoteID: assignment.NoteID, FolderNames: names})
	}
	return result, nextKnown, nil
}

func folderNamesText(names []string) string {
	if len(names) == 0 {
		return "None"
	}
	return strings.Join(names, ", ")
}
