package core

import (
	"context"
	"testing"

	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/noteweaver/noteweaver/internal/plugins/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyNote(t *testing.T) {
	tests := []struct {
		name            string
		label           string
		wantInspiration bool
	}{
		{name: "inspiration", label: domain.ClassificationInspiration, wantInspiration: true},
		{name: "task", label: domain.ClassificationTask, wantInspiration: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore().addNotes(&domain.Note{ID: "n1", Title: "Paint", Body: "sunset over the river", IsInspiration: !tt.wantInspiration})
			gw := &fakeGateway{respond: func(*domain.PromptCall) (any, error) {
				return domain.Classification{Classification: tt.label, Confidence: 0.8, Reasoning: "because"}, nil
			}}

			got, note, err := NewClassifier(gw, nil, store).ClassifyNote(context.Background(), "n1")
			require.NoError(t, err)
			assert.Equal(t, tt.label, got.Classification)
			assert.Equal(t, tt.wantInspiration, note.IsInspiration)
			assert.True(t, note.IsAnalyzed)

			require.Len(t, gw.calls, 1)
			assert.Equal(t, schema.Classify, gw.calls[0].Schema)
			assert.Contains(t, gw.calls[0].User, "Title: Paint")
			assert.Contains(t, gw.calls[0].User, "sunset over the river")
		})
	}
}

func TestClassifyNote_NotFound(t *testing.T) {
	gw := &fakeGateway{}
	_, _, err := NewClassifier(gw, nil, newMemStore()).ClassifyNote(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, gw.calls)
}
