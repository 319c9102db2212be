package core

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedEstimator charges a fixed cost per note, matched by the id in the rendered text.
type fixedEstimator map[string]int

func (f fixedEstimator) Estimate(text string) int {
	for id, tokens := range f {
		if strings.Contains(text, `"id":"`+id+`"`) {
			return tokens
		}
	}
	return 0
}

func TestRenderNote(t *testing.T) {
	note := &domain.Note{ID: "n1", Title: "Lisbon <trip>", Body: "line1\nline2", FolderIDs: []string{"f1"}}
	assert.Equal(t, `{"id":"n1","title":"Lisbon <trip>","body":"line1\nline2"}`, RenderNote(note))
}

func TestRenderNoteList(t *testing.T) {
	assert.Equal(t, "[]", renderNoteList(nil))
	got := renderNoteList([]*domain.Note{newNote("a", "A", "x"), newNote("b", "B", "y")})
	assert.Equal(t, "[\n"+`{"id":"a","title":"A","body":"x"}`+",\n"+`{"id":"b","title":"B","body":"y"}`+"\n]", got)
}

func ids(chunks [][]*domain.Note) [][]string {
	ret := make([][]string, len(chunks))
	for i, chunk := range chunks {
		for _, note := range chunk {
			ret[i] = append(ret[i], note.ID)
		}
	}
	return ret
}

func TestChunkNotes(t *testing.T) {
	notes := []*domain.Note{newNote("a", "", ""), newNote("b", "", ""), newNote("c", "", ""), newNote("d", "", "")}

	tests := []struct {
		name      string
		estimator fixedEstimator
		budget    int
		want      [][]string
	}{
		{
			name:      "everything fits",
			estimator: fixedEstimator{"a": 1, "b": 1, "c": 1, "d": 1},
			budget:    10,
			want:      [][]string{{"a", "b", "c", "d"}},
		},
		{
			name:      "exact fit stays together",
			estimator: fixedEstimator{"a": 5, "b": 5, "c": 5, "d": 5},
			budget:    10,
			want:      [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:      "oversized note alone",
			estimator: fixedEstimator{"a": 2, "b": 50, "c": 2, "d": 2},
			budget:    10,
			want:      [][]string{{"a"}, {"b"}, {"c", "d"}},
		},
		{
			name:      "oversized first note",
			estimator: fixedEstimator{"a": 50, "b": 1, "c": 1, "d": 1},
			budget:    10,
			want:      [][]string{{"a"}, {"b", "c", "d"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ChunkNotes(notes, tt.budget, tt.estimator)
			if diff := cmp.Diff(tt.want, ids(got)); diff != "" {
				t.Errorf("ChunkNotes() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestChunkNotes_ChargesListSeparator(t *testing.T) {
	notes := []*domain.Note{newNote("a", "", "123456789"), newNote("b", "", "123456789")}
	require.Equal(t, 9, EstimateTokens(RenderNote(notes[0])))
	require.Equal(t, 10, EstimateTokens(noteListEntry(notes[0])))

	got := ChunkNotes(notes, 19, nil)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, ids(got))
}

func TestChunkNotes_Empty(t *testing.T) {
	assert.Empty(t, ChunkNotes(nil, 10, nil))
}

func TestChunkNotes_CoversInputInOrder(t *testing.T) {
	var notes []*domain.Note
	for i := range 40 {
		notes = append(notes, newNote(fmt.Sprintf("n%02d", i), "title", strings.Repeat("x", i*7)))
	}

	for _, budget := range []int{1, 10, 35, 100, 10000} {
		chunks := ChunkNotes(notes, budget, nil)
		var flat []*domain.Note
		for _, chunk := range chunks {
			require.NotEmpty(t, chunk)
			total := 0
			for _, note := range chunk {
				total += EstimateTokens(noteListEntry(note))
			}
			if len(chunk) > 1 {
				assert.LessOrEqual(t, total, budget, "multi-note chunk over budget %d", budget)
			}
			flat = append(flat, chunk...)
		}
		assert.Equal(t, notes, flat, "budget %d", budget)
	}
}
