package core

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/noteweaver/noteweaver/internal/domain"
)

func ptr(s string) *string { return &s }

func TestMergeOrganizationResults(t *testing.T) {
	results := []*domain.OrganizationResult{
		{
			SuggestedFolders: []domain.SuggestedFolder{{Name: "Travel", Color: ptr("#0EA5E9")}},
			Assignments:      []domain.Assignment{{NoteID: "n1", FolderNames: []string{"Travel"}}},
		},
		{
			SuggestedFolders: []domain.SuggestedFolder{{Name: "travel", Color: ptr("#000000")}, {Name: "Recipes"}},
			Assignments: []domain.Assignment{
				{NoteID: "n2", FolderNames: []string{"travel", "Work"}},
				{NoteID: "n3", FolderNames: []string{"RECIPES"}},
			},
		},
		nil,
	}

	want := &domain.OrganizationResult{
		SuggestedFolders: []domain.SuggestedFolder{{Name: "Travel", Color: ptr("#0EA5E9")}, {Name: "Recipes"}},
		Assignments: []domain.Assignment{
			{NoteID: "n1", FolderNames: []string{"Travel"}},
			{NoteID: "n2", FolderNames: []string{"Travel", "Work"}},
			{NoteID: "n3", FolderNames: []string{"Recipes"}},
		},
	}

	got := MergeOrganizationResults(results)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeOrganizationResults() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeOrganizationResults_SingleResultUnchanged(t *testing.T) {
	single := &domain.OrganizationResult{
		SuggestedFolders: []domain.SuggestedFolder{{Name: "Travel", Color: ptr("#0EA5E9")}, {Name: "Recipes"}},
		Assignments: []domain.Assignment{
			{NoteID: "n2", FolderNames: []string{"Recipes"}},
			{NoteID: "n1", FolderNames: []string{"Travel", "Work"}},
			{NoteID: "n1", FolderNames: []string{"Travel"}},
		},
	}

	got := MergeOrganizationResults([]*domain.OrganizationResult{single})
	if diff := cmp.Diff(single, got); diff != "" {
		t.Errorf("MergeOrganizationResults() changed a single result (-want +got):\n%s", diff)
	}
}

func TestMergeOrganizationResults_NormalizesWithinOneResult(t *testing.T) {
	got := MergeOrganizationResults([]*domain.OrganizationResult{{
		SuggestedFolders: []domain.SuggestedFolder{{Name: "  Ideas "}, {Name: "IDEAS"}},
		Assignments:      []domain.Assignment{{NoteID: "n1", FolderNames: []string{"ideas"}}},
	}})

	want := &domain.OrganizationResult{
		SuggestedFolders: []domain.SuggestedFolder{{Name: "Ideas"}},
		Assignments:      []domain.Assignment{{NoteID: "n1", FolderNames: []string{"Ideas"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("MergeOrganizationResults() mismatch (-want +got):\n%s", diff)
	}
}

func TestMergeOrganizationResults_Idempotent(t *testing.T) {
	results := []*domain.OrganizationResult{
		{
			SuggestedFolders: []domain.SuggestedFolder{{Name: "Ideas"}, {Name: "IDEAS"}},
			Assignments:      []domain.Assignment{{NoteID: "n1", FolderNames: []string{"ideas"}}},
		},
		{
			SuggestedFolders: []domain.SuggestedFolder{{Name: "Books"}},
			Assignments:      []domain.Assignment{{NoteID: "n1", FolderNames: []string{"books"}}},
		},
	}

	once := MergeOrganizationResults(results)
	twice := MergeOrganizationResults([]*domain.OrganizationResult{once})
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("merging a merged result changed it (-once +twice):\n%s", diff)
	}
	if len(once.Assignments) != 2 {
		t.Errorf("assignments must not be deduplicated, got %d", len(once.Assignments))
	}
}

func TestMergeOrganizationResults_Empty(t *testing.T) {
	got := MergeOrganizationResults(nil)
	if got.SuggestedFolders == nil || got.Assignments == nil {
		t.Fatal("expected non-nil empty slices")
	}
	if len(got.SuggestedFolders) != 0 || len(got.Assignments) != 0 {
		t.Errorf("expected empty result, got %+v", got)
	}
}
