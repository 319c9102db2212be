package core

import (
	"strings"

	"github.com/noteweaver/noteweaver/internal/domain"
	"github.com/samber/lo"
)

// MergeOrganizationResults combines per-batch results into one.
// Suggested folders are deduplicated ignoring case, the first spelling and color win,
// and assignment folder names are rewritten to the winning spelling.
// Assignments are kept in order and never deduplicated.
// A single clean result comes back unchanged. Folder names are trimmed and case duplicates
// are dropped within one result as well as across results.
func MergeOrganizationResults(results []*domain.OrganizationResult) *domain.OrganizationResult {
	merged := domain.NewOrganizationResult()
	spelling := map[string]string{}

	for _, result := range results {
		if result == nil {
			continue
		}
		for _, folder := range result.SuggestedFolders {
			name := strings.TrimSpace(folder.Name)
			key := domain.FolderKey(name)
			if key == "" {
				continue
			}
			if _, seen := spelling[key]; seen {
				continue
			}
			spelling[key] = name
			merged.SuggestedFolders = append(merged.SuggestedFolders, domain.SuggestedFolder{Name: name, Color: folder.Color})
		}
	}

	for _, result := range results {
		if result == nil {
			continue
		}
		for _, assignment := range result.Assignments {
			names := lo.Map(assignment.FolderNames, func(name string, _ int) string {
				if canonical, ok := spelling[domain.FolderKey(name)]; ok {
					return canonical
				}
				return name
			})
			merged.Assignments = append(merged.Assignments, domain.Assignment{NoteID: assignment.NoteID, FolderNames: names})
		}
	}
	return merged
}
