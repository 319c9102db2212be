package domain

// SuggestedFolder is a folder proposed by the model that does not exist yet.
type SuggestedFolder struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
}

// Assignment maps one note to the folders it should live in.
type Assignment struct {
	NoteID      string   `json:"note_id"`
	FolderNames []string `json:"folder_names"`
}

// OrganizationResult is a dry-run proposal; nothing is persisted until it is applied.
type OrganizationResult struct {
	SuggestedFolders []SuggestedFolder `json:"suggested_folders"`
	Assignments      []Assignment      `json:"assignments"`
}

// NewOrganizationResult returns an empty result with non-nil slices so it encodes as [] rather than null.
func NewOrganizationResult() *OrganizationResult {
	return &OrganizationResult{
		SuggestedFolders: []SuggestedFolder{},
		Assignments:      []Assignment{},
	}
}

// FolderSelection is the outcome of the first chat step.
type FolderSelection struct {
	Reasoning         string   `json:"reasoning"`
	SelectedFolderIDs []string `json:"selected_folder_ids"`
}

// Answer is the outcome of the second chat step.
type Answer struct {
	Reasoning         string   `json:"reasoning"`
	Answer            string   `json:"answer"`
	ReferencedNoteIDs []string `json:"referenced_note_ids"`

	// ExaminedNotes lists the notes actually placed in the prompt.
	ExaminedNotes []*Note `json:"-"`
}

// Classification labels a single note as inspiration or task.
type Classification struct {
	Classification string  `json:"classification"`
	Confidence     float64 `json:"confidence"`
	Reasoning      string  `json:"reasoning"`
}

const (
	ClassificationInspiration = "inspiration"
	ClassificationTask        = "task"
)
