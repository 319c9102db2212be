package schema

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

// Names of the response schemas the core asks models to satisfy.
const (
	Organize      = "organize"
	SelectFolders = "select_folders"
	Answer        = "answer"
	Classify      = "classify"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// Get returns the JSON schema registered under name.
func Get(name string) (string, error) {
	data, err := schemaFS.ReadFile("schemas/" + name + ".json")
	if err != nil {
		return "", fmt.Errorf("unknown response schema %q", name)
	}
	return string(data), nil
}

// Names lists the registered schemas in alphabetical order.
func Names() []string {
	entries, _ := schemaFS.ReadDir("schemas")
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}
