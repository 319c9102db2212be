package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/noteweaver/noteweaver/internal/plugins/schema"
)

const stepModelsFileName = "step_models.yaml"

// getStepModelFile returns the path of the step->model mapping file.
func getStepModelFile(configDir string) string {
	return filepath.Join(configDir, stepModelsFileName)
}

// loadStepModels loads the step->model mapping. A missing file is an empty mapping.
func loadStepModels(configDir string) (map[string]string, error) {
	data, err := os.ReadFile(getStepModelFile(configDir))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	mapping := map[string]string{}
	if err = yaml.Unmarshal(data, &mapping); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", stepModelsFileName, err)
	}
	return mapping, nil
}

func saveStepModels(configDir string, mapping map[string]string) error {
	path := getStepModelFile(configDir)
	if len(mapping) == 0 {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		return nil
	}
	data, err := yaml.Marshal(mapping)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// setStepModel parses STEP=MODEL and stores the override. Steps are response schema names.
func setStepModel(configDir, assignment string) error {
	step, model, ok := strings.Cut(assignment, "=")
	step, model = strings.TrimSpace(step), strings.TrimSpace(model)
	if !ok || step == "" || model == "" {
		return fmt.Errorf("expected STEP=MODEL, got %q", assignment)
	}
	if !lo.Contains(schema.Names(), step) {
		return fmt.Errorf("unknown step %q, expected one of %s", step, strings.Join(schema.Names(), ", "))
	}
	mapping, err := loadStepModels(configDir)
	if err != nil {
		return err
	}
	mapping[step] = model
	return saveStepModels(configDir, mapping)
}

// unsetStepModel removes a step override, deleting the file when nothing is left.
func unsetStepModel(configDir, step string) error {
	mapping, err := loadStepModels(configDir)
	if err != nil {
		return err
	}
	delete(mapping, strings.TrimSpace(step))
	return saveStepModels(configDir, mapping)
}

func listStepModels(w io.Writer, configDir string) error {
	mapping, err := loadStepModels(configDir)
	if err != nil {
		return err
	}
	steps := lo.Keys(mapping)
	sort.Strings(steps)
	for _, step := range steps {
		fmt.Fprintf(w, "%s: %s\n", step, mapping[step])
	}
	return nil
}
