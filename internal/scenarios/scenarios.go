// Package scenarios owns the evaluation scenario collection: a built-in
// default set of support-ticket prompts, plus a YAML loader for custom
// collections.
package scenarios

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
)

//go:embed defaults.yaml
var defaultsYAML []byte

type fileFormat struct {
	Scenarios []domain.Scenario `yaml:"scenarios"`
}

// Default returns the built-in scenario collection.
func Default() []domain.Scenario {
	collection, err := parse(defaultsYAML)
	if err != nil {
		// The embedded collection is validated by tests; a parse failure
		// here is a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded scenario collection is invalid: %v", err))
	}
	return collection
}

// LoadFile reads a scenario collection from a YAML file.
func LoadFile(path string) ([]domain.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	collection, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid scenario file %s: %w", path, err)
	}
	return collection, nil
}

func parse(data []byte) ([]domain.Scenario, error) {
	var f fileFormat
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if len(f.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios defined")
	}

	seen := make(map[string]struct{}, len(f.Scenarios))
	for i, sc := range f.Scenarios {
		if sc.Key == "" {
			return nil, fmt.Errorf("scenario %d has no key", i)
		}
		if sc.Prompt == "" {
			return nil, fmt.Errorf("scenario %q has no prompt", sc.Key)
		}
		if _, dup := seen[sc.Key]; dup {
			return nil, fmt.Errorf("duplicate scenario key %q", sc.Key)
		}
		seen[sc.Key] = struct{}{}
	}

	return f.Scenarios, nil
}
