package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
)

// filenameReplacer strips path-unsafe characters out of target identifiers
// (":" and "." show up in model IDs like "amazon.nova-lite-v1:0").
var filenameReplacer = strings.NewReplacer(":", "_", ".", "_", "/", "_")

// Writer serializes batch outcomes to one JSON document per target.
type Writer struct {
	dir string
}

func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// FileName derives the output file name for a target identifier.
func FileName(target string) string {
	return fmt.Sprintf("optimized_prompts_%s.json", filenameReplacer.Replace(target))
}

// Write persists the optimized scenarios for one target and returns the path
// of the written document.
func (w *Writer) Write(target string, scenarios map[string]domain.OptimizedScenario) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	data, err := json.MarshalIndent(scenarios, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal scenarios for %s: %w", target, err)
	}

	path := filepath.Join(w.dir, FileName(target))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}

	return path, nil
}

// Load reads a previously written document back, keyed by scenario key.
func (w *Writer) Load(target string) (map[string]domain.OptimizedScenario, error) {
	path := filepath.Join(w.dir, FileName(target))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenarios map[string]domain.OptimizedScenario
	if err := json.Unmarshal(data, &scenarios); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return scenarios, nil
}
