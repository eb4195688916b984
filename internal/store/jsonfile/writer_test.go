package jsonfile_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/store/jsonfile"
)

func TestFileName_ReplacesPathUnsafeCharacters(t *testing.T) {
	assert.Equal(t, "optimized_prompts_amazon_nova-lite-v1_0.json",
		jsonfile.FileName("amazon.nova-lite-v1:0"))
	assert.Equal(t, "optimized_prompts_org_model_v2.json",
		jsonfile.FileName("org/model:v2"))
}

func TestWriter_WriteLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	w := jsonfile.NewWriter(filepath.Join(dir, "out"))

	scenarios := map[string]domain.OptimizedScenario{
		"angry_customer": {
			Name:      "Angry Customer",
			Prompt:    "## Task\n\noptimized",
			KeyIssues: []string{"late delivery"},
			Metadata: domain.Metadata{
				OriginalLength:  11,
				OptimizedLength: 20,
				TargetModel:     "amazon.nova-2-lite-v1:0",
				Method:          domain.RedirectedMethod("amazon.nova-lite-v1:0"),
				Timestamp:       time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
			},
		},
	}

	path, err := w.Write("amazon.nova-2-lite-v1:0", scenarios)
	require.NoError(t, err)
	assert.Equal(t, "optimized_prompts_amazon_nova-2-lite-v1_0.json", filepath.Base(path))

	loaded, err := w.Load("amazon.nova-2-lite-v1:0")
	require.NoError(t, err)
	assert.Equal(t, scenarios, loaded)
}

func TestWriter_MetadataKeyOnWire(t *testing.T) {
	dir := t.TempDir()
	w := jsonfile.NewWriter(dir)

	_, err := w.Write("amazon.nova-lite-v1:0", map[string]domain.OptimizedScenario{
		"k": {Name: "n", Prompt: "p", Metadata: domain.Metadata{Method: domain.DirectMethod()}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, jsonfile.FileName("amazon.nova-lite-v1:0")))
	require.NoError(t, err)

	var doc map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Contains(t, doc, "k")
	assert.Contains(t, doc["k"], "_optimization_metadata")

	var meta map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(doc["k"]["_optimization_metadata"], &meta))
	assert.JSONEq(t, `"direct"`, string(meta["method"]))
}
