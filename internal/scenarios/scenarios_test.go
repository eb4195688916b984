package scenarios_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulzo/prompt-optimizer-api/internal/scenarios"
)

func TestDefault_BuiltInCollection(t *testing.T) {
	collection := scenarios.Default()
	require.Len(t, collection, 5)

	keys := make([]string, 0, len(collection))
	for _, sc := range collection {
		keys = append(keys, sc.Key)
		assert.NotEmpty(t, sc.Name, "scenario %s has no name", sc.Key)
		assert.NotEmpty(t, sc.Prompt, "scenario %s has no prompt", sc.Key)
	}
	assert.Equal(t, []string{
		"angry_customer",
		"technical_issue",
		"billing_dispute",
		"product_defect",
		"account_security",
	}, keys)
}

func TestLoadFile_ValidCollection(t *testing.T) {
	path := writeTemp(t, `
scenarios:
  - key: custom
    name: Custom Scenario
    prompt: handle this ticket
    key_issues: [one, two]
`)

	collection, err := scenarios.LoadFile(path)
	require.NoError(t, err)
	require.Len(t, collection, 1)
	assert.Equal(t, "custom", collection[0].Key)
	assert.Equal(t, []string{"one", "two"}, collection[0].KeyIssues)
}

func TestLoadFile_RejectsDuplicateKeys(t *testing.T) {
	path := writeTemp(t, `
scenarios:
  - key: dup
    prompt: first
  - key: dup
    prompt: second
`)

	_, err := scenarios.LoadFile(path)
	assert.ErrorContains(t, err, "duplicate scenario key")
}

func TestLoadFile_RejectsMissingFields(t *testing.T) {
	_, err := scenarios.LoadFile(writeTemp(t, "scenarios:\n  - name: no key\n    prompt: p\n"))
	assert.ErrorContains(t, err, "no key")

	_, err = scenarios.LoadFile(writeTemp(t, "scenarios:\n  - key: k\n    name: no prompt\n"))
	assert.ErrorContains(t, err, "no prompt")

	_, err = scenarios.LoadFile(writeTemp(t, "scenarios: []\n"))
	assert.ErrorContains(t, err, "no scenarios")
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := scenarios.LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
