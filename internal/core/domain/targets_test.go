package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
)

func newTestTable(t *testing.T) *domain.TargetTable {
	t.Helper()
	table, err := domain.NewTargetTable(
		[]string{"amazon.nova-lite-v1:0", "amazon.nova-pro-v1:0"},
		map[string]domain.RedirectRule{
			"amazon.nova-2-lite-v1:0": {
				Substitute: "amazon.nova-lite-v1:0",
				Reason:     "not yet supported, reusing Nova Lite 1.0 optimizations",
			},
		},
	)
	require.NoError(t, err)
	return table
}

func TestResolve_SupportedTarget(t *testing.T) {
	table := newTestTable(t)

	effective, rule, err := table.Resolve("amazon.nova-pro-v1:0")
	assert.NoError(t, err)
	assert.Equal(t, "amazon.nova-pro-v1:0", effective)
	assert.Nil(t, rule)
}

func TestResolve_RedirectedTarget(t *testing.T) {
	table := newTestTable(t)

	effective, rule, err := table.Resolve("amazon.nova-2-lite-v1:0")
	assert.NoError(t, err)
	assert.Equal(t, "amazon.nova-lite-v1:0", effective)
	require.NotNil(t, rule)
	assert.Equal(t, "amazon.nova-lite-v1:0", rule.Substitute)
	assert.NotEmpty(t, rule.Reason)
}

func TestResolve_UnknownTarget(t *testing.T) {
	table := newTestTable(t)

	_, _, err := table.Resolve("anthropic.claude-v9")
	var unknown *domain.UnknownTargetError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "anthropic.claude-v9", unknown.Target)
}

func TestNewTargetTable_RejectsOverlappingPartitions(t *testing.T) {
	_, err := domain.NewTargetTable(
		[]string{"amazon.nova-lite-v1:0"},
		map[string]domain.RedirectRule{
			"amazon.nova-lite-v1:0": {Substitute: "amazon.nova-lite-v1:0"},
		},
	)
	assert.Error(t, err)
}

func TestNewTargetTable_RejectsUnsupportedSubstitute(t *testing.T) {
	// Substitutes must themselves be supported, so redirects cannot chain.
	_, err := domain.NewTargetTable(
		[]string{"amazon.nova-lite-v1:0"},
		map[string]domain.RedirectRule{
			"amazon.nova-2-lite-v1:0": {Substitute: "amazon.nova-2-micro-v1:0"},
		},
	)
	assert.Error(t, err)
}

func TestNewTargetTable_RejectsEmptyIdentifiers(t *testing.T) {
	_, err := domain.NewTargetTable([]string{""}, nil)
	assert.Error(t, err)

	_, err = domain.NewTargetTable(
		[]string{"amazon.nova-lite-v1:0"},
		map[string]domain.RedirectRule{"": {Substitute: "amazon.nova-lite-v1:0"}},
	)
	assert.Error(t, err)
}

func TestAll_ContainsBothPartitionsSorted(t *testing.T) {
	table := newTestTable(t)

	assert.Equal(t, []string{
		"amazon.nova-2-lite-v1:0",
		"amazon.nova-lite-v1:0",
		"amazon.nova-pro-v1:0",
	}, table.All())
	assert.Equal(t, []string{"amazon.nova-lite-v1:0", "amazon.nova-pro-v1:0"}, table.Supported())
}
