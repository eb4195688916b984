package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nulzo/prompt-optimizer-api/internal/store"
	"github.com/nulzo/prompt-optimizer-api/internal/store/model"
	"github.com/nulzo/prompt-optimizer-api/internal/store/sqlite"
)

func newTestRepo(t *testing.T) store.Repository {
	t.Helper()
	dsn := "file:" + filepath.Join(t.TempDir(), "runs.db") + "?cache=shared&mode=rwc"
	repo, err := sqlite.NewSQLiteStorage(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func sampleRun(id string, startedAt time.Time) *model.Run {
	return &model.Run{
		ID:            id,
		Target:        "amazon.nova-lite-v1:0",
		Optimizer:     "mock",
		ScenarioCount: 2,
		DirectCount:   2,
		StartedAt:     startedAt,
		FinishedAt:    startedAt.Add(time.Second),
	}
}

func TestRunRepository_CreateAndList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.Runs().Create(ctx, sampleRun("run-1", now.Add(-time.Minute))))
	require.NoError(t, repo.Runs().Create(ctx, sampleRun("run-2", now)))

	runs, err := repo.Runs().Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	// Newest first.
	assert.Equal(t, "run-2", runs[0].ID)
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Equal(t, "mock", runs[0].Optimizer)

	runs, err = repo.Runs().Recent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestRunRepository_ResultsForRun(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.Runs().Create(ctx, sampleRun("run-1", now)))

	results := []*model.RunResult{
		{
			ID:              "res-2",
			RunID:           "run-1",
			ScenarioKey:     "technical_issue",
			RequestedTarget: "amazon.nova-lite-v1:0",
			EffectiveTarget: "amazon.nova-lite-v1:0",
			Method:          "direct",
			OriginalLength:  10,
			OptimizedLength: 40,
			CreatedAt:       now,
		},
		{
			ID:              "res-1",
			RunID:           "run-1",
			ScenarioKey:     "angry_customer",
			RequestedTarget: "amazon.nova-2-lite-v1:0",
			EffectiveTarget: "amazon.nova-lite-v1:0",
			Method:          "redirected-from:amazon.nova-lite-v1:0",
			Reason:          "not yet supported",
			OriginalLength:  12,
			OptimizedLength: 44,
			CreatedAt:       now,
		},
	}
	for _, res := range results {
		require.NoError(t, repo.Runs().LogResult(ctx, res))
	}

	got, err := repo.Runs().ResultsForRun(ctx, "run-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered by scenario key.
	assert.Equal(t, "angry_customer", got[0].ScenarioKey)
	assert.Equal(t, "redirected-from:amazon.nova-lite-v1:0", got[0].Method)
	assert.Equal(t, "not yet supported", got[0].Reason)
	assert.Equal(t, "technical_issue", got[1].ScenarioKey)

	empty, err := repo.Runs().ResultsForRun(ctx, "no-such-run")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestWithTx_RollsBackOnError(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	err := repo.WithTx(ctx, func(txRepo store.Repository) error {
		if err := txRepo.Runs().Create(ctx, sampleRun("run-rollback", now)); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	runs, err := repo.Runs().Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	err := repo.WithTx(ctx, func(txRepo store.Repository) error {
		return txRepo.Runs().Create(ctx, sampleRun("run-commit", now))
	})
	require.NoError(t, err)

	runs, err := repo.Runs().Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "run-commit", runs[0].ID)
}
