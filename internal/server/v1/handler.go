package v1

import (
	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/core/services"
	"github.com/nulzo/prompt-optimizer-api/internal/store"
)

// Handler serves the v1 optimization API.
type Handler struct {
	resolver  *services.Resolver
	batch     *services.BatchOptimizer
	scenarios []domain.Scenario
	repo      store.Repository // nil when run history is disabled
}

func NewHandler(resolver *services.Resolver, batch *services.BatchOptimizer, scenarios []domain.Scenario, repo store.Repository) *Handler {
	return &Handler{
		resolver:  resolver,
		batch:     batch,
		scenarios: scenarios,
		repo:      repo,
	}
}
