package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/nulzo/prompt-optimizer-api/pkg/api"
)

// HandleRecentRuns returns run history, newest first.
func (h *Handler) HandleRecentRuns(c *gin.Context) {
	if h.repo == nil {
		_ = c.Error(api.NewProblem(http.StatusNotFound, "Run History Disabled", "this deployment runs without a database"))
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	runs, err := h.repo.Runs().Recent(c.Request.Context(), limit)
	if err != nil {
		_ = c.Error(api.InternalProblem("Failed to list runs", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   runs,
	})
}

// HandleRunResults returns the per-scenario results of one run.
func (h *Handler) HandleRunResults(c *gin.Context) {
	if h.repo == nil {
		_ = c.Error(api.NewProblem(http.StatusNotFound, "Run History Disabled", "this deployment runs without a database"))
		return
	}

	results, err := h.repo.Runs().ResultsForRun(c.Request.Context(), c.Param("id"))
	if err != nil {
		_ = c.Error(api.InternalProblem("Failed to list run results", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   results,
	})
}
