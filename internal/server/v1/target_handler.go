package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nulzo/prompt-optimizer-api/pkg/api"
)

// HandleListTargets exposes the configured target tables.
func (h *Handler) HandleListTargets(c *gin.Context) {
	table := h.resolver.Targets()
	redirects := table.Redirects()

	targets := make([]api.TargetInfo, 0, len(table.Supported())+len(redirects))
	for _, id := range table.Supported() {
		targets = append(targets, api.TargetInfo{ID: id, Supported: true})
	}
	for _, id := range table.All() {
		rule, ok := redirects[id]
		if !ok {
			continue
		}
		targets = append(targets, api.TargetInfo{
			ID:         id,
			Supported:  false,
			Substitute: rule.Substitute,
			Reason:     rule.Reason,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   targets,
	})
}
