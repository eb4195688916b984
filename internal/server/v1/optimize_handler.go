package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/server/validator"
	"github.com/nulzo/prompt-optimizer-api/pkg/api"
)

// HandleOptimize resolves a single (prompt, target) pair.
func (h *Handler) HandleOptimize(c *gin.Context) {
	var req api.OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationProblem(validator.ParseValidationError(err)))
		return
	}

	res, err := h.resolver.Resolve(c.Request.Context(), req.Prompt, req.Target)
	if err != nil {
		// the error middleware maps domain errors to problems
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, h.toOptimizeResponse(res))
}

// HandleBatchOptimize resolves a scenario collection for one target. Inline
// scenarios take precedence over the server's configured collection.
func (h *Handler) HandleBatchOptimize(c *gin.Context) {
	var req api.BatchOptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(api.ValidationProblem(validator.ParseValidationError(err)))
		return
	}

	collection := h.scenarios
	if len(req.Scenarios) > 0 {
		collection = make([]domain.Scenario, 0, len(req.Scenarios))
		for _, sc := range req.Scenarios {
			collection = append(collection, domain.Scenario{
				Key:               sc.Key,
				Name:              sc.Name,
				Prompt:            sc.Prompt,
				KeyIssues:         sc.KeyIssues,
				RequiredSolutions: sc.RequiredSolutions,
				Policies:          sc.Policies,
			})
		}
	}

	out, err := h.batch.OptimizeScenarios(c.Request.Context(), collection, req.Target)
	if err != nil {
		_ = c.Error(err)
		return
	}

	resp := api.BatchOptimizeResponse{
		RunID:     out.RunID,
		Target:    out.Target,
		Scenarios: make(map[string]api.OptimizedScenario, len(out.Scenarios)),
	}
	if len(out.Failures) > 0 {
		resp.Failures = out.Failures
	}
	for key, sc := range out.Scenarios {
		resp.Scenarios[key] = api.OptimizedScenario{
			Name:              sc.Name,
			Prompt:            sc.Prompt,
			KeyIssues:         sc.KeyIssues,
			RequiredSolutions: sc.RequiredSolutions,
			Policies:          sc.Policies,
			Metadata: api.OptimizationMetadata{
				OriginalLength:  sc.Metadata.OriginalLength,
				OptimizedLength: sc.Metadata.OptimizedLength,
				TargetModel:     sc.Metadata.TargetModel,
				Method:          sc.Metadata.Method.Label(),
				Timestamp:       sc.Metadata.Timestamp,
			},
		}
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) toOptimizeResponse(res domain.Result) api.OptimizeResponse {
	resp := api.OptimizeResponse{
		RequestedTarget: res.RequestedTarget,
		EffectiveTarget: res.EffectiveTarget,
		Method:          res.Method.Label(),
		Original:        res.Original,
		Optimized:       res.Optimized,
		Analysis:        res.Analysis,
		OriginalLength:  res.OriginalLength,
		OptimizedLength: res.OptimizedLength,
		Timestamp:       res.CreatedAt,
	}

	if res.Method.Kind == domain.MethodRedirected {
		if rule, ok := h.resolver.Targets().Redirects()[res.RequestedTarget]; ok {
			resp.Reason = rule.Reason
		}
	}

	return resp
}
