package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/pkg/api"
)

// ErrorHandler converts errors attached by handlers into RFC 9457 responses.
// Domain errors get mapped to their canonical problem here so handlers can
// push resolver errors through unchanged.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		problem := toProblem(err)
		if problem.Log != nil {
			logger.Error("request failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(problem.Log),
			)
		}

		// RFC 9457 dictates the json is at the root
		c.JSON(problem.Status, problem)
		c.Abort()
	}
}

func toProblem(err error) *api.Problem {
	var problem *api.Problem
	if errors.As(err, &problem) {
		return problem
	}

	var unknownTarget *domain.UnknownTargetError
	if errors.As(err, &unknownTarget) {
		return api.UnknownTargetProblem(unknownTarget.Target)
	}

	var upstream *domain.UpstreamError
	if errors.As(err, &upstream) {
		return api.UpstreamProblem(upstream.Error(), upstream.Err)
	}

	if errors.Is(err, domain.ErrEmptyPrompt) {
		return api.BadRequestProblem(err.Error())
	}

	// catch-all server error for anything unrecognized
	return api.NewProblem(http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred.", api.WithLog(err))
}
