package server

import (
	"github.com/nulzo/prompt-optimizer-api/internal/server/middleware"
	v1 "github.com/nulzo/prompt-optimizer-api/internal/server/v1"
)

func (s *Server) SetupRoutes() {
	// 1. Global Middleware
	s.router.Use(middleware.CORS())
	s.router.Use(middleware.ErrorHandler(s.logger))

	// 2. Health Check (Public)
	healthHandler := v1.NewHealthHandler()
	s.router.GET("/health", healthHandler.Health)

	// 3. API V1 Group
	api := s.router.Group("/v1")
	api.Use(middleware.Auth(s.config.Server.APIKeys))

	limiter := middleware.NewRateLimiter(s.config.RateLimit.RequestsPerSecond, s.config.RateLimit.Burst, s.logger)
	api.Use(limiter.Middleware())

	{
		handler := v1.NewHandler(s.resolver, s.batch, s.scenarios, s.repo)
		api.POST("/optimize", handler.HandleOptimize)
		api.POST("/optimize/batch", handler.HandleBatchOptimize)
		api.GET("/targets", handler.HandleListTargets)
		api.GET("/runs/recent", handler.HandleRecentRuns)
		api.GET("/runs/:id/results", handler.HandleRunResults)
	}
}
