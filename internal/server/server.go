package server

import (
	"net/http"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nulzo/prompt-optimizer-api/internal/config"
	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/core/services"
	"github.com/nulzo/prompt-optimizer-api/internal/server/middleware"
	"github.com/nulzo/prompt-optimizer-api/internal/server/validator"
	"github.com/nulzo/prompt-optimizer-api/internal/store"
)

const serviceName = "prompt-optimizer-api"

type Server struct {
	router    *gin.Engine
	config    *config.Config
	logger    *zap.Logger
	resolver  *services.Resolver
	batch     *services.BatchOptimizer
	scenarios []domain.Scenario
	repo      store.Repository
}

func New(cfg *config.Config, logger *zap.Logger, resolver *services.Resolver, batch *services.BatchOptimizer, scenarios []domain.Scenario, repo store.Repository) *Server {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	validator.InitValidator()

	engine := gin.New()

	engine.Use(ginzap.RecoveryWithZap(logger, true))
	engine.Use(middleware.Logger(logger))
	engine.Use(middleware.Tracing(serviceName))

	s := &Server{
		router:    engine,
		config:    cfg,
		logger:    logger,
		resolver:  resolver,
		batch:     batch,
		scenarios: scenarios,
		repo:      repo,
	}

	s.SetupRoutes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}
