package v2

import (
	"time"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/routers"
	"github.com/KirkDiggler/guild-verification-bot/internal/uuid"
)

// PipelineConfig holds the handlers and limits the pipeline is built from
type PipelineConfig struct {
	Verification *handlers.VerificationHandler // Required
	Welcome      *handlers.WelcomeHandler      // Required

	MaxRequests    int
	Window         time.Duration
	RateLimitStore middleware.RateLimitStore // Optional, in-memory if nil

	// RequestIDs generates the id attached to each interaction's logs
	RequestIDs uuid.Generator
}

// SetupPipeline creates the pipeline with global middleware and every router
func SetupPipeline(cfg *PipelineConfig) *core.Pipeline {
	pipeline := core.NewPipeline()

	pipeline.Use(
		middleware.RecoveryMiddleware(),
		middleware.RequestIDMiddleware(cfg.RequestIDs),
		middleware.LoggingMiddleware(nil),
		middleware.ErrorMiddleware(nil),
	)

	routers.NewAdminRouter(pipeline, cfg.Welcome)
	routers.NewVerifyRouter(pipeline, &routers.VerifyRouterConfig{
		Handler:        cfg.Verification,
		MaxRequests:    cfg.MaxRequests,
		Window:         cfg.Window,
		RateLimitStore: cfg.RateLimitStore,
	})

	return pipeline
}
