package routers

import (
	"time"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/middleware"
)

// VerifyRouter handles the Start button, the name modal and the selection
// buttons
type VerifyRouter struct {
	router  *core.Router
	handler *handlers.VerificationHandler
}

// VerifyRouterConfig holds the configuration
type VerifyRouterConfig struct {
	Handler *handlers.VerificationHandler

	// Per-member limit across every step of the flow
	MaxRequests    int
	Window         time.Duration
	RateLimitStore middleware.RateLimitStore // Optional, in-memory if nil
}

// NewVerifyRouter creates the router and registers it with the pipeline
func NewVerifyRouter(pipeline *core.Pipeline, cfg *VerifyRouterConfig) *VerifyRouter {
	router := core.NewRouter(handlers.Domain, pipeline)

	vr := &VerifyRouter{
		router:  router,
		handler: cfg.Handler,
	}

	if cfg.MaxRequests > 0 && cfg.Window > 0 {
		router.Use(middleware.UserRateLimitMiddleware(cfg.MaxRequests, cfg.Window, cfg.RateLimitStore))
	}

	vr.registerRoutes()
	router.Register()

	return vr
}

func (r *VerifyRouter) registerRoutes() {
	r.router.ComponentFunc(handlers.ActionStart, r.handler.HandleStart)
	r.router.ModalFunc(handlers.ActionName, r.handler.HandleNameSubmit)
	r.router.ComponentFunc(handlers.ActionClass, r.handler.HandleClassSelect)
	r.router.ComponentFunc(handlers.ActionRole, r.handler.HandleRoleSelect)
}
