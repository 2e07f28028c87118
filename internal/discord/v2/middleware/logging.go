package middleware

import (
	"log"
	"time"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/guild-verification-bot/internal/uuid"
)

type contextKey string

// RequestIDKey stores the request id on the interaction context
const RequestIDKey contextKey = "request_id"

// LogConfig configures logging behavior
type LogConfig struct {
	// LogRequests logs incoming interactions
	LogRequests bool

	// LogDuration logs handler execution time
	LogDuration bool

	// Logger allows custom logging implementation
	Logger Logger

	// RequestFilter filters which requests to log
	RequestFilter func(*core.InteractionContext) bool
}

// Logger is a custom logging interface
type Logger interface {
	LogRequest(ctx *core.InteractionContext)
	LogResponse(ctx *core.InteractionContext, result *core.HandlerResult, duration time.Duration)
}

// DefaultLogConfig returns sensible defaults
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		LogRequests: true,
		LogDuration: true,
		Logger:      &defaultLogger{},
	}
}

// LoggingMiddleware provides request/response logging
func LoggingMiddleware(config *LogConfig) core.Middleware {
	if config == nil {
		config = DefaultLogConfig()
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			if config.Logger == nil || (config.RequestFilter != nil && !config.RequestFilter(ctx)) {
				return next.Handle(ctx)
			}

			if config.LogRequests {
				config.Logger.LogRequest(ctx)
			}

			start := time.Now()
			result, err := next.Handle(ctx)

			if config.LogDuration {
				config.Logger.LogResponse(ctx, result, time.Since(start))
			}

			return result, err
		})
	}
}

// defaultLogger provides basic stdout logging
type defaultLogger struct{}

func (l *defaultLogger) LogRequest(ctx *core.InteractionContext) {
	requestID, _ := ctx.Value(RequestIDKey).(string)

	switch {
	case ctx.IsCommand():
		log.Printf("[Discord] [%s] Command: %s, User: %s, Guild: %s, Channel: %s",
			requestID, ctx.GetCommandName(), ctx.UserID, ctx.GuildID, ctx.ChannelID)
	case ctx.IsComponent():
		log.Printf("[Discord] [%s] Component: %s, User: %s, Guild: %s",
			requestID, ctx.GetCustomID(), ctx.UserID, ctx.GuildID)
	case ctx.IsModal():
		log.Printf("[Discord] [%s] Modal: %s, User: %s, Guild: %s",
			requestID, ctx.GetCustomID(), ctx.UserID, ctx.GuildID)
	}
}

func (l *defaultLogger) LogResponse(ctx *core.InteractionContext, result *core.HandlerResult, duration time.Duration) {
	requestID, _ := ctx.Value(RequestIDKey).(string)

	status := "success"
	switch {
	case result == nil || result.Response == nil:
		status = "no_response"
	case result.Response.Modal != nil:
		status = "modal"
	case result.Response.Update:
		status = "update"
	case result.Response.Ephemeral:
		status = "ephemeral"
	}

	log.Printf("[Discord] [%s] Response: %s, Duration: %v", requestID, status, duration)
}

// RequestIDMiddleware adds a unique request ID to the context
func RequestIDMiddleware(generator uuid.Generator) core.Middleware {
	if generator == nil {
		generator = uuid.NewGoogleUUIDGenerator()
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			ctx.WithValue(RequestIDKey, generator.New())
			return next.Handle(ctx)
		})
	}
}
