package middleware

import (
	"errors"
	"fmt"
	"log"
	"runtime/debug"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
	apperr "github.com/KirkDiggler/guild-verification-bot/internal/errors"
)

// ErrorConfig configures error handling behavior
type ErrorConfig struct {
	// LogErrors controls whether errors are logged
	LogErrors bool

	// DefaultUserMessage is shown for failures without a classified message
	DefaultUserMessage string

	// ErrorLogger allows custom logging
	ErrorLogger ErrorLogger
}

// ErrorLogger logs errors
type ErrorLogger func(ctx *core.InteractionContext, err error)

// DefaultErrorConfig returns sensible defaults
func DefaultErrorConfig() *ErrorConfig {
	return &ErrorConfig{
		LogErrors:          true,
		DefaultUserMessage: "An error occurred while processing your request. Please try again.",
		ErrorLogger:        defaultErrorLogger,
	}
}

// ErrorMiddleware turns handler errors into ephemeral replies so nothing
// propagates to the gateway loop.
func ErrorMiddleware(config *ErrorConfig) core.Middleware {
	if config == nil {
		config = DefaultErrorConfig()
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			result, err := next.Handle(ctx)
			if err == nil {
				return result, nil
			}

			if config.LogErrors && config.ErrorLogger != nil {
				config.ErrorLogger(ctx, err)
			}

			return &core.HandlerResult{
				Response: createErrorResponse(err, config),
			}, nil
		})
	}
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() core.Middleware {
	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (result *core.HandlerResult, err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				var panicErr error
				switch v := r.(type) {
				case error:
					panicErr = v
				case string:
					panicErr = errors.New(v)
				default:
					panicErr = fmt.Errorf("panic: %v", r)
				}

				log.Printf("[Recovery] Panic in handler for %s%s: %v\n%s",
					ctx.GetCommandName(), ctx.GetCustomID(), panicErr, debug.Stack())

				result = &core.HandlerResult{
					Response: core.NewEphemeralResponse("❌ An unexpected error occurred. Please try again later."),
				}
				err = nil
			}()

			return next.Handle(ctx)
		})
	}
}

// createErrorResponse creates a user-friendly error response
func createErrorResponse(err error, config *ErrorConfig) *core.Response {
	handlerErr := core.FromError(err, config.DefaultUserMessage)

	message := config.DefaultUserMessage
	if handlerErr.ShowToUser && handlerErr.UserMessage != "" {
		message = handlerErr.UserMessage
	}

	return core.NewEphemeralResponse("❌ " + message)
}

// defaultErrorLogger logs the failure with enough context to find the member
func defaultErrorLogger(ctx *core.InteractionContext, err error) {
	interaction := "unknown"
	switch {
	case ctx.IsCommand():
		interaction = "command " + ctx.GetCommandName()
	case ctx.IsComponent():
		interaction = "component " + ctx.GetCustomID()
	case ctx.IsModal():
		interaction = "modal " + ctx.GetCustomID()
	}

	requestID, _ := ctx.Value(RequestIDKey).(string)

	log.Printf("[Discord] Error in %s (request %s, user %s, guild %s, channel %s, code %s): %v",
		interaction, requestID, ctx.UserID, ctx.GuildID, ctx.ChannelID, apperr.GetCode(err), err)
}
