package middleware

import (
	"time"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
)

// AuthConfig configures authorization behavior
type AuthConfig struct {
	// RequireGuildMember requires the interaction to come from a guild
	RequireGuildMember bool

	// RequireAdministrator requires the Administrator permission in the channel
	RequireAdministrator bool

	// DeleteAfter removes the refusal after the given duration
	DeleteAfter time.Duration
}

// AuthorizationMiddleware checks if user is authorized
func AuthorizationMiddleware(config *AuthConfig) core.Middleware {
	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			if config.RequireGuildMember && ctx.GuildID == "" {
				return unauthorizedResponse(config, "This command can only be used in a server."), nil
			}

			if config.RequireAdministrator && !ctx.IsAdministrator() {
				return unauthorizedResponse(config, "You need the Administrator permission to use this command."), nil
			}

			return next.Handle(ctx)
		})
	}
}

// AdministratorOnlyMiddleware restricts a route to guild administrators
func AdministratorOnlyMiddleware(deleteAfter time.Duration) core.Middleware {
	return AuthorizationMiddleware(&AuthConfig{
		RequireGuildMember:   true,
		RequireAdministrator: true,
		DeleteAfter:          deleteAfter,
	})
}

// unauthorizedResponse creates an unauthorized error response
func unauthorizedResponse(config *AuthConfig, message string) *core.HandlerResult {
	return &core.HandlerResult{
		Response: core.NewEphemeralResponse("❌ " + message).DeletedAfter(config.DeleteAfter),
	}
}
