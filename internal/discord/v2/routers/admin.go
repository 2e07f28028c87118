package routers

import (
	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/middleware"
)

// PostWelcomeCommand is the administrator command that re-posts the
// welcome message
const PostWelcomeCommand = "post_welcome"

var adminPermission int64 = discordgo.PermissionAdministrator

// PostWelcomeCommandDefinition is registered with Discord on ready. Discord
// hides it from non-administrators; the router checks again on use.
var PostWelcomeCommandDefinition = &discordgo.ApplicationCommand{
	Name:                     PostWelcomeCommand,
	Description:              "Post the verification welcome message in this channel",
	DefaultMemberPermissions: &adminPermission,
}

// AdminRouter handles administrator commands
type AdminRouter struct {
	router  *core.Router
	welcome *handlers.WelcomeHandler
}

// NewAdminRouter creates the router and registers it with the pipeline
func NewAdminRouter(pipeline *core.Pipeline, welcome *handlers.WelcomeHandler) *AdminRouter {
	router := core.NewRouter(PostWelcomeCommand, pipeline)

	ar := &AdminRouter{
		router:  router,
		welcome: welcome,
	}

	router.Use(middleware.AdministratorOnlyMiddleware(handlers.WrongChannelReplyTTL))
	router.CommandFunc(PostWelcomeCommand, ar.welcome.HandlePostWelcome)
	router.Register()

	return ar
}
