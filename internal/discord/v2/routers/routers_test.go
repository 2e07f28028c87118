package routers_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/routers"
	"github.com/KirkDiggler/guild-verification-bot/internal/events"
	mockguild "github.com/KirkDiggler/guild-verification-bot/internal/guild/mock"
	mockverification "github.com/KirkDiggler/guild-verification-bot/internal/services/verification/mock"
	"github.com/KirkDiggler/guild-verification-bot/internal/uuid"
	"github.com/KirkDiggler/guild-verification-bot/internal/wizard"
)

type fixedChannel string

func (c fixedChannel) VerificationChannel() (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: string(c)}, nil
}

func setupPipeline(t *testing.T, maxRequests int) (*core.Pipeline, *core.MockResponder, *mockguild.MockClient) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mockguild.NewMockClient(ctrl)
	tracker := wizard.NewTracker(time.Minute)
	t.Cleanup(tracker.Stop)

	verify, err := handlers.NewVerificationHandler(&handlers.VerificationHandlerConfig{
		Service: mockverification.NewMockService(ctrl),
		Tracker: tracker,
		Events:  events.NewBus(),
		IDs:     &uuid.SequenceGenerator{Prefix: "s"},
	})
	require.NoError(t, err)

	welcome, err := handlers.NewWelcomeHandler(&handlers.WelcomeHandlerConfig{
		Guild:    client,
		Channels: fixedChannel("verify-channel"),
	})
	require.NoError(t, err)

	responder := core.NewMockResponder()
	pipeline := core.NewPipeline()
	pipeline.SetResponderFactory(func(*discordgo.Session, *discordgo.InteractionCreate) core.InteractionResponder {
		return responder
	})

	routers.NewAdminRouter(pipeline, welcome)
	routers.NewVerifyRouter(pipeline, &routers.VerifyRouterConfig{
		Handler:     verify,
		MaxRequests: maxRequests,
		Window:      time.Minute,
	})

	return pipeline, responder, client
}

func interaction(kind discordgo.InteractionType, data discordgo.InteractionData, channelID string, perms int64) *discordgo.InteractionCreate {
	return &discordgo.InteractionCreate{
		Interaction: &discordgo.Interaction{
			Type:      kind,
			Data:      data,
			GuildID:   "guild-1",
			ChannelID: channelID,
			Member: &discordgo.Member{
				User:        &discordgo.User{ID: "user-1"},
				Permissions: perms,
			},
		},
	}
}

func TestVerifyRouter_StartOpensModal(t *testing.T) {
	pipeline, responder, _ := setupPipeline(t, 5)

	err := pipeline.Execute(context.Background(), nil, interaction(discordgo.InteractionMessageComponent,
		discordgo.MessageComponentInteractionData{CustomID: "verify:start"}, "verify-channel", 0))

	require.NoError(t, err)
	last := responder.LastResponse()
	require.NotNil(t, last.Modal)
	assert.Equal(t, "verify:name:s-1", last.Modal.CustomID)
}

func TestVerifyRouter_RateLimited(t *testing.T) {
	pipeline, responder, _ := setupPipeline(t, 1)
	start := interaction(discordgo.InteractionMessageComponent,
		discordgo.MessageComponentInteractionData{CustomID: "verify:start"}, "verify-channel", 0)

	require.NoError(t, pipeline.Execute(context.Background(), nil, start))
	require.NoError(t, pipeline.Execute(context.Background(), nil, start))

	last := responder.LastResponse()
	assert.Nil(t, last.Modal)
	assert.Contains(t, last.Content, "too fast")
}

func TestAdminRouter_PostWelcome(t *testing.T) {
	command := discordgo.ApplicationCommandInteractionData{Name: routers.PostWelcomeCommand}

	t.Run("administrator in verification channel", func(t *testing.T) {
		pipeline, responder, client := setupPipeline(t, 5)
		client.EXPECT().SendMessage(gomock.Any(), "verify-channel", gomock.Any()).Return(&discordgo.Message{}, nil)

		err := pipeline.Execute(context.Background(), nil, interaction(discordgo.InteractionApplicationCommand,
			command, "verify-channel", discordgo.PermissionAdministrator))

		require.NoError(t, err)
		assert.Equal(t, "Welcome message posted!", responder.LastResponse().Content)
	})

	t.Run("administrator elsewhere", func(t *testing.T) {
		pipeline, responder, _ := setupPipeline(t, 5)

		err := pipeline.Execute(context.Background(), nil, interaction(discordgo.InteractionApplicationCommand,
			command, "general", discordgo.PermissionAdministrator))

		require.NoError(t, err)
		last := responder.LastResponse()
		assert.Equal(t, "This command can only be used in the verification channel.", last.Content)
		assert.Equal(t, 5*time.Second, last.DeleteAfter)
	})

	t.Run("non-administrator is refused", func(t *testing.T) {
		pipeline, responder, _ := setupPipeline(t, 5)

		err := pipeline.Execute(context.Background(), nil, interaction(discordgo.InteractionApplicationCommand,
			command, "verify-channel", 0))

		require.NoError(t, err)
		assert.Contains(t, responder.LastResponse().Content, "Administrator permission")
	})
}

func TestPostWelcomeCommandDefinition(t *testing.T) {
	def := routers.PostWelcomeCommandDefinition

	assert.Equal(t, "post_welcome", def.Name)
	require.NotNil(t, def.DefaultMemberPermissions)
	assert.Equal(t, int64(discordgo.PermissionAdministrator), *def.DefaultMemberPermissions)
}
