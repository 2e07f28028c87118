package services_test

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/KirkDiggler/guild-verification-bot/internal/events"
	mockguild "github.com/KirkDiggler/guild-verification-bot/internal/guild/mock"
	"github.com/KirkDiggler/guild-verification-bot/internal/registry"
	"github.com/KirkDiggler/guild-verification-bot/internal/services"
)

func newProviderConfig(client *mockguild.MockClient) *services.ProviderConfig {
	return &services.ProviderConfig{
		Guild:         client,
		Classes:       registry.MustNew("class", []registry.Entry{{DisplayName: "Mage", RoleID: "r-mage"}}),
		GameplayRoles: registry.MustNew("gameplay role", []registry.Entry{{DisplayName: "Heal", RoleID: "r-heal"}}),
		OfficerRoleID: "officers",
		ChannelID:     "verify-channel",
	}
}

func TestNewProvider_SubscribesNotifier(t *testing.T) {
	client := mockguild.NewMockClient(gomock.NewController(t))

	provider, err := services.NewProvider(newProviderConfig(client))
	require.NoError(t, err)

	assert.NotNil(t, provider.VerificationService)
	assert.NotNil(t, provider.NotificationService)
	assert.Equal(t, 1, provider.EventBus.ListenerCount(events.EventTypeVerificationCompleted))

	client.EXPECT().Role(gomock.Any(), "guild-1", "officers").Return(&discordgo.Role{ID: "officers"}, nil)
	client.EXPECT().SendMessage(gomock.Any(), "verify-channel", gomock.Any()).Return(&discordgo.Message{}, nil)

	err = provider.EventBus.Emit(context.Background(), events.NewVerificationCompletedEvent(events.CompletionRecord{
		GuildID: "guild-1",
		UserID:  "user-1",
	}))
	assert.NoError(t, err)
}

func TestNewProvider_UsesGivenBus(t *testing.T) {
	client := mockguild.NewMockClient(gomock.NewController(t))
	bus := events.NewBus()

	cfg := newProviderConfig(client)
	cfg.EventBus = bus

	provider, err := services.NewProvider(cfg)
	require.NoError(t, err)
	assert.Same(t, bus, provider.EventBus)
}

func TestNewProvider_MissingOfficerRole(t *testing.T) {
	client := mockguild.NewMockClient(gomock.NewController(t))

	cfg := newProviderConfig(client)
	cfg.OfficerRoleID = ""

	_, err := services.NewProvider(cfg)
	assert.Error(t, err)
}
