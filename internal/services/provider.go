package services

import (
	"github.com/KirkDiggler/guild-verification-bot/internal/events"
	"github.com/KirkDiggler/guild-verification-bot/internal/guild"
	"github.com/KirkDiggler/guild-verification-bot/internal/registry"
	"github.com/KirkDiggler/guild-verification-bot/internal/services/notification"
	"github.com/KirkDiggler/guild-verification-bot/internal/services/verification"
)

// Provider holds all service instances
type Provider struct {
	VerificationService verification.Service
	NotificationService *notification.Service
	EventBus            *events.Bus
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	Guild         guild.Client
	Classes       *registry.Registry
	GameplayRoles *registry.Registry
	OfficerRoleID string
	ChannelID     string
	EventBus      *events.Bus // Optional, a new bus is created if nil
}

// NewProvider creates a new service provider with all services initialized
// and the officer notifier subscribed to completed verifications.
func NewProvider(cfg *ProviderConfig) (*Provider, error) {
	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewBus()
	}

	verifySvc := verification.NewService(&verification.ServiceConfig{
		Guild:         cfg.Guild,
		Classes:       cfg.Classes,
		GameplayRoles: cfg.GameplayRoles,
	})

	notifySvc, err := notification.NewService(&notification.ServiceConfig{
		Guild:         cfg.Guild,
		OfficerRoleID: cfg.OfficerRoleID,
		ChannelID:     cfg.ChannelID,
	})
	if err != nil {
		return nil, err
	}

	bus.Subscribe(events.EventTypeVerificationCompleted, notifySvc)

	return &Provider{
		VerificationService: verifySvc,
		NotificationService: notifySvc,
		EventBus:            bus,
	}, nil
}
