package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	apperr "github.com/KirkDiggler/guild-verification-bot/internal/errors"
	"github.com/KirkDiggler/guild-verification-bot/internal/events"
	"github.com/KirkDiggler/guild-verification-bot/internal/guild"
)

// ListenerID identifies the notifier on the event bus
const ListenerID = "officer_notification"

// Service tells the officers that a member finished verification. It never
// reports failures to the member.
type Service struct {
	guild     guild.Client
	roleID    string
	channelID string
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Guild         guild.Client // Required
	OfficerRoleID string       // Required
	ChannelID     string       // Required
}

// NewService creates a new notification service
func NewService(cfg *ServiceConfig) (*Service, error) {
	if cfg == nil {
		return nil, apperr.InvalidArgument("config is required")
	}
	if cfg.Guild == nil {
		return nil, apperr.InvalidArgument("guild client is required")
	}
	if cfg.OfficerRoleID == "" {
		return nil, apperr.InvalidArgument("officer role id is required")
	}
	if cfg.ChannelID == "" {
		return nil, apperr.InvalidArgument("channel id is required")
	}

	return &Service{
		guild:     cfg.Guild,
		roleID:    cfg.OfficerRoleID,
		channelID: cfg.ChannelID,
	}, nil
}

// Message renders the officer notification text
func Message(roleID, userID string) string {
	return fmt.Sprintf("<@&%s> a new player has signed up to the Discord. Please verify the membership of <@%s>",
		roleID, userID)
}

// NotifyOfficers sends one message mentioning the officer role and the
// member. A role that does not resolve on the guild means nothing is sent.
func (s *Service) NotifyOfficers(ctx context.Context, record events.CompletionRecord) error {
	if _, err := s.guild.Role(ctx, record.GuildID, s.roleID); err != nil {
		return apperr.Wrap(err, "officer role unavailable").
			WithMeta("role_id", s.roleID)
	}

	_, err := s.guild.SendMessage(ctx, s.channelID, &discordgo.MessageSend{
		Content: Message(s.roleID, record.UserID),
		AllowedMentions: &discordgo.MessageAllowedMentions{
			Roles: []string{s.roleID},
			Users: []string{record.UserID},
		},
	})
	if err != nil {
		return apperr.Wrap(err, "failed to send officer notification").
			WithMeta("channel_id", s.channelID)
	}

	log.Printf("[Notification] Officers notified about user %s (%s / %s / %s)",
		record.UserID, record.CharacterName, record.ClassName, record.RoleName)
	return nil
}

// HandleEvent implements events.EventListener
func (s *Service) HandleEvent(ctx context.Context, event events.Event) error {
	completed, ok := event.(*events.VerificationCompletedEvent)
	if !ok {
		return nil
	}

	if err := s.NotifyOfficers(ctx, completed.Record); err != nil {
		log.Printf("[Notification] Skipped officer notification for user %s: %v", completed.Record.UserID, err)
		return err
	}
	return nil
}

// Priority implements events.EventListener
func (s *Service) Priority() int { return 100 }

// ID implements events.EventListener
func (s *Service) ID() string { return ListenerID }
