package handlers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/guild-verification-bot/internal/guild"
)

const (
	// WrongChannelReplyTTL is how long the wrong-channel reply stays visible
	WrongChannelReplyTTL = 5 * time.Second

	// PostedReplyTTL is how long the confirmation stays visible
	PostedReplyTTL = 3 * time.Second
)

// ChannelResolver returns the verification channel once it is known
type ChannelResolver interface {
	VerificationChannel() (*discordgo.Channel, error)
}

// WelcomeHandler posts the welcome message that starts the flow
type WelcomeHandler struct {
	guild    guild.Client
	channels ChannelResolver
	messages Messages
}

// WelcomeHandlerConfig holds the configuration
type WelcomeHandlerConfig struct {
	Guild    guild.Client    // Required
	Channels ChannelResolver // Required
	Messages Messages
}

// NewWelcomeHandler creates a new welcome handler
func NewWelcomeHandler(cfg *WelcomeHandlerConfig) (*WelcomeHandler, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Guild == nil {
		return nil, fmt.Errorf("guild client is required")
	}
	if cfg.Channels == nil {
		return nil, fmt.Errorf("channel resolver is required")
	}

	return &WelcomeHandler{
		guild:    cfg.Guild,
		channels: cfg.Channels,
		messages: cfg.Messages,
	}, nil
}

// PostWelcome sends the welcome message to the given channel
func (h *WelcomeHandler) PostWelcome(ctx context.Context, channelID string) error {
	if _, err := h.guild.SendMessage(ctx, channelID, WelcomeMessage(h.messages)); err != nil {
		log.Printf("[Welcome] Failed to post welcome message in %s: %v", channelID, err)
		return err
	}

	log.Printf("[Welcome] Welcome message posted in %s", channelID)
	return nil
}

// HandlePostWelcome posts the welcome message when invoked from the
// verification channel. Both replies remove themselves.
func (h *WelcomeHandler) HandlePostWelcome(ctx *core.InteractionContext) (*core.HandlerResult, error) {
	channel, err := h.channels.VerificationChannel()
	if err != nil || channel == nil || channel.ID != ctx.ChannelID {
		return &core.HandlerResult{
			Response: core.NewEphemeralResponse("This command can only be used in the verification channel.").
				DeletedAfter(WrongChannelReplyTTL),
		}, nil
	}

	if err := h.PostWelcome(ctx.Context, channel.ID); err != nil {
		return nil, core.FromError(err, "Failed to post the welcome message. Please try again.")
	}

	return &core.HandlerResult{
		Response: core.NewEphemeralResponse("Welcome message posted!").DeletedAfter(PostedReplyTTL),
	}, nil
}
