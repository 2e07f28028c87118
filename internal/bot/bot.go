// Package bot owns the Discord session lifecycle and connects gateway
// events to the interaction pipeline.
package bot

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	v2 "github.com/KirkDiggler/guild-verification-bot/internal/discord/v2"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/routers"
	apperr "github.com/KirkDiggler/guild-verification-bot/internal/errors"
	"github.com/KirkDiggler/guild-verification-bot/internal/guild"
	"github.com/KirkDiggler/guild-verification-bot/internal/services"
	"github.com/KirkDiggler/guild-verification-bot/internal/wizard"
)

// interactionTimeout bounds the guild calls made while handling one
// interaction
const interactionTimeout = 10 * time.Second

// Bot wires the session, the pipeline and the verification channel
type Bot struct {
	session  *discordgo.Session
	guild    guild.Client
	tracker  *wizard.Tracker
	welcome  *handlers.WelcomeHandler
	pipeline *core.Pipeline

	channelID      string
	appID          string
	commandGuildID string
	postOnReady    bool

	mu      sync.RWMutex
	channel *discordgo.Channel
}

// Config holds everything the bot needs
type Config struct {
	Session  *discordgo.Session // Required for Run
	Guild    guild.Client       // Required
	Services *services.Provider // Required
	Tracker  *wizard.Tracker    // Required
	Messages handlers.Messages

	ChannelID          string // Required
	AppID              string // Optional, taken from the session on connect
	CommandGuildID     string // Optional, registers the command for one guild only
	PostWelcomeOnReady bool

	MaxRequests    int
	Window         time.Duration
	RateLimitStore middleware.RateLimitStore
}

// New builds the bot and its interaction pipeline
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Guild == nil {
		return nil, fmt.Errorf("guild client is required")
	}
	if cfg.Services == nil {
		return nil, fmt.Errorf("service provider is required")
	}
	if cfg.Tracker == nil {
		return nil, fmt.Errorf("tracker is required")
	}
	if cfg.ChannelID == "" {
		return nil, fmt.Errorf("verification channel id is required")
	}

	b := &Bot{
		session:        cfg.Session,
		guild:          cfg.Guild,
		tracker:        cfg.Tracker,
		channelID:      cfg.ChannelID,
		appID:          cfg.AppID,
		commandGuildID: cfg.CommandGuildID,
		postOnReady:    cfg.PostWelcomeOnReady,
	}

	welcome, err := handlers.NewWelcomeHandler(&handlers.WelcomeHandlerConfig{
		Guild:    cfg.Guild,
		Channels: b,
		Messages: cfg.Messages,
	})
	if err != nil {
		return nil, err
	}
	b.welcome = welcome

	verification, err := handlers.NewVerificationHandler(&handlers.VerificationHandlerConfig{
		Service:  cfg.Services.VerificationService,
		Tracker:  cfg.Tracker,
		Events:   cfg.Services.EventBus,
		Messages: cfg.Messages,
	})
	if err != nil {
		return nil, err
	}

	b.pipeline = v2.SetupPipeline(&v2.PipelineConfig{
		Verification:   verification,
		Welcome:        welcome,
		MaxRequests:    cfg.MaxRequests,
		Window:         cfg.Window,
		RateLimitStore: cfg.RateLimitStore,
	})

	return b, nil
}

// Pipeline returns the interaction pipeline
func (b *Bot) Pipeline() *core.Pipeline {
	return b.pipeline
}

// VerificationChannel implements handlers.ChannelResolver
func (b *Bot) VerificationChannel() (*discordgo.Channel, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.channel == nil {
		return nil, apperr.Unavailable("verification channel is not available").
			WithMeta("channel_id", b.channelID)
	}
	return b.channel, nil
}

// Run connects to Discord and blocks until ctx is cancelled. Only a failed
// connection, e.g. an invalid token, is returned as an error.
func (b *Bot) Run(ctx context.Context) error {
	if b.session == nil {
		return fmt.Errorf("discord session is required")
	}

	b.session.Identify.Intents = discordgo.IntentsGuilds
	b.session.AddHandler(b.onReady)
	b.session.AddHandler(b.onInteraction)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord connection: %w", err)
	}

	b.registerCommands()

	<-ctx.Done()

	log.Println("[Bot] Shutting down...")
	b.tracker.Stop()
	if err := b.session.Close(); err != nil {
		log.Printf("[Bot] Failed to close Discord connection: %v", err)
	}
	return nil
}

func (b *Bot) registerCommands() {
	appID := b.appID
	if appID == "" && b.session.State != nil && b.session.State.User != nil {
		appID = b.session.State.User.ID
	}

	if _, err := b.session.ApplicationCommandCreate(appID, b.commandGuildID, routers.PostWelcomeCommandDefinition); err != nil {
		log.Printf("[Bot] Failed to register /%s: %v", routers.PostWelcomeCommand, err)
		return
	}

	if b.commandGuildID != "" {
		log.Printf("[Bot] Registered /%s for guild %s", routers.PostWelcomeCommand, b.commandGuildID)
	} else {
		log.Printf("[Bot] Registered global /%s (may take up to 1 hour to propagate)", routers.PostWelcomeCommand)
	}
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	if r.User != nil {
		log.Printf("[Bot] %s has connected to Discord!", r.User.String())
	}
	b.handleReady(context.Background())
}

// handleReady resolves the verification channel on the first successful
// connect and optionally posts the welcome message
func (b *Bot) handleReady(ctx context.Context) {
	channel, err := b.resolveChannel(ctx)
	if err != nil {
		log.Printf("[Bot] Could not find verification channel with ID %s: %v", b.channelID, err)
		return
	}

	log.Printf("[Bot] Verification channel found: %s", channel.Name)

	if !b.postOnReady {
		log.Println("[Bot] Ready - verification system active")
		return
	}

	if err := b.welcome.PostWelcome(ctx, channel.ID); err != nil {
		log.Printf("[Bot] Auto-post of welcome message failed: %v", err)
	}
}

// resolveChannel caches the channel once found. Failed lookups are not
// cached so a later reconnect can try again.
func (b *Bot) resolveChannel(ctx context.Context) (*discordgo.Channel, error) {
	if channel, err := b.VerificationChannel(); err == nil {
		return channel, nil
	}

	channel, err := b.guild.Channel(ctx, b.channelID)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.channel == nil {
		b.channel = channel
	}
	return b.channel, nil
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := context.WithTimeout(context.Background(), interactionTimeout)
	defer cancel()

	if err := b.pipeline.Execute(ctx, s, i); err != nil {
		log.Printf("[Bot] Interaction %s failed: %v", i.ID, err)
	}
}
