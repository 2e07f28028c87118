package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/guild-verification-bot/internal/bot"
	"github.com/KirkDiggler/guild-verification-bot/internal/config"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/handlers"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/middleware"
	"github.com/KirkDiggler/guild-verification-bot/internal/guild"
	"github.com/KirkDiggler/guild-verification-bot/internal/health"
	"github.com/KirkDiggler/guild-verification-bot/internal/services"
	"github.com/KirkDiggler/guild-verification-bot/internal/wizard"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	} else {
		log.Println("Loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if len(cfg.Discord.Token) > 12 {
		log.Printf("Bot Token: %s...%s", cfg.Discord.Token[:8], cfg.Discord.Token[len(cfg.Discord.Token)-4:])
	}
	log.Printf("Verification channel: %s", cfg.Verification.ChannelID)

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		log.Fatalf("Failed to create Discord session: %v", err)
	}

	classes, err := cfg.ClassRegistry()
	if err != nil {
		log.Fatalf("Invalid class registry: %v", err)
	}
	roles, err := cfg.RoleRegistry()
	if err != nil {
		log.Fatalf("Invalid role registry: %v", err)
	}

	guildClient := guild.NewDiscordClient(dg)

	serviceProvider, err := services.NewProvider(&services.ProviderConfig{
		Guild:         guildClient,
		Classes:       classes,
		GameplayRoles: roles,
		OfficerRoleID: cfg.Verification.OfficerRoleID,
		ChannelID:     cfg.Verification.ChannelID,
	})
	if err != nil {
		log.Fatalf("Failed to create services: %v", err)
	}

	redisClient, rateLimitStore := connectRedis(cfg.Redis.URL)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Printf("Error closing Redis connection: %v", err)
			}
		}()
	}

	tracker := wizard.NewTracker(cfg.Verification.SelectionTimeout)

	b, err := bot.New(&bot.Config{
		Session:  dg,
		Guild:    guildClient,
		Services: serviceProvider,
		Tracker:  tracker,
		Messages: handlers.Messages{
			WelcomeTitle: cfg.Messages.WelcomeTitle,
			Welcome:      cfg.Messages.Welcome,
			Complete:     cfg.Messages.Complete,
		},
		ChannelID:          cfg.Verification.ChannelID,
		AppID:              cfg.Discord.AppID,
		CommandGuildID:     cfg.Discord.GuildID,
		PostWelcomeOnReady: cfg.Verification.PostWelcomeOnReady,
		MaxRequests:        cfg.RateLimit.MaxRequests,
		Window:             cfg.RateLimit.Window,
		RateLimitStore:     rateLimitStore,
	})
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	var uptime runner
	if cfg.HTTP.Enabled {
		uptime = health.NewServer(cfg.HTTP.Addr(), health.NewHandler())
	}

	log.Println("Bot is now running. Press CTRL-C to exit.")

	if err := run(ctx, b, uptime); err != nil {
		log.Printf("Shutting down with error: %v", err)
		// Deferred cleanup does not run after os.Exit
		stop()
		if redisClient != nil {
			_ = redisClient.Close()
		}
		os.Exit(1)
	}

	log.Println("Shutdown complete")
}

type runner interface {
	Run(ctx context.Context) error
}

// run blocks until the bot stops. Only the bot can fail the group; an
// uptime server error is logged and the bot keeps running.
func run(ctx context.Context, b runner, uptime runner) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return b.Run(gctx)
	})

	if uptime != nil {
		g.Go(func() error {
			if err := uptime.Run(gctx); err != nil {
				log.Printf("Uptime server stopped: %v", err)
			}
			return nil
		})
	}

	return g.Wait()
}

// connectRedis returns a Redis-backed rate limit store when REDIS_URL is set
// and reachable, otherwise the in-memory store
func connectRedis(url string) (*redis.Client, middleware.RateLimitStore) {
	if url == "" {
		log.Println("No REDIS_URL found, using in-memory rate limiting")
		return nil, middleware.NewMemoryRateLimitStore()
	}

	log.Println("Connecting to Redis...")

	opts, err := redis.ParseURL(url)
	if err != nil {
		log.Printf("Failed to parse Redis URL: %v", err)
		log.Println("Falling back to in-memory rate limiting")
		return nil, middleware.NewMemoryRateLimitStore()
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("Failed to connect to Redis: %v", err)
		log.Println("Falling back to in-memory rate limiting")
		_ = client.Close()
		return nil, middleware.NewMemoryRateLimitStore()
	}

	log.Println("Successfully connected to Redis")
	return client, middleware.NewRedisRateLimitStore(client)
}
