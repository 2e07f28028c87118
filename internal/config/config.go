package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/KirkDiggler/guild-verification-bot/internal/registry"
)

// Config holds all configuration for the application. It is built once at
// startup and passed by value or pointer into each component; nothing
// mutates it afterwards.
type Config struct {
	Discord      DiscordConfig      `yaml:"discord"`
	Verification VerificationConfig `yaml:"verification"`
	Messages     MessagesConfig     `yaml:"messages"`
	HTTP         HTTPConfig         `yaml:"http"`
	Redis        RedisConfig        `yaml:"redis"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`

	// Registries can only be set from YAML; defaults mirror the original guild
	Classes []RegistryEntry `yaml:"classes"`
	Roles   []RegistryEntry `yaml:"roles"`
}

// DiscordConfig holds Discord-specific configuration
type DiscordConfig struct {
	Token   string `yaml:"token"    env:"DISCORD_TOKEN"`
	AppID   string `yaml:"app_id"   env:"DISCORD_APP_ID"`
	GuildID string `yaml:"guild_id" env:"DISCORD_GUILD_ID"` // Optional: for guild-specific commands
}

// VerificationConfig holds the ids and behaviour of the onboarding flow
type VerificationConfig struct {
	ChannelID          string        `yaml:"channel_id"            env:"VERIFICATION_CHANNEL_ID" env-default:"1267765878183952396"`
	OfficerRoleID      string        `yaml:"officer_role_id"       env:"OFFICER_ROLE_ID"         env-default:"1234230977925222492"`
	PostWelcomeOnReady bool          `yaml:"post_welcome_on_ready" env:"WELCOME_POST_ON_READY"   env-default:"false"`
	SelectionTimeout   time.Duration `yaml:"selection_timeout"     env:"SELECTION_TIMEOUT"       env-default:"5m"`
}

// MessagesConfig holds user-facing text
type MessagesConfig struct {
	WelcomeTitle string `yaml:"welcome_title"`
	Welcome      string `yaml:"welcome"`
	Complete     string `yaml:"complete"`
}

// HTTPConfig holds the uptime endpoint settings
type HTTPConfig struct {
	Host    string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port    int    `yaml:"port" env:"PORT"      env-default:"8080"`
	Enabled bool   `yaml:"enabled" env:"HTTP_ENABLED" env-default:"true"`
}

// Addr returns host:port
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	URL string `yaml:"url" env:"REDIS_URL"`
}

// RateLimitConfig bounds how often one member can drive the wizard
type RateLimitConfig struct {
	MaxRequests int           `yaml:"max_requests" env:"RATE_LIMIT_MAX_REQUESTS" env-default:"20"`
	Window      time.Duration `yaml:"window"       env:"RATE_LIMIT_WINDOW"       env-default:"1m"`
}

// RegistryEntry is the YAML form of a class or gameplay role
type RegistryEntry struct {
	Name   string `yaml:"name"`
	RoleID string `yaml:"role_id"`
	Icon   string `yaml:"icon"`
}

// Validate checks that required values are present. Ids are not resolved
// here; a missing role or channel is a runtime error at use time.
func (c *Config) Validate() error {
	if c.Discord.Token == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.Verification.ChannelID == "" {
		return fmt.Errorf("VERIFICATION_CHANNEL_ID is required")
	}
	if c.Verification.OfficerRoleID == "" {
		return fmt.Errorf("OFFICER_ROLE_ID is required")
	}
	if _, err := c.ClassRegistry(); err != nil {
		return err
	}
	if _, err := c.RoleRegistry(); err != nil {
		return err
	}
	return nil
}

// ClassRegistry builds the class registry
func (c *Config) ClassRegistry() (*registry.Registry, error) {
	return registry.New("class", toEntries(c.Classes))
}

// RoleRegistry builds the gameplay role registry
func (c *Config) RoleRegistry() (*registry.Registry, error) {
	return registry.New("gameplay role", toEntries(c.Roles))
}

func toEntries(in []RegistryEntry) []registry.Entry {
	out := make([]registry.Entry, len(in))
	for i, e := range in {
		out[i] = registry.Entry{
			DisplayName: e.Name,
			RoleID:      e.RoleID,
			Icon:        e.Icon,
		}
	}
	return out
}
