package guild

//go:generate mockgen -destination=mock/mock_client.go -package=mockguild -source=client.go

import (
	"context"

	"github.com/bwmarrin/discordgo"

	apperr "github.com/KirkDiggler/guild-verification-bot/internal/errors"
)

// Client is the subset of the Discord API the verification flow mutates or
// reads. Every error it returns is an *errors.Error carrying a code.
type Client interface {
	// SetNickname changes a member's nickname in the guild
	SetNickname(ctx context.Context, guildID, userID, nickname string) error

	// AddRole grants a role to a member
	AddRole(ctx context.Context, guildID, userID, roleID string) error

	// RemoveRole revokes a role from a member
	RemoveRole(ctx context.Context, guildID, userID, roleID string) error

	// Role resolves a role id on the guild; a missing role is CodeNotFound
	Role(ctx context.Context, guildID, roleID string) (*discordgo.Role, error)

	// Channel resolves a channel id
	Channel(ctx context.Context, channelID string) (*discordgo.Channel, error)

	// SendMessage posts a message to a channel
	SendMessage(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error)
}

// DiscordClient implements Client over a discordgo session
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient creates a Client backed by the given session
func NewDiscordClient(session *discordgo.Session) *DiscordClient {
	return &DiscordClient{session: session}
}

// SetNickname changes a member's nickname in the guild
func (c *DiscordClient) SetNickname(ctx context.Context, guildID, userID, nickname string) error {
	if err := c.session.GuildMemberNickname(guildID, userID, nickname, discordgo.WithContext(ctx)); err != nil {
		return apperr.FromDiscord(err, "failed to set nickname").
			WithMeta("user_id", userID)
	}
	return nil
}

// AddRole grants a role to a member
func (c *DiscordClient) AddRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return apperr.FromDiscord(err, "failed to add role").
			WithMeta("user_id", userID).
			WithMeta("role_id", roleID)
	}
	return nil
}

// RemoveRole revokes a role from a member
func (c *DiscordClient) RemoveRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := c.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		return apperr.FromDiscord(err, "failed to remove role").
			WithMeta("user_id", userID).
			WithMeta("role_id", roleID)
	}
	return nil
}

// Role resolves a role id, preferring the gateway state cache and falling
// back to the REST role list.
func (c *DiscordClient) Role(ctx context.Context, guildID, roleID string) (*discordgo.Role, error) {
	if c.session.State != nil {
		if role, err := c.session.State.Role(guildID, roleID); err == nil {
			return role, nil
		}
	}

	roles, err := c.session.GuildRoles(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, apperr.FromDiscord(err, "failed to list guild roles").
			WithMeta("guild_id", guildID)
	}

	for _, role := range roles {
		if role.ID == roleID {
			return role, nil
		}
	}

	return nil, apperr.NotFoundf("role %s not found", roleID).
		WithMeta("role_id", roleID)
}

// Channel resolves a channel id
func (c *DiscordClient) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if c.session.State != nil {
		if ch, err := c.session.State.Channel(channelID); err == nil {
			return ch, nil
		}
	}

	ch, err := c.session.Channel(channelID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, apperr.FromDiscord(err, "failed to get channel").
			WithMeta("channel_id", channelID)
	}
	return ch, nil
}

// SendMessage posts a message to a channel
func (c *DiscordClient) SendMessage(ctx context.Context, channelID string, msg *discordgo.MessageSend) (*discordgo.Message, error) {
	sent, err := c.session.ChannelMessageSendComplex(channelID, msg, discordgo.WithContext(ctx))
	if err != nil {
		return nil, apperr.FromDiscord(err, "failed to send message").
			WithMeta("channel_id", channelID)
	}
	return sent, nil
}
