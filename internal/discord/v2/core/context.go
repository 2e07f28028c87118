package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// InteractionContext wraps a Discord interaction with useful helpers and context
type InteractionContext struct {
	// Core Discord objects
	Session     *discordgo.Session
	Interaction *discordgo.InteractionCreate

	// Extracted common fields for convenience
	UserID    string
	GuildID   string
	ChannelID string
	Member    *discordgo.Member

	// Context for cancellation and values
	Context context.Context

	// Parsed interaction data
	params map[string]interface{}
}

// NewInteractionContext creates a new InteractionContext from a Discord interaction
func NewInteractionContext(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) *InteractionContext {
	ic := &InteractionContext{
		Session:     s,
		Interaction: i,
		Context:     ctx,
		params:      make(map[string]interface{}),
	}

	if i.Member != nil {
		ic.Member = i.Member
		if i.Member.User != nil {
			ic.UserID = i.Member.User.ID
		}
	} else if i.User != nil {
		ic.UserID = i.User.ID
	}

	ic.GuildID = i.GuildID
	ic.ChannelID = i.ChannelID

	ic.parseParams()

	return ic
}

// parseParams extracts parameters from different interaction types
func (ic *InteractionContext) parseParams() {
	switch ic.Interaction.Type {
	case discordgo.InteractionApplicationCommand:
		ic.parseCommandParams()
	case discordgo.InteractionMessageComponent:
		ic.parseComponentParams()
	case discordgo.InteractionModalSubmit:
		ic.parseModalParams()
	}
}

func (ic *InteractionContext) parseCommandParams() {
	ic.parseOptions(ic.Interaction.ApplicationCommandData().Options)
}

// parseOptions recursively extracts command options
func (ic *InteractionContext) parseOptions(options []*discordgo.ApplicationCommandInteractionDataOption) {
	for _, opt := range options {
		if len(opt.Options) > 0 {
			ic.params["subcommand"] = opt.Name
			ic.parseOptions(opt.Options)
			continue
		}
		ic.params[opt.Name] = opt.Value
	}
}

// parseComponentParams stores the custom ID parts after the domain
func (ic *InteractionContext) parseComponentParams() {
	customID := ic.Interaction.MessageComponentData().CustomID
	parts := strings.Split(customID, CustomIDSeparator)

	if len(parts) >= 2 {
		ic.params["component_action"] = parts[1]
	}
	if len(parts) >= 3 {
		ic.params["component_target"] = parts[2]
	}
	for i := 3; i < len(parts); i++ {
		ic.params[fmt.Sprintf("component_arg_%d", i-3)] = parts[i]
	}

	ic.params["custom_id"] = customID
}

// parseModalParams extracts text input values keyed by their custom ID
func (ic *InteractionContext) parseModalParams() {
	data := ic.Interaction.ModalSubmitData()
	ic.params["modal_id"] = data.CustomID

	for _, comp := range data.Components {
		row, ok := comp.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			if input, ok := inner.(*discordgo.TextInput); ok {
				ic.params[input.CustomID] = input.Value
			}
		}
	}
}

// GetParam retrieves a parameter by name
func (ic *InteractionContext) GetParam(name string) interface{} {
	return ic.params[name]
}

// GetStringParam retrieves a string parameter or returns empty string
func (ic *InteractionContext) GetStringParam(name string) string {
	if val, ok := ic.params[name]; ok {
		if strVal, ok := val.(string); ok {
			return strVal
		}
	}
	return ""
}

// IsCommand checks if this is a slash command interaction
func (ic *InteractionContext) IsCommand() bool {
	return ic.Interaction != nil && ic.Interaction.Type == discordgo.InteractionApplicationCommand
}

// IsComponent checks if this is a message component interaction
func (ic *InteractionContext) IsComponent() bool {
	return ic.Interaction != nil && ic.Interaction.Type == discordgo.InteractionMessageComponent
}

// IsModal checks if this is a modal submit interaction
func (ic *InteractionContext) IsModal() bool {
	return ic.Interaction != nil && ic.Interaction.Type == discordgo.InteractionModalSubmit
}

// GetCustomID returns the custom ID for component and modal interactions
func (ic *InteractionContext) GetCustomID() string {
	if ic.IsComponent() {
		return ic.Interaction.MessageComponentData().CustomID
	}
	if ic.IsModal() {
		return ic.Interaction.ModalSubmitData().CustomID
	}
	return ""
}

// GetCommandName returns the command name for slash commands
func (ic *InteractionContext) GetCommandName() string {
	if ic.IsCommand() {
		return ic.Interaction.ApplicationCommandData().Name
	}
	return ""
}

// GetSubcommand returns the subcommand name if present
func (ic *InteractionContext) GetSubcommand() string {
	return ic.GetStringParam("subcommand")
}

// Roles returns the role ids the member held when they interacted
func (ic *InteractionContext) Roles() []string {
	if ic.Member == nil {
		return nil
	}
	return ic.Member.Roles
}

// IsAdministrator reports whether the member's resolved permissions in the
// channel include Administrator.
func (ic *InteractionContext) IsAdministrator() bool {
	if ic.Member == nil {
		return false
	}
	return ic.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// UserMention returns the mention string for the interacting user
func (ic *InteractionContext) UserMention() string {
	return fmt.Sprintf("<@%s>", ic.UserID)
}

// WithValue adds a value to the context
func (ic *InteractionContext) WithValue(key, val interface{}) {
	ic.Context = context.WithValue(ic.Context, key, val)
}

// Value retrieves a value from the context
func (ic *InteractionContext) Value(key interface{}) interface{} {
	return ic.Context.Value(key)
}
