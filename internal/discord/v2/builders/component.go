package builders

import (
	"regexp"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
)

// MaxButtonsPerRow is Discord's action row capacity
const MaxButtonsPerRow = 5

// ComponentBuilder builds Discord message components
type ComponentBuilder struct {
	rows            []discordgo.MessageComponent
	currentRow      []discordgo.MessageComponent
	customIDBuilder *core.CustomIDBuilder
}

// NewComponentBuilder creates a new component builder
func NewComponentBuilder(customIDBuilder *core.CustomIDBuilder) *ComponentBuilder {
	return &ComponentBuilder{
		rows:            make([]discordgo.MessageComponent, 0),
		currentRow:      make([]discordgo.MessageComponent, 0, MaxButtonsPerRow),
		customIDBuilder: customIDBuilder,
	}
}

// Button adds a button; args are the custom ID target followed by extra args
func (b *ComponentBuilder) Button(label string, style discordgo.ButtonStyle, action string, args ...string) *ComponentBuilder {
	b.addComponent(discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: b.customID(action, args...),
	})
	return b
}

// EmojiButton adds a button with an emoji. emoji is either a unicode emoji
// or a custom server emoji in <:name:id> form.
func (b *ComponentBuilder) EmojiButton(label, emoji string, style discordgo.ButtonStyle, action string, args ...string) *ComponentBuilder {
	b.addComponent(discordgo.Button{
		Label:    label,
		Style:    style,
		CustomID: b.customID(action, args...),
		Emoji:    ParseEmoji(emoji),
	})
	return b
}

// NewRow starts a new action row
func (b *ComponentBuilder) NewRow() *ComponentBuilder {
	if len(b.currentRow) > 0 {
		b.rows = append(b.rows, discordgo.ActionsRow{
			Components: b.currentRow,
		})
		b.currentRow = make([]discordgo.MessageComponent, 0, MaxButtonsPerRow)
	}
	return b
}

// Build returns the built components
func (b *ComponentBuilder) Build() []discordgo.MessageComponent {
	b.NewRow()
	return b.rows
}

func (b *ComponentBuilder) customID(action string, args ...string) string {
	id := core.NewCustomID("default", action)
	if b.customIDBuilder != nil {
		id = b.customIDBuilder.Build(action)
	}
	if len(args) > 0 {
		id.WithTarget(args[0]).WithArgs(args[1:]...)
	}
	return id.MustEncode()
}

// addComponent adds a component to the current row
func (b *ComponentBuilder) addComponent(component discordgo.MessageComponent) {
	if len(b.currentRow) >= MaxButtonsPerRow {
		b.NewRow()
	}

	b.currentRow = append(b.currentRow, component)
}

var customEmojiPattern = regexp.MustCompile(`^<(a?):([A-Za-z0-9_]+):(\d+)>$`)

// ParseEmoji converts an icon string to a component emoji. Empty icons
// return nil.
func ParseEmoji(icon string) *discordgo.ComponentEmoji {
	if icon == "" {
		return nil
	}

	if m := customEmojiPattern.FindStringSubmatch(icon); m != nil {
		return &discordgo.ComponentEmoji{
			Name:     m[2],
			ID:       m[3],
			Animated: m[1] == "a",
		}
	}

	return &discordgo.ComponentEmoji{Name: icon}
}

// DisableAll returns a copy of components with every button and select menu
// disabled. The result is never nil so it clears nothing when sent.
func DisableAll(components []discordgo.MessageComponent) []discordgo.MessageComponent {
	disabled := make([]discordgo.MessageComponent, 0, len(components))

	for _, component := range components {
		switch c := component.(type) {
		case discordgo.ActionsRow:
			disabled = append(disabled, discordgo.ActionsRow{Components: DisableAll(c.Components)})
		case *discordgo.ActionsRow:
			disabled = append(disabled, &discordgo.ActionsRow{Components: DisableAll(c.Components)})
		case discordgo.Button:
			c.Disabled = true
			disabled = append(disabled, c)
		case *discordgo.Button:
			copied := *c
			copied.Disabled = true
			disabled = append(disabled, &copied)
		case discordgo.SelectMenu:
			c.Disabled = true
			disabled = append(disabled, c)
		case *discordgo.SelectMenu:
			copied := *c
			copied.Disabled = true
			disabled = append(disabled, &copied)
		default:
			disabled = append(disabled, component)
		}
	}

	return disabled
}
