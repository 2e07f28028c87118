package handlers

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/builders"
	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
	"github.com/KirkDiggler/guild-verification-bot/internal/events"
	"github.com/KirkDiggler/guild-verification-bot/internal/registry"
	"github.com/KirkDiggler/guild-verification-bot/internal/wizard"
)

// Domain prefixes every custom id the verification flow emits
const Domain = "verify"

// Custom id actions
const (
	ActionStart = "start"
	ActionName  = "name"
	ActionClass = "class"
	ActionRole  = "role"
)

// CharacterNameInputID is the custom id of the modal text input
const CharacterNameInputID = "character_name"

const defaultClassIcon = "⚔️"

// Messages holds the configurable text shown by the flow
type Messages struct {
	WelcomeTitle string
	Welcome      string
	Complete     string
}

// WelcomeMessage builds the persistent message carrying the Start button
func WelcomeMessage(msgs Messages) *discordgo.MessageSend {
	embed := builders.NewEmbed().
		Title(msgs.WelcomeTitle).
		Description(msgs.Welcome).
		Color(builders.ColorSuccess).
		Build()

	return &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Start Verification",
						Style:    discordgo.SuccessButton,
						CustomID: core.NewCustomID(Domain, ActionStart).MustEncode(),
						Emoji:    builders.ParseEmoji("🚀"),
					},
				},
			},
		},
	}
}

func nameModal(ids *core.CustomIDBuilder, session string) *core.Response {
	return core.NewModalResponse(
		ids.Modal(ActionName, session),
		"Enter Your Character Name",
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    CharacterNameInputID,
					Label:       "Character Name",
					Style:       discordgo.TextInputShort,
					Placeholder: "Enter your character name here...",
					Required:    true,
					MinLength:   1,
					MaxLength:   wizard.MaxCharacterNameLength,
				},
			},
		},
	)
}

func classView(ids *core.CustomIDBuilder, classes *registry.Registry, session, name string) *core.Response {
	embed := builders.NewEmbed().
		Title("⚔️ Class Selection").
		Description(fmt.Sprintf("Great! Your character name has been set to **%s**.\n\nNow, please select your class:", name)).
		Color(builders.ColorInfo).
		Build()

	components := builders.NewComponentBuilder(ids)
	for _, class := range classes.Entries() {
		icon := class.Icon
		if icon == "" {
			icon = defaultClassIcon
		}
		components.EmojiButton(class.DisplayName, icon, discordgo.SecondaryButton, ActionClass, session, class.Key())
	}

	return core.NewEmbedResponse(embed).WithComponents(components.Build()...)
}

// roleView carries the chosen class key in each button so the completion
// step does not depend on stored state.
func roleView(ids *core.CustomIDBuilder, roles *registry.Registry, session string, class registry.Entry) *core.Response {
	embed := builders.NewEmbed().
		Title("🎭 Role Selection").
		Description(fmt.Sprintf("Excellent! You've been assigned the **%s** class.\n\nNow, please select your preferred role:", class.DisplayName)).
		Color(builders.ColorWarning).
		Build()

	components := builders.NewComponentBuilder(ids)
	for _, role := range roles.Entries() {
		components.EmojiButton(role.DisplayName, role.Icon, discordgo.PrimaryButton, ActionRole, session, role.Key(), class.Key())
	}

	return core.NewEmbedResponse(embed).WithComponents(components.Build()...)
}

func completionView(msgs Messages, record events.CompletionRecord) *core.Response {
	embed := builders.NewEmbed().
		Title("✅ Verification Complete!").
		Description(msgs.Complete).
		Color(builders.ColorSuccess).
		Field("Your Roles", fmt.Sprintf("🎭 Role: **%s**\n🎯 Character: **%s**", record.RoleName, record.CharacterName), false).
		Footer("Welcome to the guild!").
		Build()

	return core.NewEmbedResponse(embed).WithoutComponents()
}
