package builders

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/guild-verification-bot/internal/discord/v2/core"
)

func TestComponentBuilder_WrapsRowsAtFive(t *testing.T) {
	b := NewComponentBuilder(core.NewCustomIDBuilder("verify"))
	for _, name := range []string{"druid", "hunter", "mage", "priest", "rogue", "shaman", "warlock", "warrior"} {
		b.EmojiButton(name, "⚔️", discordgo.SecondaryButton, "class", name, "s1")
	}

	rows := b.Build()

	require.Len(t, rows, 2)
	first := rows[0].(discordgo.ActionsRow)
	second := rows[1].(discordgo.ActionsRow)
	assert.Len(t, first.Components, 5)
	assert.Len(t, second.Components, 3)
	assert.Equal(t, "verify:class:druid:s1", first.Components[0].(discordgo.Button).CustomID)
}

func TestParseEmoji(t *testing.T) {
	assert.Nil(t, ParseEmoji(""))
	assert.Equal(t, &discordgo.ComponentEmoji{Name: "🔮"}, ParseEmoji("🔮"))
	assert.Equal(t, &discordgo.ComponentEmoji{Name: "wowmage", ID: "123456"}, ParseEmoji("<:wowmage:123456>"))
	assert.Equal(t, &discordgo.ComponentEmoji{Name: "spin", ID: "9", Animated: true}, ParseEmoji("<a:spin:9>"))
}

func TestDisableAll(t *testing.T) {
	original := NewComponentBuilder(core.NewCustomIDBuilder("verify")).
		Button("Heal", discordgo.PrimaryButton, "role", "heal", "s1").
		Button("Tank", discordgo.PrimaryButton, "role", "tank", "s1").
		Build()

	disabled := DisableAll(original)

	require.Len(t, disabled, 1)
	for _, c := range disabled[0].(discordgo.ActionsRow).Components {
		assert.True(t, c.(discordgo.Button).Disabled)
	}
	assert.False(t, original[0].(discordgo.ActionsRow).Components[0].(discordgo.Button).Disabled)

	assert.NotNil(t, DisableAll(nil))
}
