package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFile_EnvOnlyUsesDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), false)
	require.NoError(t, err)

	assert.Equal(t, "test-token", cfg.Discord.Token)
	assert.Equal(t, "1267765878183952396", cfg.Verification.ChannelID)
	assert.Equal(t, "1234230977925222492", cfg.Verification.OfficerRoleID)
	assert.False(t, cfg.Verification.PostWelcomeOnReady)
	assert.Equal(t, 5*time.Minute, cfg.Verification.SelectionTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, defaultCompleteMessage, cfg.Messages.Complete)

	classes, err := cfg.ClassRegistry()
	require.NoError(t, err)
	assert.Equal(t, 8, classes.Len())

	roles, err := cfg.RoleRegistry()
	require.NoError(t, err)
	assert.Equal(t, 3, roles.Len())
	heal, ok := roles.Lookup("heal")
	require.True(t, ok)
	assert.Equal(t, "1234230977866498097", heal.RoleID)
}

func TestLoadFile_YAMLWithEnvOverride(t *testing.T) {
	path := writeYAML(t, `
discord:
  token: yaml-token
verification:
  channel_id: "111"
  post_welcome_on_ready: true
  selection_timeout: 90s
classes:
  - name: Mage
    role_id: "201"
    icon: "🔮"
roles:
  - name: Heal
    role_id: "301"
messages:
  complete: Done!
`)
	t.Setenv("VERIFICATION_CHANNEL_ID", "999")

	cfg, err := LoadFile(path, true)
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Discord.Token)
	assert.Equal(t, "999", cfg.Verification.ChannelID)
	assert.True(t, cfg.Verification.PostWelcomeOnReady)
	assert.Equal(t, 90*time.Second, cfg.Verification.SelectionTimeout)
	assert.Equal(t, "Done!", cfg.Messages.Complete)
	assert.Equal(t, defaultWelcomeTitle, cfg.Messages.WelcomeTitle)

	classes, err := cfg.ClassRegistry()
	require.NoError(t, err)
	assert.Equal(t, 1, classes.Len())
}

func TestLoadFile_Errors(t *testing.T) {
	t.Run("missing token", func(t *testing.T) {
		t.Setenv("DISCORD_TOKEN", "")

		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), false)
		assert.ErrorContains(t, err, "DISCORD_TOKEN")
	})

	t.Run("required file missing", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"), true)
		assert.Error(t, err)
	})

	t.Run("duplicate class", func(t *testing.T) {
		path := writeYAML(t, `
discord:
  token: yaml-token
classes:
  - name: Mage
    role_id: "1"
  - name: mage
    role_id: "2"
`)
		_, err := LoadFile(path, true)
		assert.ErrorContains(t, err, "collides")
	})
	t.Run("role name too long for a button id", func(t *testing.T) {
		path := writeYAML(t, `
discord:
  token: yaml-token
roles:
  - name: Off-Tank And Backup Healer Extraordinaire
    role_id: "1"
`)
		_, err := LoadFile(path, true)
		assert.ErrorContains(t, err, "longer than")
	})
}
