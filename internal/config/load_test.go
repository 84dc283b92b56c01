package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{
		"bot": {"token": "abc", "app_id": "99"},
		"guild": {"id": "267624335836053506", "ignored_channels": ["1", "2"]},
		"channels": {"server_log": "10", "message_log": "11", "dev_alerts": "12"}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "abc", cfg.Bot.Token)
	assert.Equal(t, "267624335836053506", cfg.Guild.ID)
	assert.Equal(t, "11", cfg.Channels.MessageLog)
	// Defaults survive partial files.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bot": {"token": "from-file"}}`), 0644))
	t.Setenv("DISCORD_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Bot.Token)
}

func TestLoadOrDefaultMissingFile(t *testing.T) {
	cfg := LoadOrDefault(filepath.Join(t.TempDir(), "nope.json"))
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestChannelIgnored(t *testing.T) {
	g := GuildConfig{IgnoredChannels: []string{"5", "6"}}

	assert.True(t, g.ChannelIgnored("5"))
	assert.False(t, g.ChannelIgnored("7"))
	assert.False(t, GuildConfig{}.ChannelIgnored("5"))
}
