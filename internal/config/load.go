package config

import (
	"encoding/json"
	"fmt"
	"os"
)

type Config struct {
	Bot      BotConfig      `json:"bot"`
	Guild    GuildConfig    `json:"guild"`
	Channels ChannelsConfig `json:"channels"`
	Icons    IconsConfig    `json:"icons"`
	Logging  LoggingConfig  `json:"logging"`
}

type BotConfig struct {
	Token string `json:"token"`
	AppID string `json:"app_id"`
}

// GuildConfig scopes the bot to its home community. Events from other
// guilds, or from the ignored channels, are dropped before any handling.
type GuildConfig struct {
	ID              string   `json:"id"`
	IgnoredChannels []string `json:"ignored_channels"`
}

// ChannelIgnored reports whether a channel is on the ignore-list.
func (g GuildConfig) ChannelIgnored(channelID string) bool {
	for _, id := range g.IgnoredChannels {
		if id == channelID {
			return true
		}
	}
	return false
}

// ChannelsConfig names the destination channel per notice category.
type ChannelsConfig struct {
	ServerLog  string `json:"server_log"`
	MessageLog string `json:"message_log"`
	DevAlerts  string `json:"dev_alerts"`
}

// IconsConfig holds the author-line icon URL per notice kind.
type IconsConfig struct {
	HashGreen     string `json:"hash_green"`
	HashRed       string `json:"hash_red"`
	HashBlurple   string `json:"hash_blurple"`
	CrownGreen    string `json:"crown_green"`
	CrownRed      string `json:"crown_red"`
	CrownBlurple  string `json:"crown_blurple"`
	GuildUpdate   string `json:"guild_update"`
	UserBan       string `json:"user_ban"`
	UserUnban     string `json:"user_unban"`
	UserUpdate    string `json:"user_update"`
	SignIn        string `json:"sign_in"`
	SignOut       string `json:"sign_out"`
	MessageDelete string `json:"message_delete"`
	MessageEdit   string `json:"message_edit"`
	MessageBulk   string `json:"message_bulk_delete"`
}

type LoggingConfig struct {
	Level string `json:"level"`
	Path  string `json:"path"`
}

var globalConfig *Config

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnvOverrides(cfg)

	globalConfig = cfg
	return cfg, nil
}

func LoadOrDefault(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		cfg = DefaultConfig()
		applyEnvOverrides(cfg)
		globalConfig = cfg
	}
	return cfg
}

func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("DISCORD_TOKEN"); token != "" {
		cfg.Bot.Token = token
	}
	if appID := os.Getenv("DISCORD_APP_ID"); appID != "" {
		cfg.Bot.AppID = appID
	}
	if guildID := os.Getenv("MODLOG_GUILD_ID"); guildID != "" {
		cfg.Guild.ID = guildID
	}
}

func DefaultConfig() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level: "info",
			Path:  "modlog.log",
		},
	}
}

func Get() *Config {
	if globalConfig == nil {
		return DefaultConfig()
	}
	return globalConfig
}
