// Package bot owns the Discord gateway session and exposes the narrow
// lookups the log handlers need.
package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-modlog/internal/logging"
)

// messageCacheSize controls how many messages per channel the state keeps,
// which is what lets delete/edit notices show the original content.
const messageCacheSize = 1000

type Session struct {
	discord *discordgo.Session
}

// New creates the Discord session with the gateway intents the log
// handlers need. The connection is not opened yet.
func New(token string) (*Session, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}

	dg.Identify.Intents = discordgo.IntentGuilds |
		discordgo.IntentGuildMembers |
		discordgo.IntentGuildModeration |
		discordgo.IntentGuildMessages |
		discordgo.IntentMessageContent

	dg.State.MaxMessageCount = messageCacheSize

	return &Session{discord: dg}, nil
}

// Discord returns the underlying discordgo session.
func (s *Session) Discord() *discordgo.Session {
	return s.discord
}

// Open connects to the gateway.
func (s *Session) Open() error {
	if err := s.discord.Open(); err != nil {
		return fmt.Errorf("open discord connection: %w", err)
	}

	if s.discord.State.User != nil {
		logging.Info("Connected as %s (%s)", s.discord.State.User.Username, s.discord.State.User.ID)
	}
	return nil
}

func (s *Session) Close() error {
	if s.discord != nil {
		return s.discord.Close()
	}
	return nil
}

func (s *Session) AddHandler(handler interface{}) {
	s.discord.AddHandler(handler)
}

// RegisterCommands registers slash commands globally for the bot user.
func (s *Session) RegisterCommands(commands []*discordgo.ApplicationCommand) error {
	for _, cmd := range commands {
		if _, err := s.discord.ApplicationCommandCreate(s.discord.State.User.ID, "", cmd); err != nil {
			return fmt.Errorf("register command %s: %w", cmd.Name, err)
		}
		logging.Info("Registered command: /%s", cmd.Name)
	}
	return nil
}

// Channel resolves a channel from the state cache, falling back to the API.
func (s *Session) Channel(channelID string) (*discordgo.Channel, error) {
	if ch, err := s.discord.State.Channel(channelID); err == nil {
		return ch, nil
	}
	return s.discord.Channel(channelID)
}

// Message resolves a message from the state cache, falling back to the API.
// The error is the caller's NotFound signal; the message may simply have
// been deleted before the lookup.
func (s *Session) Message(channelID, messageID string) (*discordgo.Message, error) {
	if msg, err := s.discord.State.Message(channelID, messageID); err == nil {
		return msg, nil
	}
	return s.discord.ChannelMessage(channelID, messageID)
}

// Role resolves a role from the state cache.
func (s *Session) Role(guildID, roleID string) (*discordgo.Role, error) {
	return s.discord.State.Role(guildID, roleID)
}
