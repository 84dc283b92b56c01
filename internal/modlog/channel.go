package modlog

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-modlog/internal/changes"
	"go-modlog/internal/logging"
	"go-modlog/internal/notifier"
)

func channelKind(c *discordgo.Channel) string {
	switch c.Type {
	case discordgo.ChannelTypeGuildCategory:
		return "Category"
	case discordgo.ChannelTypeGuildVoice:
		return "Voice channel"
	default:
		return "Text channel"
	}
}

func (m *ModLog) HandleChannelCreate(c *discordgo.Channel) {
	if c == nil || !m.inScope(c.GuildID, "") {
		return
	}
	m.snapshots.putChannel(c)

	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.HashGreen,
		Colour:    ColourGreen,
		Title:     channelKind(c) + " created",
		Body:      m.channelLabel(c, false),
		ChannelID: m.cfg.Channels.ServerLog,
	})
}

func (m *ModLog) HandleChannelDelete(c *discordgo.Channel) {
	if c == nil || !m.inScope(c.GuildID, "") {
		return
	}
	m.snapshots.takeChannel(c.ID)

	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.HashRed,
		Colour:    ColourRed,
		Title:     channelKind(c) + " deleted",
		Body:      m.channelLabel(c, false),
		ChannelID: m.cfg.Channels.ServerLog,
	})
}

// HandleChannelUpdate diffs the updated channel against the last snapshot.
// Update events carry only the new state.
func (m *ModLog) HandleChannelUpdate(c *discordgo.Channel) {
	if c == nil || !m.inScope(c.GuildID, "") {
		return
	}

	before := m.snapshots.swapChannel(c)
	if before == nil {
		// Never observed; there is nothing to diff against.
		return
	}

	entries, err := changes.Summarize(before, c, channelPolicy)
	if err != nil {
		logging.Warn("[MODLOG] Channel %s diff failed: %v", c.ID, err)
		return
	}
	if len(entries) == 0 {
		return
	}

	body := fmt.Sprintf("**%s**\n%s", m.channelLabel(c, true), changes.Render(entries))
	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.HashBlurple,
		Colour:    ColourBlurple,
		Title:     "Channel updated",
		Body:      body,
		ChannelID: m.cfg.Channels.ServerLog,
	})
}
