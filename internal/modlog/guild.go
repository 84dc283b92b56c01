package modlog

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-modlog/internal/changes"
	"go-modlog/internal/logging"
	"go-modlog/internal/notifier"
)

// HandleGuildCreate primes the snapshot cache when the home guild loads.
func (m *ModLog) HandleGuildCreate(g *discordgo.Guild) {
	if g == nil || g.ID != m.cfg.Guild.ID {
		return
	}

	m.snapshots.putGuild(g)
	for _, channel := range g.Channels {
		m.snapshots.putChannel(channel)
	}
	for _, role := range g.Roles {
		m.snapshots.putRole(role)
	}
	logging.Info("[MODLOG] Home guild loaded: %s (%s)", g.Name, g.ID)
}

func (m *ModLog) HandleGuildUpdate(g *discordgo.Guild) {
	if g == nil || g.ID != m.cfg.Guild.ID {
		return
	}

	before := m.snapshots.swapGuild(g)
	if before == nil {
		return
	}

	entries, err := changes.Summarize(before, g, guildPolicy)
	if err != nil {
		logging.Warn("[MODLOG] Guild diff failed: %v", err)
		return
	}
	if len(entries) == 0 {
		return
	}

	body := fmt.Sprintf("**%s (`%s`)**\n%s", g.Name, g.ID, changes.Render(entries))
	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.GuildUpdate,
		Colour:    ColourBlurple,
		Title:     "Guild updated",
		Body:      body,
		Thumbnail: g.IconURL("128"),
		ChannelID: m.cfg.Channels.ServerLog,
	})
}
