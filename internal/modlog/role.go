package modlog

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-modlog/internal/changes"
	"go-modlog/internal/logging"
	"go-modlog/internal/notifier"
)

func (m *ModLog) HandleRoleCreate(guildID string, role *discordgo.Role) {
	if role == nil || !m.inScope(guildID, "") {
		return
	}
	m.snapshots.putRole(role)

	// A freshly created role has no meaningful name yet.
	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.CrownGreen,
		Colour:    ColourGreen,
		Title:     "Role created",
		Body:      fmt.Sprintf("`%s`", role.ID),
		ChannelID: m.cfg.Channels.ServerLog,
	})
}

func (m *ModLog) HandleRoleDelete(guildID, roleID string) {
	if !m.inScope(guildID, "") {
		return
	}

	body := fmt.Sprintf("`%s`", roleID)
	if cached := m.snapshots.takeRole(roleID); cached != nil {
		body = fmt.Sprintf("%s (`%s`)", cached.Name, roleID)
	}

	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.CrownRed,
		Colour:    ColourRed,
		Title:     "Role removed",
		Body:      body,
		ChannelID: m.cfg.Channels.ServerLog,
	})
}

func (m *ModLog) HandleRoleUpdate(guildID string, role *discordgo.Role) {
	if role == nil || !m.inScope(guildID, "") {
		return
	}

	before := m.snapshots.swapRole(role)
	if before == nil {
		return
	}

	entries, err := changes.Summarize(before, role, rolePolicy)
	if err != nil {
		logging.Warn("[MODLOG] Role %s diff failed: %v", role.ID, err)
		return
	}
	if len(entries) == 0 {
		return
	}

	body := fmt.Sprintf("**%s (`%s`)**\n%s", role.Name, role.ID, changes.Render(entries))
	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.CrownBlurple,
		Colour:    ColourBlurple,
		Title:     "Role updated",
		Body:      body,
		ChannelID: m.cfg.Channels.ServerLog,
	})
}
