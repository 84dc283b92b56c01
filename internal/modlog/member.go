package modlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"

	"go-modlog/internal/changes"
	"go-modlog/internal/logging"
	"go-modlog/internal/notifier"
)

const newAccountMarker = "🆕"

func (m *ModLog) HandleBanAdd(e *discordgo.GuildBanAdd) {
	if e.User == nil || !m.inScope(e.GuildID, "") {
		return
	}

	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.UserBan,
		Colour:    ColourRed,
		Title:     "User banned",
		Body:      userLabel(e.User),
		Thumbnail: e.User.AvatarURL("128"),
		ChannelID: m.cfg.Channels.ServerLog,
	})
}

func (m *ModLog) HandleBanRemove(e *discordgo.GuildBanRemove) {
	if e.User == nil || !m.inScope(e.GuildID, "") {
		return
	}

	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.UserUnban,
		Colour:    ColourBlurple,
		Title:     "User unbanned",
		Body:      userLabel(e.User),
		Thumbnail: e.User.AvatarURL("128"),
		ChannelID: m.cfg.Channels.ServerLog,
	})
}

func (m *ModLog) HandleMemberAdd(member *discordgo.Member) {
	if member == nil || member.User == nil || !m.inScope(member.GuildID, "") {
		return
	}

	body := userLabel(member.User)
	if created, err := discordgo.SnowflakeTimestamp(member.User.ID); err == nil {
		age := strings.TrimSpace(humanize.RelTime(created, time.Now(), "", ""))
		body += "\n\n**Account age:** " + age
		if time.Since(created) < 24*time.Hour {
			body = newAccountMarker + " " + body
		}
	}

	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.SignIn,
		Colour:    ColourGreen,
		Title:     "User joined",
		Body:      body,
		Thumbnail: member.User.AvatarURL("128"),
		ChannelID: m.cfg.Channels.ServerLog,
	})
}

func (m *ModLog) HandleMemberRemove(member *discordgo.Member) {
	if member == nil || member.User == nil || !m.inScope(member.GuildID, "") {
		return
	}

	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.SignOut,
		Colour:    ColourRed,
		Title:     "User left",
		Body:      userLabel(member.User),
		Thumbnail: member.User.AvatarURL("128"),
		ChannelID: m.cfg.Channels.ServerLog,
	})
}

func (m *ModLog) HandleMemberUpdate(before, after *discordgo.Member) {
	if after == nil || after.User == nil || !m.inScope(after.GuildID, "") {
		return
	}
	if before == nil {
		return
	}

	policy := memberPolicy
	policy.RolesOf = m.memberRoles

	entries, err := changes.Summarize(before, after, policy)
	if err != nil {
		logging.Warn("[MODLOG] Member %s diff failed: %v", after.User.ID, err)
		return
	}
	if len(entries) == 0 {
		return
	}

	body := fmt.Sprintf("**%s (`%s`)**\n%s", after.User.String(), after.User.ID, changes.Render(entries))
	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.UserUpdate,
		Colour:    ColourBlurple,
		Title:     "Member updated",
		Body:      body,
		Thumbnail: after.User.AvatarURL("128"),
		ChannelID: m.cfg.Channels.ServerLog,
	})
}

// memberRoles expands a member's role IDs into named role snapshots for the
// add/remove lines. Names fall back to the bare ID when the role is not in
// the state cache.
func (m *ModLog) memberRoles(v interface{}) []changes.Role {
	member, ok := v.(*discordgo.Member)
	if !ok || member == nil {
		return nil
	}

	roles := make([]changes.Role, 0, len(member.Roles))
	for _, id := range member.Roles {
		name := id
		if role, err := m.resolver.Role(member.GuildID, id); err == nil {
			name = role.Name
		}
		roles = append(roles, changes.Role{ID: id, Name: name})
	}
	return roles
}
