// Package modlog renders guild lifecycle events into human-readable audit
// notices and dispatches them to the configured logging channels.
package modlog

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modlog/internal/attach"
	"go-modlog/internal/config"
	"go-modlog/internal/logging"
	"go-modlog/internal/notifier"
	"go-modlog/internal/reconcile"
)

// Accent colours per notice kind.
const (
	ColourRed     = 0xCD6D6D
	ColourGreen   = 0x68C290
	ColourBlurple = 0x7289DA
	ColourOrange  = 0xE67E22
)

// Resolver is the slice of the platform the handlers need to look objects
// up. A failed lookup is the NotFound signal; the object may simply be gone.
type Resolver interface {
	Channel(channelID string) (*discordgo.Channel, error)
	Message(channelID, messageID string) (*discordgo.Message, error)
	Role(guildID, roleID string) (*discordgo.Role, error)
}

type ModLog struct {
	cfg       *config.Config
	notify    *notifier.Notifier
	registry  *reconcile.Registry
	resolver  Resolver
	fetcher   *attach.Fetcher
	snapshots *snapshotCache
	grace     time.Duration
}

// New wires the moderation log. fetcher may be nil to disable attachment
// recovery on deleted messages.
func New(cfg *config.Config, notify *notifier.Notifier, registry *reconcile.Registry, resolver Resolver, fetcher *attach.Fetcher) *ModLog {
	return &ModLog{
		cfg:       cfg,
		notify:    notify,
		registry:  registry,
		resolver:  resolver,
		fetcher:   fetcher,
		snapshots: newSnapshotCache(),
		grace:     reconcile.GracePeriod,
	}
}

// Register attaches all event handlers to the session.
func (m *ModLog) Register(d *discordgo.Session) {
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildCreate) { m.HandleGuildCreate(e.Guild) })
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildUpdate) { m.HandleGuildUpdate(e.Guild) })

	d.AddHandler(func(_ *discordgo.Session, e *discordgo.ChannelCreate) { m.HandleChannelCreate(e.Channel) })
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.ChannelDelete) { m.HandleChannelDelete(e.Channel) })
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.ChannelUpdate) { m.HandleChannelUpdate(e.Channel) })

	d.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildRoleCreate) { m.HandleRoleCreate(e.GuildID, e.Role) })
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildRoleDelete) { m.HandleRoleDelete(e.GuildID, e.RoleID) })
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildRoleUpdate) { m.HandleRoleUpdate(e.GuildID, e.Role) })

	d.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildBanAdd) { m.HandleBanAdd(e) })
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildBanRemove) { m.HandleBanRemove(e) })
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildMemberAdd) { m.HandleMemberAdd(e.Member) })
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildMemberRemove) { m.HandleMemberRemove(e.Member) })
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.GuildMemberUpdate) { m.HandleMemberUpdate(e.BeforeUpdate, e.Member) })

	d.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageDelete) { m.HandleMessageDelete(e) })
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageDeleteBulk) { m.HandleMessageDeleteBulk(e) })
	d.AddHandler(func(_ *discordgo.Session, e *discordgo.MessageUpdate) { m.HandleMessageUpdate(e) })

	logging.Info("[MODLOG] Event handlers registered")
}

// IgnoreMessageDeletion marks messages a moderation action is about to
// delete itself, so the resulting deletion events are not logged again.
func (m *ModLog) IgnoreMessageDeletion(messageIDs ...string) {
	m.registry.IgnoreDeletions(messageIDs...)
}

// inScope drops events outside the home guild or inside ignored channels.
// Pass an empty channelID for events without a channel dimension.
func (m *ModLog) inScope(guildID, channelID string) bool {
	if guildID != m.cfg.Guild.ID {
		return false
	}
	if channelID != "" && m.cfg.Guild.ChannelIgnored(channelID) {
		return false
	}
	return true
}

// send dispatches a notice; delivery is fire-and-forget relative to the
// event that triggered it.
func (m *ModLog) send(n notifier.Notice) {
	if err := m.notify.Send(n); err != nil {
		logging.Warn("[MODLOG] %v", err)
	}
}

// channelLabel renders "category/name (`id`)", or "name (`id`)" when the
// channel has no resolvable parent category.
func (m *ModLog) channelLabel(c *discordgo.Channel, hash bool) string {
	name := c.Name
	if hash {
		name = "#" + name
	}
	if c.ParentID != "" && c.Type != discordgo.ChannelTypeGuildCategory {
		if parent, err := m.resolver.Channel(c.ParentID); err == nil && parent.Name != "" {
			return fmt.Sprintf("%s/%s (`%s`)", parent.Name, name, c.ID)
		}
	}
	return fmt.Sprintf("%s (`%s`)", name, c.ID)
}

func (m *ModLog) channelHeader(channelID string) string {
	ch, err := m.resolver.Channel(channelID)
	if err != nil {
		return fmt.Sprintf("`%s`", channelID)
	}
	return m.channelLabel(ch, true)
}

func userLabel(u *discordgo.User) string {
	return fmt.Sprintf("%s (`%s`)", u.String(), u.ID)
}
