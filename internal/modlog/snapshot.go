package modlog

import (
	"sync"

	"github.com/bwmarrin/discordgo"
)

// snapshotCache keeps the last observed guild, channel and role objects.
// Their update events carry no before state, so the previous snapshot is the
// only thing there is to diff against.
type snapshotCache struct {
	mu       sync.Mutex
	guild    *discordgo.Guild
	channels map[string]*discordgo.Channel
	roles    map[string]*discordgo.Role
}

func newSnapshotCache() *snapshotCache {
	return &snapshotCache{
		channels: make(map[string]*discordgo.Channel),
		roles:    make(map[string]*discordgo.Role),
	}
}

// Stored values are shallow copies so later mutation of the session state
// cannot rewrite history.

func (c *snapshotCache) putGuild(g *discordgo.Guild) {
	cp := *g
	c.mu.Lock()
	c.guild = &cp
	c.mu.Unlock()
}

// swapGuild stores the new snapshot and returns the previous one, nil when
// the guild was never observed.
func (c *snapshotCache) swapGuild(g *discordgo.Guild) *discordgo.Guild {
	cp := *g
	c.mu.Lock()
	old := c.guild
	c.guild = &cp
	c.mu.Unlock()
	return old
}

func (c *snapshotCache) putChannel(ch *discordgo.Channel) {
	cp := *ch
	c.mu.Lock()
	c.channels[ch.ID] = &cp
	c.mu.Unlock()
}

func (c *snapshotCache) swapChannel(ch *discordgo.Channel) *discordgo.Channel {
	cp := *ch
	c.mu.Lock()
	old := c.channels[ch.ID]
	c.channels[ch.ID] = &cp
	c.mu.Unlock()
	return old
}

func (c *snapshotCache) takeChannel(channelID string) *discordgo.Channel {
	c.mu.Lock()
	old := c.channels[channelID]
	delete(c.channels, channelID)
	c.mu.Unlock()
	return old
}

func (c *snapshotCache) putRole(r *discordgo.Role) {
	cp := *r
	c.mu.Lock()
	c.roles[r.ID] = &cp
	c.mu.Unlock()
}

func (c *snapshotCache) swapRole(r *discordgo.Role) *discordgo.Role {
	cp := *r
	c.mu.Lock()
	old := c.roles[r.ID]
	c.roles[r.ID] = &cp
	c.mu.Unlock()
	return old
}

// takeRole removes and returns the snapshot for a deleted role.
func (c *snapshotCache) takeRole(roleID string) *discordgo.Role {
	c.mu.Lock()
	old := c.roles[roleID]
	delete(c.roles, roleID)
	c.mu.Unlock()
	return old
}
