package modlog

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modlog/internal/config"
	"go-modlog/internal/notifier"
	"go-modlog/internal/reconcile"
)

// fakeSender records every dispatched notice.
type fakeSender struct {
	mu   sync.Mutex
	sent []sentNotice
}

type sentNotice struct {
	channelID string
	data      *discordgo.MessageSend
}

func (f *fakeSender) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentNotice{channelID: channelID, data: data})
	return nil, nil
}

func (f *fakeSender) notices() []sentNotice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentNotice(nil), f.sent...)
}

func (f *fakeSender) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
}

func (n sentNotice) title() string {
	if len(n.data.Embeds) == 0 || n.data.Embeds[0].Author == nil {
		return ""
	}
	return n.data.Embeds[0].Author.Name
}

func (n sentNotice) body() string {
	if len(n.data.Embeds) == 0 {
		return ""
	}
	return n.data.Embeds[0].Description
}

var errNotFound = errors.New("not found")

type fakeResolver struct {
	channels map[string]*discordgo.Channel
	messages map[string]*discordgo.Message
	roles    map[string]*discordgo.Role
}

func (f *fakeResolver) Channel(channelID string) (*discordgo.Channel, error) {
	if c, ok := f.channels[channelID]; ok {
		return c, nil
	}
	return nil, errNotFound
}

func (f *fakeResolver) Message(channelID, messageID string) (*discordgo.Message, error) {
	if m, ok := f.messages[channelID+"/"+messageID]; ok {
		return m, nil
	}
	return nil, errNotFound
}

func (f *fakeResolver) Role(_, roleID string) (*discordgo.Role, error) {
	if r, ok := f.roles[roleID]; ok {
		return r, nil
	}
	return nil, errNotFound
}

const (
	testGuildID        = "100"
	testChannelID      = "200"
	testIgnoredChannel = "900"
)

func newTestModLog(t *testing.T) (*ModLog, *fakeSender, *fakeResolver) {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Guild.ID = testGuildID
	cfg.Guild.IgnoredChannels = []string{testIgnoredChannel}
	cfg.Channels = config.ChannelsConfig{ServerLog: "10", MessageLog: "11", DevAlerts: "12"}
	cfg.Icons = config.IconsConfig{
		HashGreen:     "https://cdn.test/hash_green.png",
		HashRed:       "https://cdn.test/hash_red.png",
		HashBlurple:   "https://cdn.test/hash_blurple.png",
		CrownGreen:    "https://cdn.test/crown_green.png",
		CrownRed:      "https://cdn.test/crown_red.png",
		CrownBlurple:  "https://cdn.test/crown_blurple.png",
		GuildUpdate:   "https://cdn.test/guild.png",
		UserBan:       "https://cdn.test/ban.png",
		UserUnban:     "https://cdn.test/unban.png",
		UserUpdate:    "https://cdn.test/user.png",
		SignIn:        "https://cdn.test/in.png",
		SignOut:       "https://cdn.test/out.png",
		MessageDelete: "https://cdn.test/del.png",
		MessageEdit:   "https://cdn.test/edit.png",
		MessageBulk:   "https://cdn.test/bulk.png",
	}

	sender := &fakeSender{}
	resolver := &fakeResolver{
		channels: map[string]*discordgo.Channel{
			testChannelID: {
				ID:      testChannelID,
				GuildID: testGuildID,
				Name:    "general",
				Type:    discordgo.ChannelTypeGuildText,
			},
		},
		messages: map[string]*discordgo.Message{},
		roles:    map[string]*discordgo.Role{},
	}

	m := New(cfg, notifier.New(sender), reconcile.NewRegistry(), resolver, nil)
	m.grace = time.Millisecond
	return m, sender, resolver
}

func userMessage(id string) *discordgo.Message {
	return &discordgo.Message{
		ID:        id,
		ChannelID: testChannelID,
		GuildID:   testGuildID,
		Content:   "hello world",
		Author:    &discordgo.User{ID: "500", Username: "alice", Discriminator: "0"},
	}
}

func botMessage(id string) *discordgo.Message {
	msg := userMessage(id)
	msg.Author.Bot = true
	return msg
}
