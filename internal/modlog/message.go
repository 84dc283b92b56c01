package modlog

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"go-modlog/internal/logging"
	"go-modlog/internal/notifier"
)

const notCachedBody = "This message was not cached, so the message content cannot be displayed."

// HandleMessageDelete routes a deletion to the cached path when the prior
// message state is available and to the raw fallback path otherwise.
func (m *ModLog) HandleMessageDelete(e *discordgo.MessageDelete) {
	if !m.inScope(e.GuildID, e.ChannelID) {
		return
	}

	if cached := e.BeforeDelete; cached != nil {
		m.cachedMessageDelete(cached)
		return
	}
	go m.rawMessageDelete(e.ChannelID, e.ID)
}

func (m *ModLog) cachedMessageDelete(msg *discordgo.Message) {
	m.registry.MarkDeleteSeen(msg.ID)

	if m.registry.ConsumeIgnored(msg.ID) {
		// A moderation action already explained this deletion.
		return
	}
	if msg.Author == nil || msg.Author.Bot {
		return
	}

	body := m.messageBody(msg.Author, msg.ChannelID, msg.ID, msg.ContentWithMentionsReplaced())

	var files []*discordgo.File
	if len(msg.Attachments) > 0 {
		body = fmt.Sprintf("**Attachments:** %d\n%s", len(msg.Attachments), body)
		if m.fetcher != nil {
			files = m.fetcher.Recover(msg.Attachments)
		}
	}

	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.MessageDelete,
		Colour:    ColourRed,
		Title:     "Message deleted",
		Body:      body,
		ChannelID: m.cfg.Channels.MessageLog,
		Files:     files,
	})
}

// rawMessageDelete handles deletions of messages absent from the cache. It
// waits the grace period first so a concurrent cached-path delivery for the
// same message can record itself and win.
func (m *ModLog) rawMessageDelete(channelID, messageID string) {
	time.Sleep(m.grace)

	if m.registry.ConsumeDeleteSeen(messageID) {
		return
	}
	if m.registry.ConsumeIgnored(messageID) {
		return
	}

	body := fmt.Sprintf("**Channel:** %s\n**Message ID:** `%s`\n\n%s",
		m.channelHeader(channelID), messageID, notCachedBody)

	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.MessageDelete,
		Colour:    ColourRed,
		Title:     "Message deleted",
		Body:      body,
		ChannelID: m.cfg.Channels.MessageLog,
	})
}

func (m *ModLog) HandleMessageDeleteBulk(e *discordgo.MessageDeleteBulk) {
	if !m.inScope(e.GuildID, e.ChannelID) {
		return
	}

	ignored := 0
	for _, id := range e.Messages {
		if m.registry.ConsumeIgnored(id) {
			ignored++
		}
	}
	if ignored >= len(e.Messages) {
		return
	}

	// The notice reports the whole batch, ignored IDs included.
	body := fmt.Sprintf("%d deleted in %s", len(e.Messages), m.channelHeader(e.ChannelID))
	m.send(notifier.Notice{
		IconURL:      m.cfg.Icons.MessageBulk,
		Colour:       ColourOrange,
		Title:        "Bulk message delete",
		Body:         body,
		ChannelID:    m.cfg.Channels.DevAlerts,
		PingEveryone: true,
	})
}

// HandleMessageUpdate routes an edit to the cached path when the prior
// message state is available and to the raw fallback path otherwise.
func (m *ModLog) HandleMessageUpdate(e *discordgo.MessageUpdate) {
	if !m.inScope(e.GuildID, e.ChannelID) {
		return
	}

	if before := e.BeforeUpdate; before != nil {
		m.cachedMessageEdit(before, e.Message)
		return
	}
	go m.rawMessageEdit(e.ChannelID, e.ID)
}

func (m *ModLog) cachedMessageEdit(before, after *discordgo.Message) {
	if before.Author == nil || before.Author.Bot {
		return
	}

	m.registry.MarkEditSeen(before.ID)

	if before.Content == after.Content {
		// Embed-only and other non-content edits carry no information.
		return
	}

	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.MessageEdit,
		Colour:    ColourBlurple,
		Title:     "Message edited (Before)",
		Body:      m.messageBody(before.Author, before.ChannelID, before.ID, before.ContentWithMentionsReplaced()),
		ChannelID: m.cfg.Channels.MessageLog,
	})
	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.MessageEdit,
		Colour:    ColourBlurple,
		Title:     "Message edited (After)",
		Body:      m.messageBody(before.Author, before.ChannelID, before.ID, after.ContentWithMentionsReplaced()),
		ChannelID: m.cfg.Channels.MessageLog,
	})
}

// rawMessageEdit handles edits of messages absent from the cache: the
// current state is fetched from the platform, the prior content is unknown.
func (m *ModLog) rawMessageEdit(channelID, messageID string) {
	msg, err := m.resolver.Message(channelID, messageID)
	if err != nil {
		// Deleted before the lookup; nothing to report.
		logging.Debug("[MODLOG] Edited message %s not resolvable: %v", messageID, err)
		return
	}
	if msg.Author == nil || msg.Author.Bot {
		return
	}

	time.Sleep(m.grace)

	if m.registry.ConsumeEditSeen(messageID) {
		return
	}

	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.MessageEdit,
		Colour:    ColourBlurple,
		Title:     "Message edited (Before)",
		Body:      m.messageBody(msg.Author, channelID, messageID, notCachedBody),
		ChannelID: m.cfg.Channels.MessageLog,
	})
	m.send(notifier.Notice{
		IconURL:   m.cfg.Icons.MessageEdit,
		Colour:    ColourBlurple,
		Title:     "Message edited (After)",
		Body:      m.messageBody(msg.Author, channelID, messageID, msg.ContentWithMentionsReplaced()),
		ChannelID: m.cfg.Channels.MessageLog,
	})
}

func (m *ModLog) messageBody(author *discordgo.User, channelID, messageID, content string) string {
	return fmt.Sprintf("**Author:** %s (`%s`)\n**Channel:** %s\n**Message ID:** `%s`\n\n%s",
		author.String(), author.ID, m.channelHeader(channelID), messageID, content)
}
