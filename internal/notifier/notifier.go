// Package notifier renders moderation log notices as Discord embeds and
// dispatches them to their destination channel.
package notifier

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Sender is the slice of the Discord session the notifier needs.
// *discordgo.Session satisfies it.
type Sender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notice is one outbound log message. It exists only for the duration of
// the dispatch; nothing is persisted or retried.
type Notice struct {
	IconURL      string
	Colour       int
	Title        string
	Body         string
	Thumbnail    string
	ChannelID    string
	PingEveryone bool
	Files        []*discordgo.File
}

type Notifier struct {
	sender Sender
}

func New(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// Send builds the embed and dispatches it. Delivery failures are returned
// to the caller and never retried; log delivery is best-effort and must not
// block the moderation action it documents.
func (n *Notifier) Send(notice Notice) error {
	embed := &discordgo.MessageEmbed{
		Description: notice.Body,
		Color:       notice.Colour,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}

	if notice.Title != "" && notice.IconURL != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{
			Name:    notice.Title,
			IconURL: notice.IconURL,
		}
	}

	if notice.Thumbnail != "" {
		embed.Thumbnail = &discordgo.MessageEmbedThumbnail{URL: notice.Thumbnail}
	}

	send := &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{embed},
		Files:  notice.Files,
	}
	if notice.PingEveryone {
		send.Content = "@everyone"
	}

	if _, err := n.sender.ChannelMessageSendComplex(notice.ChannelID, send); err != nil {
		return fmt.Errorf("send notice to channel %s: %w", notice.ChannelID, err)
	}
	return nil
}
