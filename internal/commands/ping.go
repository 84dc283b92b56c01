package commands

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// handlePing reports gateway heartbeat and REST round-trip latency.
func handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}

	restStart := time.Now()
	_, restErr := s.Channel(i.ChannelID)
	restLatency := time.Since(restStart)

	restText := fmt.Sprintf("%dms", restLatency.Milliseconds())
	if restErr != nil {
		restText = "unavailable"
	}

	wsLatency := s.HeartbeatLatency()

	colour := 0x68C290
	if wsLatency > 150*time.Millisecond || restErr != nil || restLatency > 300*time.Millisecond {
		colour = 0xCD6D6D
	}

	embed := &discordgo.MessageEmbed{
		Title: "Pong!",
		Color: colour,
		Description: fmt.Sprintf("**Gateway heartbeat:** %dms\n**REST round trip:** %s",
			wsLatency.Milliseconds(), restText),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})
	return err
}
