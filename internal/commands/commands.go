package commands

import "github.com/bwmarrin/discordgo"

// GetAllCommands returns all application commands
func GetAllCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ping",
			Description: "Check Discord API latency and connection quality",
		},
		{
			Name:        "status",
			Description: "Show moderation log status and host statistics",
		},
	}
}
