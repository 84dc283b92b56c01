package commands

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"go-modlog/internal/bot"
	"go-modlog/internal/logging"
)

// Handler manages all command interactions
type Handler struct {
	session *bot.Session
}

var globalHandler *Handler

// Initialize creates the command handler and registers all commands.
func Initialize(session *bot.Session) error {
	globalHandler = &Handler{
		session: session,
	}

	session.AddHandler(globalHandler.handleInteraction)

	cmds := GetAllCommands()
	if err := session.RegisterCommands(cmds); err != nil {
		return fmt.Errorf("failed to register commands: %w", err)
	}

	logging.Info("Command handler initialized with %d commands", len(cmds))
	return nil
}

func (h *Handler) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	h.handleCommand(s, i)
}

func (h *Handler) handleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	var err error
	switch data.Name {
	case "ping":
		err = handlePing(s, i)
	case "status":
		err = handleStatus(s, i)
	default:
		err = fmt.Errorf("unknown command: %s", data.Name)
	}

	if err != nil {
		logging.Error("Command error [%s]: %v", data.Name, err)
		respondError(s, i, err.Error())
	}
}

// respondError sends an ephemeral error message
func respondError(s *discordgo.Session, i *discordgo.InteractionCreate, message string) {
	s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: fmt.Sprintf("❌ Error: %s", message),
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}
