package handlers

import (
	"context"

	"cmdbridge/cmdmsg"

	"github.com/bwmarrin/discordgo"
)

// HandleInteractionCreate runs slash commands as CommandMessages.
func (h *EventHandler) HandleInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := commandContext()
	defer cancel()
	h.handleInteraction(ctx, i.Interaction)
}

func (h *EventHandler) handleInteraction(ctx context.Context, i *discordgo.Interaction) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	cmd, err := cmdmsg.FromInteraction(ctx, h.Client, i)
	if err != nil {
		h.Log.Error("Failed to acknowledge interaction", "error", err, "interactionID", i.ID)
		return
	}
	handler, ok := h.Commands[cmd.Command()]
	if !ok {
		h.Log.Warn("Unknown command received", "command", cmd.Command())
		if _, err := cmd.Reply(ctx, "Unknown command."); err != nil {
			h.Log.Error("Failed to reply to unknown command", "error", err, "command", cmd.Command())
		}
		return
	}
	h.dispatch(ctx, handler, cmd)
}
