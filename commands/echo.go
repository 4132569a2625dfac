package commands

import (
	"context"

	"cmdbridge/cmdmsg"
	"cmdbridge/interfaces"

	"github.com/bwmarrin/discordgo"
)

// EchoCommand repeats its arguments. Link previews on the invoking message are
// suppressed so the link is only embedded once, in the reply.
type EchoCommand struct {
	Log interfaces.Logger
}

func (c *EchoCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "echo",
		Description: "Repeat the given text",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "text", Description: "Text to repeat", Required: true},
		},
	}
}

func (c *EchoCommand) Handle(ctx context.Context, cmd *cmdmsg.CommandMessage) error {
	if cmd.RawOptions() == "" {
		_, err := cmd.Reply(ctx, "Usage: echo <text>")
		return err
	}
	// Suppressing needs Manage Messages; without it the echo still goes out.
	if suppressed, err := cmd.SuppressEmbeds(ctx, true); err != nil {
		c.Log.Warn("failed to suppress embeds", "error", err, "messageID", cmd.ID())
	} else {
		cmd = suppressed
	}
	_, err := cmd.Reply(ctx, cmd.RawOptions())
	return err
}

func (c *EchoCommand) GetCategory() string { return CategoryUtility }
