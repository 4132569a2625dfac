package commands

import (
	"context"
	"fmt"
	"strings"

	"cmdbridge/cmdmsg"

	"github.com/bwmarrin/discordgo"
)

var pollEmojis = []string{"1️⃣", "2️⃣", "3️⃣", "4️⃣", "5️⃣", "6️⃣", "7️⃣", "8️⃣", "9️⃣", "🔟"}

// PollCommand posts a poll and adds one reaction per choice.
// Input is "question | choice | choice ...".
type PollCommand struct{}

func (c *PollCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "poll",
		Description: "Create a poll",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "question", Description: "Question and choices separated by | (2 to 10 choices)", Required: true},
		},
	}
}

func (c *PollCommand) Handle(ctx context.Context, cmd *cmdmsg.CommandMessage) error {
	question, choices, ok := parsePoll(cmd.RawOptions())
	if !ok {
		_, err := cmd.Reply(ctx, "❌ Usage: poll question | choice | choice (2 to 10 choices)")
		return err
	}

	var description strings.Builder
	for i, choice := range choices {
		fmt.Fprintf(&description, "%s %s\n\n", pollEmojis[i], choice)
	}
	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("📊 %s", question),
		Description: description.String(),
		Color:       0x40E0D0,
	}
	if author := cmd.Author(); author != nil {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Created by %s", author.Username)}
	}

	res, err := cmd.ReplyComplex(ctx, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}})
	if err != nil {
		return err
	}
	for i := range choices {
		if err := res.React(ctx, pollEmojis[i]); err != nil {
			return err
		}
	}
	return nil
}

func (c *PollCommand) GetCategory() string { return CategoryUtility }

func parsePoll(raw string) (question string, choices []string, ok bool) {
	parts := strings.Split(raw, "|")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 3 || parts[0] == "" {
		return "", nil, false
	}
	for _, p := range parts[1:] {
		if p != "" {
			choices = append(choices, p)
		}
	}
	if len(choices) < 2 || len(choices) > len(pollEmojis) {
		return "", nil, false
	}
	return parts[0], choices, true
}
