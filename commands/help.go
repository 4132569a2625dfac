// commands/help.go
package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cmdbridge/cmdmsg"

	"github.com/bwmarrin/discordgo"
)

type HelpCommand struct {
	AllCommands map[string]CommandHandler
	Prefix      string
}

func (c *HelpCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "help",
		Description: "List the available commands",
	}
}

func (c *HelpCommand) Handle(ctx context.Context, cmd *cmdmsg.CommandMessage) error {
	// Show commands the way they were invoked.
	prefix := "/"
	if cmd.Origin() == cmdmsg.OriginMessage {
		prefix = c.Prefix
	}

	categorizedCommands := make(map[string][]string)
	for _, cmdHandler := range c.AllCommands {
		def := cmdHandler.GetCommandDef()
		category := cmdHandler.GetCategory()
		if category == "" {
			category = "other"
		}
		commandInfo := fmt.Sprintf("`%s%s` - %s", prefix, def.Name, def.Description)
		categorizedCommands[category] = append(categorizedCommands[category], commandInfo)
	}

	categories := make([]string, 0, len(categorizedCommands))
	for k := range categorizedCommands {
		categories = append(categories, k)
		sort.Strings(categorizedCommands[k])
	}
	sort.Strings(categories)

	embed := &discordgo.MessageEmbed{
		Title:       "Commands",
		Description: "Every command works both as a slash command and with the text prefix.",
		Color:       0x7289da,
		Fields:      []*discordgo.MessageEmbedField{},
	}
	for _, category := range categories {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("📂 %s", category),
			Value: strings.Join(categorizedCommands[category], "\n"),
		})
	}

	_, err := cmd.ReplyComplex(ctx, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}})
	return err
}

func (c *HelpCommand) GetCategory() string { return CategoryInfo }
