package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cmdbridge/cmdmsg"

	"github.com/bwmarrin/discordgo"
)

// InfoCommand shows the current server, or the invoking user together with
// how the command reached the bot.
type InfoCommand struct{}

func (c *InfoCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "info",
		Description: "Show information about this server or yourself",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Name:        "server",
				Description: "Show information about this server",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
			{
				Name:        "me",
				Description: "Show information about yourself and this command",
				Type:        discordgo.ApplicationCommandOptionSubCommand,
			},
		},
	}
}

func (c *InfoCommand) Handle(ctx context.Context, cmd *cmdmsg.CommandMessage) error {
	// Slash sub-commands arrive as the first option, just like "!info server".
	sub := "me"
	if opts := cmd.Options(); len(opts) > 0 {
		sub = strings.ToLower(opts[0])
	}

	var (
		embed *discordgo.MessageEmbed
		err   error
	)
	switch sub {
	case "server":
		embed, err = serverInfoEmbed(ctx, cmd)
	case "me":
		embed, err = userInfoEmbed(ctx, cmd)
	default:
		_, err = cmd.Reply(ctx, "Usage: info [server|me]")
		return err
	}
	if err != nil {
		return err
	}
	if embed == nil {
		_, err = cmd.Reply(ctx, "This command only works in a server.")
		return err
	}
	_, err = cmd.ReplyComplex(ctx, &discordgo.MessageSend{Embeds: []*discordgo.MessageEmbed{embed}})
	return err
}

func (c *InfoCommand) GetCategory() string { return CategoryInfo }

// serverInfoEmbed returns nil outside guilds.
func serverInfoEmbed(ctx context.Context, cmd *cmdmsg.CommandMessage) (*discordgo.MessageEmbed, error) {
	guild, err := cmd.Guild(ctx)
	if err != nil {
		return nil, fmt.Errorf("get guild %s: %w", cmd.GuildID(), err)
	}
	if guild == nil {
		return nil, nil
	}
	createdAt, _ := discordgo.SnowflakeTimestamp(guild.ID)

	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Server: %s", guild.Name),
		Description: guild.Description,
		Color:       0x7289DA,
		Thumbnail:   &discordgo.MessageEmbedThumbnail{URL: guild.IconURL("")},
		Fields: []*discordgo.MessageEmbedField{
			{Name: "👑 Owner", Value: fmt.Sprintf("<@%s>", guild.OwnerID), Inline: true},
			{Name: "👥 Members", Value: fmt.Sprintf("%d", guild.MemberCount), Inline: true},
			{Name: "📅 Created", Value: fmt.Sprintf("<t:%d:F>", createdAt.Unix()), Inline: false},
			{Name: "📜 Roles", Value: fmt.Sprintf("%d", len(guild.Roles)), Inline: true},
			{Name: "😀 Emojis", Value: fmt.Sprintf("%d", len(guild.Emojis)), Inline: true},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

func userInfoEmbed(ctx context.Context, cmd *cmdmsg.CommandMessage) (*discordgo.MessageEmbed, error) {
	user := cmd.Author()
	if user == nil {
		return nil, fmt.Errorf("command %s has no author", cmd.ID())
	}
	channel, err := cmd.Channel(ctx)
	if err != nil {
		return nil, fmt.Errorf("get channel %s: %w", cmd.ChannelID(), err)
	}
	userCreatedAt, _ := discordgo.SnowflakeTimestamp(user.ID)

	fields := []*discordgo.MessageEmbedField{
		{Name: "📛 Name", Value: user.Mention(), Inline: true},
		{Name: "🆔 User ID", Value: fmt.Sprintf("`%s`", user.ID), Inline: true},
		{Name: "📅 Account created", Value: fmt.Sprintf("<t:%d:f>", userCreatedAt.Unix()), Inline: false},
	}
	if member := cmd.Member(); member != nil && !member.JoinedAt.IsZero() {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name: "👋 Joined", Value: fmt.Sprintf("<t:%d:f>", member.JoinedAt.Unix()), Inline: false,
		})
	}
	source := fmt.Sprintf("%s in <#%s> at <t:%d:T>", cmd.Origin(), channel.ID, cmd.CreatedAt().Unix())
	if url := cmd.URL(); url != "" {
		source += "\n" + url
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "📨 Invoked via", Value: source, Inline: false})

	return &discordgo.MessageEmbed{
		Author:    &discordgo.MessageEmbedAuthor{Name: user.Username, IconURL: user.AvatarURL("")},
		Color:     0x2ECC71,
		Thumbnail: &discordgo.MessageEmbedThumbnail{URL: user.AvatarURL("")},
		Fields:    fields,
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}
