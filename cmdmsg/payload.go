package cmdmsg

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
)

// withoutRepliedUser returns a copy of am that does not ping the replied user.
// A nil am suppresses every mention.
func withoutRepliedUser(am *discordgo.MessageAllowedMentions) *discordgo.MessageAllowedMentions {
	if am == nil {
		return &discordgo.MessageAllowedMentions{Parse: []discordgo.AllowedMentionType{}}
	}
	cp := *am
	cp.RepliedUser = false
	return &cp
}

func webhookEditFromSend(data *discordgo.MessageSend) *discordgo.WebhookEdit {
	content := data.Content
	edit := &discordgo.WebhookEdit{
		Content:         &content,
		Files:           data.Files,
		AllowedMentions: data.AllowedMentions,
	}
	if data.Embeds != nil {
		embeds := data.Embeds
		edit.Embeds = &embeds
	}
	if data.Components != nil {
		components := data.Components
		edit.Components = &components
	}
	return edit
}

func webhookEditFromEdit(data *discordgo.MessageEdit) *discordgo.WebhookEdit {
	return &discordgo.WebhookEdit{
		Content:         data.Content,
		Components:      data.Components,
		Embeds:          data.Embeds,
		Files:           data.Files,
		Attachments:     data.Attachments,
		AllowedMentions: data.AllowedMentions,
	}
}

// carryGatewayFields copies the fields REST responses omit but gateway
// events carry.
func carryGatewayFields(dst, src *discordgo.Message) {
	if dst.GuildID == "" {
		dst.GuildID = src.GuildID
	}
	if dst.Member == nil {
		dst.Member = src.Member
	}
}

func interactionUser(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

func messageURL(m *discordgo.Message) string {
	guildID := m.GuildID
	if guildID == "" {
		guildID = "@me"
	}
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guildID, m.ChannelID, m.ID)
}

func messageCreatedAt(m *discordgo.Message) time.Time {
	if !m.Timestamp.IsZero() {
		return m.Timestamp
	}
	t, _ := discordgo.SnowflakeTimestamp(m.ID)
	return t
}
