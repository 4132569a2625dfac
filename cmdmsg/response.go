package cmdmsg

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
)

// ResponseMessage represents the bot's reply bound to a CommandMessage.
// A ResponseMessage never changes; Edit and Fetch return new values.
type ResponseMessage struct {
	client      *Client
	origin      Origin
	message     *discordgo.Message
	interaction *discordgo.Interaction
	command     *CommandMessage
}

// ResponseFromMessage wraps a reply sent as a regular message.
func ResponseFromMessage(client *Client, m *discordgo.Message, command *CommandMessage) (*ResponseMessage, error) {
	if !authoredBy(m, client.SelfID) {
		return nil, ErrNotResponseMessage
	}
	return &ResponseMessage{
		client:  client,
		origin:  OriginMessage,
		message: m,
		command: command,
	}, nil
}

// ResponseFromInteraction wraps a reply made by editing the response of i.
// The message returned by the webhook API lacks the guild id, which is taken
// from the interaction.
func ResponseFromInteraction(client *Client, i *discordgo.Interaction, m *discordgo.Message, command *CommandMessage) (*ResponseMessage, error) {
	if !authoredBy(m, client.SelfID) {
		return nil, ErrNotResponseMessage
	}
	if m.ChannelID == "" {
		m.ChannelID = i.ChannelID
	}
	if m.GuildID == "" {
		m.GuildID = i.GuildID
	}
	return &ResponseMessage{
		client:      client,
		origin:      OriginInteraction,
		message:     m,
		interaction: i,
		command:     command,
	}, nil
}

func authoredBy(m *discordgo.Message, userID string) bool {
	return m != nil && m.Author != nil && m.Author.ID == userID
}

// Edit replaces the content of the response message.
func (r *ResponseMessage) Edit(ctx context.Context, content string) (*ResponseMessage, error) {
	return r.EditComplex(ctx, &discordgo.MessageEdit{Content: &content})
}

// EditComplex edits the response message and binds the result to the
// originating CommandMessage. data is not modified; its ID and Channel are
// ignored.
func (r *ResponseMessage) EditComplex(ctx context.Context, data *discordgo.MessageEdit) (*ResponseMessage, error) {
	var (
		res *ResponseMessage
		msg *discordgo.Message
		err error
	)
	switch r.origin {
	case OriginMessage:
		edit := *data
		edit.ID = r.message.ID
		edit.Channel = r.message.ChannelID
		edit.AllowedMentions = withoutRepliedUser(data.AllowedMentions)
		msg, err = r.client.Session.ChannelMessageEditComplex(&edit, discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		carryGatewayFields(msg, r.message)
		res, err = ResponseFromMessage(r.client, msg, r.command)
	default:
		msg, err = r.client.Session.InteractionResponseEdit(r.interaction, webhookEditFromEdit(data), discordgo.WithContext(ctx))
		if err != nil {
			return nil, err
		}
		res, err = ResponseFromInteraction(r.client, r.interaction, msg, r.command)
	}
	if err != nil {
		return nil, err
	}

	r.client.log().Debug("edited response", "origin", r.origin.String(), "responseID", res.ID())
	if r.command != nil {
		r.command.bindResponse(res)
	}
	return res, nil
}

// Delete deletes the response message.
func (r *ResponseMessage) Delete(ctx context.Context) error {
	return r.client.Session.ChannelMessageDelete(r.message.ChannelID, r.message.ID, discordgo.WithContext(ctx))
}

// React adds a reaction to the response message. emoji is either a unicode
// emoji or "name:id" for custom emoji.
func (r *ResponseMessage) React(ctx context.Context, emoji string) error {
	return r.client.Session.MessageReactionAdd(r.message.ChannelID, r.message.ID, emoji, discordgo.WithContext(ctx))
}

// Fetch re-reads the response message from Discord.
func (r *ResponseMessage) Fetch(ctx context.Context) (*ResponseMessage, error) {
	msg, err := r.client.Session.ChannelMessage(r.message.ChannelID, r.message.ID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	carryGatewayFields(msg, r.message)
	if r.origin == OriginInteraction {
		return ResponseFromInteraction(r.client, r.interaction, msg, r.command)
	}
	return ResponseFromMessage(r.client, msg, r.command)
}

// Command returns the CommandMessage this responds to. It may be stale.
func (r *ResponseMessage) Command() *CommandMessage {
	return r.command
}

func (r *ResponseMessage) Origin() Origin {
	return r.origin
}

// Message returns the underlying response message.
func (r *ResponseMessage) Message() *discordgo.Message {
	return r.message
}

func (r *ResponseMessage) Content() string {
	return r.message.Content
}

// Author follows the origin: the message author, or the user who invoked the
// interaction.
func (r *ResponseMessage) Author() *discordgo.User {
	if r.origin == OriginMessage {
		return r.message.Author
	}
	return interactionUser(r.interaction)
}

func (r *ResponseMessage) Member() *discordgo.Member {
	if r.origin == OriginMessage {
		return r.message.Member
	}
	return r.interaction.Member
}

func (r *ResponseMessage) Channel(ctx context.Context) (*discordgo.Channel, error) {
	return r.client.channel(ctx, r.message.ChannelID)
}

func (r *ResponseMessage) Guild(ctx context.Context) (*discordgo.Guild, error) {
	return r.client.guild(ctx, r.message.GuildID)
}

func (r *ResponseMessage) Reactions() []*discordgo.MessageReactions {
	return r.message.Reactions
}

func (r *ResponseMessage) URL() string {
	return messageURL(r.message)
}

func (r *ResponseMessage) CreatedTimestamp() int64 {
	return r.CreatedAt().UnixMilli()
}

func (r *ResponseMessage) CreatedAt() time.Time {
	return messageCreatedAt(r.message)
}

func (r *ResponseMessage) ID() string {
	return r.message.ID
}

func (r *ResponseMessage) ChannelID() string {
	return r.message.ChannelID
}

func (r *ResponseMessage) GuildID() string {
	return r.message.GuildID
}

func (r *ResponseMessage) Attachments() []*discordgo.MessageAttachment {
	return r.message.Attachments
}

func (r *ResponseMessage) Embeds() []*discordgo.MessageEmbed {
	return r.message.Embeds
}

func (r *ResponseMessage) Components() []discordgo.MessageComponent {
	return r.message.Components
}
