package cmdmsg

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/bwmarrin/discordgo"
)

// Origin tells which Discord object a CommandMessage or ResponseMessage wraps.
type Origin int

const (
	OriginMessage Origin = iota
	OriginInteraction
)

func (o Origin) String() string {
	switch o {
	case OriginMessage:
		return "message"
	case OriginInteraction:
		return "interaction"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// CommandMessage represents a text message or a slash-command interaction
// that carries a command. Exactly one of message and interaction is set,
// according to origin.
type CommandMessage struct {
	client      *Client
	origin      Origin
	message     *discordgo.Message
	interaction *discordgo.Interaction

	command    string
	options    []string
	rawOptions string

	replied  atomic.Bool
	response atomic.Pointer[ResponseMessage]
}

// FromMessage builds a CommandMessage from a message a user sent.
// prefixLength is the number of runes of the command prefix.
func FromMessage(client *Client, m *discordgo.Message, prefixLength int) *CommandMessage {
	parsed := ResolveCommandMessage(m.Content, prefixLength, nil)
	return fromMessageWithParsed(client, m, parsed.Command, parsed.Options, parsed.RawOptions)
}

func fromMessageWithParsed(client *Client, m *discordgo.Message, command string, options []string, rawOptions string) *CommandMessage {
	return &CommandMessage{
		client:     client,
		origin:     OriginMessage,
		message:    m,
		command:    command,
		options:    options,
		rawOptions: rawOptions,
	}
}

// FromInteraction builds a CommandMessage from an application command
// interaction and acknowledges it with a deferred response, so that Reply can
// later edit that response.
func FromInteraction(ctx context.Context, client *Client, i *discordgo.Interaction) (*CommandMessage, error) {
	cmd, err := FromDeferredInteraction(client, i)
	if err != nil {
		return nil, err
	}
	err = client.Session.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	client.log().Debug("deferred interaction response", "interactionID", i.ID, "command", cmd.command)
	return cmd, nil
}

// FromDeferredInteraction is FromInteraction for interactions that were
// already acknowledged with a deferred response.
func FromDeferredInteraction(client *Client, i *discordgo.Interaction) (*CommandMessage, error) {
	if i.Type != discordgo.InteractionApplicationCommand || i.Data == nil {
		return nil, ErrNotCommandInteraction
	}
	data := i.ApplicationCommandData()
	options := interactionOptionValues(data.Options)
	return &CommandMessage{
		client:      client,
		origin:      OriginInteraction,
		interaction: i,
		command:     data.Name,
		options:     options,
		rawOptions:  strings.Join(options, " "),
	}, nil
}

// interactionOptionValues stringifies option values in order. Sub-commands
// and sub-command groups contribute their name followed by their own options.
func interactionOptionValues(opts []*discordgo.ApplicationCommandInteractionDataOption) []string {
	values := make([]string, 0, len(opts))
	for _, opt := range opts {
		switch opt.Type {
		case discordgo.ApplicationCommandOptionSubCommand, discordgo.ApplicationCommandOptionSubCommandGroup:
			values = append(values, opt.Name)
			values = append(values, interactionOptionValues(opt.Options)...)
		default:
			values = append(values, fmt.Sprint(opt.Value))
		}
	}
	return values
}

// Reply responds to the command. It can succeed once per CommandMessage.
func (c *CommandMessage) Reply(ctx context.Context, content string) (*ResponseMessage, error) {
	return c.ReplyComplex(ctx, &discordgo.MessageSend{Content: content})
}

// ReplyComplex is Reply with a full message payload. data is not modified.
func (c *CommandMessage) ReplyComplex(ctx context.Context, data *discordgo.MessageSend) (*ResponseMessage, error) {
	if !c.replied.CompareAndSwap(false, true) {
		return nil, ErrAlreadyReplied
	}

	var (
		res *ResponseMessage
		msg *discordgo.Message
		err error
	)
	switch c.origin {
	case OriginMessage:
		send := *data
		send.AllowedMentions = withoutRepliedUser(data.AllowedMentions)
		send.Reference = &discordgo.MessageReference{
			MessageID: c.message.ID,
			ChannelID: c.message.ChannelID,
			GuildID:   c.message.GuildID,
		}
		msg, err = c.client.Session.ChannelMessageSendComplex(c.message.ChannelID, &send, discordgo.WithContext(ctx))
		if err != nil {
			c.replied.Store(false)
			return nil, err
		}
		if msg.GuildID == "" {
			msg.GuildID = c.message.GuildID
		}
		res, err = ResponseFromMessage(c.client, msg, c)
	default:
		msg, err = c.client.Session.InteractionResponseEdit(c.interaction, webhookEditFromSend(data), discordgo.WithContext(ctx))
		if err != nil {
			c.replied.Store(false)
			return nil, err
		}
		res, err = ResponseFromInteraction(c.client, c.interaction, msg, c)
	}
	if err != nil {
		return nil, err
	}

	c.client.log().Debug("replied to command", "origin", c.origin.String(), "command", c.command, "sourceID", c.ID(), "responseID", res.ID())
	c.bindResponse(res)
	return res, nil
}

// bindResponse replaces the bound response. It is the only path through
// which a ResponseMessage updates its CommandMessage.
func (c *CommandMessage) bindResponse(res *ResponseMessage) {
	c.response.Store(res)
	if c.client.OnResponse != nil {
		c.client.OnResponse(c, res)
	}
}

// Response returns the latest response bound to this command message, or nil.
// The returned value is stale once it has been edited.
func (c *CommandMessage) Response() *ResponseMessage {
	return c.response.Load()
}

// SuppressEmbeds sets the suppress-embeds flag of the command message and
// returns a CommandMessage for the updated message. Interactions have nothing
// to suppress, so the receiver itself is returned.
func (c *CommandMessage) SuppressEmbeds(ctx context.Context, suppress bool) (*CommandMessage, error) {
	if c.origin != OriginMessage {
		return c, nil
	}

	flags := c.message.Flags &^ discordgo.MessageFlagsSuppressEmbeds
	if suppress {
		flags |= discordgo.MessageFlagsSuppressEmbeds
	}
	// MessageEdit drops a zero flags field, so the PATCH is sent directly.
	body, err := c.client.Session.RequestWithBucketID(
		http.MethodPatch,
		discordgo.EndpointChannelMessage(c.message.ChannelID, c.message.ID),
		map[string]discordgo.MessageFlags{"flags": flags},
		discordgo.EndpointChannelMessage(c.message.ChannelID, ""),
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return nil, err
	}
	var updated discordgo.Message
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, err
	}
	carryGatewayFields(&updated, c.message)

	options := make([]string, len(c.options))
	copy(options, c.options)
	return fromMessageWithParsed(c.client, &updated, c.command, options, c.rawOptions), nil
}

// Origin reports whether this was created from a message or an interaction.
func (c *CommandMessage) Origin() Origin {
	return c.origin
}

// Message returns the wrapped message, nil for interactions.
func (c *CommandMessage) Message() *discordgo.Message {
	return c.message
}

// Interaction returns the wrapped interaction, nil for messages.
func (c *CommandMessage) Interaction() *discordgo.Interaction {
	return c.interaction
}

// Content returns the message content. For interactions it is rebuilt as
// "/name value...".
func (c *CommandMessage) Content() string {
	if c.origin == OriginMessage {
		return c.message.Content
	}
	return strings.TrimSpace("/" + c.command + " " + c.rawOptions)
}

func (c *CommandMessage) Author() *discordgo.User {
	if c.origin == OriginMessage {
		return c.message.Author
	}
	return interactionUser(c.interaction)
}

// Member is nil outside guilds.
func (c *CommandMessage) Member() *discordgo.Member {
	if c.origin == OriginMessage {
		return c.message.Member
	}
	return c.interaction.Member
}

func (c *CommandMessage) Channel(ctx context.Context) (*discordgo.Channel, error) {
	return c.client.channel(ctx, c.ChannelID())
}

// Guild returns nil without error for direct messages.
func (c *CommandMessage) Guild(ctx context.Context) (*discordgo.Guild, error) {
	return c.client.guild(ctx, c.GuildID())
}

// Reactions is always nil for interactions.
func (c *CommandMessage) Reactions() []*discordgo.MessageReactions {
	if c.origin == OriginMessage {
		return c.message.Reactions
	}
	return nil
}

// URL is the jump link of the message. Interactions have none and return "".
func (c *CommandMessage) URL() string {
	if c.origin == OriginMessage {
		return messageURL(c.message)
	}
	return ""
}

// CreatedTimestamp is the creation time in Unix milliseconds.
func (c *CommandMessage) CreatedTimestamp() int64 {
	return c.CreatedAt().UnixMilli()
}

func (c *CommandMessage) CreatedAt() time.Time {
	if c.origin == OriginMessage {
		return messageCreatedAt(c.message)
	}
	t, _ := discordgo.SnowflakeTimestamp(c.interaction.ID)
	return t
}

func (c *CommandMessage) ID() string {
	if c.origin == OriginMessage {
		return c.message.ID
	}
	return c.interaction.ID
}

func (c *CommandMessage) ChannelID() string {
	if c.origin == OriginMessage {
		return c.message.ChannelID
	}
	return c.interaction.ChannelID
}

func (c *CommandMessage) GuildID() string {
	if c.origin == OriginMessage {
		return c.message.GuildID
	}
	return c.interaction.GuildID
}

// Attachments is always empty for interactions.
func (c *CommandMessage) Attachments() []*discordgo.MessageAttachment {
	if c.origin == OriginMessage {
		return c.message.Attachments
	}
	return []*discordgo.MessageAttachment{}
}

// Command is the resolved command name; text commands are lower-cased.
func (c *CommandMessage) Command() string {
	return c.command
}

// Options returns a copy of the resolved command arguments.
func (c *CommandMessage) Options() []string {
	options := make([]string, len(c.options))
	copy(options, c.options)
	return options
}

// RawOptions is the arguments joined with single spaces.
func (c *CommandMessage) RawOptions() string {
	return c.rawOptions
}
