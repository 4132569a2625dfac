// Package cmdmsg puts prefixed text commands and slash-command interactions
// behind one CommandMessage type, and the bot's replies to them behind one
// ResponseMessage type.
package cmdmsg

import (
	"context"

	"cmdbridge/logger"

	"github.com/bwmarrin/discordgo"
)

// Session is the subset of *discordgo.Session the adapters call.
type Session interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error
	ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error)
	Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error)
	RequestWithBucketID(method, urlStr string, data interface{}, bucketID string, options ...discordgo.RequestOption) ([]byte, error)
}

var _ Session = (*discordgo.Session)(nil)

// Client carries what every CommandMessage and ResponseMessage needs to talk to Discord.
type Client struct {
	Session Session
	// SelfID is the bot's own user id. Replies authored by anyone else are rejected.
	SelfID string
	// State is consulted before REST for channel and guild lookups. May be nil.
	State *discordgo.State
	Log   logger.Logger
	// OnResponse is called every time a CommandMessage gets a new bound response.
	OnResponse func(cmd *CommandMessage, res *ResponseMessage)
}

// NewClient builds a Client from a connected session. The session must be open
// so that State.User is populated.
func NewClient(s *discordgo.Session, log logger.Logger) *Client {
	c := &Client{Session: s, State: s.State, Log: log}
	if s.State != nil && s.State.User != nil {
		c.SelfID = s.State.User.ID
	}
	return c
}

func (c *Client) log() logger.Logger {
	if c.Log == nil {
		return logger.Nop()
	}
	return c.Log
}

func (c *Client) channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	if c.State != nil {
		if ch, err := c.State.Channel(channelID); err == nil {
			return ch, nil
		}
	}
	return c.Session.Channel(channelID, discordgo.WithContext(ctx))
}

func (c *Client) guild(ctx context.Context, guildID string) (*discordgo.Guild, error) {
	if guildID == "" {
		return nil, nil
	}
	if c.State != nil {
		if g, err := c.State.Guild(guildID); err == nil {
			return g, nil
		}
	}
	return c.Session.Guild(guildID, discordgo.WithContext(ctx))
}
