package cmdmsg

import (
	"encoding/json"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

const botID = "bot"

type patchCall struct {
	method string
	url    string
	data   interface{}
}

// fakeSession records every call and answers with messages authored by author.
type fakeSession struct {
	author *discordgo.User
	nextID int

	sendErr      error
	sent         []*discordgo.MessageSend
	sentChannels []string
	edits        []*discordgo.MessageEdit
	deleted      []string
	reactions    []string
	responds     []*discordgo.InteractionResponse
	webhookEdits []*discordgo.WebhookEdit
	patches      []patchCall
	patchReply   *discordgo.Message
	fetchContent string
}

func newFakeSession() *fakeSession {
	return &fakeSession{author: &discordgo.User{ID: botID, Username: "bot", Bot: true}}
}

func newTestClient(s *fakeSession) *Client {
	return &Client{Session: s, SelfID: botID}
}

func (f *fakeSession) id() string {
	f.nextID++
	return strconv.Itoa(1000 + f.nextID)
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.sent = append(f.sent, data)
	f.sentChannels = append(f.sentChannels, channelID)
	return &discordgo.Message{ID: f.id(), ChannelID: channelID, Content: data.Content, Embeds: data.Embeds, Author: f.author}, nil
}

func (f *fakeSession) ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits = append(f.edits, m)
	msg := &discordgo.Message{ID: m.ID, ChannelID: m.Channel, Author: f.author}
	if m.Content != nil {
		msg.Content = *m.Content
	}
	return msg, nil
}

func (f *fakeSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	f.deleted = append(f.deleted, channelID+"/"+messageID)
	return nil
}

func (f *fakeSession) ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ID: messageID, ChannelID: channelID, Content: f.fetchContent, Author: f.author}, nil
}

func (f *fakeSession) MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	f.reactions = append(f.reactions, emojiID)
	return nil
}

func (f *fakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	f.responds = append(f.responds, resp)
	return nil
}

func (f *fakeSession) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.webhookEdits = append(f.webhookEdits, newresp)
	msg := &discordgo.Message{ID: f.id(), Author: f.author}
	if newresp.Content != nil {
		msg.Content = *newresp.Content
	}
	return msg, nil
}

func (f *fakeSession) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: channelID}, nil
}

func (f *fakeSession) Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	return &discordgo.Guild{ID: guildID, Name: "guild " + guildID}, nil
}

func (f *fakeSession) RequestWithBucketID(method, urlStr string, data interface{}, bucketID string, options ...discordgo.RequestOption) ([]byte, error) {
	f.patches = append(f.patches, patchCall{method: method, url: urlStr, data: data})
	reply := *f.patchReply
	if flags, ok := data.(map[string]discordgo.MessageFlags); ok {
		reply.Flags = flags["flags"]
	}
	return json.Marshal(&reply)
}

func userMessage(content string) *discordgo.Message {
	return &discordgo.Message{
		ID:        "175928847299117063",
		ChannelID: "chan",
		GuildID:   "guild",
		Content:   content,
		Author:    &discordgo.User{ID: "user", Username: "alice"},
		Member:    &discordgo.Member{Nick: "ally"},
	}
}

func slashInteraction(name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {
	return &discordgo.Interaction{
		ID:        "175928847299117063",
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "chan",
		GuildID:   "guild",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "user", Username: "alice"}},
		Data: discordgo.ApplicationCommandInteractionData{
			Name:    name,
			Options: opts,
		},
	}
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}
