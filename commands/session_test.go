package commands

import (
	"encoding/json"
	"errors"
	"strconv"
	"testing"
	"time"

	"cmdbridge/cmdmsg"
	"cmdbridge/logger"
	"cmdbridge/storage"

	"github.com/bwmarrin/discordgo"
)

const botID = "bot"

// fakeSession answers every call with messages authored by the bot.
type fakeSession struct {
	nextID       int
	sent         []*discordgo.MessageSend
	edits        []*discordgo.MessageEdit
	webhookEdits []*discordgo.WebhookEdit
	reactions    []string
	patched      int
	patchErr     error
	guild        *discordgo.Guild
}

func (f *fakeSession) message(channelID string) *discordgo.Message {
	f.nextID++
	return &discordgo.Message{ID: "r" + strconv.Itoa(f.nextID), ChannelID: channelID, Author: &discordgo.User{ID: botID}}
}

func (f *fakeSession) ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.sent = append(f.sent, data)
	m := f.message(channelID)
	m.Content = data.Content
	m.Embeds = data.Embeds
	return m, nil
}

func (f *fakeSession) ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.edits = append(f.edits, m)
	return &discordgo.Message{ID: m.ID, ChannelID: m.Channel, Author: &discordgo.User{ID: botID}}, nil
}

func (f *fakeSession) ChannelMessageDelete(channelID, messageID string, options ...discordgo.RequestOption) error {
	return nil
}

func (f *fakeSession) ChannelMessage(channelID, messageID string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	return &discordgo.Message{ID: messageID, ChannelID: channelID, Author: &discordgo.User{ID: botID}}, nil
}

func (f *fakeSession) MessageReactionAdd(channelID, messageID, emojiID string, options ...discordgo.RequestOption) error {
	f.reactions = append(f.reactions, channelID+"/"+messageID+":"+emojiID)
	return nil
}

func (f *fakeSession) InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error {
	return nil
}

func (f *fakeSession) InteractionResponseEdit(interaction *discordgo.Interaction, newresp *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.webhookEdits = append(f.webhookEdits, newresp)
	m := f.message("")
	if newresp.Content != nil {
		m.Content = *newresp.Content
	}
	if newresp.Embeds != nil {
		m.Embeds = *newresp.Embeds
	}
	return m, nil
}

func (f *fakeSession) Channel(channelID string, options ...discordgo.RequestOption) (*discordgo.Channel, error) {
	return &discordgo.Channel{ID: channelID}, nil
}

func (f *fakeSession) Guild(guildID string, options ...discordgo.RequestOption) (*discordgo.Guild, error) {
	if f.guild == nil {
		return nil, errors.New("unknown guild")
	}
	return f.guild, nil
}

func (f *fakeSession) RequestWithBucketID(method, urlStr string, data interface{}, bucketID string, options ...discordgo.RequestOption) ([]byte, error) {
	if f.patchErr != nil {
		return nil, f.patchErr
	}
	f.patched++
	m := discordgo.Message{ID: "src", ChannelID: "chan", Author: &discordgo.User{ID: "user"}}
	if flags, ok := data.(map[string]discordgo.MessageFlags); ok {
		m.Flags = flags["flags"]
	}
	return json.Marshal(&m)
}

// replyEmbeds returns the embeds of the n-th reply, whichever way it was sent.
func (f *fakeSession) replyEmbeds(n int) []*discordgo.MessageEmbed {
	if n < len(f.sent) {
		return f.sent[n].Embeds
	}
	n -= len(f.sent)
	if n < len(f.webhookEdits) && f.webhookEdits[n].Embeds != nil {
		return *f.webhookEdits[n].Embeds
	}
	return nil
}

func newTestClient(s *fakeSession) *cmdmsg.Client {
	return &cmdmsg.Client{Session: s, SelfID: botID, Log: logger.Nop()}
}

func textCommand(s *fakeSession, content string) *cmdmsg.CommandMessage {
	m := &discordgo.Message{
		ID:        "src",
		ChannelID: "chan",
		GuildID:   "guild",
		Content:   content,
		Author:    &discordgo.User{ID: "user", Username: "alice"},
	}
	return cmdmsg.FromMessage(newTestClient(s), m, 1)
}

func slashCommand(t *testing.T, s *fakeSession, name string, opts ...*discordgo.ApplicationCommandInteractionDataOption) *cmdmsg.CommandMessage {
	i := &discordgo.Interaction{
		ID:        "slash",
		Type:      discordgo.InteractionApplicationCommand,
		ChannelID: "chan",
		GuildID:   "guild",
		Member:    &discordgo.Member{User: &discordgo.User{ID: "user", Username: "alice"}},
		Data:      discordgo.ApplicationCommandInteractionData{Name: name, Options: opts},
	}
	cmd, err := cmdmsg.FromDeferredInteraction(newTestClient(s), i)
	if err != nil {
		t.Fatalf("FromDeferredInteraction failed: %v", err)
	}
	return cmd
}

func stringOption(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func subCommand(name string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionSubCommand}
}

// fakeStore is the part of the ledger the commands touch.
type fakeStore struct {
	pingErr error
}

func (s *fakeStore) Close() error { return nil }
func (s *fakeStore) PingDB() error { return s.pingErr }
func (s *fakeStore) SaveReply(rec storage.ReplyRecord) error { return nil }
func (s *fakeStore) GetReply(string) (*storage.ReplyRecord, error) { return nil, storage.ErrReplyNotFound }
func (s *fakeStore) DeleteReply(string) error { return nil }
func (s *fakeStore) PruneReplies(time.Time) (int64, error) { return 0, nil }
func (s *fakeStore) CountReplies() (int, error) { return 0, nil }

type fixedLatency time.Duration

func (l fixedLatency) HeartbeatLatency() time.Duration { return time.Duration(l) }
