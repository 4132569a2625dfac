package handlers

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"cmdbridge/cmdmsg"
	"cmdbridge/storage"

	"github.com/bwmarrin/discordgo"
)

func (h *EventHandler) HandleMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	ctx, cancel := commandContext()
	defer cancel()
	h.handleMessage(ctx, m.Message)
}

func (h *EventHandler) handleMessage(ctx context.Context, m *discordgo.Message) {
	if m.Author == nil || m.Author.Bot || m.Author.ID == h.Client.SelfID {
		return
	}
	if !strings.HasPrefix(m.Content, h.Prefix) {
		return
	}

	cmd := cmdmsg.FromMessage(h.Client, m, utf8.RuneCountInString(h.Prefix))
	if cmd.Command() == "" {
		return
	}
	handler, ok := h.Commands[cmd.Command()]
	if !ok {
		h.Log.Debug("Unknown text command", "command", cmd.Command(), "channelID", m.ChannelID)
		return
	}
	h.dispatch(ctx, handler, cmd)
}

// HandleMessageDelete deletes the bot's reply when the command message it
// answered is deleted.
func (h *EventHandler) HandleMessageDelete(s *discordgo.Session, e *discordgo.MessageDelete) {
	ctx, cancel := commandContext()
	defer cancel()
	h.handleMessageDelete(ctx, e.ID)
}

func (h *EventHandler) handleMessageDelete(ctx context.Context, messageID string) {
	rec, err := h.Store.GetReply(messageID)
	if errors.Is(err, storage.ErrReplyNotFound) {
		return
	}
	if err != nil {
		h.Log.Error("Failed to get reply from DB", "error", err, "messageID", messageID)
		return
	}
	if rec.Origin != cmdmsg.OriginMessage.String() {
		return
	}

	if err := h.Client.Session.ChannelMessageDelete(rec.ChannelID, rec.ResponseID, discordgo.WithContext(ctx)); err != nil {
		h.Log.Warn("Failed to delete reply of deleted command", "error", err, "channelID", rec.ChannelID, "responseID", rec.ResponseID)
	}
	if err := h.Store.DeleteReply(messageID); err != nil {
		h.Log.Error("Failed to delete reply from DB", "error", err, "messageID", messageID)
	}
}
