package handlers

import (
	"cmdbridge/cmdmsg"
	"cmdbridge/storage"
)

// RecordResponse stores the latest response of cmd in the reply ledger.
// It is meant to be used as cmdmsg.Client.OnResponse.
func (h *EventHandler) RecordResponse(cmd *cmdmsg.CommandMessage, res *cmdmsg.ResponseMessage) {
	rec := storage.ReplyRecord{
		SourceID:   cmd.ID(),
		Origin:     cmd.Origin().String(),
		GuildID:    cmd.GuildID(),
		ChannelID:  res.ChannelID(),
		ResponseID: res.ID(),
		Command:    cmd.Command(),
	}
	if err := h.Store.SaveReply(rec); err != nil {
		h.Log.Error("Failed to save reply to DB", "error", err, "sourceID", rec.SourceID, "responseID", rec.ResponseID)
	}
}
