package handlers

import (
	"context"
	"errors"
	"time"

	"cmdbridge/cmdmsg"
	"cmdbridge/interfaces"

	"github.com/bwmarrin/discordgo"
)

// CommandTimeout bounds the Discord calls made while handling one command.
const CommandTimeout = 30 * time.Second

// EventHandler turns gateway events into CommandMessages and dispatches them
// to the registered commands.
type EventHandler struct {
	Client   *cmdmsg.Client
	Commands map[string]interfaces.CommandHandler
	Store    interfaces.DataStore
	Log      interfaces.Logger
	Prefix   string
}

func NewEventHandler(client *cmdmsg.Client, commands map[string]interfaces.CommandHandler, store interfaces.DataStore, log interfaces.Logger, prefix string) *EventHandler {
	return &EventHandler{Client: client, Commands: commands, Store: store, Log: log, Prefix: prefix}
}

// RegisterAllHandlers adds the command and ledger handlers to the session.
func (h *EventHandler) RegisterAllHandlers(s *discordgo.Session) {
	s.AddHandler(h.HandleMessageCreate)
	s.AddHandler(h.HandleMessageDelete)
	s.AddHandler(h.HandleInteractionCreate)
}

// dispatch runs handler and, when it fails before anything was replied, tells
// the user so. An unanswered deferred interaction would otherwise stay in the
// "thinking" state.
func (h *EventHandler) dispatch(ctx context.Context, handler interfaces.CommandHandler, cmd *cmdmsg.CommandMessage) {
	err := handler.Handle(ctx, cmd)
	if err == nil || cmd.Response() != nil {
		return
	}
	if _, replyErr := cmd.Reply(ctx, "⚠️ Something went wrong while running this command."); replyErr != nil && !errors.Is(replyErr, cmdmsg.ErrAlreadyReplied) {
		h.Log.Error("Failed to send failure reply", "error", replyErr, "command", cmd.Command())
	}
}

func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), CommandTimeout)
}
