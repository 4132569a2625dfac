package commands

import (
	"context"
	"time"

	"cmdbridge/cmdmsg"
	"cmdbridge/interfaces"

	"github.com/bwmarrin/discordgo"
)

// LatencySource reports the gateway heartbeat latency. *discordgo.Session implements it.
type LatencySource interface {
	HeartbeatLatency() time.Duration
}

// AppContext provides dependencies to commands.
type AppContext struct {
	Log       interfaces.Logger
	Store     interfaces.DataStore
	Gateway   LatencySource
	Prefix    string
	StartTime time.Time
}

// RegisterCommands initializes all command handlers and returns them keyed by
// name, together with their slash command definitions.
func RegisterCommands(appCtx *AppContext) (map[string]CommandHandler, []*discordgo.ApplicationCommand) {
	commandHandlers := make(map[string]CommandHandler)
	registeredCommands := make([]*discordgo.ApplicationCommand, 0)

	// To add a new command, simply add it to this list.
	commands := []CommandHandler{
		&PingCommand{StartTime: appCtx.StartTime, Store: appCtx.Store, Gateway: appCtx.Gateway},
		&EchoCommand{Log: appCtx.Log},
		&CalculatorCommand{},
		&PollCommand{},
		&InfoCommand{},
		&HelpCommand{AllCommands: commandHandlers, Prefix: appCtx.Prefix},
	}

	for _, cmd := range commands {
		commandDef := cmd.GetCommandDef()
		commandHandlers[commandDef.Name] = &CommandLogWrapper{CommandHandler: cmd, Log: appCtx.Log}
		registeredCommands = append(registeredCommands, commandDef)
	}

	return commandHandlers, registeredCommands
}

// CommandLogWrapper logs every command run.
type CommandLogWrapper struct {
	CommandHandler
	Log interfaces.Logger
}

func (w *CommandLogWrapper) Handle(ctx context.Context, cmd *cmdmsg.CommandMessage) error {
	start := time.Now()
	err := w.CommandHandler.Handle(ctx, cmd)
	args := []any{
		"command", cmd.Command(),
		"origin", cmd.Origin().String(),
		"guildID", cmd.GuildID(),
		"channelID", cmd.ChannelID(),
		"elapsed", time.Since(start),
	}
	if err != nil {
		w.Log.Error("command failed", append(args, "error", err)...)
		return err
	}
	w.Log.Info("command handled", args...)
	return nil
}
