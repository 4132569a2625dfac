package interfaces

import (
	"context"
	"time"

	"cmdbridge/cmdmsg"
	"cmdbridge/logger"
	"cmdbridge/storage"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
)

// Logger is the logger used across the application.
type Logger = logger.Logger

// DataStore is the reply ledger the bot records its responses in.
type DataStore interface {
	Close() error
	PingDB() error
	SaveReply(rec storage.ReplyRecord) error
	GetReply(sourceID string) (*storage.ReplyRecord, error)
	DeleteReply(sourceID string) error
	PruneReplies(before time.Time) (int64, error)
	CountReplies() (int, error)
}

// Scheduler runs periodic jobs.
type Scheduler interface {
	Start()
	Stop() context.Context
	AddFunc(spec string, cmd func()) (cron.EntryID, error)
}

// CommandHandler is implemented by every bot command. Handle receives the
// same CommandMessage whether the command came as a prefixed text message or
// as a slash command.
type CommandHandler interface {
	GetCommandDef() *discordgo.ApplicationCommand
	Handle(ctx context.Context, cmd *cmdmsg.CommandMessage) error
	GetCategory() string
}
