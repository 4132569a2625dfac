package bot

import (
	"fmt"
	"time"

	"cmdbridge/cmdmsg"
	"cmdbridge/commands"
	"cmdbridge/config"
	"cmdbridge/handlers"
	"cmdbridge/interfaces"

	"github.com/bwmarrin/discordgo"
	"github.com/robfig/cron/v3"
)

// Bot owns the Discord session and everything started with it.
type Bot struct {
	Session            *discordgo.Session
	cfg                *config.Config
	log                interfaces.Logger
	dbStore            interfaces.DataStore
	scheduler          interfaces.Scheduler
	client             *cmdmsg.Client
	commandHandlers    map[string]interfaces.CommandHandler
	registeredCommands []*discordgo.ApplicationCommand
	startTime          time.Time
}

// New creates a Bot. It does not connect yet.
func New(cfg *config.Config, log interfaces.Logger, store interfaces.DataStore) (*Bot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dg, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	b := &Bot{
		Session:   dg,
		cfg:       cfg,
		log:       log,
		dbStore:   store,
		scheduler: cron.New(),
		startTime: time.Now(),
	}
	b.commandHandlers, b.registeredCommands = commands.RegisterCommands(&commands.AppContext{
		Log:       log,
		Store:     store,
		Gateway:   dg,
		Prefix:    cfg.Bot.Prefix,
		StartTime: b.startTime,
	})
	return b, nil
}

func (b *Bot) Name() string {
	return "discord"
}

// Start connects to Discord and registers the slash commands.
func (b *Bot) Start() error {
	b.Session.AddHandler(handlers.OnReady(b.log, b.cfg.Bot.Prefix))

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("open discord session: %w", err)
	}
	b.client = cmdmsg.NewClient(b.Session, b.log)

	eventHandler := handlers.NewEventHandler(b.client, b.commandHandlers, b.dbStore, b.log, b.cfg.Bot.Prefix)
	b.client.OnResponse = eventHandler.RecordResponse
	eventHandler.RegisterAllHandlers(b.Session)

	b.log.Info("Discord bot connected, registering commands", "commands", len(b.registeredCommands))
	if _, err := b.Session.ApplicationCommandBulkOverwrite(b.client.SelfID, b.cfg.Discord.GuildID, b.registeredCommands); err != nil {
		b.Session.Close()
		return fmt.Errorf("register commands: %w", err)
	}

	if _, err := b.scheduler.AddFunc(b.cfg.Ledger.PruneSchedule, func() { b.pruneReplies(time.Now()) }); err != nil {
		b.Session.Close()
		return fmt.Errorf("schedule ledger pruning %q: %w", b.cfg.Ledger.PruneSchedule, err)
	}
	b.scheduler.Start()
	return nil
}

// Stop disconnects from Discord and waits for a running pruning job.
func (b *Bot) Stop() error {
	<-b.scheduler.Stop().Done()
	return b.Session.Close()
}

// pruneReplies removes ledger records older than the retention as of now.
func (b *Bot) pruneReplies(now time.Time) {
	before := now.Add(-b.cfg.Ledger.Retention)
	n, err := b.dbStore.PruneReplies(before)
	if err != nil {
		b.log.Error("Failed to prune replies", "error", err)
		return
	}
	b.log.Info("Pruned replies", "removed", n, "before", before.Format(time.RFC3339))
}
