package main

import (
	"os"
	"os/signal"
	"syscall"

	"cmdbridge/bot"
	"cmdbridge/config"
	"cmdbridge/logger"
	"cmdbridge/servers"
	"cmdbridge/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Options{}).Fatal("Failed to load config", "error", err)
	}

	log := logger.New(logger.Options{File: cfg.Log.File, Level: cfg.Log.Level})
	defer log.Close()

	dbStore, err := storage.NewDBStore(cfg.Storage.Path)
	if err != nil {
		log.Fatal("Failed to initialize database", "error", err, "path", cfg.Storage.Path)
	}
	defer dbStore.Close()

	b, err := bot.New(cfg, log, dbStore)
	if err != nil {
		log.Fatal("Failed to create bot", "error", err)
	}

	manager := servers.NewManager(log)
	manager.AddServer(b)
	manager.AddServer(servers.NewWebServer(cfg.Web.Addr, log, dbStore))
	if err := manager.StartAll(); err != nil {
		log.Fatal("Failed to start servers", "error", err)
	}

	log.Info("Bot is now running. Press CTRL-C to exit.", "prefix", cfg.Bot.Prefix)
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	log.Info("Shutting down...")
	manager.StopAll()
}
