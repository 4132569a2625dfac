package handlers

import (
	"cmdbridge/interfaces"

	"github.com/bwmarrin/discordgo"
)

// OnReady returns a Ready handler that logs the bot user and sets its status.
func OnReady(log interfaces.Logger, prefix string) func(s *discordgo.Session, r *discordgo.Ready) {
	return func(s *discordgo.Session, r *discordgo.Ready) {
		log.Info("Bot is ready", "user", r.User.String(), "guilds", len(r.Guilds))
		if err := s.UpdateGameStatus(0, "/help | "+prefix+"help"); err != nil {
			log.Warn("Failed to update status", "error", err)
		}
	}
}
