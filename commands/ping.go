package commands

import (
	"context"
	"fmt"
	"time"

	"cmdbridge/cmdmsg"
	"cmdbridge/interfaces"

	"github.com/bwmarrin/discordgo"
)

type PingCommand struct {
	StartTime time.Time
	Store     interfaces.DataStore
	Gateway   LatencySource
}

func (c *PingCommand) GetCommandDef() *discordgo.ApplicationCommand {
	return &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Measure bot latency and uptime",
	}
}

func (c *PingCommand) Handle(ctx context.Context, cmd *cmdmsg.CommandMessage) error {
	// API latency: time taken by the first reply
	apiStart := time.Now()
	res, err := cmd.Reply(ctx, "Measuring...")
	apiLatency := time.Since(apiStart)
	if err != nil {
		return err
	}

	// Database latency
	dbStatus := "✅ OK"
	dbStart := time.Now()
	err = c.Store.PingDB()
	dbLatency := time.Since(dbStart)
	if err != nil {
		dbStatus = "❌ unavailable"
		dbLatency = 0
	}

	var gatewayLatency time.Duration
	if c.Gateway != nil {
		gatewayLatency = c.Gateway.HeartbeatLatency()
	}

	color := latencyColor(gatewayLatency, apiLatency)
	if err != nil {
		color = colorRed
	}

	embed := &discordgo.MessageEmbed{
		Title: "🏓 Pong!",
		Color: color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Gateway", Value: fmt.Sprintf("```%s```", gatewayLatency), Inline: true},
			{Name: "API", Value: fmt.Sprintf("```%s```", apiLatency.Round(time.Millisecond)), Inline: true},
			{Name: "Database", Value: fmt.Sprintf("```%s (%s)```", dbStatus, dbLatency.Round(time.Microsecond)), Inline: true},
			{Name: "Uptime", Value: fmt.Sprintf("```%s```", formatUptime(time.Since(c.StartTime))), Inline: false},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	// Replace "Measuring..." with the result
	empty := ""
	_, err = res.EditComplex(ctx, &discordgo.MessageEdit{
		Content: &empty,
		Embeds:  &[]*discordgo.MessageEmbed{embed},
	})
	return err
}

func (c *PingCommand) GetCategory() string { return CategoryInfo }

const (
	colorGreen  = 0x43b581
	colorYellow = 0xfaa61a
	colorRed    = 0xf04747
)

func latencyColor(gateway, api time.Duration) int {
	switch {
	case gateway.Milliseconds() > 400 || api.Milliseconds() > 600:
		return colorRed
	case gateway.Milliseconds() > 150 || api.Milliseconds() > 300:
		return colorYellow
	default:
		return colorGreen
	}
}

// formatUptime renders d as "Xd Yh Zm".
func formatUptime(d time.Duration) string {
	d = d.Round(time.Minute)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	return fmt.Sprintf("%dd %dh %dm", days, h, m)
}
