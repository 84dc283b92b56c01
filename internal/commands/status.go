package commands

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"go-modlog/internal/config"
)

var botStartTime = time.Now()

// handleStatus shows the logging configuration alongside host and runtime
// statistics.
func handleStatus(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	// Defer so the stat collection below does not hit the 3s interaction deadline.
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})
	if err != nil {
		return err
	}

	cfg := config.Get()

	hostText := "unknown"
	if info, err := host.Info(); err == nil {
		hostText = fmt.Sprintf("%s (%s %s)\nup %s",
			info.Hostname, info.Platform, info.KernelArch,
			formatUptime(time.Duration(info.Uptime)*time.Second))
	}

	cpuText := fmt.Sprintf("%d threads", runtime.NumCPU())
	if percent, err := cpu.Percent(time.Second, false); err == nil && len(percent) > 0 {
		cpuText = fmt.Sprintf("%.1f%% across %d threads", percent[0], runtime.NumCPU())
	}

	memText := "unknown"
	if vm, err := mem.VirtualMemory(); err == nil {
		memText = fmt.Sprintf("%s / %s (%.1f%%)",
			humanize.IBytes(vm.Used), humanize.IBytes(vm.Total), vm.UsedPercent)
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	runtimeText := fmt.Sprintf("%s, %d goroutines, %s heap, %d GCs",
		runtime.Version(), runtime.NumGoroutine(), humanize.IBytes(ms.HeapAlloc), ms.NumGC)

	embed := &discordgo.MessageEmbed{
		Title: "Moderation Log Status",
		Color: 0x2B2D31,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "Logging Channels",
				Value: fmt.Sprintf("Server log: %s\nMessage log: %s\nDev alerts: %s",
					channelMention(cfg.Channels.ServerLog),
					channelMention(cfg.Channels.MessageLog),
					channelMention(cfg.Channels.DevAlerts)),
				Inline: false,
			},
			{
				Name:   "Ignored Channels",
				Value:  fmt.Sprintf("%d", len(cfg.Guild.IgnoredChannels)),
				Inline: true,
			},
			{
				Name:   "Bot Uptime",
				Value:  formatUptime(time.Since(botStartTime)),
				Inline: true,
			},
			{
				Name:   "Host",
				Value:  hostText,
				Inline: false,
			},
			{
				Name:   "CPU",
				Value:  cpuText,
				Inline: true,
			},
			{
				Name:   "Memory",
				Value:  memText,
				Inline: true,
			},
			{
				Name:   "Go Runtime",
				Value:  runtimeText,
				Inline: false,
			},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	_, err = s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Embeds: &[]*discordgo.MessageEmbed{embed},
	})

	return err
}

func channelMention(id string) string {
	if id == "" {
		return "Not configured"
	}
	return fmt.Sprintf("<#%s>", id)
}

func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	days := d / (24 * time.Hour)
	d -= days * 24 * time.Hour
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute

	if days > 0 {
		return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm %ds", minutes, (d-minutes*time.Minute)/time.Second)
}
