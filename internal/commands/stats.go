package commands

import (
	"fmt"
	"runtime"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"go-guardian/internal/notifier"
)

var botStartTime = time.Now()

func (h *Handler) handlePing(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	latency := s.HeartbeatLatency()

	quality := "🟢 Excellent"
	switch {
	case latency > 300*time.Millisecond:
		quality = "🔴 Poor"
	case latency > 150*time.Millisecond:
		quality = "🟡 Okay"
	}

	return respond(s, i, "🏓 Pong! Gateway latency: **%dms** (%s)", latency.Milliseconds(), quality)
}

func (h *Handler) handleStats(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	// Defer while the CPU sample runs.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		return err
	}

	embed := &discordgo.MessageEmbed{
		Title: "System Statistics",
		Color: notifier.ColorBlue,
	}

	if hostInfo, err := host.Info(); err == nil {
		embed.Fields = append(embed.Fields,
			notifier.Field("Host", fmt.Sprintf("%s (%s %s)", hostInfo.Hostname, hostInfo.Platform, hostInfo.KernelArch), false),
			notifier.Field("Host uptime", (time.Duration(hostInfo.Uptime)*time.Second).String(), true),
		)
	}

	if cpuPercent, err := cpu.Percent(time.Second, false); err == nil && len(cpuPercent) > 0 {
		embed.Fields = append(embed.Fields,
			notifier.Field("CPU", fmt.Sprintf("%.1f%% of %d threads", cpuPercent[0], runtime.NumCPU()), true),
		)
	}

	if memInfo, err := mem.VirtualMemory(); err == nil {
		embed.Fields = append(embed.Fields,
			notifier.Field("Memory", fmt.Sprintf("%s / %s (%.1f%%)", formatBytes(memInfo.Used), formatBytes(memInfo.Total), memInfo.UsedPercent), true),
		)
	}

	if diskInfo, err := disk.Usage("/"); err == nil {
		embed.Fields = append(embed.Fields,
			notifier.Field("Disk", fmt.Sprintf("%s / %s (%.1f%%)", formatBytes(diskInfo.Used), formatBytes(diskInfo.Total), diskInfo.UsedPercent), true),
		)
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	embed.Fields = append(embed.Fields,
		notifier.Field("Go", fmt.Sprintf("%s, %d goroutines, %s heap", runtime.Version(), runtime.NumGoroutine(), formatBytes(m.Alloc)), false),
		notifier.Field("Bot uptime", time.Since(botStartTime).Round(time.Second).String(), true),
		notifier.Field("Guilds", fmt.Sprintf("%d", len(s.State.Guilds)), true),
		notifier.Field("Latency", fmt.Sprintf("%dms", s.HeartbeatLatency().Milliseconds()), true),
	)

	embeds := []*discordgo.MessageEmbed{embed}
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Embeds: &embeds})
	return err
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
