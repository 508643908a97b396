package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/clixmods/trophies/internal/catalog"
)

var (
	headerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	unlockedStyle = lipgloss.NewStyle().Bold(true)
	detailStyle   = lipgloss.NewStyle().PaddingLeft(5).Foreground(lipgloss.Color("245"))

	rarityStyles = map[catalog.Rarity]lipgloss.Style{
		catalog.RarityCommon:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		catalog.RarityRare:      lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		catalog.RarityEpic:      lipgloss.NewStyle().Foreground(lipgloss.Color("135")),
		catalog.RarityLegendary: lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	}
)

// RenderList renders the trophy collection for a terminal: one block per
// trophy plus an overall progress bar.
func RenderList(statuses []Status, unlocked, total int, ratio float64) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("🏆 TROPHIES"))
	sb.WriteString(fmt.Sprintf("  %d/%d\n", unlocked, total))
	sb.WriteString(renderProgressBar(ratio, 40))
	sb.WriteString(fmt.Sprintf(" %.0f%%\n\n", ratio*100))

	for _, s := range statuses {
		sb.WriteString(renderStatus(s))
	}
	return sb.String()
}

func renderStatus(s Status) string {
	var sb strings.Builder

	rarity := rarityStyles[s.Rarity]
	marker := "🔒"
	name := lockedStyle.Render(s.Name)
	if s.Unlocked {
		marker = "✅"
		name = unlockedStyle.Render(s.Name)
	}
	sb.WriteString(fmt.Sprintf("%s %s %s %s\n", marker, s.Icon, name, rarity.Render("["+string(s.Rarity)+"]")))

	if s.Unlocked {
		sb.WriteString(detailStyle.Render(s.Description) + "\n")
		if rel := relativeUnlockDate(s.UnlockedAt); rel != "" {
			sb.WriteString(detailStyle.Render("unlocked "+rel) + "\n")
		}
	} else {
		sb.WriteString(detailStyle.Render(s.Requirement) + "\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

// RenderStats renders the completion summary with a per-rarity breakdown.
func RenderStats(statuses []Status, unlocked, total int, ratio float64) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render("🏆 TROPHY PROGRESS"))
	sb.WriteString("\n")
	sb.WriteString(renderProgressBar(ratio, 40))
	sb.WriteString(fmt.Sprintf(" %d/%d (%.0f%%)\n", unlocked, total, ratio*100))

	order := []catalog.Rarity{
		catalog.RarityCommon, catalog.RarityRare, catalog.RarityEpic, catalog.RarityLegendary,
	}
	for _, rarity := range order {
		var have, of int
		for _, s := range statuses {
			if s.Rarity != rarity {
				continue
			}
			of++
			if s.Unlocked {
				have++
			}
		}
		if of == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s %d/%d\n", rarityStyles[rarity].Render(string(rarity)), have, of))
	}
	return sb.String()
}

// relativeUnlockDate turns a stored unlock date into a human phrase like
// "3 days ago". Unparseable dates render verbatim.
func relativeUnlockDate(stored string) string {
	if stored == "" {
		return ""
	}
	t, err := time.Parse(unlockDateLayout, stored)
	if err != nil {
		return stored
	}
	return humanize.Time(t)
}

func renderProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	filled := int(progress * float64(width))
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}
