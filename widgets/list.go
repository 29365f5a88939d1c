package widgets

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type SidebarItem struct {
	Label  string
	Active bool
}

// Sidebar is a vertical navigation list; active items are marked and
// highlighted.
type Sidebar struct {
	Items []SidebarItem
}

func (s Sidebar) Render(width int) string {
	if width <= 0 {
		return ""
	}
	active := lipgloss.NewStyle().Foreground(ColorBlue).Bold(true)
	idle := lipgloss.NewStyle().Foreground(ColorSubtext0)
	rows := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		label := Fit(item.Label, max(1, width-2))
		if item.Active {
			rows = append(rows, active.Render("▌ "+label))
			continue
		}
		rows = append(rows, idle.Render("  "+label))
	}
	if len(rows) == 0 {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(Fit("(empty)", width))
	}
	return strings.Join(rows, "\n")
}
