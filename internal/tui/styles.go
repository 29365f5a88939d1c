package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/uigen/widgets"
)

// ---------------------------------------------------------------------------
// Styles: Catppuccin Mocha themed
// ---------------------------------------------------------------------------

var (
	// Chat pane heading
	brandStyle   = lipgloss.NewStyle().Foreground(widgets.ColorPink).Bold(true)
	versionStyle = lipgloss.NewStyle().Foreground(widgets.ColorOverlay1)
	hintStyle    = lipgloss.NewStyle().Foreground(widgets.ColorSubtext0)
	promptStyle  = lipgloss.NewStyle().Foreground(widgets.ColorLavender)

	// Generating indicator
	spinnerStyle    = lipgloss.NewStyle().Foreground(widgets.ColorMauve)
	generatingStyle = lipgloss.NewStyle().Foreground(widgets.ColorSubtext1).Italic(true)

	codeStyle = lipgloss.NewStyle().Foreground(widgets.ColorGreen)

	// Footer bar
	footerStyle = lipgloss.NewStyle().
			Foreground(widgets.ColorSubtext0).
			Background(widgets.ColorMantle).
			Padding(0, 2)

	// Status bar (above footer)
	statusBarStyle = lipgloss.NewStyle().
			Foreground(widgets.ColorSubtext1).
			Background(widgets.ColorSurface0).
			Padding(0, 2)

	statusErrStyle = statusBarStyle.Foreground(widgets.ColorRed)

	// Help key styling
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(widgets.ColorPink).
			Bold(true)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(widgets.ColorSubtext0)

	// History overlay rows
	cursorStyle  = lipgloss.NewStyle().Foreground(widgets.ColorPink).Bold(true)
	historyMeta  = lipgloss.NewStyle().Foreground(widgets.ColorOverlay1)
	historyEmpty = lipgloss.NewStyle().Foreground(widgets.ColorSubtext0).Italic(true)
)
