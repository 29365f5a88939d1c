package widgets

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha palette.
// https://catppuccin.com/palette
const (
	ColorRosewater lipgloss.Color = "#f5e0dc"
	ColorPink      lipgloss.Color = "#f5c2e7"
	ColorMauve     lipgloss.Color = "#cba6f7"
	ColorRed       lipgloss.Color = "#f38ba8"
	ColorPeach     lipgloss.Color = "#fab387"
	ColorYellow    lipgloss.Color = "#f9e2af"
	ColorGreen     lipgloss.Color = "#a6e3a1"
	ColorTeal      lipgloss.Color = "#94e2d5"
	ColorSky       lipgloss.Color = "#89dceb"
	ColorBlue      lipgloss.Color = "#89b4fa"
	ColorLavender  lipgloss.Color = "#b4befe"

	ColorText     lipgloss.Color = "#cdd6f4"
	ColorSubtext1 lipgloss.Color = "#bac2de"
	ColorSubtext0 lipgloss.Color = "#a6adc8"
	ColorOverlay1 lipgloss.Color = "#7f849c"
	ColorOverlay0 lipgloss.Color = "#6c7086"
	ColorSurface2 lipgloss.Color = "#585b70"
	ColorSurface1 lipgloss.Color = "#45475a"
	ColorSurface0 lipgloss.Color = "#313244"
	ColorBase     lipgloss.Color = "#1e1e2e"
	ColorMantle   lipgloss.Color = "#181825"
	ColorCrust    lipgloss.Color = "#11111b"
)

// Semantic aliases.
const (
	ColorAccent  = ColorBlue
	ColorFocus   = ColorGreen
	ColorMuted   = ColorOverlay1
	ColorBorder  = ColorSurface2
	ColorError   = ColorRed
	ColorWarning = ColorYellow
)

// ButtonColors maps a button variant to its background and foreground.
// Unlisted variants draw with an outline only.
var ButtonColors = map[string][2]lipgloss.Color{
	"primary":   {ColorBlue, ColorBase},
	"secondary": {ColorSurface1, ColorText},
	"danger":    {ColorRed, ColorBase},
}
