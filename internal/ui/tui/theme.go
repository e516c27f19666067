package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pcopy-dev/pcopy/internal/config"
)

// Catppuccin Mocha palette; ApplyTheme overrides it from config.
var (
	ColorGreen  = lipgloss.Color("#a6e3a1")
	ColorBlue   = lipgloss.Color("#89b4fa")
	ColorYellow = lipgloss.Color("#f9e2af")
	ColorRed    = lipgloss.Color("#f38ba8")
	ColorTeal   = lipgloss.Color("#94e2d5")
	ColorMauve  = lipgloss.Color("#cba6f7")
	ColorMuted  = lipgloss.Color("#5a6278")
	ColorDim    = lipgloss.Color("#3a4055")
	ColorBright = lipgloss.Color("#cdd6f4")
)

var (
	styleHeader      lipgloss.Style
	styleTitle       lipgloss.Style
	styleSection     lipgloss.Style
	styleIconDone    lipgloss.Style
	styleIconFailed  lipgloss.Style
	styleIconSkipped lipgloss.Style
	styleDir         lipgloss.Style
	styleBase        lipgloss.Style
	styleDetail      lipgloss.Style
	styleRate        lipgloss.Style
	styleWorkerBusy  lipgloss.Style
	styleWorkerIdle  lipgloss.Style
	styleBarFilled   lipgloss.Style
	styleBarEmpty    lipgloss.Style
	styleError       lipgloss.Style
	styleKey         lipgloss.Style
	styleKeyLabel    lipgloss.Style
	styleStatus      lipgloss.Style
)

func init() {
	rebuildStyles()
}

func rebuildStyles() {
	styleHeader = lipgloss.NewStyle().Bold(true).Foreground(ColorBright)
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(ColorMauve)
	styleSection = lipgloss.NewStyle().Foreground(ColorDim)
	styleIconDone = lipgloss.NewStyle().Foreground(ColorGreen)
	styleIconFailed = lipgloss.NewStyle().Foreground(ColorRed)
	styleIconSkipped = lipgloss.NewStyle().Foreground(ColorMuted)
	styleDir = lipgloss.NewStyle().Foreground(ColorMuted)
	styleBase = lipgloss.NewStyle().Foreground(ColorBright)
	styleDetail = lipgloss.NewStyle().Foreground(ColorMuted)
	styleRate = lipgloss.NewStyle().Foreground(ColorTeal)
	styleWorkerBusy = lipgloss.NewStyle().Foreground(ColorBlue)
	styleWorkerIdle = lipgloss.NewStyle().Foreground(ColorDim)
	styleBarFilled = lipgloss.NewStyle().Foreground(ColorGreen)
	styleBarEmpty = lipgloss.NewStyle().Foreground(ColorDim)
	styleError = lipgloss.NewStyle().Foreground(ColorRed)
	styleKey = lipgloss.NewStyle().Foreground(ColorMauve).Bold(true)
	styleKeyLabel = lipgloss.NewStyle().Foreground(ColorMuted)
	styleStatus = lipgloss.NewStyle().Foreground(ColorYellow).Italic(true)
}

// ApplyTheme overrides colors from a config ThemeConfig and rebuilds all styles.
func ApplyTheme(tc config.ThemeConfig) {
	set := func(dst *lipgloss.Color, v *string) {
		if v != nil {
			*dst = lipgloss.Color(*v)
		}
	}
	set(&ColorGreen, tc.Green)
	set(&ColorBlue, tc.Blue)
	set(&ColorYellow, tc.Yellow)
	set(&ColorRed, tc.Red)
	set(&ColorTeal, tc.Teal)
	set(&ColorMauve, tc.Mauve)
	set(&ColorMuted, tc.Muted)
	set(&ColorDim, tc.Dim)
	set(&ColorBright, tc.Bright)
	rebuildStyles()
}
