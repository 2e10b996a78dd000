package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/allbin/uartwatch"
)

// Catppuccin Mocha
var (
	Base     = lipgloss.Color("#1e1e2e")
	Surface0 = lipgloss.Color("#313244")
	Surface1 = lipgloss.Color("#45475a")
	Surface2 = lipgloss.Color("#585b70")
	Overlay0 = lipgloss.Color("#6c7086")
	Subtext0 = lipgloss.Color("#a6adc8")
	Subtext1 = lipgloss.Color("#bac2de")
	Text     = lipgloss.Color("#cdd6f4")

	Blue   = lipgloss.Color("#89b4fa")
	Sky    = lipgloss.Color("#89dceb")
	Teal   = lipgloss.Color("#94e2d5")
	Green  = lipgloss.Color("#a6e3a1")
	Yellow = lipgloss.Color("#f9e2af")
	Peach  = lipgloss.Color("#fab387")
	Red    = lipgloss.Color("#f38ba8")
	Mauve  = lipgloss.Color("#cba6f7")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Mauve).
			Background(Surface0).
			Padding(0, 1)

	ContentBorderStyle = lipgloss.NewStyle().
				BorderTop(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(Surface1)

	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Surface2).
			Padding(1, 2).
			Margin(1, 0)

	TimestampStyle = lipgloss.NewStyle().Foreground(Subtext0)
	LineStyle      = lipgloss.NewStyle().Foreground(Text)
	MutedStyle     = lipgloss.NewStyle().Foreground(Overlay0).Faint(true)

	// Extracted values
	MACStyle  = lipgloss.NewStyle().Foreground(Green).Bold(true)
	HostStyle = lipgloss.NewStyle().Foreground(Sky).Bold(true)

	// Console status prefixes
	InfoStyle    = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Green).Bold(true)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Red).Bold(true)
	NoticeStyle  = lipgloss.NewStyle().Foreground(Mauve).Bold(true)
)

// EnvironmentStyle colours the deployment environment of a host
func EnvironmentStyle(env uartwatch.Environment) lipgloss.Style {
	if env == uartwatch.EnvMain {
		return lipgloss.NewStyle().Foreground(Peach).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(Teal).Bold(true)
}

// StateStyle colours a session state indicator
func StateStyle(state uartwatch.State) lipgloss.Style {
	switch state {
	case uartwatch.StateStreaming:
		return lipgloss.NewStyle().Foreground(Green).Bold(true)
	case uartwatch.StateConnecting, uartwatch.StateClosing:
		return lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	default:
		return lipgloss.NewStyle().Foreground(Red).Bold(true)
	}
}

// StateIndicator is the single character shown next to the port
func StateIndicator(state uartwatch.State, failed bool) string {
	switch {
	case failed:
		return "✗"
	case state == uartwatch.StateStreaming:
		return "●"
	default:
		return "○"
	}
}
