package keys

import "github.com/charmbracelet/bubbles/key"

// MonitorKeys are the bindings of the monitor view. Scrolling keys are
// left to the viewport's own key map.
type MonitorKeys struct {
	Quit             key.Binding
	Help             key.Binding
	Clear            key.Binding
	Follow           key.Binding
	ToggleTimestamps key.Binding
	ToggleSignals    key.Binding
}

func NewMonitorKeys() MonitorKeys {
	return MonitorKeys{
		Quit: key.NewBinding(
			key.WithKeys("q", "Q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Clear: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "clear buffer"),
		),
		Follow: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause/follow"),
		),
		ToggleTimestamps: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle timestamps"),
		),
		ToggleSignals: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "signals only"),
		),
	}
}

func (k MonitorKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Follow, k.Clear, k.Quit}
}

func (k MonitorKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Follow, k.Clear, k.ToggleTimestamps, k.ToggleSignals},
		{k.Help, k.Quit},
	}
}
