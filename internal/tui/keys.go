package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Prev        key.Binding
	Next        key.Binding
	Axis        key.Binding
	Granularity key.Binding
	ViewType    key.Binding
	Sample      key.Binding
	Example     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next"),
		),
		Axis: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "analysis type"),
		),
		Granularity: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "granularity"),
		),
		ViewType: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "chart/table"),
		),
		Sample: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sample data"),
		),
		Example: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "example data"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Axis, k.Granularity, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next},
		{k.Axis, k.Granularity, k.ViewType},
		{k.Sample, k.Example},
		{k.Help, k.Quit},
	}
}
