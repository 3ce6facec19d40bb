// Package tui is a terminal navigator over the production dashboard.
package tui

import (
	"context"

	"prodstats/internal/dashboard"
	"prodstats/internal/ingest"
	"prodstats/internal/session"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Sources are the loads reachable from the keyboard. Nil entries are disabled.
type Sources struct {
	Initial ingest.Source
	Sample  ingest.Source
	Example ingest.Source
}

// loadedMsg reports the end of a load started by loadCmd.
type loadedMsg struct {
	state dashboard.State
	err   error
}

// Model is the bubbletea model of the navigator.
type Model struct {
	ctx     context.Context
	session *session.Session
	sources Sources

	keys  keyMap
	help  help.Model
	state dashboard.State
	err   error

	width  int
	height int
}

// New creates a navigator over sess.
func New(ctx context.Context, sess *session.Session, sources Sources) Model {
	return Model{
		ctx:     ctx,
		session: sess,
		sources: sources,
		keys:    defaultKeyMap(),
		help:    help.New(),
		state:   sess.State(),
		width:   80,
		height:  24,
	}
}

// Run starts the full-screen program and blocks until the user quits.
func Run(ctx context.Context, sess *session.Session, sources Sources) error {
	_, err := tea.NewProgram(New(ctx, sess, sources), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	if m.sources.Initial == nil {
		return nil
	}
	return m.loadCmd(m.sources.Initial)
}

func (m Model) loadCmd(src ingest.Source) tea.Cmd {
	return func() tea.Msg {
		state, err := m.session.Load(m.ctx, src)
		return loadedMsg{state: state, err: err}
	}
}

// Update handles messages and updates the model (required by tea.Model interface).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case loadedMsg:
		m.state = m.session.State()
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Sample):
		return m.startLoad(m.sources.Sample)
	case key.Matches(msg, m.keys.Example):
		return m.startLoad(m.sources.Example)
	}

	if m.state.Loading {
		return m, nil
	}

	var action dashboard.Action
	switch {
	case key.Matches(msg, m.keys.Prev):
		action = dashboard.Previous{}
	case key.Matches(msg, m.keys.Next):
		action = dashboard.Next{}
	case key.Matches(msg, m.keys.Axis):
		action = dashboard.SetAxis{Axis: m.state.Axis.Next()}
	case key.Matches(msg, m.keys.Granularity):
		action = dashboard.SetGranularity{Granularity: m.state.Granularity.Next()}
	case key.Matches(msg, m.keys.ViewType):
		vt := dashboard.ViewTable
		if m.state.ViewType == dashboard.ViewTable {
			vt = dashboard.ViewChart
		}
		action = dashboard.SetViewType{ViewType: vt}
	default:
		return m, nil
	}
	m.state = m.session.Dispatch(action)
	return m, nil
}

func (m Model) startLoad(src ingest.Source) (tea.Model, tea.Cmd) {
	if src == nil {
		return m, nil
	}
	m.err = nil
	m.state.Loading = true
	m.state.FileName = src.Name()
	return m, m.loadCmd(src)
}
