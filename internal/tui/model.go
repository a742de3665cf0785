package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samvad-hq/fetchview/internal/app"
	"github.com/samvad-hq/fetchview/internal/view"
	"github.com/samvad-hq/fetchview/pkg/endpoints"
)

// Runner is the part of the runtime the TUI drives.
type Runner interface {
	Fetch(ctx context.Context, endpointID, name string) (app.Result, error)
	Clear()
}

// Row is one selectable trigger. Lookup rows without a Name need a typed one.
type Row struct {
	EndpointID string
	Label      string
	Name       string
	Lookup     bool
}

type fetchDoneMsg struct {
	res app.Result
	err error
}

// Model is the bubbletea model for the interactive fetch view.
type Model struct {
	ctx     context.Context
	runner  Runner
	regions *view.Regions

	Rows    []Row
	Cursor  int
	Typing  bool
	Input   textinput.Model
	Spinner spinner.Model

	Status       string
	Copied       bool
	ClipboardErr string
}

// NewModel lists every collection endpoint and every predefined lookup item.
func NewModel(ctx context.Context, runner Runner, regions *view.Regions, eps []endpoints.Endpoint) Model {
	if ctx == nil {
		ctx = context.Background()
	}

	var rows []Row
	for _, ep := range eps {
		if !ep.IsLookup() {
			rows = append(rows, Row{EndpointID: ep.ID, Label: "Fetch " + ep.Name})
			continue
		}
		for _, item := range ep.Items {
			rows = append(rows, Row{EndpointID: ep.ID, Label: ep.Name + ": " + item, Name: item, Lookup: true})
		}
		if len(ep.Items) == 0 {
			rows = append(rows, Row{EndpointID: ep.ID, Label: ep.Name, Lookup: true})
		}
	}

	in := textinput.New()
	in.Placeholder = "name"
	in.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = view.HighlightStyle

	return Model{
		ctx:     ctx,
		runner:  runner,
		regions: regions,
		Rows:    rows,
		Input:   in,
		Spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return m.Spinner.Tick
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		if msg.err != nil {
			m.Status = msg.err.Error()
		}
		return m, nil

	case ClipboardMsg:
		m.Copied = msg.Success
		m.ClipboardErr = ""
		if msg.Err != nil {
			m.ClipboardErr = msg.Err.Error()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.Typing {
			return m.updateInput(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.Copied = false
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Rows)-1 {
			m.Cursor++
		}
	case "enter":
		if r, ok := m.selected(); ok {
			return m, m.fetch(r.EndpointID, r.Name)
		}
	case "/":
		if r, ok := m.selected(); ok && r.Lookup {
			m.Typing = true
			m.Input.SetValue("")
			return m, m.Input.Focus()
		}
		m.Status = "select a lookup row to type a name"
	case "c":
		m.Status = ""
		m.runner.Clear()
	case "y":
		if text := copyText(m.regions.Snapshot()); text != "" {
			return m, CopyToClipboard(text)
		}
		m.Status = "nothing to copy"
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.Typing = false
		m.Input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.Typing = false
		m.Input.Blur()
		r, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, m.fetch(r.EndpointID, strings.TrimSpace(m.Input.Value()))
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	return m, cmd
}

func (m Model) selected() (Row, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.Rows) {
		return Row{}, false
	}
	return m.Rows[m.Cursor], true
}

// fetch runs the request off the UI goroutine; the view observes progress
// through the shared regions.
func (m Model) fetch(endpointID, name string) tea.Cmd {
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		res, err := runner.Fetch(ctx, endpointID, name)
		return fetchDoneMsg{res: res, err: err}
	}
}

// copyText is what "y" puts on the clipboard: the error when one is shown,
// otherwise the visible content without styling.
func copyText(s view.Snapshot) string {
	if s.ErrorVisible {
		return s.ErrorMessage
	}
	return s.Content.Text()
}
