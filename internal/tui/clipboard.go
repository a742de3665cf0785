package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// ClipboardMsg reports the result of a copy.
type ClipboardMsg struct {
	Success bool
	Err     error
}

// CopyToClipboard writes s to the system clipboard.
func CopyToClipboard(s string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(s)
		return ClipboardMsg{Success: err == nil, Err: err}
	}
}
