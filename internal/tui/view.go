package tui

import (
	"strings"

	"github.com/samvad-hq/fetchview/internal/view"
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(view.TitleStyle.Render("fetchview") + "\n\n")

	for i, r := range m.Rows {
		prefix := "  "
		style := view.NormalStyle
		if m.Cursor == i {
			prefix = "› "
			style = view.HighlightStyle
		}
		b.WriteString(style.Render(prefix+r.Label) + "\n")
	}

	if m.Typing {
		b.WriteString("\n" + view.SubtitleStyle.Render("Name: ") + m.Input.View() + "\n")
	}

	snap := m.regions.Snapshot()
	b.WriteString("\n")
	if snap.LoadingVisible {
		b.WriteString(m.Spinner.View() + " " + view.MutedStyle.Render("Loading...") + "\n")
	}
	if snap.ErrorVisible {
		b.WriteString(view.ErrorStyle.Render("Error: "+snap.ErrorMessage) + "\n")
	}
	b.WriteString(view.FormatBody(snap.Content))

	switch {
	case m.Copied:
		b.WriteString("\n" + view.SuccessStyle.Render("Copied to clipboard") + "\n")
	case m.ClipboardErr != "":
		b.WriteString("\n" + view.ErrorStyle.Render("Copy error: "+m.ClipboardErr) + "\n")
	case m.Status != "":
		b.WriteString("\n" + view.MutedStyle.Render(m.Status) + "\n")
	}

	help := "↑/↓ navigate • enter fetch • / type name • c clear • y copy • q quit"
	if m.Typing {
		help = "enter fetch • esc cancel"
	}
	b.WriteString("\n" + view.MutedStyle.Render(help))
	return b.String()
}
