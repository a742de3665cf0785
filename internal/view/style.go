package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	primary    = lipgloss.Color("#6C8EEF")
	secondary  = lipgloss.Color("#9ECBFF")
	accent     = lipgloss.Color("#FFD787")
	successCol = lipgloss.Color("#A6E3A1")
	errorCol   = lipgloss.Color("#F38BA8")
	textCol    = lipgloss.Color("#CDD6F4")
	muted      = lipgloss.Color("#7F849C")

	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(primary)
	SubtitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(secondary)
	NormalStyle    = lipgloss.NewStyle().Foreground(textCol)
	MutedStyle     = lipgloss.NewStyle().Foreground(muted).Italic(true)
	HighlightStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	SuccessStyle   = lipgloss.NewStyle().Foreground(successCol)
	ErrorStyle     = lipgloss.NewStyle().Foreground(errorCol)
	labelStyle     = lipgloss.NewStyle().Bold(true).Foreground(secondary)
)

// FormatBody renders a content body as styled terminal text.
func FormatBody(b Body) string {
	var sb strings.Builder

	switch {
	case b.Message != "":
		sb.WriteString(SuccessStyle.Render(b.Message) + "\n")
	case b.Placeholder != "":
		sb.WriteString(MutedStyle.Render(b.Placeholder) + "\n")
	}

	for i, rec := range b.Records {
		if i > 0 {
			sb.WriteString("\n")
		}
		if rec.Heading != "" {
			sb.WriteString(HighlightStyle.Render(rec.Heading) + "\n")
		}
		for _, f := range rec.Fields {
			sb.WriteString("  " + labelStyle.Render(f.Label+":") + " " + NormalStyle.Render(f.Value) + "\n")
		}
	}

	if b.Summary != "" {
		sb.WriteString("\n" + MutedStyle.Render(b.Summary) + "\n")
	}
	return sb.String()
}
