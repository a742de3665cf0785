package view

import (
	"strings"

	"github.com/samvad-hq/fetchview/internal/domain"
)

// Renderer is a presentation surface with three independently visible regions:
// loading indicator, error indicator and content container.
type Renderer interface {
	ShowLoading()
	HideLoading()
	ShowError(message string)
	HideError()
	ShowContent(body Body)
	// Reset replaces the content region with placeholder; "" leaves it empty.
	Reset(placeholder string)
}

// Body is what the content region displays, already capped and summarized.
type Body struct {
	Records     []domain.Record `json:"records,omitempty"`
	Summary     string          `json:"summary,omitempty"`
	Message     string          `json:"message,omitempty"`
	Placeholder string          `json:"placeholder,omitempty"`
}

// Text is the unstyled form of the message or records, with the summary
// line when present. Placeholders are not included.
func (b Body) Text() string {
	if b.Message != "" {
		return b.Message
	}
	var sb strings.Builder
	for i, rec := range b.Records {
		if i > 0 {
			sb.WriteString("\n")
		}
		if rec.Heading != "" {
			sb.WriteString(rec.Heading + "\n")
		}
		for _, f := range rec.Fields {
			sb.WriteString(f.Label + ": " + f.Value + "\n")
		}
	}
	if b.Summary != "" && len(b.Records) > 0 {
		sb.WriteString("\n" + b.Summary + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// Empty reports whether the content region shows nothing at all.
func (b Body) Empty() bool {
	return len(b.Records) == 0 && b.Summary == "" && b.Message == "" && b.Placeholder == ""
}
