package view

import (
	"fmt"
	"io"
	"sync"
)

// Terminal renders region changes as styled lines on a writer. Hiding a region
// prints nothing; the embedded Regions keeps the observable state.
type Terminal struct {
	*Regions
	mu sync.Mutex
	w  io.Writer
}

// NewTerminal writes to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{Regions: NewRegions(), w: w}
}

func (t *Terminal) ShowLoading() {
	t.Regions.ShowLoading()
	t.println(MutedStyle.Render("Loading..."))
}

func (t *Terminal) ShowError(message string) {
	t.Regions.ShowError(message)
	t.println(ErrorStyle.Render("Error: " + message))
}

func (t *Terminal) ShowContent(body Body) {
	t.Regions.ShowContent(body)
	t.print(FormatBody(body))
}

func (t *Terminal) Reset(placeholder string) {
	t.Regions.Reset(placeholder)
	if placeholder != "" {
		t.println(MutedStyle.Render(placeholder))
	}
}

func (t *Terminal) println(s string) { t.print(s + "\n") }

func (t *Terminal) print(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprint(t.w, s)
}
