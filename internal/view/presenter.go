package view

import (
	"fmt"
	"sync"
)

const (
	// DefaultCap is the maximum number of records rendered.
	DefaultCap = 10

	IdlePlaceholder   = `No data to display. Click "Fetch Data" to load content.`
	NoDataPlaceholder = "No data available to display."
)

// Options tunes a Presenter.
type Options struct {
	Cap int
	// KeepContentWhileLoading leaves the previous content visible while a new
	// request is outstanding instead of clearing it.
	KeepContentWhileLoading bool
	IdlePlaceholder         string
}

// Presenter drives a Renderer through view states.
type Presenter struct {
	r       Renderer
	cap     int
	keep    bool
	idle    string
	mu      sync.Mutex
	current State
}

// NewPresenter wraps r. Zero options select the defaults.
func NewPresenter(r Renderer, opts Options) *Presenter {
	if opts.Cap <= 0 {
		opts.Cap = DefaultCap
	}
	if opts.IdlePlaceholder == "" {
		opts.IdlePlaceholder = IdlePlaceholder
	}
	return &Presenter{r: r, cap: opts.Cap, keep: opts.KeepContentWhileLoading, idle: opts.IdlePlaceholder}
}

// Present moves the renderer into s. Every transition undoes the visible effects
// of the previous state, so presenting the same state twice is a no-op.
func (p *Presenter) Present(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch st := s.(type) {
	case Idle:
		p.r.HideLoading()
		p.r.HideError()
		p.r.Reset(p.idle)
	case Loading:
		p.r.ShowLoading()
		p.r.HideError()
		if !p.keep {
			p.r.Reset("")
		}
	case Content:
		p.r.HideLoading()
		p.r.HideError()
		p.r.ShowContent(p.Body(st))
	case Error:
		p.r.HideLoading()
		p.r.Reset("")
		p.r.ShowError(st.Message)
	default:
		return
	}
	p.current = s
}

// Current returns the last presented state (nil before the first Present).
func (p *Presenter) Current() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Body caps the records of c and decides on summary and placeholder.
func (p *Presenter) Body(c Content) Body {
	if c.Message != "" {
		return Body{Message: c.Message}
	}
	if len(c.Records) == 0 {
		return Body{Placeholder: NoDataPlaceholder}
	}

	total := c.Total
	if total < len(c.Records) {
		total = len(c.Records)
	}
	shown := c.Records
	if len(shown) > p.cap {
		shown = shown[:p.cap]
	}

	body := Body{Records: append(shown[:0:0], shown...)}
	if total > p.cap {
		body.Summary = Summary(len(shown), total)
	}
	return body
}

// Summary formats the "Showing K of N items" line.
func Summary(shown, total int) string {
	return fmt.Sprintf("Showing %d of %d items", shown, total)
}
