package view

import "github.com/samvad-hq/fetchview/internal/domain"

// State is exactly one of Idle, Loading, Content or Error.
type State interface {
	name() string
}

// Idle is the startup/reset state.
type Idle struct{}

// Loading means a request is outstanding.
type Loading struct{}

// Content carries a validated payload ready for rendering. Total is the size of
// the source collection; Records may be longer than what gets rendered.
type Content struct {
	Records []domain.Record
	Total   int
	Message string
}

// Error carries the user-facing failure message.
type Error struct {
	Message string
}

func (Idle) name() string    { return "idle" }
func (Loading) name() string { return "loading" }
func (Content) name() string { return "content" }
func (Error) name() string   { return "error" }

// Name returns a stable label for a state, used in logs.
func Name(s State) string {
	if s == nil {
		return "none"
	}
	return s.name()
}

// ContentFrom builds a Content state from a projection.
func ContentFrom(p domain.Projection) Content {
	if !p.Sequence {
		return Content{Message: p.Message}
	}
	return Content{Records: p.Records, Total: p.Total, Message: p.Message}
}
