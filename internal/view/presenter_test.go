package view

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/samvad-hq/fetchview/internal/domain"
)

// callRecorder records the order of renderer calls.
type callRecorder struct {
	calls []string
}

func (c *callRecorder) ShowLoading()             { c.calls = append(c.calls, "showLoading") }
func (c *callRecorder) HideLoading()             { c.calls = append(c.calls, "hideLoading") }
func (c *callRecorder) ShowError(m string)       { c.calls = append(c.calls, "showError:"+m) }
func (c *callRecorder) HideError()               { c.calls = append(c.calls, "hideError") }
func (c *callRecorder) ShowContent(b Body)       { c.calls = append(c.calls, fmt.Sprintf("showContent:%d", len(b.Records))) }
func (c *callRecorder) Reset(placeholder string) { c.calls = append(c.calls, "reset:"+placeholder) }

func records(n int) []domain.Record {
	out := make([]domain.Record, n)
	for i := range out {
		out[i] = domain.Record{Heading: fmt.Sprintf("Post #%d", i+1)}
	}
	return out
}

func TestPresentContentCapsAndSummarizes(t *testing.T) {
	tests := []struct {
		n           int
		wantShown   int
		wantSummary string
	}{
		{n: 1, wantShown: 1},
		{n: 10, wantShown: 10},
		{n: 11, wantShown: 10, wantSummary: "Showing 10 of 11 items"},
		{n: 100, wantShown: 10, wantSummary: "Showing 10 of 100 items"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			regions := NewRegions()
			p := NewPresenter(regions, Options{})
			p.Present(Content{Records: records(tt.n), Total: tt.n})

			snap := regions.Snapshot()
			if got := len(snap.Content.Records); got != tt.wantShown {
				t.Fatalf("rendered %d records, want %d", got, tt.wantShown)
			}
			if snap.Content.Summary != tt.wantSummary {
				t.Fatalf("summary = %q, want %q", snap.Content.Summary, tt.wantSummary)
			}
			if snap.LoadingVisible || snap.ErrorVisible {
				t.Fatalf("loading/error should be hidden: %+v", snap)
			}
		})
	}
}

func TestPresentContentPlaceholderForEmptyOrNonSequence(t *testing.T) {
	regions := NewRegions()
	p := NewPresenter(regions, Options{})

	p.Present(Content{})
	if got := regions.Snapshot().Content.Placeholder; got != NoDataPlaceholder {
		t.Fatalf("placeholder = %q", got)
	}

	p.Present(ContentFrom(domain.Projection{Sequence: false}))
	if got := regions.Snapshot().Content.Placeholder; got != NoDataPlaceholder {
		t.Fatalf("placeholder for non-sequence = %q", got)
	}
}

func TestPresentContentMessage(t *testing.T) {
	regions := NewRegions()
	p := NewPresenter(regions, Options{})
	p.Present(ContentFrom(domain.Projection{Message: "Pikachu has base experience: 64"}))

	if got := regions.Snapshot().Content.Message; got != "Pikachu has base experience: 64" {
		t.Fatalf("message = %q", got)
	}
}

func TestPresentErrorIsIdempotent(t *testing.T) {
	regions := NewRegions()
	p := NewPresenter(regions, Options{})
	p.Present(Content{Records: records(3), Total: 3})

	p.Present(Error{Message: "server error, try again later"})
	once := regions.Snapshot()
	p.Present(Error{Message: "server error, try again later"})
	twice := regions.Snapshot()

	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("presenting error twice changed state: %+v vs %+v", once, twice)
	}
	if !once.ErrorVisible || once.ErrorMessage != "server error, try again later" || once.LoadingVisible {
		t.Fatalf("unexpected error snapshot %+v", once)
	}
	if !once.Content.Empty() {
		t.Fatalf("content and error must be mutually exclusive, got %+v", once.Content)
	}
}

func TestPresentIdleResetsEverything(t *testing.T) {
	regions := NewRegions()
	p := NewPresenter(regions, Options{})
	p.Present(Loading{})
	p.Present(Error{Message: "boom"})
	p.Present(Idle{})

	snap := regions.Snapshot()
	if snap.LoadingVisible || snap.ErrorVisible {
		t.Fatalf("idle must hide loading and error: %+v", snap)
	}
	if snap.Content.Placeholder != IdlePlaceholder {
		t.Fatalf("placeholder = %q", snap.Content.Placeholder)
	}
	if _, ok := p.Current().(Idle); !ok {
		t.Fatalf("current state = %s", Name(p.Current()))
	}
}

func TestPresentLoadingContentPolicy(t *testing.T) {
	t.Run("clears by default", func(t *testing.T) {
		regions := NewRegions()
		p := NewPresenter(regions, Options{})
		p.Present(Content{Records: records(2), Total: 2})
		p.Present(Loading{})

		snap := regions.Snapshot()
		if !snap.LoadingVisible || snap.ErrorVisible {
			t.Fatalf("unexpected loading snapshot %+v", snap)
		}
		if !snap.Content.Empty() {
			t.Fatalf("stale content should be cleared, got %+v", snap.Content)
		}
	})

	t.Run("keeps when configured", func(t *testing.T) {
		regions := NewRegions()
		p := NewPresenter(regions, Options{KeepContentWhileLoading: true})
		p.Present(Content{Records: records(2), Total: 2})
		p.Present(Loading{})

		if got := len(regions.Snapshot().Content.Records); got != 2 {
			t.Fatalf("expected stale content kept, got %d records", got)
		}
	})
}

func TestPresentCallOrder(t *testing.T) {
	rec := &callRecorder{}
	p := NewPresenter(rec, Options{Cap: 2})
	p.Present(Loading{})
	p.Present(Content{Records: records(3), Total: 3})

	want := []string{"showLoading", "hideError", "reset:", "hideLoading", "hideError", "showContent:2"}
	if strings.Join(rec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", rec.calls, want)
	}
}

func TestFormatBody(t *testing.T) {
	out := FormatBody(Body{
		Records: []domain.Record{{Heading: "Post #1", Fields: []domain.Field{{Label: "Title", Value: "t"}}}},
		Summary: "Showing 1 of 20 items",
	})
	for _, want := range []string{"Post #1", "Title:", "t", "Showing 1 of 20 items"} {
		if !strings.Contains(out, want) {
			t.Fatalf("FormatBody output missing %q: %s", want, out)
		}
	}
}

func TestTerminalWritesTransitions(t *testing.T) {
	var sb strings.Builder
	term := NewTerminal(&sb)
	p := NewPresenter(term, Options{})

	p.Present(Loading{})
	p.Present(Error{Message: `"james" not found`})

	out := sb.String()
	if !strings.Contains(out, "Loading...") || !strings.Contains(out, `Error: "james" not found`) {
		t.Fatalf("unexpected terminal output: %s", out)
	}
	if !term.Snapshot().ErrorVisible {
		t.Fatalf("terminal regions should track error visibility")
	}
}
