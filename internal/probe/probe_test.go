package probe

import (
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/fetchview/pkg/endpoints"
	"github.com/samvad-hq/fetchview/pkg/fetch"
)

// fakeDispatcher answers per URL and records descriptors.
type fakeDispatcher struct {
	byURL map[string]fetch.Outcome
	seen  []fetch.Descriptor
}

func (f *fakeDispatcher) Dispatch(_ context.Context, desc fetch.Descriptor) fetch.Outcome {
	f.seen = append(f.seen, desc)
	if out, ok := f.byURL[desc.URL()]; ok {
		return out
	}
	return fetch.Fail(&fetch.Failure{Kind: fetch.NotFound, Status: 404, Resource: desc.Resource()})
}

func testEndpoints() []endpoints.Endpoint {
	return []endpoints.Endpoint{
		{ID: "posts", Type: endpoints.TypeCollection, URL: "http://api/posts"},
		{
			ID: "pokemon", Type: endpoints.TypeLookup, URL: "http://api/pokemon",
			Items:  []string{"Pikachu", "james"},
			Lookup: &endpoints.LookupLayout{ValuePath: "base_experience", Message: "{name}: {value}"},
		},
		{
			ID: "empty", Type: endpoints.TypeLookup, URL: "http://api/empty",
			Lookup: &endpoints.LookupLayout{ValuePath: "x", Message: "{value}"},
		},
	}
}

func TestRunReportsEachEndpoint(t *testing.T) {
	d := &fakeDispatcher{byURL: map[string]fetch.Outcome{
		"http://api/posts":           fetch.Success([]any{map[string]any{"id": float64(1)}, map[string]any{"id": float64(2)}}),
		"http://api/pokemon/pikachu": fetch.Success(map[string]any{"base_experience": float64(64)}),
	}}

	reports, err := NewService(d, nil).Run(context.Background(), testEndpoints())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(reports))
	}
	if reports[0].Items != 2 || reports[0].Outcome != "success" {
		t.Fatalf("posts report = %+v", reports[0])
	}
	if reports[1].Parameter != "Pikachu" || reports[1].Outcome != "success" {
		t.Fatalf("pokemon report = %+v", reports[1])
	}
	if reports[2].Outcome != "skipped" {
		t.Fatalf("lookup without items should be skipped: %+v", reports[2])
	}
	if len(d.seen) != 2 {
		t.Fatalf("expected 2 dispatches, got %d", len(d.seen))
	}
}

func TestRunJoinsFailures(t *testing.T) {
	d := &fakeDispatcher{byURL: map[string]fetch.Outcome{
		"http://api/pokemon/pikachu": fetch.Success(map[string]any{"name": "pikachu"}),
	}}

	reports, err := NewService(d, nil).Run(context.Background(), testEndpoints())
	if err == nil {
		t.Fatalf("expected joined error")
	}
	var failure *fetch.Failure
	if !errors.As(err, &failure) || failure.Kind != fetch.NotFound {
		t.Fatalf("expected posts not-found failure in %v", err)
	}
	if !errors.Is(err, endpoints.ErrMissingValue) {
		t.Fatalf("expected projection failure in %v", err)
	}
	if reports[1].Outcome != "unknown" {
		t.Fatalf("projection failure should report unknown, got %q", reports[1].Outcome)
	}
}

func TestRunRequiresEndpoints(t *testing.T) {
	if _, err := NewService(&fakeDispatcher{}, nil).Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty catalogue")
	}
	var s *Service
	if _, err := s.Run(context.Background(), testEndpoints()); err == nil {
		t.Fatalf("expected error for nil service")
	}
}
