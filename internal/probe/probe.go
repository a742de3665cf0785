package probe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/fetchview/internal/logger"
	"github.com/samvad-hq/fetchview/pkg/endpoints"
	"github.com/samvad-hq/fetchview/pkg/fetch"
)

// Dispatcher performs one GET and classifies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, desc fetch.Descriptor) fetch.Outcome
}

// Report is the result of checking one endpoint.
type Report struct {
	EndpointID string        `json:"endpoint_id"`
	Parameter  string        `json:"parameter,omitempty"`
	Outcome    string        `json:"outcome"`
	Items      int           `json:"items"`
	Elapsed    time.Duration `json:"elapsed"`
	Err        error         `json:"-"`
}

// Service checks that catalogue endpoints answer and match their layouts.
// It never touches a view.
type Service struct {
	dispatcher Dispatcher
	log        logger.Logger
}

// NewService wires a probe over d.
func NewService(d Dispatcher, log logger.Logger) *Service {
	return &Service{dispatcher: d, log: logger.Ensure(log)}
}

// Run checks every endpoint once. Lookups are probed with their first item.
func (s *Service) Run(ctx context.Context, eps []endpoints.Endpoint) ([]Report, error) {
	if s == nil || s.dispatcher == nil {
		return nil, fmt.Errorf("probe service is not initialized")
	}
	if len(eps) == 0 {
		return nil, fmt.Errorf("no endpoints configured for probing")
	}

	reports, errs := s.runAll(ctx, eps)
	return reports, errors.Join(errs...)
}

func (s *Service) runAll(ctx context.Context, eps []endpoints.Endpoint) ([]Report, []error) {
	reports := make([]Report, 0, len(eps))
	var errs []error

	for _, ep := range eps {
		rep := s.runEndpoint(ctx, ep)
		reports = append(reports, rep)
		if rep.Err != nil {
			errs = append(errs, rep.Err)
			s.log.ErrorObj("endpoint probe failed", "probe_error", map[string]any{
				"endpoint_id": ep.ID,
				"outcome":     rep.Outcome,
				"error":       rep.Err.Error(),
			})
		}
	}
	return reports, errs
}

func (s *Service) runEndpoint(ctx context.Context, ep endpoints.Endpoint) Report {
	rep := Report{EndpointID: ep.ID}
	if ep.IsLookup() {
		if len(ep.Items) == 0 {
			rep.Outcome = "skipped"
			return rep
		}
		rep.Parameter = ep.Items[0]
	}

	start := time.Now()
	outcome := s.dispatcher.Dispatch(ctx, fetch.Descriptor{Endpoint: ep.URL, PathParameter: rep.Parameter})
	rep.Elapsed = time.Since(start)
	rep.Outcome = outcome.Label()

	if !outcome.OK() {
		rep.Err = fmt.Errorf("probe endpoint %s: %w", ep.ID, outcome.Failure)
		return rep
	}

	proj, err := ep.Project(outcome.Payload, rep.Parameter)
	if err != nil {
		rep.Outcome = fetch.Unknown.String()
		rep.Err = fmt.Errorf("project endpoint %s: %w", ep.ID, err)
		return rep
	}
	rep.Items = proj.Total

	s.log.InfoObj("endpoint probe completed", "probe_result", map[string]any{
		"endpoint_id": ep.ID,
		"items":       rep.Items,
		"elapsed_ms":  rep.Elapsed.Milliseconds(),
	})
	return rep
}
