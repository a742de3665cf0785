package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samvad-hq/fetchview/internal/logger"
	"github.com/samvad-hq/fetchview/internal/metrics"
	"github.com/samvad-hq/fetchview/internal/storage"
	"github.com/samvad-hq/fetchview/internal/view"
	"github.com/samvad-hq/fetchview/pkg/endpoints"
	"github.com/samvad-hq/fetchview/pkg/fetch"
	"github.com/samvad-hq/fetchview/pkg/publishers"
)

const publishTimeout = 5 * time.Second

// ErrNameRequired marks a lookup triggered without a name. No request is sent.
var ErrNameRequired = errors.New("lookup requires a name")

// Dispatcher performs one GET and classifies it.
type Dispatcher interface {
	Dispatch(ctx context.Context, desc fetch.Descriptor) fetch.Outcome
}

// Request names an endpoint and, for lookups, the resource to fetch.
type Request struct {
	Endpoint endpoints.Endpoint
	Name     string
}

// Result reports what a FetchAndDisplay call ended up presenting.
type Result struct {
	Token      uint64
	State      view.State
	Outcome    fetch.Outcome
	Message    string
	Items      int
	Superseded bool
}

// Options carries the optional collaborators of a Controller.
type Options struct {
	Log     logger.Logger
	Metrics *metrics.Metrics
	History storage.Store
	Fanout  *publishers.Fanout
}

// Controller drives the fetch-and-render lifecycle for one view. Every
// FetchAndDisplay and Clear advances the request token; only the holder of the
// current token may present a result.
type Controller struct {
	dispatcher Dispatcher
	presenter  *view.Presenter
	log        logger.Logger
	metrics    *metrics.Metrics
	history    storage.Store
	fanout     *publishers.Fanout

	mu     sync.Mutex
	token  uint64
	cancel context.CancelFunc
}

// NewController builds a controller and puts the view in Idle.
func NewController(d Dispatcher, p *view.Presenter, opts Options) *Controller {
	c := &Controller{
		dispatcher: d,
		presenter:  p,
		log:        logger.Ensure(opts.Log),
		metrics:    opts.Metrics,
		history:    opts.History,
		fanout:     opts.Fanout,
	}
	p.Present(view.Idle{})
	return c
}

// FetchAndDisplay presents Loading, dispatches the request and presents its
// Content or Error. Failures never escape; a response that arrives after a
// newer request or a Clear is dropped and reported as superseded.
func (c *Controller) FetchAndDisplay(ctx context.Context, req Request) Result {
	if ctx == nil {
		ctx = context.Background()
	}
	ep := req.Endpoint
	desc := fetch.Descriptor{Endpoint: ep.URL, PathParameter: req.Name}

	c.mu.Lock()
	c.token++
	token := c.token
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.presenter.Present(view.Loading{})
	c.mu.Unlock()
	defer cancel()

	c.log.DebugObj("fetch dispatched", "fetch_request", map[string]any{
		"token":       token,
		"endpoint_id": ep.ID,
		"url":         desc.URL(),
	})

	start := time.Now()
	var outcome fetch.Outcome
	if ep.IsLookup() && strings.TrimSpace(req.Name) == "" {
		outcome = fetch.Fail(&fetch.Failure{
			Kind:    fetch.Unknown,
			Message: fmt.Sprintf("enter a name to look up in %s", ep.Name),
			Err:     ErrNameRequired,
		})
	} else {
		outcome = c.dispatcher.Dispatch(reqCtx, desc)
	}
	elapsed := time.Since(start)

	c.mu.Lock()
	if token != c.token {
		c.mu.Unlock()
		c.metrics.RecordSuperseded(ep.ID)
		c.log.DebugObj("stale response discarded", "fetch_superseded", map[string]any{
			"token":       token,
			"endpoint_id": ep.ID,
			"outcome":     outcome.Label(),
		})
		return Result{Token: token, Outcome: outcome, Superseded: true}
	}
	res := c.resolve(ep, req.Name, outcome)
	res.Token = token
	c.presenter.Present(res.State)
	c.mu.Unlock()

	c.report(ctx, ep, req.Name, res, elapsed)
	return res
}

// Clear supersedes any in-flight request and returns the view to Idle.
func (c *Controller) Clear() {
	c.mu.Lock()
	c.token++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.presenter.Present(view.Idle{})
	token := c.token
	c.mu.Unlock()

	c.metrics.RecordClear()
	c.log.DebugObj("view cleared", "fetch_clear", map[string]any{"token": token})
}

// State returns the state currently presented.
func (c *Controller) State() view.State {
	return c.presenter.Current()
}

// Close cancels an in-flight request, if any.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// resolve turns an outcome into the state to present. A payload that cannot be
// projected is treated as an unparseable response.
func (c *Controller) resolve(ep endpoints.Endpoint, name string, outcome fetch.Outcome) Result {
	if outcome.OK() {
		proj, err := ep.Project(outcome.Payload, name)
		if err == nil {
			content := view.ContentFrom(proj)
			return Result{State: content, Outcome: outcome, Message: proj.Message, Items: proj.Total}
		}
		outcome = fetch.Fail(&fetch.Failure{
			Kind:     fetch.Unknown,
			Message:  "response did not match endpoint layout",
			Resource: strings.TrimSpace(name),
			Err:      err,
		})
	}

	msg := userMessage(outcome.Failure)
	return Result{State: view.Error{Message: msg}, Outcome: outcome, Message: msg}
}

func (c *Controller) report(ctx context.Context, ep endpoints.Endpoint, name string, res Result, elapsed time.Duration) {
	label := res.Outcome.Label()
	c.metrics.RecordFetch(ep.ID, label, elapsed)

	status := 0
	if f := res.Outcome.Failure; f != nil {
		status = f.Status
		c.log.WarnObj("fetch failed", "fetch_failure", map[string]any{
			"token":       res.Token,
			"endpoint_id": ep.ID,
			"url":         fetch.Descriptor{Endpoint: ep.URL, PathParameter: name}.URL(),
			"kind":        label,
			"status":      f.Status,
			"detail":      f.Error(),
		})
	} else {
		c.log.InfoObj("fetch completed", "fetch_meta", map[string]any{
			"token":       res.Token,
			"endpoint_id": ep.ID,
			"items":       res.Items,
			"elapsed_ms":  elapsed.Milliseconds(),
		})
	}

	if c.history != nil {
		entry := storage.Entry{
			Token:      res.Token,
			EndpointID: ep.ID,
			Parameter:  strings.TrimSpace(name),
			Outcome:    label,
			Message:    res.Message,
			Status:     status,
			Items:      res.Items,
		}
		if err := c.history.Record(entry); err != nil {
			c.log.ErrorObj("history record failed", "error", err.Error())
		}
	}

	if c.fanout.Size() > 0 {
		evt := publishers.NewEvent(ep.ID, strings.TrimSpace(name), label)
		evt.Message = res.Message
		evt.Status = status
		evt.Items = res.Items

		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		defer cancel()
		count, err := c.fanout.Publish(pubCtx, evt)
		if err != nil {
			c.log.ErrorObj("event publish failed", "publish_meta", map[string]any{
				"event_id":   evt.ID,
				"successful": count,
				"error":      err.Error(),
			})
		}
	}
}

// userMessage maps a failure to the text shown to the user.
func userMessage(f *fetch.Failure) string {
	if errors.Is(f, ErrNameRequired) {
		return f.Message
	}
	return fetch.HumanMessage(f)
}
