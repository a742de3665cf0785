package publishers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/samvad-hq/fetchview/internal/logger"
	"github.com/samvad-hq/fetchview/pkg/httpclient"
)

const (
	headerEventID  = "X-Fetchview-Event-Id"
	headerOutcome  = "X-Fetchview-Outcome"
	maxErrorSample = 512
)

// httpPublisher posts each outcome event to a webhook.
type httpPublisher struct {
	id     string
	method string
	url    string
	client *resty.Client
	log    logger.Logger
}

func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log logger.Logger) (Publisher, error) {
	hc := cfg.HTTP
	if hc == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}

	method := strings.ToUpper(hc.Method)
	if method == "" {
		method = httpDefaultMethod
	}
	timeout := hc.TimeoutSeconds
	if timeout <= 0 {
		timeout = httpDefaultTimeoutSeconds
	}

	client := httpclient.NewRestyHTTPClient(time.Duration(timeout) * time.Second)
	client.SetHeader("Content-Type", "application/json")
	if len(hc.Headers) > 0 {
		client.SetHeaders(hc.Headers)
	}

	return &httpPublisher{
		id:     cfg.ID,
		method: method,
		url:    hc.URL,
		client: client,
		log:    logger.Ensure(log),
	}, nil
}

func (h *httpPublisher) ID() string   { return h.id }
func (h *httpPublisher) Type() string { return TypeHTTP }

func (h *httpPublisher) Publish(ctx context.Context, evt Event) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader(headerEventID, evt.ID).
		SetHeader(headerOutcome, evt.Outcome).
		SetBody(body).
		Execute(h.method, h.url)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	if resp.IsError() {
		h.log.WarnObj("webhook rejected outcome event", "publisher_http_error", map[string]any{
			"publisher_id": h.id,
			"status":       resp.StatusCode(),
			"event_id":     evt.ID,
			"endpoint_id":  evt.EndpointID,
		})
		return fmt.Errorf("http response status %d: %s", resp.StatusCode(), errorSample(resp.Body()))
	}
	return nil
}

func errorSample(body []byte) string {
	if len(body) > maxErrorSample {
		body = body[:maxErrorSample]
	}
	return strings.TrimSpace(string(body))
}
