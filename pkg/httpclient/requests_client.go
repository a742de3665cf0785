package httpclient

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/carlmjohnson/requests"
)

// RequestsClient adapts carlmjohnson/requests builders to the httpclient.Client interface.
type RequestsClient struct {
	client *http.Client
}

// NewRequestsClient creates a RequestsClient whose underlying http.Client uses timeout.
func NewRequestsClient(timeout time.Duration) *RequestsClient {
	return &RequestsClient{client: &http.Client{Timeout: timeout}}
}

// Get performs an HTTP GET. Every status is accepted; the caller classifies it.
func (r *RequestsClient) Get(ctx context.Context, url string, headers map[string]string) (Response, error) {
	var (
		buf    bytes.Buffer
		status int
	)

	b := requests.
		URL(url).
		Client(r.client).
		Accept("application/json").
		AddValidator(func(res *http.Response) error {
			status = res.StatusCode
			return nil
		}).
		ToBytesBuffer(&buf)
	for k, v := range headers {
		b.Header(k, v)
	}

	if err := b.Fetch(ctx); err != nil {
		return nil, err
	}
	return rawResponse{body: buf.Bytes(), status: status}, nil
}

type rawResponse struct {
	body   []byte
	status int
}

func (r rawResponse) Body() []byte    { return r.body }
func (r rawResponse) StatusCode() int { return r.status }
