package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
// A non-nil error means no HTTP response was obtained at all; non-2xx statuses are
// returned as responses.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
