package fetch

import (
	"context"
	"time"

	"github.com/samvad-hq/fetchview/pkg/httpclient"
)

// DefaultTimeout bounds a dispatch when none is configured.
const DefaultTimeout = 10 * time.Second

// Dispatcher issues GETs for descriptors and classifies the result.
type Dispatcher struct {
	client  httpclient.Client
	headers map[string]string
	timeout time.Duration
}

// NewDispatcher wires a dispatcher over client. headers are sent on every request.
func NewDispatcher(client httpclient.Client, timeout time.Duration, headers map[string]string) *Dispatcher {
	if client == nil {
		client = httpclient.NewRestyClient(timeout)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Dispatcher{client: client, headers: headers, timeout: timeout}
}

// Send performs the GET under the dispatcher timeout without classifying it.
func (d *Dispatcher) Send(ctx context.Context, desc Descriptor) Raw {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	resp, err := d.client.Get(ctx, desc.URL(), d.headers)
	if err != nil {
		return Raw{Err: err}
	}
	return Raw{Response: resp}
}

// Dispatch performs the GET and validates it.
func (d *Dispatcher) Dispatch(ctx context.Context, desc Descriptor) Outcome {
	return Validate(d.Send(ctx, desc), desc.Resource())
}
