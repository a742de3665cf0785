package httpclient

import (
	"fmt"
	"strings"
	"time"
)

const (
	KindResty    = "resty"
	KindRequests = "requests"
)

// New builds the transport adapter named by kind ("" selects resty).
func New(kind string, timeout time.Duration) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", KindResty:
		return NewRestyClient(timeout), nil
	case KindRequests:
		return NewRequestsClient(timeout), nil
	default:
		return nil, fmt.Errorf("unsupported http client %q", kind)
	}
}
