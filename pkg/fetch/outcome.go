package fetch

import "fmt"

// Kind classifies why a fetch did not produce a payload.
type Kind int

const (
	// NetworkUnreachable means no HTTP response was obtained (DNS, connect, timeout).
	NetworkUnreachable Kind = iota + 1
	// NotFound is an HTTP 404.
	NotFound
	// ServerError is any HTTP 5xx.
	ServerError
	// HTTPError is any other non-2xx status.
	HTTPError
	// Unknown covers everything else, e.g. a body that is not JSON.
	Unknown
)

func (k Kind) String() string {
	switch k {
	case NetworkUnreachable:
		return "network_unreachable"
	case NotFound:
		return "not_found"
	case ServerError:
		return "server_error"
	case HTTPError:
		return "http_error"
	case Unknown:
		return "unknown"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Failure is the failed side of an Outcome.
type Failure struct {
	Kind     Kind
	Message  string
	Status   int    // 0 when no response was obtained
	Resource string // requested identifier, when one was supplied
	Err      error  // underlying cause; developer log only
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Message, f.Err)
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Message)
}

func (f *Failure) Unwrap() error { return f.Err }

// Outcome is either a decoded JSON payload or a Failure, never both.
type Outcome struct {
	Payload any
	Failure *Failure
}

// Success wraps a decoded payload.
func Success(payload any) Outcome { return Outcome{Payload: payload} }

// Fail wraps a failure.
func Fail(f *Failure) Outcome { return Outcome{Failure: f} }

// OK reports whether the outcome carries a payload.
func (o Outcome) OK() bool { return o.Failure == nil }

// Label is "success" or the failure kind, for logs and metrics.
func (o Outcome) Label() string {
	if o.OK() {
		return "success"
	}
	return o.Failure.Kind.String()
}
