package fetch

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/samvad-hq/fetchview/pkg/httpclient"
)

// Raw is the unclassified result of a transport call.
type Raw struct {
	Response httpclient.Response
	Err      error
}

// Validate classifies a transport result. Transport failure is checked before the
// status; 404 and 5xx are checked before the generic non-2xx fallback.
func Validate(raw Raw, resource string) Outcome {
	if raw.Err != nil || raw.Response == nil {
		return Fail(&Failure{
			Kind:     NetworkUnreachable,
			Message:  "network unreachable",
			Resource: resource,
			Err:      raw.Err,
		})
	}

	status := raw.Response.StatusCode()
	switch {
	case status >= 200 && status <= 299:
		var payload any
		if err := json.Unmarshal(raw.Response.Body(), &payload); err != nil {
			return Fail(&Failure{
				Kind:     Unknown,
				Message:  "could not parse response",
				Status:   status,
				Resource: resource,
				Err:      err,
			})
		}
		return Success(payload)
	case status == http.StatusNotFound:
		return Fail(&Failure{Kind: NotFound, Message: notFoundMessage(resource), Status: status, Resource: resource})
	case status >= 500 && status <= 599:
		return Fail(&Failure{Kind: ServerError, Message: serverErrorMessage, Status: status, Resource: resource})
	default:
		return Fail(&Failure{Kind: HTTPError, Message: httpErrorMessage(status), Status: status, Resource: resource})
	}
}

const (
	serverErrorMessage  = "server error, try again later"
	parseErrorMessage   = "could not parse response"
	networkErrorMessage = "network error: please check your internet connection"
	genericNotFound     = "resource not found"
)

func notFoundMessage(resource string) string {
	if resource == "" {
		return genericNotFound
	}
	return `"` + resource + `" not found`
}

func httpErrorMessage(status int) string {
	return fmt.Sprintf("HTTP error, status %d", status)
}
