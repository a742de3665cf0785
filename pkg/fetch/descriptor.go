package fetch

import (
	"net/url"
	"strings"
)

// Descriptor identifies one GET: a fixed endpoint, optionally narrowed by a path parameter.
type Descriptor struct {
	Endpoint      string
	PathParameter string
}

// URL returns the request URL. The path parameter is lowercased and path-escaped;
// the original casing stays on the Descriptor for user-facing messages.
func (d Descriptor) URL() string {
	base := strings.TrimSpace(d.Endpoint)
	param := strings.TrimSpace(d.PathParameter)
	if param == "" {
		return base
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(strings.ToLower(param))
}

// Resource is the identifier used in not-found messages.
func (d Descriptor) Resource() string {
	return strings.TrimSpace(d.PathParameter)
}
