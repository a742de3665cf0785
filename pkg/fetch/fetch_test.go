package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/samvad-hq/fetchview/pkg/httpclient"
)

type stubResponse struct {
	body   []byte
	status int
}

func (s stubResponse) Body() []byte    { return s.body }
func (s stubResponse) StatusCode() int { return s.status }

// recordingClient captures the requested URL and returns a canned result.
type recordingClient struct {
	url  string
	resp httpclient.Response
	err  error
}

func (c *recordingClient) Get(_ context.Context, url string, _ map[string]string) (httpclient.Response, error) {
	c.url = url
	return c.resp, c.err
}

func TestDescriptorURL(t *testing.T) {
	tests := []struct {
		name string
		desc Descriptor
		want string
	}{
		{name: "fixed endpoint", desc: Descriptor{Endpoint: "https://api.example/posts"}, want: "https://api.example/posts"},
		{name: "lowercases parameter", desc: Descriptor{Endpoint: "https://pokeapi.co/api/v2/pokemon", PathParameter: "Pikachu"}, want: "https://pokeapi.co/api/v2/pokemon/pikachu"},
		{name: "trailing slash", desc: Descriptor{Endpoint: "https://api.example/items/", PathParameter: "X"}, want: "https://api.example/items/x"},
		{name: "escapes parameter", desc: Descriptor{Endpoint: "https://api.example/items", PathParameter: "Mr Mime/2"}, want: "https://api.example/items/mr%20mime%2F2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.desc.URL(); got != tt.want {
				t.Fatalf("URL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateClassification(t *testing.T) {
	tests := []struct {
		name     string
		raw      Raw
		resource string
		wantKind Kind
		wantMsg  string
	}{
		{name: "transport failure", raw: Raw{Err: errors.New("dial tcp: no such host")}, wantKind: NetworkUnreachable, wantMsg: "network error: please check your internet connection"},
		{name: "not found with resource", raw: Raw{Response: stubResponse{status: 404}}, resource: "james", wantKind: NotFound, wantMsg: `"james" not found`},
		{name: "not found keeps quotes verbatim", raw: Raw{Response: stubResponse{status: 404}}, resource: `Mr. "Mime"`, wantKind: NotFound, wantMsg: `"Mr. "Mime"" not found`},
		{name: "not found keeps tabs verbatim", raw: Raw{Response: stubResponse{status: 404}}, resource: "mr\tmime", wantKind: NotFound, wantMsg: "\"mr\tmime\" not found"},
		{name: "not found generic", raw: Raw{Response: stubResponse{status: 404}}, wantKind: NotFound, wantMsg: "resource not found"},
		{name: "server error 500", raw: Raw{Response: stubResponse{status: 500, body: []byte("Internal Server Error")}}, wantKind: ServerError, wantMsg: "server error, try again later"},
		{name: "server error 503", raw: Raw{Response: stubResponse{status: 503}}, wantKind: ServerError, wantMsg: "server error, try again later"},
		{name: "other status", raw: Raw{Response: stubResponse{status: 418}}, wantKind: HTTPError, wantMsg: "HTTP error, status 418"},
		{name: "redirect status", raw: Raw{Response: stubResponse{status: 302}}, wantKind: HTTPError, wantMsg: "HTTP error, status 302"},
		{name: "malformed json", raw: Raw{Response: stubResponse{status: 200, body: []byte("<html>")}}, wantKind: Unknown, wantMsg: "could not parse response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Validate(tt.raw, tt.resource)
			if out.OK() {
				t.Fatalf("expected failure, got payload %v", out.Payload)
			}
			if out.Failure.Kind != tt.wantKind {
				t.Fatalf("kind = %s, want %s", out.Failure.Kind, tt.wantKind)
			}
			if got := HumanMessage(out.Failure); got != tt.wantMsg {
				t.Fatalf("HumanMessage = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}

func TestValidateServerErrorNeverLeaksStatusText(t *testing.T) {
	for status := 500; status <= 599; status++ {
		out := Validate(Raw{Response: stubResponse{status: status, body: []byte("Bad Gateway")}}, "x")
		msg := HumanMessage(out.Failure)
		if out.Failure.Kind != ServerError || msg != "server error, try again later" {
			t.Fatalf("status %d classified as %s with %q", status, out.Failure.Kind, msg)
		}
	}
}

func TestValidateSuccessDecodesJSON(t *testing.T) {
	out := Validate(Raw{Response: stubResponse{status: 200, body: []byte(`[{"id":1}]`)}}, "")
	if !out.OK() {
		t.Fatalf("unexpected failure %v", out.Failure)
	}
	items, ok := out.Payload.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("unexpected payload %#v", out.Payload)
	}
	if out.Label() != "success" {
		t.Fatalf("label = %q", out.Label())
	}
}

func TestNetworkMessageHidesTransportText(t *testing.T) {
	f := &Failure{Kind: NetworkUnreachable, Err: errors.New("dial tcp 10.0.0.1:443: connect: connection refused")}
	if strings.Contains(HumanMessage(f), "10.0.0.1") {
		t.Fatalf("transport detail leaked into user message")
	}
	if !errors.Is(f, f.Err) {
		t.Fatalf("failure should unwrap to its cause")
	}
}

func TestDispatchLowercasesPathAndKeepsResourceCase(t *testing.T) {
	client := &recordingClient{resp: stubResponse{status: 404}}
	d := NewDispatcher(client, time.Second, nil)

	out := d.Dispatch(context.Background(), Descriptor{Endpoint: "https://pokeapi.co/api/v2/pokemon", PathParameter: "James"})
	if client.url != "https://pokeapi.co/api/v2/pokemon/james" {
		t.Fatalf("requested %q", client.url)
	}
	if got := HumanMessage(out.Failure); got != `"James" not found` {
		t.Fatalf("message = %q", got)
	}
}

func TestDispatchTimeoutIsNetworkUnreachable(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	d := NewDispatcher(httpclient.NewRestyClient(5*time.Second), 50*time.Millisecond, nil)
	out := d.Dispatch(context.Background(), Descriptor{Endpoint: srv.URL})
	if out.OK() || out.Failure.Kind != NetworkUnreachable {
		t.Fatalf("expected NetworkUnreachable, got %+v", out)
	}
}

func TestDispatchAgainstServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon/pikachu" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base_experience":64}`))
	}))
	defer srv.Close()

	d := NewDispatcher(nil, time.Second, map[string]string{"User-Agent": "test"})
	out := d.Dispatch(context.Background(), Descriptor{Endpoint: srv.URL + "/pokemon", PathParameter: "Pikachu"})
	if !out.OK() {
		t.Fatalf("unexpected failure: %v", out.Failure)
	}
	obj, ok := out.Payload.(map[string]any)
	if !ok || obj["base_experience"] != float64(64) {
		t.Fatalf("unexpected payload %#v", out.Payload)
	}
}
