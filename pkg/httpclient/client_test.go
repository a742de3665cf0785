package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClientsReturnNon2xxAsResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "fetchview-test" {
			t.Errorf("expected user agent header, got %q", got)
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"missing"}`))
	}))
	defer srv.Close()

	for _, kind := range []string{KindResty, KindRequests} {
		t.Run(kind, func(t *testing.T) {
			client, err := New(kind, 2*time.Second)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			resp, err := client.Get(context.Background(), srv.URL, map[string]string{"User-Agent": "fetchview-test"})
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if resp.StatusCode() != http.StatusNotFound {
				t.Fatalf("status = %d", resp.StatusCode())
			}
			if string(resp.Body()) != `{"detail":"missing"}` {
				t.Fatalf("body = %q", resp.Body())
			}
		})
	}
}

func TestClientsReportTransportFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	for _, kind := range []string{KindResty, KindRequests} {
		t.Run(kind, func(t *testing.T) {
			client, err := New(kind, time.Second)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if _, err := client.Get(context.Background(), url, nil); err == nil {
				t.Fatalf("expected transport error for closed server")
			}
		})
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	if _, err := New("curl", time.Second); err == nil {
		t.Fatalf("expected error for unknown client kind")
	}
}
