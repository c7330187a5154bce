package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dukerupert/energydash/internal/database"
)

func newTestServer(t *testing.T, rateLimit int) *httptest.Server {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(db, Config{StaticDir: t.TempDir(), RateLimitPerMinute: rateLimit}, logger)

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func fetch(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, string(body)
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, 0)

	resp, body := fetch(t, ts.URL+"/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var got map[string]any
	if err := json.Unmarshal([]byte(body), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["status"] != "ok" {
		t.Errorf("status = %v", got["status"])
	}
}

func TestDashboardServesGeneratedCharts(t *testing.T) {
	ts := newTestServer(t, 0)

	resp, _ := fetch(t, ts.URL+"/home/2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard status = %d, want 200", resp.StatusCode)
	}
	if resp.Header.Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}

	resp, body := fetch(t, ts.URL+"/static/graphs/pie_graph_2.html")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("chart status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, "<svg") {
		t.Error("chart file should contain svg")
	}
}

func TestUnknownHousehold(t *testing.T) {
	ts := newTestServer(t, 0)

	resp, body := fetch(t, ts.URL+"/details/7")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	if strings.TrimSpace(body) != "Residência não encontrada" {
		t.Errorf("body = %q", body)
	}
}

func TestUnknownRoute(t *testing.T) {
	ts := newTestServer(t, 0)

	resp, _ := fetch(t, ts.URL+"/nope")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestPagesAreRateLimited(t *testing.T) {
	ts := newTestServer(t, 2)

	for i := 0; i < 2; i++ {
		if resp, _ := fetch(t, ts.URL+"/home/1"); resp.StatusCode != http.StatusOK {
			t.Fatalf("request %d: status = %d, want 200", i+1, resp.StatusCode)
		}
	}
	if resp, _ := fetch(t, ts.URL+"/home/1"); resp.StatusCode != http.StatusTooManyRequests {
		t.Errorf("status = %d, want 429", resp.StatusCode)
	}

	// The JSON API is not limited.
	if resp, _ := fetch(t, ts.URL+"/api/households"); resp.StatusCode != http.StatusOK {
		t.Errorf("api status = %d, want 200", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, 0)

	fetch(t, ts.URL+"/home/1")
	resp, body := fetch(t, ts.URL+"/metrics")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !strings.Contains(body, "energydash_charts_renders_total") {
		t.Error("expected chart render counter in metrics output")
	}
}
