package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ideaforge-hq/ideaforge/pkg/config"
	"ideaforge-hq/ideaforge/pkg/ratelimit"
	"ideaforge-hq/ideaforge/pkg/telemetry/health"
	"ideaforge-hq/ideaforge/pkg/telemetry/metrics"
)

type stubClient struct {
	reply string
	err   error
}

func (s *stubClient) Complete(ctx context.Context, system, user string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestServer(t *testing.T, client *stubClient, limit int) http.Handler {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.RateLimit.MaxRequests = limit

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequests: cfg.RateLimit.MaxRequests,
		Window:      cfg.RateLimit.Window,
	})

	srv := New(cfg, client, limiter, health.NewChecker(), metrics.NewCollector(nil), VersionInfo{
		Version: "test",
	})
	return srv.Handler()
}

func postIdeas(handler http.Handler, body, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/ideas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

const validBody = `{"domain":"fitness","audience":"students","difficulty":"beginner","mode":"hackathon"}`

func TestServer_EndToEnd(t *testing.T) {
	reply := `{"ideas":[{"title":"Campus Fit"}]}`
	handler := newTestServer(t, &stubClient{reply: reply}, 20)

	rec := postIdeas(handler, validBody, "192.0.2.1:1000")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var doc map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	ideasList, ok := doc["ideas"].([]interface{})
	if !ok || len(ideasList) != 1 {
		t.Errorf("unexpected document: %v", doc)
	}

	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("X-Request-ID header missing")
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "19" {
		t.Errorf("X-RateLimit-Remaining = %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("CORS header missing")
	}
}

func TestServer_Preflight(t *testing.T) {
	handler := newTestServer(t, &stubClient{reply: "{}"}, 20)

	req := httptest.NewRequest(http.MethodOptions, "/v1/ideas", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestServer_RateLimitAcrossRequests(t *testing.T) {
	handler := newTestServer(t, &stubClient{reply: `{"ideas":[]}`}, 2)

	for i := 0; i < 2; i++ {
		if rec := postIdeas(handler, validBody, "192.0.2.2:1000"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i+1, rec.Code)
		}
	}

	rec := postIdeas(handler, validBody, "192.0.2.2:1000")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
}

func TestServer_InvalidBodyConsumesSlot(t *testing.T) {
	handler := newTestServer(t, &stubClient{reply: `{"ideas":[]}`}, 1)

	// A request that fails validation still uses up the caller's slot.
	if rec := postIdeas(handler, `{"domain":"fitness"}`, "192.0.2.3:1000"); rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	rec := postIdeas(handler, validBody, "192.0.2.3:1000")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429 after slot consumed by invalid request", rec.Code)
	}
}

func TestServer_OversizedDeclaredLength(t *testing.T) {
	handler := newTestServer(t, &stubClient{reply: `{"ideas":[]}`}, 20)

	req := httptest.NewRequest(http.MethodPost, "/v1/ideas", strings.NewReader("{}"))
	req.ContentLength = 10_001
	req.RemoteAddr = "192.0.2.4:1000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
}

func TestServer_ProbeEndpoints(t *testing.T) {
	handler := newTestServer(t, &stubClient{reply: "{}"}, 20)

	for _, path := range []string{"/healthz", "/readyz", "/version", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, rec.Code)
		}
	}
}

func TestServer_StartAndShutdown(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Server.ListenAddress = "127.0.0.1:0"
	cfg.Server.ShutdownTimeout = time.Second

	limiter := ratelimit.New(ratelimit.Config{})
	srv := New(cfg, &stubClient{reply: "{}"}, limiter, health.NewChecker(), nil, VersionInfo{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	if !srv.IsRunning() {
		t.Fatal("server should be running")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Start returned error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("server did not shut down")
	}
}
