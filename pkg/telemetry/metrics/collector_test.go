package metrics

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, c *Collector) string {
	t.Helper()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	c.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("scrape returned %d", rec.Code)
	}
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestCollector_RecordsRequests(t *testing.T) {
	c := NewCollector(nil)

	c.RecordRequest("/v1/ideas", 200, 1500*time.Millisecond)
	c.RecordRequest("/v1/ideas", 429, time.Millisecond)

	body := scrape(t, c)
	if !strings.Contains(body, `ideaforge_http_requests_total{route="/v1/ideas",status="200"} 1`) {
		t.Errorf("missing 200 counter:\n%s", body)
	}
	if !strings.Contains(body, `ideaforge_http_requests_total{route="/v1/ideas",status="429"} 1`) {
		t.Errorf("missing 429 counter:\n%s", body)
	}
	if !strings.Contains(body, "ideaforge_http_request_duration_seconds") {
		t.Errorf("missing duration histogram:\n%s", body)
	}
}

func TestCollector_RateLimitMetrics(t *testing.T) {
	c := NewCollector(nil)

	c.RecordRateLimitDenial()
	c.RecordRateLimitDenial()
	c.SetTrackedKeys(7)

	body := scrape(t, c)
	if !strings.Contains(body, "ideaforge_ratelimit_denials_total 2") {
		t.Errorf("missing denial counter:\n%s", body)
	}
	if !strings.Contains(body, "ideaforge_ratelimit_tracked_keys 7") {
		t.Errorf("missing tracked-keys gauge:\n%s", body)
	}
}

func TestCollector_GatewayMetrics(t *testing.T) {
	c := NewCollector(nil)

	c.RecordGatewayRequest("success", 3*time.Second)
	c.RecordGatewayRequest("rate_limited", time.Second)

	body := scrape(t, c)
	if !strings.Contains(body, `ideaforge_gateway_requests_total{outcome="success"} 1`) {
		t.Errorf("missing success counter:\n%s", body)
	}
	if !strings.Contains(body, `ideaforge_gateway_requests_total{outcome="rate_limited"} 1`) {
		t.Errorf("missing rate_limited counter:\n%s", body)
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector

	// None of these should panic.
	c.RecordRequest("/", 200, time.Second)
	c.RecordRateLimitDenial()
	c.SetTrackedKeys(1)
	c.RecordGatewayRequest("success", time.Second)
}
