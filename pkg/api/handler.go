package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"ideaforge-hq/ideaforge/pkg/api/middleware"
	"ideaforge-hq/ideaforge/pkg/extract"
	"ideaforge-hq/ideaforge/pkg/gateway"
	"ideaforge-hq/ideaforge/pkg/prompt"
	"ideaforge-hq/ideaforge/pkg/telemetry/metrics"
)

// CompletionClient is the upstream dependency of the ideas handler.
// *gateway.Client satisfies it; tests substitute a stub.
type CompletionClient interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// IdeasHandler orchestrates the generation pipeline for POST requests:
// parse body, sanitize, validate, build prompt, call the gateway, recover
// the JSON document, and return it verbatim.
type IdeasHandler struct {
	client  CompletionClient
	metrics *metrics.Collector
	logger  *slog.Logger
}

// NewIdeasHandler creates the handler. collector may be nil.
func NewIdeasHandler(client CompletionClient, collector *metrics.Collector) *IdeasHandler {
	return &IdeasHandler{
		client:  client,
		metrics: collector,
		logger:  slog.Default().With("component", "api.ideas"),
	}
}

// ServeHTTP implements http.Handler.
func (h *IdeasHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteError(w, http.StatusBadRequest, MsgMethodNotAllowed)
		return
	}

	requestID := middleware.GetRequestID(r.Context())

	raw, err := ParseIdeaRequest(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req := raw.Sanitize()
	if err := req.Validate(); err != nil {
		h.fail(w, r, err)
		return
	}

	system, user := prompt.Build(req)

	// The upstream call runs to completion even if the caller disconnects
	// mid-request; a half-finished generation is never worth resuming.
	ctx := context.WithoutCancel(r.Context())

	start := time.Now()
	content, err := h.client.Complete(ctx, system, user)
	h.metrics.RecordGatewayRequest(gatewayOutcome(err), time.Since(start))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	doc, err := extract.Ideas(content)
	if err != nil {
		h.logger.WarnContext(r.Context(), "reply recovery failed",
			"request_id", requestID,
			"content_length", len(content),
			"error", err,
		)
		h.fail(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "ideas generated",
		"request_id", requestID,
		"domain", req.Domain,
		"mode", req.Mode,
		"idea_count", req.IdeaCount,
		"gateway_duration_ms", time.Since(start).Milliseconds(),
	)

	WriteJSON(w, http.StatusOK, doc)
}

// fail logs the underlying error and writes its caller-facing form.
func (h *IdeasHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	apiErr := HandleError(err)

	level := slog.LevelWarn
	if apiErr.Status >= 500 {
		level = slog.LevelError
	}
	h.logger.Log(r.Context(), level, "request failed",
		"request_id", middleware.GetRequestID(r.Context()),
		"status", apiErr.Status,
		"error", err,
	)

	WriteAPIError(w, apiErr)
}

// gatewayOutcome classifies a Complete result for the metrics label.
func gatewayOutcome(err error) string {
	if err == nil {
		return "success"
	}

	var rateLimitedErr *gateway.RateLimitedError
	if errors.As(err, &rateLimitedErr) {
		return "rate_limited"
	}
	var quotaErr *gateway.QuotaError
	if errors.As(err, &quotaErr) {
		return "quota"
	}
	var upstreamErr *gateway.UpstreamError
	if errors.As(err, &upstreamErr) {
		return "upstream_error"
	}
	var transportErr *gateway.TransportError
	if errors.As(err, &transportErr) {
		return "transport_error"
	}
	var parseErr *gateway.ParseError
	if errors.As(err, &parseErr) {
		return "parse_error"
	}
	return "error"
}
