package actions

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jjshanks/pin-actions/internal/log"
)

// traceTransport logs full HTTP exchanges when trace logging is enabled.
// Request headers are never logged to keep credentials out of the output.
type traceTransport struct {
	base http.RoundTripper
}

func newTraceTransport() http.RoundTripper {
	return &traceTransport{base: http.DefaultTransport}
}

func (t *traceTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if !slog.Default().Enabled(ctx, log.LevelTrace) {
		return t.base.RoundTrip(req)
	}

	slog.Log(ctx, log.LevelTrace, "http request",
		"method", req.Method, "url", req.URL.String())

	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	if err != nil {
		slog.Log(ctx, log.LevelTrace, "http request failed",
			"method", req.Method, "url", req.URL.String(),
			"duration", time.Since(start), "error", err)
		return nil, err
	}

	slog.Log(ctx, log.LevelTrace, "http response",
		"status", resp.StatusCode, "url", req.URL.String(),
		"duration", time.Since(start), "headers", resp.Header)
	return resp, nil
}
