// Package relay forwards generation requests to DashScope with the server-side
// credential and passes the upstream status and body back untouched.
package relay

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan/admissions-advisor/internal/logger"
	"github.com/jonathan/admissions-advisor/internal/metrics"
	"go.uber.org/zap"
)

// Path is the only route the relay answers.
const Path = "/api/qwen"

// DefaultModel is used when the inbound body names no model.
const DefaultModel = "qwen-plus"

// MaxInboundBytes caps the inbound body. Larger bodies are refused with 413
// rather than relayed truncated.
const MaxInboundBytes = 1 << 20

// Upstream sends one generation request and returns the raw response.
// *llm.DashScopeClient satisfies it.
type Upstream interface {
	Send(ctx context.Context, model, prompt string) (*http.Response, error)
}

// Handler is the relay endpoint. It keeps no state between requests.
type Handler struct {
	upstream Upstream
	logger   *zap.Logger
}

// NewHandler creates a relay over upstream.
func NewHandler(upstream Upstream, log *zap.Logger) *Handler {
	return &Handler{upstream: upstream, logger: logger.OrNop(log)}
}

// Request is the inbound payload. Both fields are optional.
type Request struct {
	Model  string
	Prompt string
}

// ParseRequest reads an inbound body leniently. Invalid JSON, or JSON that is not
// an object, reads as an empty object; fields that are not strings are ignored.
func ParseRequest(body []byte) Request {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		fields = map[string]any{}
	}

	req := Request{Model: DefaultModel}
	if model, ok := fields["model"].(string); ok && model != "" {
		req.Model = model
	}
	if prompt, ok := fields["prompt"].(string); ok {
		req.Prompt = prompt
	}
	return req
}

// ServeHTTP relays the request. Any path other than Path gets a plain 404.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != Path {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, "Not Found")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxInboundBytes))
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		metrics.RelayRequests.WithLabelValues(strconv.Itoa(status)).Inc()
		h.logger.Warn("inbound body rejected", zap.Int("status", status), zap.Error(err))
		h.writeHeaders(w)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "failed to read request body: " + err.Error()})
		return
	}
	in := ParseRequest(body)

	start := time.Now()
	resp, err := h.upstream.Send(r.Context(), in.Model, in.Prompt)
	metrics.RelayDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.RelayRequests.WithLabelValues(strconv.Itoa(http.StatusBadGateway)).Inc()
		h.logger.Error("upstream call failed", zap.String("model", in.Model), zap.Error(err))
		h.writeHeaders(w)
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RelayRequests.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()
	h.logger.Info("relayed generation request",
		zap.String("model", in.Model),
		zap.Int("prompt_chars", len([]rune(in.Prompt))),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	h.writeHeaders(w)
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.logger.Warn("failed to stream upstream body", zap.Error(err))
	}
}

func (h *Handler) writeHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}
