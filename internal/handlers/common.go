package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/draftdelta/adp-api/internal/logic"
	"github.com/draftdelta/adp-api/internal/sleeper"
)

type contextKey string

const requestIDKey contextKey = "request_id"

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	checks := map[string]bool{}
	if h.redis != nil {
		checks["redis"] = h.redis.Ping(ctx).Err() == nil
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":  allHealthy,
		"checks": checks,
	})
}

// RequestLogger tags each request with an id and writes one access log line.
func (h *Handler) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(RequestIDHeader)
		if reqID == "" {
			reqID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, reqID)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r.WithContext(context.WithValue(r.Context(), requestIDKey, reqID)))

		h.logger.Infow("request",
			"request_id", reqID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// serviceError maps service errors onto HTTP statuses.
func (h *Handler) serviceError(w http.ResponseWriter, r *http.Request, err error) {
	var mismatch *logic.StructuralMismatchError

	switch {
	case errors.As(err, &mismatch):
		h.jsonResponse(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":     err.Error(),
			"expected":  mismatch.Expected,
			"reference": mismatch.Reference,
			"offenders": mismatch.Offenders,
			"total":     mismatch.Total,
		})
	case errors.Is(err, logic.ErrInvalidInput):
		h.errorResponse(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, sleeper.ErrUserNotFound):
		h.errorResponse(w, http.StatusNotFound, "user not found")
	case errors.Is(err, logic.ErrNoDrafts):
		h.errorResponse(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled):
		// Client went away; nothing useful to send.
		h.logger.Debugw("request canceled", "request_id", requestID(r.Context()), "path", r.URL.Path)
	case errors.Is(err, logic.ErrUpstream), errors.Is(err, context.DeadlineExceeded):
		h.logger.Warnw("upstream failure", "request_id", requestID(r.Context()), "path", r.URL.Path, "error", err)
		h.errorResponse(w, http.StatusBadGateway, "draft data source unavailable")
	default:
		h.logger.Errorw("request failed", "request_id", requestID(r.Context()), "path", r.URL.Path, "error", err)
		h.errorResponse(w, http.StatusInternalServerError, "internal error")
	}
}
