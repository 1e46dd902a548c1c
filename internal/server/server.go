// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes day-of-year history as JSON replies over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pdiddy/chronologist/internal/history"
	"github.com/pdiddy/chronologist/internal/provider"
	"github.com/pdiddy/chronologist/pkg/types"
)

const defaultSummaryLimit = 3

// Source supplies record sets. *provider.Client implements it.
type Source interface {
	Today(ctx context.Context) (*history.RecordSet, error)
	Date(ctx context.Context, month, day int) (*history.RecordSet, error)
	DateInYear(ctx context.Context, month, day int, year string) (*history.RecordSet, error)
}

var _ Source = (*provider.Client)(nil)

// Reply is the JSON body of a successful history request.
type Reply struct {
	Date     string   `json:"date"`
	URL      string   `json:"url"`
	Year     string   `json:"year,omitempty"`
	Messages []string `json:"messages"`
}

type errorReply struct {
	Error string `json:"error"`
}

// Handler wires the history endpoints to a Source.
type Handler struct {
	source       Source
	logger       *zap.Logger
	metrics      *Metrics
	summaryLimit int
}

// New constructs a Handler. A nil logger disables logging and nil metrics
// disables instrumentation.
func New(source Source, cfg types.ServeConfig, logger *zap.Logger, metrics *Metrics) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := cfg.SummaryLimit
	if limit <= 0 {
		limit = defaultSummaryLimit
	}
	return &Handler{
		source:       source,
		logger:       logger,
		metrics:      metrics,
		summaryLimit: limit,
	}
}

// Register mounts the history endpoints on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/history/today", h.HandleToday)
	r.Get("/history/{month}/{day}", h.HandleDate)
	r.Get("/healthz", h.HandleHealth)
}

// NewRouter builds the full router: history endpoints plus /metrics served
// from gatherer.
func NewRouter(h *Handler, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	h.Register(r)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

// NewHTTPServer builds an HTTP server with the project's defaults.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// HandleToday handles GET /history/today.
func (h *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	const route = "today"
	start := time.Now()
	set, err := h.source.Today(r.Context())
	h.metrics.ObserveFetchLatency(route, time.Since(start))
	if err != nil {
		h.writeFetchError(w, r, route, err)
		return
	}
	h.writeReply(w, r, route, set, "")
}

// HandleDate handles GET /history/{month}/{day}?year=Y.
func (h *Handler) HandleDate(w http.ResponseWriter, r *http.Request) {
	const route = "date"
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil {
		h.writeError(w, route, http.StatusBadRequest, "month must be a number")
		return
	}
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil {
		h.writeError(w, route, http.StatusBadRequest, "day must be a number")
		return
	}
	year := r.URL.Query().Get("year")

	start := time.Now()
	var set *history.RecordSet
	if year == "" {
		set, err = h.source.Date(r.Context(), month, day)
	} else {
		set, err = h.source.DateInYear(r.Context(), month, day, year)
	}
	h.metrics.ObserveFetchLatency(route, time.Since(start))
	if err != nil {
		h.writeFetchError(w, r, route, err)
		return
	}
	h.writeReply(w, r, route, set, year)
}

// HandleHealth handles GET /healthz.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeReply renders set. Without a year only the first summaryLimit
// messages are sent; an empty set is answered with a single notice.
func (h *Handler) writeReply(w http.ResponseWriter, r *http.Request, route string, set *history.RecordSet, year string) {
	msgs := history.Messages(set)
	h.metrics.ObserveEntriesFound(len(msgs))
	if len(msgs) == 0 {
		msgs = []string{history.NothingFound}
	}
	if year == "" && len(msgs) > h.summaryLimit {
		msgs = msgs[:h.summaryLimit]
	}

	h.logger.Info("history reply",
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("route", route),
		zap.String("date", set.Date),
		zap.String("year", year),
		zap.Int("entries", set.Len()),
	)
	h.metrics.IncrementReply(route, strconv.Itoa(http.StatusOK))
	writeJSON(w, http.StatusOK, Reply{
		Date:     set.Date,
		URL:      set.URL,
		Year:     year,
		Messages: msgs,
	})
}

func (h *Handler) writeFetchError(w http.ResponseWriter, r *http.Request, route string, err error) {
	status := http.StatusBadGateway
	msg := "history provider unavailable"
	switch {
	case errors.Is(err, provider.ErrInvalidMonth),
		errors.Is(err, provider.ErrInvalidDay),
		errors.Is(err, provider.ErrInvalidYear):
		status = http.StatusBadRequest
		msg = err.Error()
	}

	fields := []zap.Field{
		zap.String("request_id", middleware.GetReqID(r.Context())),
		zap.String("route", route),
		zap.Error(err),
	}
	var fe *provider.FetchError
	if errors.As(err, &fe) {
		fields = append(fields, zap.Int("upstream_status", fe.StatusCode))
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("history fetch failed", fields...)
	} else {
		h.logger.Debug("rejected history request", fields...)
	}
	h.writeError(w, route, status, msg)
}

func (h *Handler) writeError(w http.ResponseWriter, route string, status int, msg string) {
	h.metrics.IncrementReply(route, strconv.Itoa(status))
	writeJSON(w, status, errorReply{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
