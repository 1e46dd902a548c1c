// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/pdiddy/chronologist/internal/history"
	"github.com/pdiddy/chronologist/internal/provider"
	"github.com/pdiddy/chronologist/pkg/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// --- fake source ---

type fakeSource struct {
	set       *history.RecordSet
	err       error
	lastMonth int
	lastDay   int
	lastYear  string
}

func (f *fakeSource) Today(context.Context) (*history.RecordSet, error) {
	return f.set, f.err
}

func (f *fakeSource) Date(_ context.Context, month, day int) (*history.RecordSet, error) {
	f.lastMonth, f.lastDay = month, day
	return f.set, f.err
}

func (f *fakeSource) DateInYear(_ context.Context, month, day int, year string) (*history.RecordSet, error) {
	f.lastMonth, f.lastDay, f.lastYear = month, day, year
	if f.err != nil {
		return nil, f.err
	}
	return f.set.Search(year)
}

func daySet(t *testing.T) *history.RecordSet {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "history", "testdata", "day.json"))
	require.NoError(t, err)
	var p types.DayPayload
	require.NoError(t, json.Unmarshal(data, &p))
	return history.NewRecordSet(p)
}

type testEnv struct {
	source  *fakeSource
	reg     *prometheus.Registry
	metrics *Metrics
	router  http.Handler
}

func newTestEnv(t *testing.T, src *fakeSource, cfg types.ServeConfig) *testEnv {
	t.Helper()
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	h := New(src, cfg, nil, m)
	return &testEnv{source: src, reg: reg, metrics: m, router: NewRouter(h, reg)}
}

func (e *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeReply(t *testing.T, w *httptest.ResponseRecorder) Reply {
	t.Helper()
	var r Reply
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &r))
	return r
}

// --- tests ---

func TestHandleToday_SummaryLimit(t *testing.T) {
	env := newTestEnv(t, &fakeSource{set: daySet(t)}, types.ServeConfig{})

	w := env.get(t, "/history/today")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	reply := decodeReply(t, w)
	assert.Equal(t, "February 4", reply.Date)
	require.Len(t, reply.Messages, defaultSummaryLimit)
	assert.Equal(t, "Year 927: Death of Simeon I the Great, the first Bulgarian to be recognized as Emperor.", reply.Messages[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(env.metrics.Replies.WithLabelValues("today", "200")))
}

func TestHandleDate_ConfiguredLimit(t *testing.T) {
	env := newTestEnv(t, &fakeSource{set: daySet(t)}, types.ServeConfig{SummaryLimit: 5})

	w := env.get(t, "/history/2/4")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeReply(t, w).Messages, 5)
	assert.Equal(t, 2, env.source.lastMonth)
	assert.Equal(t, 4, env.source.lastDay)
}

func TestHandleDate_WithYear(t *testing.T) {
	env := newTestEnv(t, &fakeSource{set: daySet(t)}, types.ServeConfig{SummaryLimit: 1})

	w := env.get(t, "/history/2/4?year=927")
	require.Equal(t, http.StatusOK, w.Code)

	reply := decodeReply(t, w)
	assert.Equal(t, "927", reply.Year)
	// The summary limit does not apply to a year query.
	assert.Equal(t, []string{
		"Year 927: Death of Simeon I the Great, the first Bulgarian to be recognized as Emperor.",
		"Simeon I of Bulgaria died in 927 this date (born in 864)",
	}, reply.Messages)
}

func TestHandleDate_BCYear(t *testing.T) {
	env := newTestEnv(t, &fakeSource{set: daySet(t)}, types.ServeConfig{})

	w := env.get(t, "/history/2/4?year=366%20BC")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "366 BC", env.source.lastYear)
	assert.Equal(t, []string{"Procopius, Roman usurper died in 366 BC this date (born in 325)"}, decodeReply(t, w).Messages)
}

func TestHandleDate_NothingFound(t *testing.T) {
	env := newTestEnv(t, &fakeSource{set: daySet(t)}, types.ServeConfig{})

	w := env.get(t, "/history/2/4?year=1000")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{history.NothingFound}, decodeReply(t, w).Messages)
}

func TestHandleDate_BadParams(t *testing.T) {
	env := newTestEnv(t, &fakeSource{set: daySet(t)}, types.ServeConfig{})

	for _, target := range []string{"/history/feb/4", "/history/2/four"} {
		w := env.get(t, target)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)
	}
	assert.Equal(t, 2.0, testutil.ToFloat64(env.metrics.Replies.WithLabelValues("date", "400")))
}

func TestHandleDate_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid month", fmt.Errorf("%w: got 13", provider.ErrInvalidMonth), http.StatusBadRequest},
		{"invalid day", provider.ErrInvalidDay, http.StatusBadRequest},
		{"invalid year", provider.ErrInvalidYear, http.StatusBadRequest},
		{"upstream status", &provider.FetchError{Endpoint: "http://x/date/2/4", StatusCode: 500}, http.StatusBadGateway},
		{"transport", fmt.Errorf("history provider request: %w", context.DeadlineExceeded), http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, &fakeSource{err: tt.err}, types.ServeConfig{})
			w := env.get(t, "/history/2/4?year=927")
			assert.Equal(t, tt.want, w.Code)

			var body errorReply
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	env := newTestEnv(t, &fakeSource{set: daySet(t)}, types.ServeConfig{})

	assert.Equal(t, http.StatusOK, env.get(t, "/healthz").Code)
	env.get(t, "/history/today")

	w := env.get(t, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.True(t, strings.Contains(body, "chronologist_replies_total"))
	assert.True(t, strings.Contains(body, "chronologist_fetch_duration_seconds"))
}

func TestNilMetrics(t *testing.T) {
	h := New(&fakeSource{set: daySet(t)}, types.ServeConfig{}, nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/history/today", nil)
	w := httptest.NewRecorder()
	h.HandleToday(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNewHTTPServer(t *testing.T) {
	srv := NewHTTPServer(":0", http.NotFoundHandler())
	assert.Equal(t, ":0", srv.Addr)
	assert.NotZero(t, srv.ReadHeaderTimeout)
}
