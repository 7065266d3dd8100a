package http

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/slipbox"
	"github.com/aretw0/slipbox/pkg/domain"
	"github.com/aretw0/slipbox/pkg/timeline"
)

func newTestBox(t *testing.T, list ...string) (*slipbox.Box, *timeline.Virtual) {
	t.Helper()
	if len(list) == 0 {
		list = []string{"a", "b", "c"}
	}
	clock := timeline.NewVirtual(time.Unix(0, 0))
	box, err := slipbox.New(slipbox.WithSentences(list), slipbox.WithScheduler(clock))
	require.NoError(t, err)
	t.Cleanup(box.Close)
	return box, clock
}

func newTestHandler(t *testing.T, box Box, opts ...Option) http.Handler {
	t.Helper()
	h, err := NewHandler(box, opts...)
	require.NoError(t, err)
	return h
}

func TestLoadSpec(t *testing.T) {
	spec, err := LoadSpec(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "slipbox", spec.Info.Title)
	assert.NotNil(t, spec.Paths.Find("/draw"))
}

func TestHealthAndInfo(t *testing.T) {
	box, _ := newTestBox(t)
	handler := newTestHandler(t, box)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/info", nil))
	var info map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "slipbox-http", info["app"])
	assert.Equal(t, "0.1.0", info["api_version"])
	assert.Equal(t, strings.TrimSpace(slipbox.Version), info["version"])

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/openapi.yaml", nil))
	assert.Contains(t, w.Body.String(), "openapi: 3.0.3")
}

func TestDrawResetFlow(t *testing.T) {
	box, clock := newTestBox(t)
	handler := newTestHandler(t, box)

	post := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", path, nil))
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		return w
	}

	var resp DrawResponse
	require.NoError(t, json.Unmarshal(post("/draw").Body.Bytes(), &resp))
	assert.Equal(t, domain.DrawAccepted, resp.Outcome)
	assert.True(t, resp.Accepted)
	assert.True(t, resp.State.Busy)
	assert.Equal(t, 2, resp.State.RemainingCount)

	require.NoError(t, json.Unmarshal(post("/draw").Body.Bytes(), &resp))
	assert.Equal(t, domain.RejectedBusy, resp.Outcome)
	assert.False(t, resp.Accepted)

	clock.Advance(3 * time.Second)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/state", nil))
	var snap domain.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.True(t, snap.Revealed)
	assert.Equal(t, domain.PhaseRevealed, snap.Phase)

	var reset domain.Snapshot
	require.NoError(t, json.Unmarshal(post("/reset").Body.Bytes(), &reset))
	assert.Equal(t, domain.PhaseIdle, reset.Phase)
	assert.Empty(t, reset.ActiveSentence)
	assert.Equal(t, 2, reset.RemainingCount)

	var restarted domain.Snapshot
	require.NoError(t, json.Unmarshal(post("/restart").Body.Bytes(), &restarted))
	assert.Equal(t, 3, restarted.RemainingCount)
}

func TestCORSPreflight(t *testing.T) {
	box, _ := newTestBox(t)
	handler := newTestHandler(t, box)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/draw", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, 3, box.Snapshot().RemainingCount, "preflight must not draw")
}

func TestMetricsMount(t *testing.T) {
	box, _ := newTestBox(t)

	handler := newTestHandler(t, box)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("slipbox_resets_total 0\n"))
	})
	handler = newTestHandler(t, box, WithMetrics(metrics))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "slipbox_resets_total")
}

type sseEvent struct {
	name string
	data string
}

// readEvents parses an SSE stream into events until the body closes.
func readEvents(t *testing.T, resp *http.Response) <-chan sseEvent {
	t.Helper()
	out := make(chan sseEvent, 64)
	go func() {
		defer close(out)
		scanner := bufio.NewScanner(resp.Body)
		var ev sseEvent
		for scanner.Scan() {
			line := scanner.Text()
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				ev.data = strings.TrimPrefix(line, "data: ")
			case line == "":
				out <- ev
				ev = sseEvent{}
			}
		}
	}()
	return out
}

func next(t *testing.T, events <-chan sseEvent) sseEvent {
	t.Helper()
	select {
	case ev, ok := <-events:
		require.True(t, ok, "stream closed")
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for event")
		return sseEvent{}
	}
}

func subscribe(t *testing.T, srv *httptest.Server, query string) (<-chan sseEvent, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/events"+query, nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	events := readEvents(t, resp)
	ping := next(t, events)
	require.Equal(t, "ping", ping.name)
	return events, cancel
}

func TestSubscribeEvents_Snapshots(t *testing.T) {
	box, clock := newTestBox(t, "only")
	srv := httptest.NewServer(newTestHandler(t, box))
	defer srv.Close()

	events, cancel := subscribe(t, srv, "")
	defer cancel()

	initial := next(t, events)
	assert.Equal(t, "snapshot", initial.name)
	assert.Contains(t, initial.data, `"phase":"idle"`)

	box.RequestDraw(context.Background())
	clock.Advance(3 * time.Second)

	var phases []domain.Phase
	for len(phases) < 5 {
		var snap domain.Snapshot
		require.NoError(t, json.Unmarshal([]byte(next(t, events).data), &snap))
		phases = append(phases, snap.Phase)
	}
	assert.Equal(t, []domain.Phase{
		domain.PhaseOpening,
		domain.PhaseSliding,
		domain.PhaseFading,
		domain.PhaseCentering,
		domain.PhaseRevealed,
	}, phases)
}

func TestSubscribeEvents_DiffWatch(t *testing.T) {
	box, clock := newTestBox(t, "only")
	srv := httptest.NewServer(newTestHandler(t, box))
	defer srv.Close()

	events, cancel := subscribe(t, srv, "?mode=diff&watch=sentence")
	defer cancel()

	initial := next(t, events)
	assert.Equal(t, "diff", initial.name)

	box.RequestDraw(context.Background())
	drawn := next(t, events)
	assert.Contains(t, drawn.data, `"active_sentence":"only"`)

	clock.Advance(3 * time.Second)
	revealed := next(t, events)
	var diff domain.SnapshotDiff
	require.NoError(t, json.Unmarshal([]byte(revealed.data), &diff))
	require.NotNil(t, diff.Revealed)
	assert.True(t, *diff.Revealed)
	assert.Nil(t, diff.EnvelopeVisible, "reveal step does not touch visibility")
}
