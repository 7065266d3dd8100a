package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/slipbox/internal/logging"
	"github.com/aretw0/slipbox/pkg/config"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := writeFile(t, "slipbox.yaml", `
seed: 7
intro_gate: true
log:
  level: debug
`)
	seed := uint64(42)
	gate := false

	cfg, err := LoadConfig(Flags{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), *cfg.Seed)
	assert.True(t, cfg.IntroGate)
	assert.Equal(t, "debug", cfg.Log.Level)

	cfg, err = LoadConfig(Flags{
		ConfigPath: path,
		Seed:       &seed,
		IntroGate:  &gate,
		LogFormat:  "json",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), *cfg.Seed)
	assert.False(t, cfg.IntroGate)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadConfig_InvalidFormatFlag(t *testing.T) {
	_, err := LoadConfig(Flags{LogFormat: "xml"})
	assert.Error(t, err)
}

func TestNewLogger_UnknownLevel(t *testing.T) {
	cfg := config.Default()
	cfg.Log.Level = "loud"
	_, err := NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewBox_LogsEachEventOnce(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	cfg := config.Default()
	cfg.Sentences = writeFile(t, "list.yaml", "- one\n- two\n")
	box, err := NewBox(cfg, logger)
	require.NoError(t, err)

	ctx := context.Background()
	box.RequestDraw(ctx)
	box.RequestReset(ctx)
	box.Close()

	out := logs.String()
	assert.Equal(t, 1, strings.Count(out, "msg=draw outcome=accepted"), out)
	assert.Equal(t, 1, strings.Count(out, "msg=transition step=open"), out)
	assert.Equal(t, 1, strings.Count(out, "msg=reset"), out)
	assert.NotContains(t, out, "draw accepted")
	assert.NotContains(t, out, "sequencer reset")
}

func TestNewBox_FromSentencesFile(t *testing.T) {
	cfg := config.Default()
	cfg.Sentences = writeFile(t, "list.yaml", "- one\n- two\n")

	box, err := NewBox(cfg, logging.NewNop())
	require.NoError(t, err)
	defer box.Close()
	assert.Equal(t, 2, box.Snapshot().TotalCount)

	cfg.Sentences = writeFile(t, "empty.yaml", "[]\n")
	_, err = NewBox(cfg, logging.NewNop())
	assert.Error(t, err)
}

func TestRunSession_Headless(t *testing.T) {
	cfg := config.Default()
	out := &bytes.Buffer{}

	err := RunSession(context.Background(), cfg, logging.NewNop(), RunOptions{
		Headless: true,
		Input:    strings.NewReader("state\nquit\n"),
		Output:   out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "100 of 100 slips left")
	assert.NotContains(t, out.String(), "|___/")
}

func TestNewServeHandler_Metrics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler, box, err := NewServeHandler(ctx, config.Default(), logging.NewNop())
	require.NoError(t, err)
	defer box.Close()

	srv := httptest.NewServer(handler)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/draw", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	scrape := func() string {
		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return string(body)
	}

	body := scrape()
	assert.Contains(t, body, `slipbox_draw_requests_total{outcome="accepted"} 1`)
	assert.Contains(t, body, "go_goroutines")

	resp, err = http.Post(srv.URL+"/restart", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Eventually(t, func() bool {
		return strings.Contains(scrape(), "slipbox_sentences_remaining 100")
	}, 2*time.Second, 10*time.Millisecond)
}

func TestNewServeHandler_NoMetrics(t *testing.T) {
	cfg := config.Default()
	cfg.HTTP.Metrics = false

	handler, box, err := NewServeHandler(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	defer box.Close()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
