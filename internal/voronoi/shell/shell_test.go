package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OCharnyshevich/voronoi/internal/voronoi/config"
	"github.com/OCharnyshevich/voronoi/internal/voronoi/noise"
	"github.com/OCharnyshevich/voronoi/internal/voronoi/render"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.SizeX = 5
	cfg.SizeY = 8
	cfg.SizeZ = 4
	cfg.Points = 6
	cfg.Threshold = 1.5
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seeds(values ...int64) func() int64 {
	return func() int64 {
		v := values[0]
		values = values[1:]
		return v
	}
}

func runShell(t *testing.T, cfg *config.Config, input string, next func() int64) (*Shell, string) {
	t.Helper()
	var out bytes.Buffer
	sh := New(cfg, testLogger(), strings.NewReader(input), &out, next)
	require.NoError(t, sh.Run(context.Background(), 1))
	return sh, out.String()
}

func TestShellClampsAtBoundaries(t *testing.T) {
	cfg := testConfig()

	sh, _ := runShell(t, cfg, "\x1b[D\x1b[Dq", nil)
	assert.Equal(t, 0, sh.Level(), "left at the first slice stays put")

	sh, out := runShell(t, cfg, strings.Repeat("\x1b[C", 10)+"q", nil)
	assert.Equal(t, cfg.SizeZ-1, sh.Level())
	assert.Contains(t, out, "Seed: 1, Z Level: 3")
	assert.NotContains(t, out, "Z Level: 4")
}

func TestShellWraps(t *testing.T) {
	cfg := testConfig()
	cfg.Boundary = config.BoundaryWrap

	sh, out := runShell(t, cfg, "\x1b[Dq", nil)
	assert.Equal(t, cfg.SizeZ-1, sh.Level())
	assert.Contains(t, out, "Z Level: 3")

	sh, _ = runShell(t, cfg, strings.Repeat("l", cfg.SizeZ+1)+"q", nil)
	assert.Equal(t, 1, sh.Level())
}

func TestShellRendersCurrentSlice(t *testing.T) {
	cfg := testConfig()
	sh, out := runShell(t, cfg, "lq", nil)

	slice, err := sh.Field().GetSlice(1)
	require.NoError(t, err)
	want := strings.ReplaceAll(render.Frame(slice, '#', ' ', 1), "\n", "\r\n")
	assert.Contains(t, out, clearScreen+want)
}

func TestShellRegenerateReplacesField(t *testing.T) {
	cfg := testConfig()
	var out bytes.Buffer
	sh := New(cfg, testLogger(), strings.NewReader("llrq"), &out, seeds(99))
	require.NoError(t, sh.Run(context.Background(), 1))

	assert.Equal(t, int64(99), sh.Seed())
	assert.Equal(t, 2, sh.Level(), "regeneration keeps the slice index")
	assert.Equal(t, int64(99), sh.Field().Params().Seed)
	assert.Contains(t, out.String(), "Seed: 99, Z Level: 2")

	want, err := noise.Generate(context.Background(), cfg.Params(99))
	require.NoError(t, err)
	assert.Equal(t, want.SeedPoints(), sh.Field().SeedPoints())
}

func TestShellExport(t *testing.T) {
	cfg := testConfig()
	cfg.ExportDir = t.TempDir()

	_, out := runShell(t, cfg, "lpq", nil)

	path := filepath.Join(cfg.ExportDir, render.PNGName(1, 1))
	_, err := os.Stat(path)
	require.NoError(t, err)
	assert.Contains(t, out, "saved "+path)
}

func TestShellExportFailureKeepsRunning(t *testing.T) {
	cfg := testConfig()
	cfg.ExportDir = filepath.Join(t.TempDir(), "missing")

	sh, out := runShell(t, cfg, "plq", nil)
	assert.Equal(t, 1, sh.Level())
	assert.Contains(t, out, "export failed")
}

func TestShellEndOfInput(t *testing.T) {
	sh, _ := runShell(t, testConfig(), "l", nil)
	assert.Equal(t, 1, sh.Level())
}

func TestShellInvalidParameters(t *testing.T) {
	cfg := testConfig()
	cfg.Points = 0
	sh := New(cfg, testLogger(), strings.NewReader("q"), io.Discard, nil)

	err := sh.Run(context.Background(), 1)
	assert.ErrorIs(t, err, noise.ErrInvalidParameter)
	assert.Nil(t, sh.Field())
}

func TestShellCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	sh := New(testConfig(), testLogger(), pr, io.Discard, nil)

	errc := make(chan error, 1)
	go func() { errc <- sh.Run(ctx, 1) }()
	cancel()

	select {
	case err := <-errc:
		assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestShellDrawError(t *testing.T) {
	sh := New(testConfig(), testLogger(), strings.NewReader("q"), failingWriter{}, nil)
	err := sh.Run(context.Background(), 1)
	assert.ErrorContains(t, err, "draw")
}
