package shell

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/OCharnyshevich/voronoi/internal/voronoi/config"
	"github.com/OCharnyshevich/voronoi/internal/voronoi/noise"
	"github.com/OCharnyshevich/voronoi/internal/voronoi/render"
)

const (
	clearScreen = "\x1b[H\x1b[2J"
	helpLine    = "<-/-> slice   r regenerate   p export png   q quit"
)

// Shell pages through the slices of one field at a time. Regenerating
// replaces the field with a new instance; the old one is dropped.
type Shell struct {
	cfg     *config.Config
	log     *slog.Logger
	in      io.Reader
	out     io.Writer
	newSeed func() int64

	field  *noise.Field
	seed   int64
	level  int
	notice string
}

// New creates a Shell reading keys from in and drawing to out. newSeed
// supplies the seed for each regeneration.
func New(cfg *config.Config, log *slog.Logger, in io.Reader, out io.Writer, newSeed func() int64) *Shell {
	return &Shell{
		cfg:     cfg,
		log:     log,
		in:      in,
		out:     out,
		newSeed: newSeed,
	}
}

// Field returns the field currently on screen.
func (s *Shell) Field() *noise.Field { return s.field }

// Seed returns the seed of the current field.
func (s *Shell) Seed() int64 { return s.seed }

// Level returns the z index of the slice on screen.
func (s *Shell) Level() int { return s.level }

type keyEvent struct {
	action Action
	err    error
}

// Run generates the first field from seed, then handles keys until the user
// quits, input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context, seed int64) error {
	if err := s.regenerate(ctx, seed); err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)
	events := make(chan keyEvent)
	// On cancellation the reader stays blocked in its read until the process
	// exits; done only stops it from delivering the key it was waiting for.
	go s.readKeys(events, done)

	for {
		if err := s.draw(); err != nil {
			return err
		}

		var ev keyEvent
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev = <-events:
		}
		if ev.err != nil {
			return fmt.Errorf("read key: %w", ev.err)
		}

		switch ev.action {
		case ActionNext:
			s.level = s.step(1)
		case ActionPrev:
			s.level = s.step(-1)
		case ActionRegenerate:
			if err := s.regenerate(ctx, s.newSeed()); err != nil {
				return err
			}
		case ActionExport:
			s.export()
		case ActionQuit:
			s.log.Info("quit", "seed", s.seed, "level", s.level)
			return nil
		}
	}
}

func (s *Shell) readKeys(events chan<- keyEvent, done <-chan struct{}) {
	keys := NewKeyReader(s.in)
	for {
		action, err := keys.Next()
		select {
		case events <- keyEvent{action: action, err: err}:
		case <-done:
			return
		}
		if err != nil || action == ActionQuit {
			return
		}
	}
}

// step moves the slice index by delta under the configured boundary policy.
func (s *Shell) step(delta int) int {
	size := s.field.Params().SizeZ
	next := s.level + delta
	if s.cfg.Boundary == config.BoundaryWrap {
		return ((next % size) + size) % size
	}
	return min(max(next, 0), size-1)
}

func (s *Shell) regenerate(ctx context.Context, seed int64) error {
	start := time.Now()
	f, err := noise.Generate(ctx, s.cfg.Params(seed))
	if err != nil {
		return fmt.Errorf("generate seed %d: %w", seed, err)
	}

	s.field = f
	s.seed = seed
	s.level = min(s.level, f.Params().SizeZ-1)
	s.notice = ""

	p := f.Params()
	s.log.Info("generated field",
		"field", f.ID(),
		"seed", seed,
		"size", fmt.Sprintf("%dx%dx%d", p.SizeX, p.SizeY, p.SizeZ),
		"points", p.Points,
		"threshold", p.Threshold,
		"index", p.Index,
		"filled", f.FilledCount(),
		"elapsed", time.Since(start),
	)
	return nil
}

func (s *Shell) export() {
	slice, err := s.field.GetSlice(s.level)
	if err != nil {
		s.log.Error("export slice", "level", s.level, "error", err)
		s.notice = "export failed: " + err.Error()
		return
	}
	path := filepath.Join(s.cfg.ExportDir, render.PNGName(s.seed, s.level))
	if err := render.WritePNG(slice, s.seed, path); err != nil {
		s.log.Error("export slice", "path", path, "error", err)
		s.notice = "export failed: " + err.Error()
		return
	}
	s.log.Info("exported slice", "field", s.field.ID(), "path", path)
	s.notice = "saved " + path
}

func (s *Shell) draw() error {
	slice, err := s.field.GetSlice(s.level)
	if err != nil {
		return fmt.Errorf("draw level %d: %w", s.level, err)
	}
	fill, empty := s.cfg.Glyphs()

	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(render.Frame(slice, fill, empty, s.seed))
	b.WriteString("\n")
	if s.notice != "" {
		b.WriteString(s.notice)
		b.WriteString("\n")
	}
	b.WriteString(helpLine)
	b.WriteString("\n")

	// Raw terminals do not translate \n into a carriage return.
	frame := strings.ReplaceAll(b.String(), "\n", "\r\n")
	if _, err := io.WriteString(s.out, frame); err != nil {
		return fmt.Errorf("draw: %w", err)
	}
	return nil
}
