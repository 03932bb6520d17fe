package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/OCharnyshevich/voronoi/internal/voronoi/config"
	"github.com/OCharnyshevich/voronoi/internal/voronoi/noise"
	"github.com/OCharnyshevich/voronoi/internal/voronoi/render"
	"github.com/OCharnyshevich/voronoi/internal/voronoi/shell"
	"github.com/OCharnyshevich/voronoi/internal/voronoi/storage"
)

func main() {
	cfg := config.DefaultConfig()

	var (
		configDir  = flag.String("config-dir", "", "directory holding config.json (empty = no config file)")
		saveConfig = flag.Bool("save-config", false, "write the effective config to -config-dir and exit")
		once       = flag.Bool("once", false, "print a single slice and exit")
		level      = flag.Int("slice", 0, "slice printed by -once")
		logLevel   = flag.String("log-level", "warn", "log level: debug, info, warn, error")
	)
	flag.IntVar(&cfg.SizeX, "x", cfg.SizeX, "grid size along x (rows)")
	flag.IntVar(&cfg.SizeY, "y", cfg.SizeY, "grid size along y (columns)")
	flag.IntVar(&cfg.SizeZ, "z", cfg.SizeZ, "grid size along z (slices)")
	flag.IntVar(&cfg.Points, "points", cfg.Points, "number of seed points")
	flag.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "cells farther than this from every seed point are filled")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "noise seed (0 = random)")
	flag.StringVar(&cfg.Boundary, "boundary", cfg.Boundary, "slice stepping past either end: clamp or wrap")
	flag.StringVar(&cfg.Index, "index", cfg.Index, "nearest point search: brute or kdtree")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "generation workers (0 = GOMAXPROCS)")
	flag.StringVar(&cfg.FillGlyph, "fill", cfg.FillGlyph, "glyph for filled cells")
	flag.StringVar(&cfg.EmptyGlyph, "empty", cfg.EmptyGlyph, "glyph for empty cells")
	flag.StringVar(&cfg.ExportDir, "export-dir", cfg.ExportDir, "directory for exported PNG slices")
	flag.Parse()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q\n", *logLevel)
		os.Exit(2)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	if *configDir != "" {
		store, err := storage.New(*configDir, log)
		if err != nil {
			log.Error("open config dir", "error", err)
			os.Exit(1)
		}

		explicit := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { explicit[f.Name] = true })

		fromFile := config.DefaultConfig()
		loaded, err := store.LoadConfig(fromFile)
		if err != nil {
			log.Error("load config", "error", err)
			os.Exit(1)
		}
		if loaded {
			config.Merge(cfg, fromFile, explicit)
		}

		if *saveConfig {
			if err := store.SaveConfig(cfg); err != nil {
				log.Error("save config", "error", err)
				os.Exit(1)
			}
			return
		}
	} else if *saveConfig {
		log.Error("-save-config requires -config-dir")
		os.Exit(2)
	}

	if err := cfg.Validate(); err != nil {
		log.Error("config", "error", err)
		os.Exit(2)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = newSeed()
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	if *once {
		err = printSlice(ctx, cfg, seed, *level, os.Stdout)
	} else {
		err = interactive(ctx, cfg, log, seed)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Error("voronoi", "error", err)
		cancel()
		os.Exit(1)
	}
}

// newSeed draws a non-zero seed from the runtime's entropy-seeded source.
func newSeed() int64 {
	for {
		if s := rand.Int64(); s != 0 {
			return s
		}
	}
}

func printSlice(ctx context.Context, cfg *config.Config, seed int64, level int, w io.Writer) error {
	f, err := noise.Generate(ctx, cfg.Params(seed))
	if err != nil {
		return err
	}
	s, err := noise.GetSlice(f, level)
	if err != nil {
		return err
	}
	fill, empty := cfg.Glyphs()
	_, err = fmt.Fprintln(w, render.Frame(s, fill, empty, seed))
	return err
}

func interactive(ctx context.Context, cfg *config.Config, log *slog.Logger, seed int64) error {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return fmt.Errorf("raw terminal: %w", err)
		}
		defer term.Restore(fd, state)
	}

	sh := shell.New(cfg, log, os.Stdin, os.Stdout, newSeed)
	return sh.Run(ctx, seed)
}
