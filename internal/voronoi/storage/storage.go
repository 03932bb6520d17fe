package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/OCharnyshevich/voronoi/internal/voronoi/config"
)

const configFile = "config.json"

// Storage reads and writes the explorer's config file. Generated fields are
// never stored; they are rebuilt from their parameters.
type Storage struct {
	dir string
	log *slog.Logger
}

// New creates a new Storage rooted at dir, creating it if needed.
func New(dir string, log *slog.Logger) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dir, err)
	}
	return &Storage{dir: dir, log: log}, nil
}

// ConfigPath returns the location of the config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.dir, configFile)
}

// LoadConfig reads config.json into cfg. If the file does not exist, cfg is
// unchanged and loaded is false.
func (s *Storage) LoadConfig(cfg *config.Config) (loaded bool, err error) {
	path := s.ConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return false, fmt.Errorf("parse config: %w", err)
	}
	s.log.Info("loaded config from file", "path", path)
	return true, nil
}

// SaveConfig writes cfg to config.json atomically.
func (s *Storage) SaveConfig(cfg *config.Config) error {
	path := s.ConfigPath()
	if err := atomicWriteJSON(path, cfg); err != nil {
		return err
	}
	s.log.Info("saved config", "path", path)
	return nil
}

// atomicWriteJSON marshals v to JSON and writes it atomically using a temp file + rename.
func atomicWriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	data = append(data, '\n')

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
