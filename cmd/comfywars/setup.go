package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/comfy-wars/internal/config"
	"github.com/vovakirdan/comfy-wars/internal/host"
	"github.com/vovakirdan/comfy-wars/internal/storage"
)

// newLogger creates the process logger and makes it the default, which is
// also what the unit logs to. With toFile the log goes to the configured
// file so it does not tear the terminal UI.
func newLogger(cfg config.HostConfig, toFile bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	var (
		out    io.Writer = os.Stderr
		closer io.Closer = nopCloser{}
	)
	if toFile && cfg.Log.File != "" {
		path, err := config.ExpandPath(cfg.Log.File)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		out, closer = f, f
	} else if toFile {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "comfywars",
		Level:           level,
	})
	log.SetDefault(logger)
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// openJournal opens the reload journal. The game runs without one if it
// cannot be opened.
func openJournal(cfg config.HostConfig, logger *log.Logger) *storage.Store {
	if cfg.Journal == "" {
		return nil
	}
	store, err := storage.Open(cfg.Journal)
	if err != nil {
		logger.Warn("could not open reload journal", "path", cfg.Journal, "error", err)
		return nil
	}
	return store
}

// newHost loads the configured unit: a plugin artifact if a path is given,
// the builtin unit otherwise. Builtin units cannot change, so they are not
// watched.
func newHost(cfg config.HostConfig, logger *log.Logger, journal *storage.Store) (*host.Host, error) {
	var (
		loader host.Loader
		path   string
		watch  bool
	)
	if cfg.Unit.Path != "" {
		p, err := config.ExpandPath(cfg.Unit.Path)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, err
		}
		loader, path, watch = &host.PluginLoader{}, abs, cfg.Unit.Watch
	} else {
		loader, path = host.StaticLoader{}, cfg.Unit.Builtin
	}

	opts := []host.Option{
		host.WithWatch(watch),
		host.WithLogger(logger),
		host.WithFPS(flagShowFPS),
	}
	if journal != nil {
		opts = append(opts, host.WithJournal(journal))
	}
	return host.New(loader, path, opts...)
}
