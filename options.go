package aimemo

import (
	"log/slog"

	"github.com/rcliao/aimemo/internal/config"
	"github.com/rcliao/aimemo/internal/store"
)

// Option configures a Memo at construction time.
type Option func(*Memo)

// WithConfig replaces the environment-derived configuration.
func WithConfig(cfg *config.Config) Option {
	return func(m *Memo) {
		if cfg != nil {
			m.cfg = cfg
		}
	}
}

// WithConfigFile loads configuration from a JSON or YAML file. A load
// failure surfaces as the error from New.
func WithConfigFile(path string) Option {
	return func(m *Memo) {
		cfg, err := config.LoadFile(path)
		if err != nil {
			m.cfgErr = err
			return
		}
		m.cfg = cfg
	}
}

// WithStore supplies a storage backend. The caller keeps ownership and is
// responsible for closing it.
func WithStore(s store.Store) Option {
	return func(m *Memo) { m.store = s }
}

// WithNamespace scopes the Memo to a namespace (default "default").
func WithNamespace(ns string) Option {
	return func(m *Memo) {
		if ns != "" {
			m.namespace = ns
		}
	}
}

// WithLogger sets the structured logger (default slog.Default).
func WithLogger(l *slog.Logger) Option {
	return func(m *Memo) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithExtractor swaps the entity extractor.
func WithExtractor(e Extractor) Option {
	return func(m *Memo) {
		if e != nil {
			m.extractor = e
		}
	}
}

// WithCategorizer swaps the categorizer.
func WithCategorizer(c Categorizer) Option {
	return func(m *Memo) {
		if c != nil {
			m.categorizer = c
		}
	}
}
