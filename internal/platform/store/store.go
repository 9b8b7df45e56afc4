// Package store provides a unified interface to optional storage backends
package store

import (
	"context"
	"errors"

	"clipscout/internal/platform/logger"
	"clipscout/internal/platform/store/pg"
)

// Store is the facade for optional backends
// zero value is safe but does nothing
type Store struct {
	// Log is the logger used by subclients
	Log logger.Logger

	// PG is the postgres sql seam, nil when disabled
	PG TxRunner
}

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag is a tiny interface to inspect command results
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Pinger is any seam that can report readiness
type Pinger interface{ Ping(context.Context) error }

// PGConfig configures the postgres backend
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32
	SlowMs   int
}

// Config selects and configures backends
type Config struct {
	PG PGConfig
}

// Option mutates the Store during Open
type Option func(*Store) error

// WithLogger sets the store logger
func WithLogger(l logger.Logger) Option {
	return func(s *Store) error { s.Log = l; return nil }
}

// Open constructs a Store with the requested backends
// backends not enabled in cfg remain nil on the Store
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}

	if cfg.PG.Enabled {
		client, err := pg.Open(ctx, pg.Config{
			URL:      cfg.PG.URL,
			MaxConns: cfg.PG.MaxConns,
			SlowMs:   cfg.PG.SlowMs,
		}, nil)
		if err != nil {
			return nil, err
		}
		s.PG = newPGAdapter(client, s)
	}

	return s, nil
}

// Guard verifies all configured seams the Store knows about
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("nil store")
	}
	if s.PG != nil {
		if p, ok := any(s.PG).(Pinger); ok {
			if err := p.Ping(ctx); err != nil {
				return err
			}
		}
	}
	return nil
}

// Close releases all configured backends
func (s *Store) Close(ctx context.Context) error {
	if s == nil {
		return nil
	}
	if c, ok := any(s.PG).(interface{ Close() error }); ok && s.PG != nil {
		return c.Close()
	}
	return nil
}
