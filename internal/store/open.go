package store

import (
	"context"
	"fmt"
	"log/slog"
)

// Supported drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverBadger   = "badger"
	DriverPostgres = "postgres"
)

// Options selects and configures a Store backend.
type Options struct {
	Driver     string
	Path       string // sqlite file or badger directory
	DSN        string // postgres
	SyncWrites bool   // badger
	Logger     *slog.Logger
}

// Open returns the Store selected by opts.Driver.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite, "":
		return NewSQLite(opts.Path)
	case DriverBadger:
		return NewBadger(BadgerConfig{
			Path:       opts.Path,
			SyncWrites: opts.SyncWrites,
			Logger:     opts.Logger,
		})
	case DriverPostgres:
		return NewPostgres(ctx, opts.DSN)
	default:
		return nil, fmt.Errorf("unknown store driver %q", opts.Driver)
	}
}
