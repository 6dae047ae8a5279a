package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound       = errors.New("storage: not found")
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// SlotStore is a durable key-value store of named text slots.
type SlotStore interface {
	Get(ctx context.Context, name string) (string, error)
	Put(ctx context.Context, name, value string) error
	Close() error
}

type Backend string

const (
	BackendSQLite Backend = "sqlite"
	BackendFile   Backend = "file"
	BackendRedis  Backend = "redis"
)

type Options struct {
	Backend       Backend
	SQLitePath    string
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// Open builds the slot store selected by opts.Backend.
func Open(ctx context.Context, opts Options) (SlotStore, error) {
	switch Backend(strings.ToLower(string(opts.Backend))) {
	case "", BackendSQLite:
		return OpenSQLite(opts.SQLitePath)
	case BackendFile:
		return NewFileStore(opts.Dir)
	case BackendRedis:
		return OpenRedis(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}
