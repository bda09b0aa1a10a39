package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	"go.uber.org/zap"

	"github.com/padraicbc/signupapp/config"
)

// ErrClosed is returned by DB after Close.
var ErrClosed = errors.New("db: handle closed")

// Opener opens the underlying database/sql pool for a DSN.
type Opener func(dsn string) (*sql.DB, error)

// Option configures a Handle.
type Option func(*Handle)

// WithOpener replaces the PostgreSQL opener, mainly for tests.
func WithOpener(open Opener) Option {
	return func(h *Handle) { h.open = open }
}

// WithLogger sets the logger used for connection events.
func WithLogger(log *zap.Logger) Option {
	return func(h *Handle) { h.log = log }
}

// Handle owns the process connection pool. The pool is built on the first
// call to DB and the same *bun.DB is returned on every call after that.
// A failed first construction is kept and returned to later callers.
type Handle struct {
	dsn   string
	debug bool
	open  Opener
	log   *zap.Logger

	once sync.Once
	mu   sync.Mutex
	db   *bun.DB
	err  error
}

// NewHandle prepares a Handle for the configured database. It does not
// connect.
func NewHandle(cfg *config.Config, opts ...Option) *Handle {
	h := &Handle{
		dsn:   cfg.PostgresDSN(),
		debug: cfg.Debug,
		open:  openPostgres,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func openPostgres(dsn string) (*sql.DB, error) {
	return sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn))), nil
}

// DB returns the shared pool, connecting on first use.
func (h *Handle) DB(ctx context.Context) (*bun.DB, error) {
	h.once.Do(func() {
		db, err := h.connect(ctx)
		h.mu.Lock()
		h.db, h.err = db, err
		h.mu.Unlock()
	})
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.db, h.err
}

func (h *Handle) connect(ctx context.Context) (*bun.DB, error) {
	sqldb, err := h.open(h.dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db := bun.NewDB(sqldb, pgdialect.New())
	if h.debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = sqldb.Close()
		h.log.Error("database unreachable", zap.Error(err))
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	h.log.Info("database pool ready")
	return db, nil
}

// Ping checks that the database answers.
func (h *Handle) Ping(ctx context.Context) error {
	db, err := h.DB(ctx)
	if err != nil {
		return err
	}
	return db.PingContext(ctx)
}

// Close releases the pool. Calls to DB after Close return ErrClosed.
func (h *Handle) Close() error {
	h.once.Do(func() {
		h.mu.Lock()
		h.err = ErrClosed
		h.mu.Unlock()
	})

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.db == nil {
		return nil
	}
	err := h.db.Close()
	h.db, h.err = nil, ErrClosed
	return err
}
