package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/fixtrack/repair-shop-api/pkg/config"
)

// Opener establishes a database handle from configuration. It is a field on
// DB so tests can substitute a fake without a real server.
type Opener func(cfg config.DatabaseConfig) (*sqlx.DB, error)

// QueryObserver receives per-query timings. Satisfied by the metrics service.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// DB owns the single database handle and its reconnect policy. Every
// repository query goes through its execution methods: the handle is
// established lazily on first use, and a failed call re-opens the handle
// once and retries exactly once before propagating the error.
type DB struct {
	cfg     config.DatabaseConfig
	log     *zap.Logger
	open    Opener
	metrics QueryObserver

	mu   sync.Mutex
	conn *sqlx.DB
}

// New constructs the connection manager. The handle is not opened yet;
// call Connect at startup or let the first query establish it.
func New(cfg config.DatabaseConfig, log *zap.Logger) *DB {
	if log == nil {
		log = zap.NewNop()
	}
	return &DB{cfg: cfg, log: log, open: openPostgres}
}

// WithOpener overrides how handles are established. Used by tests.
func (d *DB) WithOpener(open Opener) *DB {
	d.open = open
	return d
}

// WithMetrics attaches a query duration observer.
func (d *DB) WithMetrics(metrics QueryObserver) *DB {
	d.metrics = metrics
	return d
}

func openPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Connect performs the startup connection attempt. On failure the
// configured policy decides: exit propagates the error so main can abort;
// retry logs, leaves the process running, and keeps re-attempting in the
// background until the context is cancelled or a handle is established.
// Queries issued before a handle exists connect lazily on their own.
func (d *DB) Connect(ctx context.Context) error {
	if err := d.establish(); err != nil {
		if d.cfg.OnConnectFailure == config.FailurePolicyExit {
			return err
		}
		d.log.Warn("database unavailable, retrying in background",
			zap.Error(err),
			zap.Duration("interval", d.cfg.RetryInterval),
		)
		go d.retryLoop(ctx)
	}
	return nil
}

func (d *DB) retryLoop(ctx context.Context) {
	ticker := time.NewTicker(d.cfg.RetryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := d.establish(); err != nil {
				d.log.Warn("database retry failed", zap.Error(err))
				continue
			}
			return
		}
	}
}

// establish opens a fresh handle, replacing any existing one.
func (d *DB) establish() error {
	d.log.Info("connecting to database",
		zap.String("host", d.cfg.Host),
		zap.Int("port", d.cfg.Port),
		zap.String("database", d.cfg.Name),
	)

	conn, err := d.open(d.cfg)
	if err != nil {
		d.log.Error("database connection failed", zap.Error(err))
		return err
	}

	d.mu.Lock()
	old := d.conn
	d.conn = conn
	d.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}

	d.log.Info("database connected")
	return nil
}

func (d *DB) handle() (*sqlx.DB, error) {
	d.mu.Lock()
	conn := d.conn
	d.mu.Unlock()
	if conn != nil {
		return conn, nil
	}
	if err := d.establish(); err != nil {
		return nil, err
	}
	d.mu.Lock()
	conn = d.conn
	d.mu.Unlock()
	return conn, nil
}

// retryable reports whether a failed call should trigger the single
// reconnect-and-retry. Empty result sets and caller cancellation are
// results, not connection failures.
func retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	return true
}

// GetContext runs a single-row query into dest, reconnecting once on failure.
func (d *DB) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return d.execute(ctx, query, func(conn *sqlx.DB) error {
		return conn.GetContext(ctx, dest, query, args...)
	})
}

// SelectContext runs a multi-row query into dest, reconnecting once on failure.
func (d *DB) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return d.execute(ctx, query, func(conn *sqlx.DB) error {
		return conn.SelectContext(ctx, dest, query, args...)
	})
}

// ExecContext runs a statement, reconnecting once on failure.
func (d *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	var result sql.Result
	err := d.execute(ctx, query, func(conn *sqlx.DB) error {
		var execErr error
		result, execErr = conn.ExecContext(ctx, query, args...)
		return execErr
	})
	return result, err
}

func (d *DB) execute(ctx context.Context, query string, call func(conn *sqlx.DB) error) error {
	start := time.Now()
	defer func() {
		if d.metrics != nil {
			d.metrics.ObserveDBQuery(queryLabel(query), time.Since(start))
		}
	}()

	conn, err := d.handle()
	if err != nil {
		return err
	}

	err = call(conn)
	if !retryable(err) {
		return err
	}

	d.log.Warn("query failed, reconnecting", zap.Error(err))
	if rerr := d.establish(); rerr != nil {
		return err
	}

	d.mu.Lock()
	conn = d.conn
	d.mu.Unlock()
	return call(conn)
}

// Ping verifies the handle, used by the readiness endpoint.
func (d *DB) Ping(ctx context.Context) error {
	conn, err := d.handle()
	if err != nil {
		return err
	}
	return conn.PingContext(ctx)
}

// Close releases the underlying handle.
func (d *DB) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.conn == nil {
		return nil
	}
	err := d.conn.Close()
	d.conn = nil
	return err
}

// queryLabel reduces a SQL statement to its leading verb for metric labels.
func queryLabel(query string) string {
	fields := make([]rune, 0, 8)
	for _, r := range query {
		if r == ' ' || r == '\n' || r == '\t' {
			if len(fields) > 0 {
				break
			}
			continue
		}
		fields = append(fields, r)
	}
	return string(fields)
}
