package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"todo-service/core"
)

var (
	_ core.ListStore = (*DB)(nil)
	_ core.TaskStore = (*DB)(nil)
	_ core.Pinger    = (*DB)(nil)
)

type DB struct {
	log  *slog.Logger
	conn *sqlx.DB
}

// RetryPolicy controls how New waits for the database to come up.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// New connects to address, retrying according to p. It gives up early when ctx is done.
func New(ctx context.Context, log *slog.Logger, address string, p RetryPolicy) (*DB, error) {
	if p.Attempts < 1 {
		p.Attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= p.Attempts; attempt++ {
		log.Debug("connecting to db", "attempt", attempt, "max_attempts", p.Attempts)

		conn, err := sqlx.ConnectContext(ctx, "pgx", address)
		if err == nil {
			log.Info("db connection established")
			return &DB{log: log, conn: conn}, nil
		}
		lastErr = err
		log.Warn("db is not ready", "attempt", attempt, "error", err)

		if attempt == p.Attempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect to db: %w", ctx.Err())
		case <-time.After(p.Delay):
		}
	}

	log.Error("connection problem", "error", lastErr)
	return nil, fmt.Errorf("connect to db after %d attempts: %w", p.Attempts, lastErr)
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// withTx runs fn in a transaction and commits when fn returns nil.
// Stats reports the connection pool state.
func (db *DB) Stats() sql.DBStats {
	return db.conn.Stats()
}

func (db *DB) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.conn.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			db.log.Error("rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// pg helpers

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}
