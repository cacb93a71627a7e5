package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gocraft/dbr/v2"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type Store struct {
	conn   *dbr.Connection
	sess   *dbr.Session
	logger *zap.Logger
}

func New(dsn string, logger *zap.Logger) (*Store, error) {
	conn, err := dbr.Open("postgres", dsn, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// set up connection pool
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("successfully connected to PostgreSQL")

	return &Store{
		conn:   conn,
		sess:   conn.NewSession(nil),
		logger: logger,
	}, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              BIGINT PRIMARY KEY,
		username        TEXT,
		first_name      TEXT,
		last_name       TEXT,
		api_token       TEXT,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		last_check      TIMESTAMPTZ,
		check_enabled   BOOLEAN NOT NULL DEFAULT FALSE,
		notify_interval INTEGER NOT NULL DEFAULT 60
	)`,
	`CREATE TABLE IF NOT EXISTS user_seen_notifications (
		user_id         BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		notification_id BIGINT NOT NULL,
		seen_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (user_id, notification_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_check ON users (check_enabled) WHERE api_token IS NOT NULL`,
}

// Migrate creates the tables the bot needs. Safe to run on every start.
func (s *Store) Migrate(ctx context.Context) error {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin migration: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	s.logger.Info("database schema is up to date")
	return nil
}

func (s *Store) Close() error {
	return s.conn.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

func (s *Store) BeginTx(ctx context.Context) (*dbr.Tx, error) {
	return s.sess.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelReadCommitted,
	})
}
