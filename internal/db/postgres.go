package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// DefaultClientStateTable holds per-client key/value banner state.
const DefaultClientStateTable = "banner_client_state"

// Postgres wraps a postgres DB connection.
type Postgres struct {
	DB    *sql.DB
	Table string
}

const schemaSQL = `CREATE TABLE IF NOT EXISTS %s (
    client_id TEXT NOT NULL,
    key TEXT NOT NULL,
    value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (client_id, key)
);`

// InitPostgres opens a pooled, otel-instrumented connection and makes sure
// the client state table exists.
func InitPostgres(dsn string, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (*Postgres, error) {
	driverName, err := otelsql.Register("postgres",
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("register otelsql: %w", err)
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	p := &Postgres{DB: db, Table: DefaultClientStateTable}
	if err := p.EnsureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	zap.L().Info("Connected to Postgres with connection pooling",
		zap.Int("max_open_conns", maxOpenConns),
		zap.Int("max_idle_conns", maxIdleConns),
		zap.Duration("conn_max_lifetime", connMaxLifetime))
	return p, nil
}

// QuotedTable returns the table name safe for interpolation into SQL.
func (p *Postgres) QuotedTable() string {
	table := p.Table
	if table == "" {
		table = DefaultClientStateTable
	}
	return pq.QuoteIdentifier(table)
}

// EnsureSchema creates the client state table if missing.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.DB.ExecContext(ctx, fmt.Sprintf(schemaSQL, p.QuotedTable())); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Close terminates the Postgres connection.
func (p *Postgres) Close() {
	if p != nil && p.DB != nil {
		if err := p.DB.Close(); err != nil {
			zap.L().Error("postgres close", zap.Error(err))
		}
	}
}
