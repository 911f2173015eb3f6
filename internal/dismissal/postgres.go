package dismissal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/patrickwarner/openinapp/internal/banner"
	"github.com/patrickwarner/openinapp/internal/db"
)

// PostgresBackend stores client state in the banner_client_state table.
type PostgresBackend struct {
	pg *db.Postgres
}

// NewPostgresBackend wraps an initialized Postgres connection.
func NewPostgresBackend(pg *db.Postgres) *PostgresBackend {
	return &PostgresBackend{pg: pg}
}

// For returns the store for clientID.
func (b *PostgresBackend) For(clientID string) banner.KeyValueStore {
	return &postgresStore{pg: b.pg, clientID: clientID}
}

type postgresStore struct {
	pg       *db.Postgres
	clientID string
}

func (s *postgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s.pg == nil || s.pg.DB == nil {
		return "", false, ErrNilClient
	}
	q := fmt.Sprintf(`SELECT value FROM %s WHERE client_id=$1 AND key=$2`, s.pg.QuotedTable())
	var v string
	err := s.pg.DB.QueryRowContext(ctx, q, s.clientID, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("postgres get: %w", err)
	}
	return v, true, nil
}

func (s *postgresStore) Set(ctx context.Context, key, value string) error {
	if s.pg == nil || s.pg.DB == nil {
		return ErrNilClient
	}
	q := fmt.Sprintf(`INSERT INTO %s (client_id, key, value, updated_at) VALUES ($1,$2,$3,now())
ON CONFLICT (client_id, key) DO UPDATE SET value=EXCLUDED.value, updated_at=now()`, s.pg.QuotedTable())
	if _, err := s.pg.DB.ExecContext(ctx, q, s.clientID, key, value); err != nil {
		return fmt.Errorf("postgres set: %w", err)
	}
	return nil
}
