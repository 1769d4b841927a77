package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Bhagesh4604/TimeVault1/internal/vaults/domain"
)

// PostgresStore persists vault records in an append-only table. The position
// column is a sequence, so insertion order is preserved for GetAll.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetAll(ctx context.Context, userID string) ([]Record, error) {
	const q = `
SELECT record
FROM vault_records
WHERE user_id = $1
ORDER BY position ASC;
`
	rows, err := s.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	defer rows.Close()

	out := make([]Record, 0, 16)
	for rows.Next() {
		var rec []byte
		if err := rows.Scan(&rec); err != nil {
			return nil, err
		}
		out = append(out, Record(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PostgresStore) Append(ctx context.Context, userID string, rec Record) error {
	const q = `
INSERT INTO vault_records (user_id, record)
VALUES ($1, $2);
`
	if _, err := s.db.ExecContext(ctx, q, userID, []byte(rec)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
