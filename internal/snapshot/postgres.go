package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"formwizard/api/internal/schema"
)

const snapshotTable = `
CREATE TABLE IF NOT EXISTS wizard_snapshot (
    id TEXT PRIMARY KEY,
    payload JSONB NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const snapshotRowID = "current"

// PostgresStore keeps the snapshot as a single upserted row.
type PostgresStore struct {
	db *sql.DB
}

// OpenPostgres connects, verifies the connection and ensures the snapshot
// table exists.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(5)
	db.SetMaxOpenConns(10)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.ExecContext(ctx, snapshotTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create snapshot table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// Save upserts the snapshot row with the full response map.
func (s *PostgresStore) Save(ctx context.Context, responses schema.Responses) error {
	data, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO wizard_snapshot (id, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()
	`, snapshotRowID, data)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Load reads the snapshot row. A missing row or an unparsable payload is
// reported as absent.
func (s *PostgresStore) Load(ctx context.Context) (schema.Responses, bool, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM wizard_snapshot WHERE id = $1`, snapshotRowID,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}

	var responses schema.Responses
	if err := json.Unmarshal(data, &responses); err != nil {
		log.Printf("snapshot: discarding unparsable stored data: %v", err)
		return nil, false, nil
	}
	return responses, true, nil
}

// Clear deletes the snapshot row.
func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM wizard_snapshot WHERE id = $1`, snapshotRowID); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
