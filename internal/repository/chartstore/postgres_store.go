package chartstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore persists chart records with an LRU cache in front of
// reads; chart views load the same record repeatedly while editing.
type PostgresStore struct {
	db         *sql.DB
	cache      *lru.Cache[string, Record]
	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(db *sql.DB) (*PostgresStore, error) {
	cache, err := lru.New[string, Record](1024)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db, cache: cache}, nil
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS charts (
    id TEXT PRIMARY KEY,
    dataset_id TEXT NOT NULL,
    message_id TEXT NOT NULL DEFAULT '',
    config JSONB NOT NULL,
    styling JSONB,
    created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_charts_dataset_id ON charts(dataset_id);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) Put(ctx context.Context, rec Record) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(rec.ID)
	if id == "" {
		return fmt.Errorf("chart id is required")
	}
	cfg, err := json.Marshal(rec.Config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var sty []byte
	if rec.Styling != nil {
		if sty, err = json.Marshal(rec.Styling); err != nil {
			return fmt.Errorf("marshal styling: %w", err)
		}
	}
	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	_, err = s.db.ExecContext(ctx, `
INSERT INTO charts (id, dataset_id, message_id, config, styling, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id)
DO UPDATE SET dataset_id = EXCLUDED.dataset_id,
              message_id = EXCLUDED.message_id,
              config = EXCLUDED.config,
              styling = EXCLUDED.styling,
              updated_at = EXCLUDED.updated_at
`, id, rec.DatasetID, rec.MessageID, cfg, sty, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return err
	}
	rec.ID = id
	s.cache.Add(id, rec)
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (Record, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return Record{}, err
	}
	id = strings.TrimSpace(id)
	if rec, ok := s.cache.Get(id); ok {
		return rec, nil
	}
	rec, err := s.scanOne(s.db.QueryRowContext(ctx,
		`SELECT id, dataset_id, message_id, config, styling, created_at, updated_at FROM charts WHERE id = $1`, id))
	if err != nil {
		return Record{}, err
	}
	s.cache.Add(id, rec)
	return rec, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]Record, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dataset_id, message_id, config, styling, created_at, updated_at FROM charts ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Record
	for rows.Next() {
		rec, err := s.scanOne(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	s.cache.Remove(id)
	_, err := s.db.ExecContext(ctx, `DELETE FROM charts WHERE id = $1`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (s *PostgresStore) scanOne(row rowScanner) (Record, error) {
	var rec Record
	var cfg, sty []byte
	err := row.Scan(&rec.ID, &rec.DatasetID, &rec.MessageID, &cfg, &sty, &rec.CreatedAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	if err := json.Unmarshal(cfg, &rec.Config); err != nil {
		return Record{}, fmt.Errorf("decode config: %w", err)
	}
	if len(sty) > 0 {
		if err := json.Unmarshal(sty, &rec.Styling); err != nil {
			return Record{}, fmt.Errorf("decode styling: %w", err)
		}
	}
	return rec, nil
}
