package styling

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	chartstyle "chartsmith/internal/styling"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresStore persists styling as JSONB rows, one per chart or message.
// Partial saves read the stored value, apply the patch, and upsert.
type PostgresStore struct {
	db         *sql.DB
	schemaOnce sync.Once
	schemaErr  error
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("db is nil")
	}
	s.schemaOnce.Do(func() {
		_, s.schemaErr = s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS chart_stylings (
    record_kind TEXT NOT NULL,
    record_id TEXT NOT NULL,
    styling JSONB NOT NULL,
    updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
    PRIMARY KEY (record_kind, record_id)
);
`)
	})
	return s.schemaErr
}

func (s *PostgresStore) SaveChart(ctx context.Context, chartID string, p chartstyle.Patch) error {
	return s.save(ctx, "chart", chartID, p)
}

func (s *PostgresStore) SaveMessage(ctx context.Context, messageID string, p chartstyle.Patch) error {
	return s.save(ctx, "message", messageID, p)
}

func (s *PostgresStore) save(ctx context.Context, kind, id string, p chartstyle.Patch) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("%s id is required", kind)
	}

	cur, err := s.load(ctx, kind, id)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	cur.Apply(p)
	raw, err := json.Marshal(cur)
	if err != nil {
		return fmt.Errorf("marshal styling: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO chart_stylings (record_kind, record_id, styling, updated_at)
VALUES ($1, $2, $3, NOW())
ON CONFLICT (record_kind, record_id)
DO UPDATE SET styling = EXCLUDED.styling, updated_at = NOW()
`, kind, id, raw)
	return err
}

func (s *PostgresStore) DeleteChart(ctx context.Context, chartID string) error {
	if err := s.ensureSchema(ctx); err != nil {
		return err
	}
	id := strings.TrimSpace(chartID)
	if id == "" {
		return fmt.Errorf("chart id is required")
	}
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM chart_stylings WHERE record_kind = 'chart' AND record_id = $1`, id)
	return err
}

func (s *PostgresStore) Load(ctx context.Context, chartID string) (chartstyle.ChartStyling, error) {
	if err := s.ensureSchema(ctx); err != nil {
		return chartstyle.ChartStyling{}, err
	}
	return s.load(ctx, "chart", strings.TrimSpace(chartID))
}

func (s *PostgresStore) load(ctx context.Context, kind, id string) (chartstyle.ChartStyling, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT styling FROM chart_stylings WHERE record_kind = $1 AND record_id = $2`,
		kind, id,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return chartstyle.ChartStyling{}, ErrNotFound
	}
	if err != nil {
		return chartstyle.ChartStyling{}, err
	}
	var out chartstyle.ChartStyling
	if err := json.Unmarshal(raw, &out); err != nil {
		return chartstyle.ChartStyling{}, fmt.Errorf("decode styling: %w", err)
	}
	return out, nil
}
