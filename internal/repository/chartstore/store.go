package chartstore

import (
	"context"
	"errors"
	"time"

	"chartsmith/internal/chart"
	"chartsmith/internal/styling"
)

// Record is a saved chart: the validated configuration, the dataset it
// runs against, and the styling snapshot bundled with the record.
type Record struct {
	ID        string                `json:"id"`
	DatasetID string                `json:"datasetId"`
	MessageID string                `json:"messageId,omitempty"`
	Config    chart.Config          `json:"config"`
	Styling   *styling.ChartStyling `json:"styling,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
	UpdatedAt time.Time             `json:"updatedAt"`
}

// Store persists chart records.
type Store interface {
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context) ([]Record, error)
	Delete(ctx context.Context, id string) error
}

var ErrNotFound = errors.New("chart not found")
