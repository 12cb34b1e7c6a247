package styling

import (
	"context"
	"errors"

	chartstyle "chartsmith/internal/styling"
)

// Store persists chart appearance for the two record kinds that carry
// it: standalone chart records and chat-message records. Saves are
// partial: a patch merges over whatever is stored.
type Store interface {
	SaveChart(ctx context.Context, chartID string, p chartstyle.Patch) error
	SaveMessage(ctx context.Context, messageID string, p chartstyle.Patch) error
	Load(ctx context.Context, chartID string) (chartstyle.ChartStyling, error)
	DeleteChart(ctx context.Context, chartID string) error
}

var ErrNotFound = errors.New("styling not found")
