package consultations

import (
	"context"
	"encoding/json"
)

type Repository interface {
	// GetByEntry returns the raw consultation document linked to entryID,
	// or nil when there is none.
	GetByEntry(ctx context.Context, userID, entryID string) (json.RawMessage, error)
}
