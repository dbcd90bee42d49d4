package periods

import (
	"context"

	"github.com/dmitrijs2005/conciencia/internal/models"
)

type Repository interface {
	Create(ctx context.Context, p *models.EmptyPeriod) (*models.EmptyPeriod, error)
	// List returns periods whose date falls within [from, to] (inclusive,
	// YYYY-MM-DD, either may be empty), newest first.
	List(ctx context.Context, userID, from, to string) ([]*models.EmptyPeriod, error)
}
