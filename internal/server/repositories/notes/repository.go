package notes

import (
	"context"

	"github.com/dmitrijs2005/conciencia/internal/models"
)

type Repository interface {
	Create(ctx context.Context, n *models.Note) (*models.Note, error)
	// ListByEntry returns the entry's notes oldest first.
	ListByEntry(ctx context.Context, userID, entryID string) ([]*models.Note, error)
	// Exists reports whether the entry already has a note with the same text
	// and author.
	Exists(ctx context.Context, userID, entryID, text string, author models.Author) (bool, error)
}
