// Package consultations reads the I Ching consultations linked to entries.
// They are written by an external tool and only passed through on export.
package consultations

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/conciencia/internal/dbx"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByEntry(ctx context.Context, userID, entryID string) (json.RawMessage, error) {
	if _, err := uuid.Parse(entryID); err != nil {
		return nil, nil
	}

	query := `
		SELECT consulta FROM iching_consultas
		WHERE registro_id = $1 AND user_id = $2
	`
	var doc []byte
	if err := r.db.QueryRowContext(ctx, query, entryID, userID).Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return json.RawMessage(doc), nil
}
