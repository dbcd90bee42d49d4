// Package notes stores the immutable notes attached to entries.
package notes

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/conciencia/internal/dbx"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/google/uuid"
)

const columns = `id, registro_id, user_id, texto, autor, privacidad, timestamp_creacion, tipo_nota`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts n. A zero CreatedAt is replaced by now().
func (r *PostgresRepository) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	query := `
		INSERT INTO notas (registro_id, user_id, texto, autor, privacidad, timestamp_creacion, tipo_nota)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()), $7)
		RETURNING ` + columns

	var createdAt any
	if !n.CreatedAt.IsZero() {
		createdAt = n.CreatedAt
	}

	created, err := scanNote(r.db.QueryRowContext(ctx, query,
		n.EntryID, n.UserID, n.Text, string(n.Author), string(n.Privacy), createdAt, string(n.Kind)))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) ListByEntry(ctx context.Context, userID, entryID string) ([]*models.Note, error) {
	if _, err := uuid.Parse(entryID); err != nil {
		return nil, nil
	}

	query := `SELECT ` + columns + `
		FROM notas
		WHERE registro_id = $1 AND user_id = $2
		ORDER BY timestamp_creacion ASC`

	rows, err := r.db.QueryContext(ctx, query, entryID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, entryID, text string, author models.Author) (bool, error) {
	if _, err := uuid.Parse(entryID); err != nil {
		return false, nil
	}

	query := `
		SELECT EXISTS (
			SELECT 1 FROM notas
			WHERE registro_id = $1 AND user_id = $2 AND texto = $3 AND autor = $4
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, entryID, userID, text, string(author)).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func scanNote(row dbx.RowScanner) (*models.Note, error) {
	var (
		n                     models.Note
		author, privacy, kind string
	)
	if err := row.Scan(&n.ID, &n.EntryID, &n.UserID, &n.Text, &author, &privacy, &n.CreatedAt, &kind); err != nil {
		return nil, err
	}
	n.Author = models.Author(author)
	n.Privacy = models.Privacy(privacy)
	n.Kind = models.NoteKind(kind)
	return &n, nil
}
