// Package periods stores annotated empty periods.
package periods

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/dbx"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/dmitrijs2005/conciencia/internal/timex"
)

const columns = `id, user_id, fecha, hora_inicio, hora_fin, duracion_segundos, etiquetas, nota, timestamp_creacion`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, p *models.EmptyPeriod) (*models.EmptyPeriod, error) {
	query := `
		INSERT INTO periodos_vacio_anotado (user_id, fecha, hora_inicio, hora_fin, duracion_segundos, etiquetas, nota)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + columns

	created, err := scanPeriod(r.db.QueryRowContext(ctx, query,
		p.UserID, p.Date, p.Start, p.End, p.DurationSeconds, p.Labels, p.Note))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID, from, to string) ([]*models.EmptyPeriod, error) {
	query := `SELECT ` + columns + `
		FROM periodos_vacio_anotado
		WHERE user_id = $1`
	args := []any{userID}
	if from != "" {
		args = append(args, from)
		query += fmt.Sprintf(" AND fecha >= $%d", len(args))
	}
	if to != "" {
		args = append(args, to)
		query += fmt.Sprintf(" AND fecha <= $%d", len(args))
	}
	query += ` ORDER BY fecha DESC, hora_inicio DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select empty periods: %w", err)
	}
	defer rows.Close()

	var result []*models.EmptyPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// scanPeriod reads fecha as a DATE, which the driver returns as a
// midnight timestamp.
func scanPeriod(row dbx.RowScanner) (*models.EmptyPeriod, error) {
	var (
		p    models.EmptyPeriod
		date time.Time
	)
	err := row.Scan(&p.ID, &p.UserID, &date, &p.Start, &p.End, &p.DurationSeconds, &p.Labels, &p.Note, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	p.Date = date.Format(timex.DateLayout)
	return &p, nil
}
