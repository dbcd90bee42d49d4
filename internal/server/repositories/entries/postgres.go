// Package entries stores journal entries in registros_de_conciencia.
package entries

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/dbx"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// checkViolation is the PostgreSQL SQLSTATE for check_violation.
const checkViolation = "23514"

// dbError wraps err, reporting rejected column constraints as validation
// errors.
func dbError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == checkViolation {
		return fmt.Errorf("%w: %s", common.ErrorValidation, pgErr.ConstraintName)
	}
	return fmt.Errorf("db error: %w", err)
}

const columns = `id, user_id, descripcion, estado, timestamp_creacion, tiempo_inicio, tiempo_fin,
	foco_agentes, etiquetas, lugar_texto_simple, duracion_estimada_minutos, sensacion_kinestesica, prioridad`

// PostgresRepository implements Repository over a dbx.DBTX.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts e. The id is always assigned by the database; a zero
// CreatedAt is replaced by now().
func (r *PostgresRepository) Create(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	query := `
		INSERT INTO registros_de_conciencia (user_id, descripcion, estado, timestamp_creacion, tiempo_inicio, tiempo_fin,
			foco_agentes, etiquetas, lugar_texto_simple, duracion_estimada_minutos, sensacion_kinestesica, prioridad)
		VALUES ($1, $2, $3, COALESCE($4, now()), $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + columns

	var createdAt any
	if !e.CreatedAt.IsZero() {
		createdAt = e.CreatedAt
	}

	row := r.db.QueryRowContext(ctx, query,
		e.UserID, e.Description, string(e.State), createdAt, e.Start, e.End,
		e.FocusAgents, e.Labels, e.Location, e.EstimatedMinutes, e.Sensation, e.Priority)

	created, err := scanEntry(row)
	if err != nil {
		return nil, dbError(err)
	}
	return created, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID, id string) (*models.Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query := `SELECT ` + columns + `
		FROM registros_de_conciencia
		WHERE id = $1 AND user_id = $2`

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return e, nil
}

func (r *PostgresRepository) List(ctx context.Context, userID string, f Filter) ([]*models.Entry, error) {
	q := newQuery(userID)
	q.states(f.States)
	q.cond("tiempo_inicio >= %s", f.StartFrom)
	q.cond("tiempo_inicio < %s", f.StartTo)
	q.cond("timestamp_creacion >= %s", f.CreatedFrom)
	q.cond("timestamp_creacion < %s", f.CreatedTo)

	query := `SELECT ` + columns + `
		FROM registros_de_conciencia
		WHERE ` + strings.Join(q.where, " AND ") + `
		ORDER BY ` + orderBy(f.Order)
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", f.Limit)
	}

	return r.query(ctx, query, q.args...)
}

func (r *PostgresRepository) ListIntersecting(ctx context.Context, userID string, from, to time.Time, states []models.State) ([]*models.Entry, error) {
	q := newQuery(userID)
	q.states(states)
	q.cond("tiempo_inicio < %s", &to)
	q.cond("COALESCE(tiempo_fin, tiempo_inicio) > %s", &from)

	query := `SELECT ` + columns + `
		FROM registros_de_conciencia
		WHERE ` + strings.Join(q.where, " AND ") + `
		ORDER BY tiempo_inicio ASC`

	return r.query(ctx, query, q.args...)
}

// UpdateState moves the entry into state. Closing states stamp tiempo_fin
// with now unless it is already set; InProgress stamps an unset
// tiempo_inicio the same way. A stamp never crosses the other bound: closing
// an intention planned for later ends it at its own start.
func (r *PostgresRepository) UpdateState(ctx context.Context, userID, id string, state models.State, now time.Time) (*models.Entry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	set := "estado = $1"
	switch {
	case state.Closing():
		set += ", tiempo_fin = GREATEST(COALESCE(tiempo_fin, $4), tiempo_inicio)"
	case state == models.StateInProgress:
		set += ", tiempo_inicio = LEAST(COALESCE(tiempo_inicio, $4), tiempo_fin)"
	}

	args := []any{string(state), id, userID}
	if state.Closing() || state == models.StateInProgress {
		args = append(args, now)
	}

	query := `UPDATE registros_de_conciencia SET ` + set + `
		WHERE id = $2 AND user_id = $3
		RETURNING ` + columns

	e, err := scanEntry(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbError(err)
	}
	return e, nil
}

func (r *PostgresRepository) query(ctx context.Context, query string, args ...any) ([]*models.Entry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select entries: %w", err)
	}
	defer rows.Close()

	var result []*models.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanEntry(row dbx.RowScanner) (*models.Entry, error) {
	var (
		e     models.Entry
		state string
	)
	err := row.Scan(&e.ID, &e.UserID, &e.Description, &state, &e.CreatedAt, &e.Start, &e.End,
		&e.FocusAgents, &e.Labels, &e.Location, &e.EstimatedMinutes, &e.Sensation, &e.Priority)
	if err != nil {
		return nil, err
	}
	e.State = models.State(state)
	return &e, nil
}

func orderBy(o Order) string {
	switch o {
	case OrderChronological:
		return "tiempo_inicio ASC NULLS LAST, timestamp_creacion ASC"
	case OrderPriority:
		return "prioridad DESC NULLS LAST, tiempo_inicio ASC NULLS LAST"
	case OrderCreatedDesc:
		return "timestamp_creacion DESC"
	default:
		return "tiempo_inicio DESC NULLS LAST"
	}
}

// whereBuilder accumulates numbered placeholders after $1 = user_id.
type whereBuilder struct {
	where []string
	args  []any
}

func newQuery(userID string) *whereBuilder {
	return &whereBuilder{where: []string{"user_id = $1"}, args: []any{userID}}
}

func (b *whereBuilder) next(v any) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) cond(format string, t *time.Time) {
	if t == nil {
		return
	}
	b.where = append(b.where, fmt.Sprintf(format, b.next(*t)))
}

func (b *whereBuilder) states(states []models.State) {
	if len(states) == 0 {
		return
	}
	ph := make([]string, len(states))
	for i, s := range states {
		ph[i] = b.next(string(s))
	}
	b.where = append(b.where, "estado IN ("+strings.Join(ph, ", ")+")")
}
