package entries

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entryID = "11111111-1111-1111-1111-111111111111"

var cols = []string{"id", "user_id", "descripcion", "estado", "timestamp_creacion", "tiempo_inicio", "tiempo_fin",
	"foco_agentes", "etiquetas", "lugar_texto_simple", "duracion_estimada_minutos", "sensacion_kinestesica", "prioridad"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func sampleRow(created, start time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(cols).AddRow(
		entryID, "u1", "leer", "Realizado", created, start, nil,
		[]byte(`["curiosidad"]`), []byte(`["libro"]`), "casa", int64(30), nil, nil)
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	start := created.Add(time.Hour)
	loc := "casa"
	mins := 30

	mock.ExpectQuery(`(?s)^INSERT INTO registros_de_conciencia .* VALUES \(\$1, \$2, \$3, COALESCE\(\$4, now\(\)\), .*\$12\) RETURNING id, user_id`).
		WithArgs("u1", "leer", "Realizado", nil, start, nil,
			`["curiosidad"]`, `["libro"]`, "casa", int64(30), nil, nil).
		WillReturnRows(sampleRow(created, start))

	got, err := repo.Create(context.Background(), &models.Entry{
		UserID: "u1", Description: "leer", State: models.StateDone, Start: &start,
		FocusAgents: models.StringList{"curiosidad"}, Labels: models.StringList{"libro"},
		Location: &loc, EstimatedMinutes: &mins,
	})
	require.NoError(t, err)
	assert.Equal(t, entryID, got.ID)
	assert.Equal(t, models.StateDone, got.State)
	assert.Equal(t, created, got.CreatedAt)
	require.NotNil(t, got.Start)
	assert.True(t, got.Start.Equal(start))
	assert.Nil(t, got.End)
	assert.Equal(t, models.StringList{"libro"}, got.Labels)
	require.NotNil(t, got.EstimatedMinutes)
	assert.Equal(t, 30, *got.EstimatedMinutes)
	assert.Nil(t, got.Priority)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_KeepsImportedCreationTime(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO registros_de_conciencia`).
		WithArgs("u1", "x", "Planificado", created, nil, nil, nil, nil, nil, nil, nil, nil).
		WillReturnError(errors.New("db down"))

	_, err := repo.Create(context.Background(), &models.Entry{UserID: "u1", Description: "x", State: models.StatePlanned, CreatedAt: created})
	assert.ErrorContains(t, err, "db error: db down")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	q := `(?s)^SELECT .* FROM registros_de_conciencia WHERE id = \$1 AND user_id = \$2$`

	t.Run("found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		now := time.Now()
		mock.ExpectQuery(q).WithArgs(entryID, "u1").WillReturnRows(sampleRow(now, now))

		e, err := repo.GetByID(context.Background(), "u1", entryID)
		require.NoError(t, err)
		assert.Equal(t, "leer", e.Description)
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(entryID, "u1").WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByID(context.Background(), "u1", entryID)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})

	t.Run("malformed id never reaches the database", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)

		_, err := repo.GetByID(context.Background(), "u1", "A")
		assert.ErrorIs(t, err, common.ErrorNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("db error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).WithArgs(entryID, "u1").WillReturnError(errors.New("conn reset"))

		_, err := repo.GetByID(context.Background(), "u1", entryID)
		require.Error(t, err)
		assert.False(t, errors.Is(err, common.ErrorNotFound))
	})
}

func TestList(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	tests := []struct {
		name  string
		f     Filter
		query string
		args  []driver.Value
	}{
		{
			name:  "done history",
			f:     Filter{States: []models.State{models.StateDone}},
			query: `WHERE user_id = \$1 AND estado IN \(\$2\) ORDER BY tiempo_inicio DESC NULLS LAST$`,
			args:  []driver.Value{"u1", "Realizado"},
		},
		{
			name:  "intentions by priority",
			f:     Filter{States: []models.State{models.StatePlanned}, Order: OrderPriority},
			query: `ORDER BY prioridad DESC NULLS LAST, tiempo_inicio ASC NULLS LAST$`,
			args:  []driver.Value{"u1", "Planificado"},
		},
		{
			name:  "chronological",
			f:     Filter{Order: OrderChronological, Limit: 5},
			query: `WHERE user_id = \$1 ORDER BY tiempo_inicio ASC NULLS LAST, timestamp_creacion ASC LIMIT 5$`,
			args:  []driver.Value{"u1"},
		},
		{
			name: "ranges",
			f: Filter{
				States:      []models.State{models.StateDone, models.StatePlanned},
				StartFrom:   &from,
				CreatedFrom: &from, CreatedTo: &to,
				Order: OrderCreatedDesc,
			},
			query: `WHERE user_id = \$1 AND estado IN \(\$2, \$3\) AND tiempo_inicio >= \$4 AND timestamp_creacion >= \$5 AND timestamp_creacion < \$6 ORDER BY timestamp_creacion DESC$`,
			args:  []driver.Value{"u1", "Realizado", "Planificado", from, from, to},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			now := time.Now()
			mock.ExpectQuery(`(?s)^SELECT .* FROM registros_de_conciencia ` + tt.query).
				WithArgs(tt.args...).
				WillReturnRows(sampleRow(now, now))

			got, err := repo.List(context.Background(), "u1", tt.f)
			require.NoError(t, err)
			assert.Len(t, got, 1)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestList_Errors(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`SELECT`).WithArgs("u1").WillReturnError(errors.New("boom"))
	_, err := repo.List(context.Background(), "u1", Filter{})
	assert.ErrorContains(t, err, "failed to select entries")

	mock.ExpectQuery(`SELECT`).WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(entryID, "u1", "x", "Realizado", time.Now(), nil, nil, []byte("{bad"), nil, nil, nil, nil, nil))
	_, err = repo.List(context.Background(), "u1", Filter{})
	assert.Error(t, err)
}

func TestListIntersecting(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery(`(?s)WHERE user_id = \$1 AND estado IN \(\$2, \$3\) AND tiempo_inicio < \$4 AND COALESCE\(tiempo_fin, tiempo_inicio\) > \$5 ORDER BY tiempo_inicio ASC$`).
		WithArgs("u1", "Realizado", "Planificado", to, from).
		WillReturnRows(sqlmock.NewRows(cols))

	got, err := repo.ListIntersecting(context.Background(), "u1", from, to, []models.State{models.StateDone, models.StatePlanned})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateState(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("closing state stamps end", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SET estado = $1, tiempo_fin = GREATEST(COALESCE(tiempo_fin, $4), tiempo_inicio) WHERE id = $2 AND user_id = $3 RETURNING`)).
			WithArgs("Adaptado / Saltado", entryID, "u1", now).
			WillReturnRows(sampleRow(now, now))

		_, err := repo.UpdateState(context.Background(), "u1", entryID, models.StateSkipped, now)
		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("in progress stamps start", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SET estado = $1, tiempo_inicio = LEAST(COALESCE(tiempo_inicio, $4), tiempo_fin) WHERE`)).
			WithArgs("En Progreso", entryID, "u1", now).
			WillReturnRows(sampleRow(now, now))

		_, err := repo.UpdateState(context.Background(), "u1", entryID, models.StateInProgress, now)
		require.NoError(t, err)
	})

	t.Run("planned leaves times alone", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`SET estado = $1 WHERE id = $2 AND user_id = $3`)).
			WithArgs("Planificado", entryID, "u1").
			WillReturnRows(sampleRow(now, now))

		_, err := repo.UpdateState(context.Background(), "u1", entryID, models.StatePlanned, now)
		require.NoError(t, err)
	})

	t.Run("closing a future intention ends it at its start", func(t *testing.T) {
		tomorrow := now.Add(21 * time.Hour)
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(regexp.QuoteMeta(`GREATEST(COALESCE(tiempo_fin, $4), tiempo_inicio)`)).
			WithArgs("Adaptado / Saltado", entryID, "u1", now).
			WillReturnRows(sqlmock.NewRows(cols).AddRow(
				entryID, "u1", "leer", "Adaptado / Saltado", now, tomorrow, tomorrow,
				nil, nil, nil, nil, nil, nil))

		e, err := repo.UpdateState(context.Background(), "u1", entryID, models.StateSkipped, now)
		require.NoError(t, err)
		require.NotNil(t, e.End)
		assert.True(t, e.End.Equal(*e.Start))
	})

	t.Run("check violation is a validation error", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`UPDATE registros_de_conciencia`).
			WithArgs("Realizado", entryID, "u1", now).
			WillReturnError(&pgconn.PgError{Code: "23514", ConstraintName: "registros_de_conciencia_check"})

		_, err := repo.UpdateState(context.Background(), "u1", entryID, models.StateDone, now)
		require.ErrorIs(t, err, common.ErrorValidation)
		assert.ErrorContains(t, err, "registros_de_conciencia_check")
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(`UPDATE registros_de_conciencia`).
			WithArgs("Realizado", entryID, "u1", now).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.UpdateState(context.Background(), "u1", entryID, models.StateDone, now)
		assert.ErrorIs(t, err, common.ErrorNotFound)

		_, err = repo.UpdateState(context.Background(), "u1", "nope", models.StateDone, now)
		assert.ErrorIs(t, err, common.ErrorNotFound)
	})
}
