package periods

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cols = []string{"id", "user_id", "fecha", "hora_inicio", "hora_fin", "duracion_segundos", "etiquetas", "nota", "timestamp_creacion"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	start := date.Add(10 * time.Hour)
	end := start.Add(30 * time.Minute)
	note := "siesta"

	mock.ExpectQuery(`(?s)^INSERT INTO periodos_vacio_anotado .* VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\) RETURNING id`).
		WithArgs("u1", "2024-03-01", start, end, int64(1800), `["descanso"]`, "siesta").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "u1", date, start, end, int64(1800), []byte(`["descanso"]`), "siesta", time.Now()))

	got, err := repo.Create(context.Background(), &models.EmptyPeriod{
		UserID: "u1", Date: "2024-03-01", Start: start, End: end, DurationSeconds: 1800,
		Labels: models.StringList{"descanso"}, Note: &note,
	})
	require.NoError(t, err)
	assert.Equal(t, "p1", got.ID)
	assert.Equal(t, "2024-03-01", got.Date)
	require.NotNil(t, got.Note)
	assert.Equal(t, "siesta", *got.Note)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`INSERT INTO periodos_vacio_anotado`).WillReturnError(errors.New("check violation"))

	_, err := repo.Create(context.Background(), &models.EmptyPeriod{UserID: "u1", Date: "2024-03-01"})
	assert.ErrorContains(t, err, "check violation")
}

func TestList(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		where    string
		args     []driver.Value
	}{
		{"unbounded", "", "", `WHERE user_id = \$1 ORDER BY`, []driver.Value{"u1"}},
		{"from", "2024-03-01", "", `WHERE user_id = \$1 AND fecha >= \$2 ORDER BY`, []driver.Value{"u1", "2024-03-01"}},
		{"both", "2024-03-01", "2024-03-31", `WHERE user_id = \$1 AND fecha >= \$2 AND fecha <= \$3 ORDER BY fecha DESC, hora_inicio DESC$`, []driver.Value{"u1", "2024-03-01", "2024-03-31"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newRepoWithMock(t)
			date := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
			exp := mock.ExpectQuery(`(?s)FROM periodos_vacio_anotado ` + tt.where).WithArgs(tt.args...)
			exp.WillReturnRows(sqlmock.NewRows(cols).AddRow("p1", "u1", date, date, date.Add(time.Hour), int64(3600), nil, nil, date))

			got, err := repo.List(context.Background(), "u1", tt.from, tt.to)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "2024-03-02", got[0].Date)
			assert.Nil(t, got[0].Labels)
			assert.Nil(t, got[0].Note)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestList_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM periodos_vacio_anotado`).WithArgs("u1").WillReturnError(errors.New("boom"))

	_, err := repo.List(context.Background(), "u1", "", "")
	assert.ErrorContains(t, err, "failed to select empty periods")
}
