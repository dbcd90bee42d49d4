package notes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entryID = "22222222-2222-2222-2222-222222222222"

var cols = []string{"id", "registro_id", "user_id", "texto", "autor", "privacidad", "timestamp_creacion", "tipo_nota"}

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresRepository(db), mock
}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	now := time.Now()

	mock.ExpectQuery(`(?s)^INSERT INTO notas .* VALUES \(\$1, \$2, \$3, \$4, \$5, COALESCE\(\$6, now\(\)\), \$7\) RETURNING id`).
		WithArgs(entryID, "u1", "hola", "Mentor", "Privada", nil, "Retrospectiva").
		WillReturnRows(sqlmock.NewRows(cols).AddRow("n1", entryID, "u1", "hola", "Mentor", "Privada", now, "Retrospectiva"))

	got, err := repo.Create(context.Background(), &models.Note{
		EntryID: entryID, UserID: "u1", Text: "hola",
		Author: models.AuthorMentor, Privacy: models.PrivacyPrivate, Kind: models.NoteRetrospective,
	})
	require.NoError(t, err)
	assert.Equal(t, "n1", got.ID)
	assert.Equal(t, models.AuthorMentor, got.Author)
	assert.Equal(t, models.NoteRetrospective, got.Kind)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DBError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO notas`).
		WithArgs(entryID, "u1", "x", "Yo", "Privada", at, "Prospectiva").
		WillReturnError(errors.New("fk violation"))

	_, err := repo.Create(context.Background(), &models.Note{
		EntryID: entryID, UserID: "u1", Text: "x", CreatedAt: at,
		Author: models.AuthorSelf, Privacy: models.PrivacyPrivate, Kind: models.NoteProspective,
	})
	assert.ErrorContains(t, err, "db error: fk violation")
}

func TestListByEntry(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	t1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)FROM notas WHERE registro_id = \$1 AND user_id = \$2 ORDER BY timestamp_creacion ASC$`).
		WithArgs(entryID, "u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("n1", entryID, "u1", "a", "Yo", "Privada", t1, "Prospectiva").
			AddRow("n2", entryID, "u1", "b", "Mentor", "CompartidaMentor", t1.Add(time.Hour), "Retrospectiva"))

	got, err := repo.ListByEntry(context.Background(), "u1", entryID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, models.PrivacySharedMentor, got[1].Privacy)
}

func TestListByEntry_MalformedID(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	got, err := repo.ListByEntry(context.Background(), "u1", "A")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListByEntry_QueryError(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(`FROM notas`).WithArgs(entryID, "u1").WillReturnError(errors.New("boom"))

	_, err := repo.ListByEntry(context.Background(), "u1", entryID)
	assert.ErrorContains(t, err, "failed to select notes")
}

func TestExists(t *testing.T) {
	q := `(?s)SELECT EXISTS \( SELECT 1 FROM notas WHERE registro_id = \$1 AND user_id = \$2 AND texto = \$3 AND autor = \$4 \)$`

	for _, want := range []bool{true, false} {
		repo, mock := newRepoWithMock(t)
		mock.ExpectQuery(q).
			WithArgs(entryID, "u1", "hi", "Mentor").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(want))

		got, err := repo.Exists(context.Background(), "u1", entryID, "hi", models.AuthorMentor)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	repo, mock := newRepoWithMock(t)
	mock.ExpectQuery(q).WithArgs(entryID, "u1", "hi", "Mentor").WillReturnError(errors.New("boom"))
	_, err := repo.Exists(context.Background(), "u1", entryID, "hi", models.AuthorMentor)
	assert.Error(t, err)
}
