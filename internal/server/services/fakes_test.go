package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/dbx"
	"github.com/dmitrijs2005/conciencia/internal/models"
	servermodels "github.com/dmitrijs2005/conciencia/internal/server/models"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/consultations"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/entries"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/notes"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/periods"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func ptrTime(t time.Time) *time.Time { return &t }
func ptrInt(v int) *int              { return &v }

// --- users ---

type fakeUsersRepo struct {
	created   *servermodels.User
	createErr error

	getOut *servermodels.User
	getErr error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *servermodels.User) (*servermodels.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = u
	return &servermodels.User{ID: "u1", Login: u.Login, PasswordHash: u.PasswordHash}, nil
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, _ string) (*servermodels.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

// --- refresh tokens ---

type fakeRefreshRepo struct {
	findOut *servermodels.RefreshToken
	findErr error

	deleted []string
	delErr  error

	createdFor []string
	createErr  error

	purgeErr   error
	purgeCalls int
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID string, _ string, _ time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.createdFor = append(f.createdFor, userID)
	return nil
}

func (f *fakeRefreshRepo) Find(_ context.Context, _ string) (*servermodels.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return f.delErr
}

func (f *fakeRefreshRepo) DeleteExpired(_ context.Context, _ string, _ time.Time) (int64, error) {
	f.purgeCalls++
	return 1, f.purgeErr
}

// --- entries ---

type fakeEntriesRepo struct {
	byID    map[string]*models.Entry
	getErr  error
	created []*models.Entry

	createErr error

	list       []*models.Entry
	listErr    error
	lastFilter entries.Filter

	intersecting []*models.Entry
	lastFrom     time.Time
	lastTo       time.Time
	lastStates   []models.State

	updateErr error
	updatedTo models.State
	updatedAt time.Time
}

func (f *fakeEntriesRepo) Create(_ context.Context, e *models.Entry) (*models.Entry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *e
	out.ID = "new-1"
	f.created = append(f.created, &out)
	return &out, nil
}

func (f *fakeEntriesRepo) GetByID(_ context.Context, userID, id string) (*models.Entry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.byID[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (f *fakeEntriesRepo) List(_ context.Context, _ string, flt entries.Filter) ([]*models.Entry, error) {
	f.lastFilter = flt
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeEntriesRepo) ListIntersecting(_ context.Context, _ string, from, to time.Time, states []models.State) ([]*models.Entry, error) {
	f.lastFrom, f.lastTo, f.lastStates = from, to, states
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.intersecting, nil
}

func (f *fakeEntriesRepo) UpdateState(_ context.Context, _ string, id string, state models.State, now time.Time) (*models.Entry, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updatedTo, f.updatedAt = state, now
	return &models.Entry{ID: id, State: state}, nil
}

// --- notes ---

type fakeNotesRepo struct {
	created   []*models.Note
	createErr error

	byEntry map[string][]*models.Note
	listErr error

	exists      bool
	existsText  string
	existsError error
}

func (f *fakeNotesRepo) Create(_ context.Context, n *models.Note) (*models.Note, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *n
	out.ID = "note-1"
	f.created = append(f.created, &out)
	return &out, nil
}

func (f *fakeNotesRepo) ListByEntry(_ context.Context, _ string, entryID string) ([]*models.Note, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.byEntry[entryID], nil
}

func (f *fakeNotesRepo) Exists(_ context.Context, _, _ string, text string, _ models.Author) (bool, error) {
	f.existsText = text
	return f.exists, f.existsError
}

// --- periods ---

type fakePeriodsRepo struct {
	created   []*models.EmptyPeriod
	createErr error

	list     []*models.EmptyPeriod
	listErr  error
	lastFrom string
	lastTo   string
}

func (f *fakePeriodsRepo) Create(_ context.Context, p *models.EmptyPeriod) (*models.EmptyPeriod, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	out := *p
	out.ID = "period-1"
	f.created = append(f.created, &out)
	return &out, nil
}

func (f *fakePeriodsRepo) List(_ context.Context, _ string, from, to string) ([]*models.EmptyPeriod, error) {
	f.lastFrom, f.lastTo = from, to
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

// --- consultations ---

type fakeConsultationsRepo struct {
	byEntry map[string]json.RawMessage
	err     error
}

func (f *fakeConsultationsRepo) GetByEntry(_ context.Context, _ string, entryID string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byEntry[entryID], nil
}

// --- manager ---

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	e *fakeEntriesRepo
	n *fakeNotesRepo
	p *fakePeriodsRepo
	c *fakeConsultationsRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		u: &fakeUsersRepo{},
		r: &fakeRefreshRepo{},
		e: &fakeEntriesRepo{byID: map[string]*models.Entry{}},
		n: &fakeNotesRepo{byEntry: map[string][]*models.Note{}},
		p: &fakePeriodsRepo{},
		c: &fakeConsultationsRepo{byEntry: map[string]json.RawMessage{}},
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Entries(dbx.DBTX) entries.Repository             { return m.e }
func (m *fakeRepoManager) Notes(dbx.DBTX) notes.Repository                 { return m.n }
func (m *fakeRepoManager) Periods(dbx.DBTX) periods.Repository             { return m.p }
func (m *fakeRepoManager) Consultations(dbx.DBTX) consultations.Repository { return m.c }

// --- object storage ---

type fakeStorage struct {
	keys     []string
	data     map[string][]byte
	putErr   error
	signErr  error
	validity time.Duration
}

func (f *fakeStorage) Put(_ context.Context, key, _ string, data []byte) error {
	if f.putErr != nil {
		return f.putErr
	}
	if f.data == nil {
		f.data = map[string][]byte{}
	}
	f.keys = append(f.keys, key)
	f.data[key] = data
	return nil
}

func (f *fakeStorage) PresignGet(_ context.Context, key string, validity time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	f.validity = validity
	return "https://s3.local/" + key + "?sig", nil
}
