package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/conciencia/internal/api"
	"github.com/dmitrijs2005/conciencia/internal/client/client"
	"github.com/dmitrijs2005/conciencia/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

func newRepo(t *testing.T) metadata.Repository {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return client.NewRepositories(db).Metadata
}

// fakeClient is an in-memory client.Client. Entries and notes live in maps
// keyed by id.
type fakeClient struct {
	tokens    client.Tokens
	onRefresh func(client.Tokens)
	closed    bool

	pingErr     error
	registerErr error
	lastLogin   string
	loginOut    client.Tokens
	loginErr    error

	entries   map[string]*models.Entry
	created   []*models.Entry
	createErr error
	getErr    error
	list      []*models.Entry
	listErr   error
	lastSort  string
	stateTo   models.State
	stateErr  error

	notes     []*models.Note
	noteErr   error
	existing  map[string]bool
	existsErr error
	notesByID map[string][]*models.Note

	day        *api.DailyTimelineResponse
	dayErr     error
	lastDate   string
	annotated  []*models.EmptyPeriod
	periods    []*models.EmptyPeriod
	lastFrom   string
	lastTo     string
	insights   []models.Insight
	exportDoc  []byte
	exportErr  error
	lastExport api.ExportRequest
	link       *api.ExportLinkResponse
	linkErr    error
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		entries:   map[string]*models.Entry{},
		existing:  map[string]bool{},
		notesByID: map[string][]*models.Note{},
	}
}

func (f *fakeClient) Close() error                             { f.closed = true; return nil }
func (f *fakeClient) Ping(context.Context) error               { return f.pingErr }
func (f *fakeClient) SetTokens(t client.Tokens)                { f.tokens = t }
func (f *fakeClient) Tokens() client.Tokens                    { return f.tokens }
func (f *fakeClient) OnTokensRefreshed(fn func(client.Tokens)) { f.onRefresh = fn }

func (f *fakeClient) Register(_ context.Context, login, _ string) (string, error) {
	if f.registerErr != nil {
		return "", f.registerErr
	}
	return "u-" + login, nil
}

func (f *fakeClient) Login(_ context.Context, login, _ string) (client.Tokens, error) {
	f.lastLogin = login
	if f.loginErr != nil {
		return client.Tokens{}, f.loginErr
	}
	f.tokens = f.loginOut
	return f.loginOut, nil
}

func (f *fakeClient) CreateEntry(_ context.Context, e *models.Entry) (*models.Entry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *e
	cp.ID = "srv-" + string(rune('a'+len(f.created)))
	f.created = append(f.created, &cp)
	f.entries[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeClient) GetEntry(_ context.Context, id string) (*models.Entry, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	e, ok := f.entries[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (f *fakeClient) ListEntries(context.Context) ([]*models.Entry, error) {
	return f.list, f.listErr
}

func (f *fakeClient) ListIntentions(_ context.Context, sort string) ([]*models.Entry, error) {
	f.lastSort = sort
	return f.list, f.listErr
}

func (f *fakeClient) UpdateEntryState(_ context.Context, id string, state models.State) (*models.Entry, error) {
	if f.stateErr != nil {
		return nil, f.stateErr
	}
	f.stateTo = state
	return &models.Entry{ID: id, State: state}, nil
}

func (f *fakeClient) AddNote(_ context.Context, n *models.Note) (*models.Note, error) {
	if f.noteErr != nil {
		return nil, f.noteErr
	}
	cp := *n
	f.notes = append(f.notes, &cp)
	return &cp, nil
}

func (f *fakeClient) ListNotes(_ context.Context, entryID string) ([]*models.Note, error) {
	return f.notesByID[entryID], nil
}

func (f *fakeClient) NoteExists(_ context.Context, entryID, text string, author models.Author) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existing[entryID+"|"+text+"|"+string(author)], nil
}

func (f *fakeClient) DailyTimeline(_ context.Context, date string) (*api.DailyTimelineResponse, error) {
	f.lastDate = date
	return f.day, f.dayErr
}

func (f *fakeClient) AnnotateEmptyPeriod(_ context.Context, p *models.EmptyPeriod) (*models.EmptyPeriod, error) {
	cp := *p
	f.annotated = append(f.annotated, &cp)
	return &cp, nil
}

func (f *fakeClient) ListEmptyPeriods(_ context.Context, from, to string) ([]*models.EmptyPeriod, error) {
	f.lastFrom, f.lastTo = from, to
	return f.periods, nil
}

func (f *fakeClient) AnalyzePatterns(context.Context) ([]models.Insight, error) {
	return f.insights, nil
}

func (f *fakeClient) Export(_ context.Context, opts api.ExportRequest) ([]byte, error) {
	f.lastExport = opts
	return f.exportDoc, f.exportErr
}

func (f *fakeClient) ExportToStorage(_ context.Context, opts api.ExportRequest) (*api.ExportLinkResponse, error) {
	f.lastExport = opts
	return f.link, f.linkErr
}
