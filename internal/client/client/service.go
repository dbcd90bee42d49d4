package client

import (
	"context"

	"github.com/dmitrijs2005/conciencia/internal/api"
	"github.com/dmitrijs2005/conciencia/internal/models"
)

// Tokens is the session handed out by Login and rotated by RefreshToken.
type Tokens struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Client is the server API as seen by the CLI services.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	Register(ctx context.Context, login, password string) (string, error)
	Login(ctx context.Context, login, password string) (Tokens, error)
	SetTokens(t Tokens)
	Tokens() Tokens
	// OnTokensRefreshed registers fn to be called after a transparent
	// token rotation.
	OnTokensRefreshed(fn func(Tokens))

	CreateEntry(ctx context.Context, e *models.Entry) (*models.Entry, error)
	GetEntry(ctx context.Context, id string) (*models.Entry, error)
	ListEntries(ctx context.Context) ([]*models.Entry, error)
	ListIntentions(ctx context.Context, sort string) ([]*models.Entry, error)
	UpdateEntryState(ctx context.Context, id string, state models.State) (*models.Entry, error)

	AddNote(ctx context.Context, n *models.Note) (*models.Note, error)
	ListNotes(ctx context.Context, entryID string) ([]*models.Note, error)
	NoteExists(ctx context.Context, entryID, text string, author models.Author) (bool, error)

	DailyTimeline(ctx context.Context, date string) (*api.DailyTimelineResponse, error)
	AnnotateEmptyPeriod(ctx context.Context, p *models.EmptyPeriod) (*models.EmptyPeriod, error)
	ListEmptyPeriods(ctx context.Context, from, to string) ([]*models.EmptyPeriod, error)

	AnalyzePatterns(ctx context.Context) ([]models.Insight, error)
	Export(ctx context.Context, opts api.ExportRequest) ([]byte, error)
	ExportToStorage(ctx context.Context, opts api.ExportRequest) (*api.ExportLinkResponse, error)
}
