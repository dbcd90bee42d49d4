package cli

import (
	"bufio"
	"context"
	"database/sql"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/api"
	"github.com/dmitrijs2005/conciencia/internal/client/client"
	"github.com/dmitrijs2005/conciencia/internal/client/config"
	"github.com/dmitrijs2005/conciencia/internal/client/services"
	"github.com/dmitrijs2005/conciencia/internal/logging"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/dmitrijs2005/conciencia/internal/reconciler"
	"github.com/dmitrijs2005/conciencia/internal/timex"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const onlineCheckInterval = 30 * time.Second

type journalService interface {
	Add(ctx context.Context, e *models.Entry) (*models.Entry, error)
	History(ctx context.Context) ([]services.EntryView, error)
	Intentions(ctx context.Context, sort string) ([]services.EntryView, error)
	SetState(ctx context.Context, id string, state models.State) (*models.Entry, error)
	AddNote(ctx context.Context, entryID, text string, kind models.NoteKind) (*models.Note, error)
	Notes(ctx context.Context, entryID string) ([]*models.Note, error)
	Today() string
	Timeline(ctx context.Context, date string) (*api.DailyTimelineResponse, error)
	AnnotateGap(ctx context.Context, date string, n int, labels []string, note string) (*models.EmptyPeriod, error)
	EmptyPeriods(ctx context.Context, from, to string) ([]*models.EmptyPeriod, error)
	Insights(ctx context.Context) ([]models.Insight, error)
	Suggestion(ctx context.Context) (*models.Suggestion, *models.Entry, error)
	ClearSuggestion(ctx context.Context) error
}

type dataService interface {
	Import(ctx context.Context, source string) (*reconciler.Result, error)
	Export(ctx context.Context, path string, opts api.ExportRequest) (int, error)
	Backup(ctx context.Context, opts api.ExportRequest) (*api.ExportLinkResponse, error)
}

// App is the interactive client. Commands read prompts from reader and
// write to out.
type App struct {
	config  *config.Config
	auth    services.AuthService
	journal journalService
	data    dataService
	db      *sql.DB
	log     logging.Logger
	loc     *time.Location
	reader  *bufio.Reader
	out     io.Writer

	mu   sync.Mutex
	mode Mode

	// lastDate is the day of the last printed timeline; annotate refers to
	// its empty segments.
	lastDate string
}

// NewApp opens the local state, dials the server and wires the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logging.NewTextLogger(os.Stderr, level)

	loc, err := timex.LoadLocation(c.Timezone)
	if err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, err
	}
	repos := client.NewRepositories(db)

	apiClient, err := client.NewConcienciaClientService(c.ServerEndpointAddr, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	session := services.NewSessionStore(repos.Metadata, apiClient, log)
	suggestions := services.NewSuggestionStore(repos.Metadata)
	rec := reconciler.New(services.NewRemoteStore(apiClient), suggestions, session, log)

	return &App{
		config:  c,
		auth:    services.NewAuthService(apiClient, session),
		journal: services.NewJournalService(apiClient, suggestions, loc, log),
		data:    services.NewDataService(apiClient, rec, log),
		db:      db,
		log:     log.With("module", "cli"),
		loc:     loc,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}, nil
}

// Run resumes a saved session and serves the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) {
	defer func() {
		_ = a.auth.Close(ctx)
		if a.db != nil {
			_ = a.db.Close()
		}
	}()

	if ok, err := a.auth.Resume(ctx); err != nil {
		a.log.Warn(ctx, "failed to restore session", "error", err)
	} else if ok {
		a.log.Info(ctx, "session restored")
	}

	a.checkOnline(ctx)
	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartOnlineStatusWatcher(watchCtx, onlineCheckInterval)

	printlnFn("Conciencia CLI (escribe 'help' para ver los comandos)")
	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) isLoggedIn() bool {
	_, ok := a.auth.CurrentUserID(context.Background())
	return ok
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := a.auth.Ping(ctx); err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx ends.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// status is shown in the prompt.
func (a *App) status() string {
	s := ""
	if a.isLoggedIn() {
		s = "sesión "
	}
	if m := a.currentMode(); m != "" {
		s += string(m)
	}
	return s
}
