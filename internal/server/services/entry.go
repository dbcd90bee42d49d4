package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/logging"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/entries"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/repomanager"
)

// IntentionSort selects how ListIntentions orders planned entries.
type IntentionSort string

const (
	SortChronological IntentionSort = "chronological"
	SortPriority      IntentionSort = "priority"
)

// EntryService manages entries and their notes for a single user at a time.
type EntryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	now         func() time.Time
}

// NewEntryService wires an EntryService.
func NewEntryService(db *sql.DB, m repomanager.RepositoryManager, log logging.Logger) *EntryService {
	return &EntryService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "entries"),
		now:         time.Now,
	}
}

// Create validates e and stores it for userID.
func (s *EntryService) Create(ctx context.Context, userID string, e *models.Entry) (*models.Entry, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: entry is required", common.ErrorValidation)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}

	in := *e
	in.UserID = userID
	in.Description = strings.TrimSpace(in.Description)

	created, err := s.repomanager.Entries(s.db).Create(ctx, &in)
	if err != nil {
		return nil, fmt.Errorf("error creating entry: %w", err)
	}
	s.log.Info(ctx, "entry created", "entry_id", created.ID, "user_id", userID, "state", created.State)
	return created, nil
}

// Get returns common.ErrorNotFound when userID owns no entry id.
func (s *EntryService) Get(ctx context.Context, userID, id string) (*models.Entry, error) {
	return s.repomanager.Entries(s.db).GetByID(ctx, userID, id)
}

// ListDone returns completed entries, most recent start first.
func (s *EntryService) ListDone(ctx context.Context, userID string) ([]*models.Entry, error) {
	return s.repomanager.Entries(s.db).List(ctx, userID, entries.Filter{
		States: []models.State{models.StateDone},
		Order:  entries.OrderStartDesc,
	})
}

// ListIntentions returns planned entries in the requested order. An empty
// sort means chronological.
func (s *EntryService) ListIntentions(ctx context.Context, userID string, sortBy IntentionSort) ([]*models.Entry, error) {
	order := entries.OrderChronological
	switch sortBy {
	case "", SortChronological:
	case SortPriority:
		order = entries.OrderPriority
	default:
		return nil, fmt.Errorf("%w: unknown sort %q", common.ErrorValidation, sortBy)
	}
	return s.repomanager.Entries(s.db).List(ctx, userID, entries.Filter{
		States: []models.State{models.StatePlanned},
		Order:  order,
	})
}

// UpdateState moves an entry to state, stamping its end time when the state
// closes it.
func (s *EntryService) UpdateState(ctx context.Context, userID, id string, state models.State) (*models.Entry, error) {
	if !state.Valid() {
		return nil, fmt.Errorf("%w: unknown state %q", common.ErrorValidation, state)
	}
	e, err := s.repomanager.Entries(s.db).UpdateState(ctx, userID, id, state, s.now())
	if err != nil {
		return nil, err
	}
	s.log.Info(ctx, "entry state changed", "entry_id", id, "user_id", userID, "state", state)
	return e, nil
}

// AddNote attaches n to one of userID's entries. Unset author, privacy and
// kind take their defaults.
func (s *EntryService) AddNote(ctx context.Context, userID string, n *models.Note) (*models.Note, error) {
	if n == nil {
		return nil, fmt.Errorf("%w: note is required", common.ErrorValidation)
	}

	parent, err := s.repomanager.Entries(s.db).GetByID(ctx, userID, n.EntryID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("%w: parent entry %s", common.ErrorNotFound, n.EntryID)
		}
		return nil, err
	}

	in := *n
	in.UserID = userID
	in.Text = strings.TrimSpace(in.Text)
	in.ApplyDefaults(parent)
	if err := in.Validate(); err != nil {
		return nil, err
	}

	created, err := s.repomanager.Notes(s.db).Create(ctx, &in)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}
	s.log.Debug(ctx, "note added", "entry_id", n.EntryID, "author", in.Author)
	return created, nil
}

// ListNotes returns the entry's notes oldest first.
func (s *EntryService) ListNotes(ctx context.Context, userID, entryID string) ([]*models.Note, error) {
	return s.repomanager.Notes(s.db).ListByEntry(ctx, userID, entryID)
}

// NoteExists reports whether the entry already carries a note with the same
// text and author.
func (s *EntryService) NoteExists(ctx context.Context, userID, entryID, text string, author models.Author) (bool, error) {
	return s.repomanager.Notes(s.db).Exists(ctx, userID, entryID, strings.TrimSpace(text), author)
}
