package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/logging"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/dmitrijs2005/conciencia/internal/server/config"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/entries"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/conciencia/internal/timex"
)

// ExportOptions narrows an export. From and To are inclusive YYYY-MM-DD
// dates on the creation day; either may be empty.
type ExportOptions struct {
	From                string `json:"from,omitempty"`
	To                  string `json:"to,omitempty"`
	IncludeEmptyPeriods bool   `json:"include_empty_periods,omitempty"`
}

// ExportedEntry is an entry with its notes and its consultation, if any.
type ExportedEntry struct {
	models.Entry
	Notes  []*models.Note  `json:"notas"`
	IChing json.RawMessage `json:"iching_consulta,omitempty"`
}

// ExportDocument is the object form of an export, used when annotated empty
// periods are included.
type ExportDocument struct {
	Entries      []*ExportedEntry      `json:"registros"`
	EmptyPeriods []*models.EmptyPeriod `json:"anotaciones_vacio"`
}

// ExportLink points at an archived export.
type ExportLink struct {
	Key       string    `json:"key"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ExportService renders a user's data as a JSON document and archives it.
type ExportService struct {
	db           *sql.DB
	repomanager  repomanager.RepositoryManager
	storage      ObjectStorage
	log          logging.Logger
	loc          *time.Location
	linkValidity time.Duration
	now          func() time.Time
}

func NewExportService(db *sql.DB, m repomanager.RepositoryManager, storage ObjectStorage, cfg *config.Config, log logging.Logger) (*ExportService, error) {
	loc, err := timex.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	return &ExportService{
		db:           db,
		repomanager:  m,
		storage:      storage,
		log:          log.With("module", "export"),
		loc:          loc,
		linkValidity: cfg.ExportLinkValidity,
		now:          time.Now,
	}, nil
}

// Export returns the user's entries, newest first, as indented JSON. The
// document is a bare list unless empty periods were requested and exist.
func (s *ExportService) Export(ctx context.Context, userID string, opts ExportOptions) ([]byte, error) {
	filter := entries.Filter{Order: entries.OrderCreatedDesc}
	if opts.From != "" {
		d, err := timex.ParseDate(opts.From, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", common.ErrorValidation, opts.From)
		}
		filter.CreatedFrom = &d
	}
	if opts.To != "" {
		d, err := timex.ParseDate(opts.To, s.loc)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", common.ErrorValidation, opts.To)
		}
		_, end := timex.DayBounds(d, s.loc)
		filter.CreatedTo = &end
	}

	list, err := s.repomanager.Entries(s.db).List(ctx, userID, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching entries: %w", err)
	}

	exported := make([]*ExportedEntry, 0, len(list))
	for _, e := range list {
		x, err := s.expand(ctx, userID, e)
		if err != nil {
			return nil, err
		}
		exported = append(exported, x)
	}

	var doc any = exported
	if opts.IncludeEmptyPeriods {
		periods, err := s.repomanager.Periods(s.db).List(ctx, userID, opts.From, opts.To)
		switch {
		case err != nil:
			s.log.Error(ctx, "failed to fetch empty periods, exporting entries only", "user_id", userID, "error", err)
		case len(periods) > 0:
			doc = ExportDocument{Entries: exported, EmptyPeriods: periods}
		}
	}

	data, err := sonic.ConfigStd.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding export: %w", err)
	}
	s.log.Info(ctx, "export generated", "user_id", userID, "entries", len(exported))
	return data, nil
}

// ExportToStorage archives an export and returns a temporary download link.
func (s *ExportService) ExportToStorage(ctx context.Context, userID string, opts ExportOptions) (*ExportLink, error) {
	if s.storage == nil {
		return nil, errors.New("object storage is not configured")
	}

	data, err := s.Export(ctx, userID, opts)
	if err != nil {
		return nil, err
	}

	now := s.now()
	key := ExportStorageKey(userID, now.In(s.loc))
	if err := s.storage.Put(ctx, key, "application/json", data); err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	url, err := s.storage.PresignGet(ctx, key, s.linkValidity)
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}
	s.log.Info(ctx, "export archived", "user_id", userID, "key", key)
	return &ExportLink{Key: key, URL: url, ExpiresAt: now.Add(s.linkValidity)}, nil
}

// ExportStorageKey is users/<id>/exports/<YYYY-MM-DD>/<uuid>.json.
func ExportStorageKey(userID string, at time.Time) string {
	return fmt.Sprintf("users/%s/exports/%s/%s.json", userID, at.Format(timex.DateLayout), uuid.New())
}

func (s *ExportService) expand(ctx context.Context, userID string, e *models.Entry) (*ExportedEntry, error) {
	notes, err := s.repomanager.Notes(s.db).ListByEntry(ctx, userID, e.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching notes of %s: %w", e.ID, err)
	}
	if notes == nil {
		notes = []*models.Note{}
	}

	consultation, err := s.repomanager.Consultations(s.db).GetByEntry(ctx, userID, e.ID)
	if err != nil {
		return nil, fmt.Errorf("error fetching consultation of %s: %w", e.ID, err)
	}

	return &ExportedEntry{Entry: *e, Notes: notes, IChing: consultation}, nil
}
