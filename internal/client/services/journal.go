package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/api"
	"github.com/dmitrijs2005/conciencia/internal/client/client"
	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/logging"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/dmitrijs2005/conciencia/internal/timeline"
	"github.com/dmitrijs2005/conciencia/internal/timex"
)

// EntryView is an entry as listed by the CLI. Suggested marks the entry the
// mentor suggestion points at.
type EntryView struct {
	*models.Entry
	Suggested bool
}

// JournalService backs the day-to-day CLI commands.
type JournalService struct {
	client      client.Client
	suggestions *SuggestionStore
	log         logging.Logger
	loc         *time.Location
	now         func() time.Time
}

func NewJournalService(c client.Client, suggestions *SuggestionStore, loc *time.Location, log logging.Logger) *JournalService {
	if loc == nil {
		loc = time.Local
	}
	return &JournalService{
		client:      c,
		suggestions: suggestions,
		log:         log.With("module", "journal"),
		loc:         loc,
		now:         time.Now,
	}
}

func (s *JournalService) Add(ctx context.Context, e *models.Entry) (*models.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return s.client.CreateEntry(ctx, e)
}

// History lists completed entries, latest first.
func (s *JournalService) History(ctx context.Context) ([]EntryView, error) {
	list, err := s.client.ListEntries(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list), nil
}

// Intentions lists planned entries ordered by sort ("" or "chronological",
// or "priority").
func (s *JournalService) Intentions(ctx context.Context, sort string) ([]EntryView, error) {
	list, err := s.client.ListIntentions(ctx, sort)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list), nil
}

func (s *JournalService) views(ctx context.Context, list []*models.Entry) []EntryView {
	var suggested string
	if sug, err := s.suggestions.Get(ctx); err != nil {
		s.log.Warn(ctx, "failed to read mentor suggestion", "error", err)
	} else if sug != nil {
		suggested = sug.EntryID
	}

	out := make([]EntryView, 0, len(list))
	for _, e := range list {
		out = append(out, EntryView{Entry: e, Suggested: suggested != "" && e.ID == suggested})
	}
	return out
}

func (s *JournalService) SetState(ctx context.Context, id string, state models.State) (*models.Entry, error) {
	if !state.Valid() {
		return nil, fmt.Errorf("%w: unknown state %q", common.ErrorValidation, state)
	}
	return s.client.UpdateEntryState(ctx, id, state)
}

// AddNote attaches a private note written by the user.
func (s *JournalService) AddNote(ctx context.Context, entryID, text string, kind models.NoteKind) (*models.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: note text is required", common.ErrorValidation)
	}
	return s.client.AddNote(ctx, &models.Note{
		EntryID: entryID,
		Text:    text,
		Author:  models.AuthorSelf,
		Privacy: models.PrivacyPrivate,
		Kind:    kind,
	})
}

func (s *JournalService) Notes(ctx context.Context, entryID string) ([]*models.Note, error) {
	return s.client.ListNotes(ctx, entryID)
}

// Today is the current date in the configured zone.
func (s *JournalService) Today() string {
	return s.now().In(s.loc).Format(timex.DateLayout)
}

// Timeline returns the segments of date; an empty date means today.
func (s *JournalService) Timeline(ctx context.Context, date string) (*api.DailyTimelineResponse, error) {
	if date == "" {
		date = s.Today()
	}
	return s.client.DailyTimeline(ctx, date)
}

// AnnotateGap records the n-th (1-based) empty segment of date as an
// annotated empty period.
func (s *JournalService) AnnotateGap(ctx context.Context, date string, n int, labels []string, note string) (*models.EmptyPeriod, error) {
	day, err := s.Timeline(ctx, date)
	if err != nil {
		return nil, err
	}

	gaps := make([]timeline.Segment, 0, len(day.Segments))
	for _, seg := range day.Segments {
		if seg.Kind == timeline.KindEmpty {
			gaps = append(gaps, seg)
		}
	}
	if n < 1 || n > len(gaps) {
		return nil, fmt.Errorf("%w: day %s has %d empty periods", common.ErrorValidation, day.Date, len(gaps))
	}
	gap := gaps[n-1]

	p := &models.EmptyPeriod{
		Date:   day.Date,
		Start:  gap.Start,
		End:    gap.End,
		Labels: models.StringList(labels),
	}
	if note = strings.TrimSpace(note); note != "" {
		p.Note = &note
	}
	return s.client.AnnotateEmptyPeriod(ctx, p)
}

func (s *JournalService) EmptyPeriods(ctx context.Context, from, to string) ([]*models.EmptyPeriod, error) {
	return s.client.ListEmptyPeriods(ctx, from, to)
}

func (s *JournalService) Insights(ctx context.Context) ([]models.Insight, error) {
	return s.client.AnalyzePatterns(ctx)
}

// Suggestion returns the stored mentor suggestion and, when it still exists
// on the server, the entry it names.
func (s *JournalService) Suggestion(ctx context.Context) (*models.Suggestion, *models.Entry, error) {
	sug, err := s.suggestions.Get(ctx)
	if err != nil || sug == nil {
		return nil, nil, err
	}

	e, err := s.client.GetEntry(ctx, sug.EntryID)
	if errors.Is(err, common.ErrorNotFound) {
		return sug, nil, nil
	}
	if err != nil {
		return sug, nil, err
	}
	return sug, e, nil
}

func (s *JournalService) ClearSuggestion(ctx context.Context) error {
	return s.suggestions.Clear(ctx)
}
