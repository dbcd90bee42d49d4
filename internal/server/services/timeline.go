package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/logging"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/dmitrijs2005/conciencia/internal/server/config"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/conciencia/internal/timeline"
	"github.com/dmitrijs2005/conciencia/internal/timex"
)

// timelineStates are the entries that occupy time on a day.
var timelineStates = []models.State{models.StateDone, models.StatePlanned}

// DailyTimeline is one day laid out as recorded and empty segments.
type DailyTimeline struct {
	Date              string             `json:"date"`
	Segments          []timeline.Segment `json:"segments"`
	TotalEmptyMinutes int                `json:"total_empty_minutes"`
}

// TimelineService builds daily timelines and stores annotations of their
// empty periods.
type TimelineService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	loc         *time.Location
}

// NewTimelineService resolves cfg.Timezone, which defines where days begin.
func NewTimelineService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) (*TimelineService, error) {
	loc, err := timex.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", cfg.Timezone, err)
	}
	return &TimelineService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "timeline"),
		loc:         loc,
	}, nil
}

// Daily returns the timeline for date (YYYY-MM-DD).
func (s *TimelineService) Daily(ctx context.Context, userID, date string) (*DailyTimeline, error) {
	day, err := timex.ParseDate(date, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", common.ErrorValidation, date)
	}
	from, to := timex.DayBounds(day, s.loc)

	list, err := s.repomanager.Entries(s.db).ListIntersecting(ctx, userID, from, to, timelineStates)
	if err != nil {
		return nil, fmt.Errorf("error fetching entries: %w", err)
	}

	segments := timeline.Build(day, list)
	if segments == nil {
		segments = []timeline.Segment{}
	}
	return &DailyTimeline{
		Date:              day.Format(timex.DateLayout),
		Segments:          segments,
		TotalEmptyMinutes: timeline.TotalEmptyMinutes(segments),
	}, nil
}

// AnnotateEmptyPeriod stores a labelled gap. The duration is derived from
// the bounds; inverted bounds are rejected.
func (s *TimelineService) AnnotateEmptyPeriod(ctx context.Context, userID string, p *models.EmptyPeriod) (*models.EmptyPeriod, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: period is required", common.ErrorValidation)
	}
	in := *p
	in.UserID = userID
	if in.Date == "" && !in.Start.IsZero() {
		in.Date = in.Start.In(s.loc).Format(timex.DateLayout)
	}
	if err := in.Normalize(); err != nil {
		return nil, err
	}
	if _, err := timex.ParseDate(in.Date, s.loc); err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", common.ErrorValidation, in.Date)
	}

	created, err := s.repomanager.Periods(s.db).Create(ctx, &in)
	if err != nil {
		return nil, fmt.Errorf("error saving empty period: %w", err)
	}
	s.log.Info(ctx, "empty period annotated", "user_id", userID, "date", created.Date, "seconds", created.DurationSeconds)
	return created, nil
}

// ListEmptyPeriods returns annotations dated within [from, to]. Either bound
// may be empty.
func (s *TimelineService) ListEmptyPeriods(ctx context.Context, userID, from, to string) ([]*models.EmptyPeriod, error) {
	for _, d := range []string{from, to} {
		if d == "" {
			continue
		}
		if _, err := timex.ParseDate(d, s.loc); err != nil {
			return nil, fmt.Errorf("%w: invalid date %q", common.ErrorValidation, d)
		}
	}
	return s.repomanager.Periods(s.db).List(ctx, userID, from, to)
}
