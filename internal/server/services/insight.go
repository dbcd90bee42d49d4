package services

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/conciencia/internal/logging"
	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/dmitrijs2005/conciencia/internal/server/config"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/entries"
	"github.com/dmitrijs2005/conciencia/internal/server/repositories/repomanager"
)

// InsightService derives observations from a user's recent entries.
type InsightService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	log         logging.Logger
	window      time.Duration
	threshold   int
	now         func() time.Time
	newID       func() string
}

func NewInsightService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, log logging.Logger) *InsightService {
	return &InsightService{
		db:          db,
		repomanager: m,
		log:         log.With("module", "insights"),
		window:      time.Duration(cfg.InsightWindowDays) * 24 * time.Hour,
		threshold:   cfg.InsightThreshold,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// AnalyzeRecentPatterns looks at entries created within the window and
// reports overdue plans and frequently used tags. A failed fetch is logged
// and yields no insights.
func (s *InsightService) AnalyzeRecentPatterns(ctx context.Context, userID string) ([]models.Insight, error) {
	now := s.now()
	since := now.Add(-s.window)

	recent, err := s.repomanager.Entries(s.db).List(ctx, userID, entries.Filter{
		CreatedFrom: &since,
		Order:       entries.OrderChronological,
	})
	if err != nil {
		s.log.Error(ctx, "failed to fetch recent entries", "user_id", userID, "error", err)
		return []models.Insight{}, nil
	}

	insights := []models.Insight{}
	if in, ok := s.overduePlans(recent, now); ok {
		insights = append(insights, in)
	}
	if in, ok := s.frequentItems(recent); ok {
		insights = append(insights, in)
	}
	return insights, nil
}

func (s *InsightService) overduePlans(list []*models.Entry, now time.Time) (models.Insight, bool) {
	var overdue []*models.Entry
	for _, e := range list {
		if e.State == models.StatePlanned && e.Start != nil && e.Start.Before(now) {
			overdue = append(overdue, e)
		}
	}
	if len(overdue) == 0 {
		return models.Insight{}, false
	}
	return models.Insight{
		ID:   s.newID(),
		Type: models.InsightVoid,
		Message: fmt.Sprintf("Tienes %d registros planificados que no se han completado. "+
			"¿Necesitas ajustarlos o revisarlos?", len(overdue)),
		RelatedEntryID: overdue[0].ID,
	}, true
}

type itemCount struct {
	item  string
	count int
}

func (s *InsightService) frequentItems(list []*models.Entry) (models.Insight, bool) {
	counts := map[string]int{}
	for _, e := range list {
		for _, a := range e.FocusAgents {
			counts[a]++
		}
		for _, l := range e.Labels {
			counts[l]++
		}
	}

	var frequent []itemCount
	for item, n := range counts {
		if n > s.threshold {
			frequent = append(frequent, itemCount{item, n})
		}
	}
	if len(frequent) == 0 {
		return models.Insight{}, false
	}
	sort.Slice(frequent, func(i, j int) bool {
		if frequent[i].count != frequent[j].count {
			return frequent[i].count > frequent[j].count
		}
		return frequent[i].item < frequent[j].item
	})

	parts := make([]string, len(frequent))
	for i, f := range frequent {
		parts[i] = fmt.Sprintf("%s (%d)", f.item, f.count)
	}
	return models.Insight{
		ID:      s.newID(),
		Type:    models.InsightPattern,
		Message: "Parece que has interactuado mucho con: " + strings.Join(parts, ", ") + ". ¿Hay algún patrón aquí?",
	}, true
}
