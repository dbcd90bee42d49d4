package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/client/services"
	"github.com/dmitrijs2005/conciencia/internal/models"
)

const (
	clockLayout    = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

func (a *App) clock(t *time.Time) string {
	if t == nil {
		return "--:--"
	}
	return t.In(a.loc).Format(clockLayout)
}

func (a *App) formatEntry(v services.EntryView) string {
	var b strings.Builder
	if v.Suggested {
		b.WriteString("★ ")
	} else {
		b.WriteString("  ")
	}
	fmt.Fprintf(&b, "%s  [%s]", v.ID, v.State)

	if v.Start != nil {
		fmt.Fprintf(&b, "  %s %s-%s", v.Start.In(a.loc).Format("2006-01-02"), a.clock(v.Start), a.clock(v.End))
	}
	if v.Priority != nil {
		fmt.Fprintf(&b, "  p%d", *v.Priority)
	}
	fmt.Fprintf(&b, "  %s", v.Description)
	if len(v.Labels) > 0 {
		fmt.Fprintf(&b, "  #%s", strings.Join(v.Labels, " #"))
	}
	if len(v.FocusAgents) > 0 {
		fmt.Fprintf(&b, "  @%s", strings.Join(v.FocusAgents, " @"))
	}
	return b.String()
}

func (a *App) formatNote(n *models.Note) string {
	return fmt.Sprintf("- %s [%s, %s, %s] %s",
		n.CreatedAt.In(a.loc).Format(dateTimeLayout), n.Author, n.Kind, n.Privacy, n.Text)
}

func (a *App) formatPeriod(p *models.EmptyPeriod) string {
	s := fmt.Sprintf("%s %s-%s", p.Date, p.Start.In(a.loc).Format(clockLayout), p.End.In(a.loc).Format(clockLayout))
	if len(p.Labels) > 0 {
		s += "  #" + strings.Join(p.Labels, " #")
	}
	if p.Note != nil && *p.Note != "" {
		s += "  " + *p.Note
	}
	return s
}

// parseWhen reads "HH:MM" as a time of today or "YYYY-MM-DD HH:MM". An empty
// string yields nil.
func (a *App) parseWhen(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.ParseInLocation(dateTimeLayout, s, a.loc); err == nil {
		return &t, nil
	}
	c, err := time.ParseInLocation(clockLayout, s, a.loc)
	if err != nil {
		return nil, fmt.Errorf("hora no válida %q (usa HH:MM o YYYY-MM-DD HH:MM)", s)
	}
	day, err := time.ParseInLocation("2006-01-02", a.journal.Today(), a.loc)
	if err != nil {
		return nil, err
	}
	t := time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, a.loc)
	return &t, nil
}

// parseState accepts a state by its first letter or its full name. Empty
// means Planificado.
func parseState(s string) (models.State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "p", strings.ToLower(string(models.StatePlanned)):
		return models.StatePlanned, nil
	case "e", strings.ToLower(string(models.StateInProgress)):
		return models.StateInProgress, nil
	case "r", strings.ToLower(string(models.StateDone)):
		return models.StateDone, nil
	case "a", strings.ToLower(string(models.StateSkipped)):
		return models.StateSkipped, nil
	}
	return "", fmt.Errorf("estado desconocido %q", s)
}
