// Package timeline lays one calendar day out as an ordered, gap-free run of
// recorded and empty segments.
package timeline

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/models"
	"github.com/dmitrijs2005/conciencia/internal/timex"
)

// Kind distinguishes recorded time from empty time.
type Kind string

const (
	KindRecorded Kind = "registro"
	KindEmpty    Kind = "vacio"
)

// Segment is a half-open interval [Start, End) of the day.
type Segment struct {
	Kind            Kind          `json:"type"`
	Start           time.Time     `json:"start"`
	End             time.Time     `json:"end"`
	DurationMinutes int           `json:"duration_minutes"`
	Entry           *models.Entry `json:"registro,omitempty"`
}

// Duration returns End - Start.
func (s Segment) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// Build covers the calendar day containing date, in date's location, with
// segments derived from entries. Entries lacking a start or an end are not
// placed. Entries overlapping earlier ones are clamped to start where the
// previous recorded segment ended; an entry fully covered by earlier ones
// yields nothing. The input slice is not modified.
func Build(date time.Time, entries []*models.Entry) []Segment {
	dayStart, dayEnd := timex.DayBounds(date, date.Location())

	sorted := make([]*models.Entry, 0, len(entries))
	for _, e := range entries {
		if e != nil {
			sorted = append(sorted, e)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return startOrEpoch(sorted[i]).Before(startOrEpoch(sorted[j]))
	})

	var segments []Segment
	cursor := dayStart

	for _, e := range sorted {
		if !e.Placed() {
			continue
		}
		start, end := *e.Start, *e.End
		if !end.After(dayStart) || !start.Before(dayEnd) {
			continue
		}

		if start.Before(dayStart) {
			start = dayStart
		}
		if end.After(dayEnd) {
			end = dayEnd
		}
		if start.Before(cursor) {
			start = cursor
		}
		if !end.After(start) {
			continue
		}

		if cursor.Before(start) {
			segments = appendSegment(segments, KindEmpty, cursor, start, nil)
		}
		segments = appendSegment(segments, KindRecorded, start, end, e)
		cursor = end
	}

	if cursor.Before(dayEnd) {
		segments = appendSegment(segments, KindEmpty, cursor, dayEnd, nil)
	}

	return segments
}

// TotalEmptyMinutes sums the empty segments, truncated to whole minutes.
func TotalEmptyMinutes(segments []Segment) int {
	var total time.Duration
	for _, s := range segments {
		if s.Kind == KindEmpty {
			total += s.Duration()
		}
	}
	return int(total / time.Minute)
}

// EmptyPeriod turns an empty segment into an annotation record with the
// segment's exact bounds. ok is false for recorded segments.
func EmptyPeriod(s Segment, labels []string, note *string) (period models.EmptyPeriod, ok bool) {
	if s.Kind != KindEmpty {
		return models.EmptyPeriod{}, false
	}
	period = models.EmptyPeriod{
		Date:   s.Start.Format(timex.DateLayout),
		Start:  s.Start,
		End:    s.End,
		Labels: labels,
		Note:   note,
	}
	period.DurationSeconds = int64(s.Duration() / time.Second)
	return period, true
}

func appendSegment(segments []Segment, kind Kind, start, end time.Time, e *models.Entry) []Segment {
	if !end.After(start) {
		return segments
	}
	return append(segments, Segment{
		Kind:            kind,
		Start:           start,
		End:             end,
		DurationMinutes: int(end.Sub(start) / time.Minute),
		Entry:           e,
	})
}

func startOrEpoch(e *models.Entry) time.Time {
	if e.Start == nil {
		return time.Unix(0, 0)
	}
	return *e.Start
}
