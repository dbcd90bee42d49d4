package models

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/common"
)

// EmptyPeriod is a gap in the day the user chose to annotate.
type EmptyPeriod struct {
	ID              string     `json:"id,omitempty"`
	UserID          string     `json:"user_id,omitempty"`
	Date            string     `json:"fecha"`
	Start           time.Time  `json:"hora_inicio"`
	End             time.Time  `json:"hora_fin"`
	DurationSeconds int64      `json:"duracion_segundos"`
	Labels          StringList `json:"etiquetas"`
	Note            *string    `json:"nota"`
	CreatedAt       time.Time  `json:"timestamp_creacion"`
}

// Normalize derives the duration from the bounds and rejects inverted
// periods.
func (p *EmptyPeriod) Normalize() error {
	if p.End.Before(p.Start) {
		return fmt.Errorf("%w: period end precedes start", common.ErrorValidation)
	}
	if p.Date == "" {
		return fmt.Errorf("%w: period date is required", common.ErrorValidation)
	}
	p.DurationSeconds = int64(p.End.Sub(p.Start) / time.Second)
	return nil
}
