// Package models defines the journaling domain types shared by the server,
// the client and the wire protocol. JSON names follow the export format.
package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/common"
)

// State is the lifecycle state of an Entry.
type State string

const (
	StatePlanned    State = "Planificado"
	StateInProgress State = "En Progreso"
	StateDone       State = "Realizado"
	StateSkipped    State = "Adaptado / Saltado"
)

// Valid reports whether s is one of the four known states.
func (s State) Valid() bool {
	switch s {
	case StatePlanned, StateInProgress, StateDone, StateSkipped:
		return true
	}
	return false
}

// Closing reports whether moving into s stamps the end time.
func (s State) Closing() bool {
	return s == StateDone || s == StateSkipped
}

// MaxPriority is the highest priority an intention can carry.
const MaxPriority = 10

// Entry is a single record of conscious activity: a plan, something in
// progress, something done or something skipped.
type Entry struct {
	ID               string     `json:"id"`
	UserID           string     `json:"user_id,omitempty"`
	Description      string     `json:"descripcion"`
	State            State      `json:"estado"`
	CreatedAt        time.Time  `json:"timestamp_creacion"`
	Start            *time.Time `json:"tiempo_inicio"`
	End              *time.Time `json:"tiempo_fin"`
	FocusAgents      StringList `json:"foco_agentes"`
	Labels           StringList `json:"etiquetas"`
	Location         *string    `json:"lugar_texto_simple"`
	EstimatedMinutes *int       `json:"duracion_estimada_minutos"`
	Sensation        *string    `json:"sensacion_kinestesica"`
	Priority         *int       `json:"prioridad"`
}

// Validate checks the invariants an entry must hold before it is stored.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return fmt.Errorf("%w: description is required", common.ErrorValidation)
	}
	if !e.State.Valid() {
		return fmt.Errorf("%w: unknown state %q", common.ErrorValidation, e.State)
	}
	if e.Start != nil && e.End != nil && e.End.Before(*e.Start) {
		return fmt.Errorf("%w: end precedes start", common.ErrorValidation)
	}
	if e.EstimatedMinutes != nil && *e.EstimatedMinutes < 0 {
		return fmt.Errorf("%w: estimated duration must not be negative", common.ErrorValidation)
	}
	if e.Priority != nil && (*e.Priority < 0 || *e.Priority > MaxPriority) {
		return fmt.Errorf("%w: priority must be between 0 and %d", common.ErrorValidation, MaxPriority)
	}
	return nil
}

// Placed reports whether the entry has both a start and an end and so can
// be laid out on a timeline.
func (e *Entry) Placed() bool {
	return e.Start != nil && e.End != nil
}
