package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/common"
)

// Author identifies who wrote a note.
type Author string

const (
	AuthorSelf   Author = "Yo"
	AuthorSystem Author = "Sistema"
	AuthorMentor Author = "Mentor"
)

func (a Author) Valid() bool {
	switch a {
	case AuthorSelf, AuthorSystem, AuthorMentor:
		return true
	}
	return false
}

// Privacy controls who may read a note.
type Privacy string

const (
	PrivacyPrivate       Privacy = "Privada"
	PrivacySharedContext Privacy = "CompartidaContexto"
	PrivacySharedMentor  Privacy = "CompartidaMentor"
)

func (p Privacy) Valid() bool {
	switch p {
	case PrivacyPrivate, PrivacySharedContext, PrivacySharedMentor:
		return true
	}
	return false
}

// NoteKind tells whether a note looks forward or back.
type NoteKind string

const (
	NoteProspective   NoteKind = "Prospectiva"
	NoteRetrospective NoteKind = "Retrospectiva"
)

func (k NoteKind) Valid() bool {
	return k == NoteProspective || k == NoteRetrospective
}

// Note is an immutable annotation attached to an Entry.
type Note struct {
	ID        string    `json:"id,omitempty"`
	EntryID   string    `json:"registro_id"`
	UserID    string    `json:"user_id,omitempty"`
	Text      string    `json:"texto"`
	Author    Author    `json:"autor"`
	Privacy   Privacy   `json:"privacidad"`
	CreatedAt time.Time `json:"timestamp_creacion"`
	Kind      NoteKind  `json:"tipo_nota"`
}

// ApplyDefaults fills the optional enumerations with their defaults. A note
// attached to an entry still in the future is prospective.
func (n *Note) ApplyDefaults(parent *Entry) {
	if n.Author == "" {
		n.Author = AuthorSelf
	}
	if n.Privacy == "" {
		n.Privacy = PrivacyPrivate
	}
	if n.Kind == "" {
		n.Kind = NoteRetrospective
		if parent != nil && parent.State == StatePlanned {
			n.Kind = NoteProspective
		}
	}
}

// Validate checks a note after defaults have been applied.
func (n *Note) Validate() error {
	if n.EntryID == "" {
		return fmt.Errorf("%w: parent entry is required", common.ErrorValidation)
	}
	if strings.TrimSpace(n.Text) == "" {
		return fmt.Errorf("%w: note text is required", common.ErrorValidation)
	}
	if !n.Author.Valid() {
		return fmt.Errorf("%w: unknown author %q", common.ErrorValidation, n.Author)
	}
	if !n.Privacy.Valid() {
		return fmt.Errorf("%w: unknown privacy %q", common.ErrorValidation, n.Privacy)
	}
	if !n.Kind.Valid() {
		return fmt.Errorf("%w: unknown note kind %q", common.ErrorValidation, n.Kind)
	}
	return nil
}
