// Package reconciler merges an imported export or mentor document into the
// current user's data without overwriting existing entries.
//
// Import is sequential and not atomic: every lookup, duplicate check and
// insert is its own round trip, and an interrupted import leaves the writes
// made so far. Re-importing the same document never duplicates mentor notes
// on existing entries but does create suggested entries again, since those
// receive fresh ids.
package reconciler

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/logging"
	"github.com/dmitrijs2005/conciencia/internal/models"
)

// Store is the user-scoped storage the reconciler writes into.
type Store interface {
	// FindEntry returns common.ErrorNotFound when userID has no entry id.
	FindEntry(ctx context.Context, userID, id string) (*models.Entry, error)
	// CreateEntry stores e under a new id and returns the stored entry.
	CreateEntry(ctx context.Context, userID string, e *models.Entry) (*models.Entry, error)
	NoteExists(ctx context.Context, userID, entryID, text string, author models.Author) (bool, error)
	AddNote(ctx context.Context, userID string, n *models.Note) (*models.Note, error)
}

// SuggestionStore holds the single mentor suggestion kept on the client.
type SuggestionStore interface {
	Get(ctx context.Context) (*models.Suggestion, error)
	Set(ctx context.Context, s models.Suggestion) error
	Clear(ctx context.Context) error
}

// Session yields the authenticated user, if any.
type Session interface {
	CurrentUserID(ctx context.Context) (string, bool)
}

// Result summarizes an import.
type Result struct {
	NotesAdded       int `json:"notas_agregadas"`
	EntriesSuggested int `json:"registros_sugeridos"`
	// Skipped counts elements rejected by the parser or that failed while
	// being applied.
	Skipped          int  `json:"omitidos"`
	SuggestionStored bool `json:"sugerencia_guardada"`
	// EmptyPeriodsIgnored counts anotaciones_vacio elements that were read
	// but not applied.
	EmptyPeriodsIgnored int `json:"anotaciones_vacio_ignoradas"`
}

// Reconciler applies import documents.
type Reconciler struct {
	store       Store
	suggestions SuggestionStore
	session     Session
	log         logging.Logger
}

func New(store Store, suggestions SuggestionStore, session Session, log logging.Logger) *Reconciler {
	if log == nil {
		log = logging.Nop()
	}
	return &Reconciler{
		store:       store,
		suggestions: suggestions,
		session:     session,
		log:         log.With("module", "reconciler"),
	}
}

// Import parses data and applies it.
func (r *Reconciler) Import(ctx context.Context, data []byte) (*Result, error) {
	userID, ok := r.session.CurrentUserID(ctx)
	if !ok || userID == "" {
		return nil, common.ErrorUnauthenticated
	}

	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return r.apply(ctx, userID, p), nil
}

// Apply merges an already parsed payload.
func (r *Reconciler) Apply(ctx context.Context, p *Payload) (*Result, error) {
	userID, ok := r.session.CurrentUserID(ctx)
	if !ok || userID == "" {
		return nil, common.ErrorUnauthenticated
	}
	return r.apply(ctx, userID, p), nil
}

func (r *Reconciler) apply(ctx context.Context, userID string, p *Payload) *Result {
	res := &Result{}
	log := r.log.With("user_id", userID, "shape", p.Shape.String())

	for _, rej := range p.Rejected {
		log.Warn(ctx, "skipping malformed import element", "key", rej.Key, "index", rej.Index, "reason", rej.Reason)
		res.Skipped++
	}

	for i := range p.Entries {
		imp := &p.Entries[i]
		if err := r.applyEntry(ctx, userID, imp, res); err != nil {
			log.Error(ctx, "failed to import entry", "registro_id", imp.ID, "error", err)
			res.Skipped++
		}
	}

	if n := len(p.EmptyPeriods); n > 0 {
		log.Warn(ctx, "empty period annotations are not imported", "count", n)
		res.EmptyPeriodsIgnored = n
	}

	if s := p.Suggestion; s != nil {
		switch {
		case s.EntryID == "":
			log.Warn(ctx, "mentor suggestion without registro_id ignored")
		case r.suggestions == nil:
			log.Warn(ctx, "no suggestion store configured", "registro_id", s.EntryID)
		default:
			if err := r.suggestions.Set(ctx, *s); err != nil {
				log.Error(ctx, "failed to store mentor suggestion", "registro_id", s.EntryID, "error", err)
			} else {
				res.SuggestionStored = true
			}
		}
	}

	log.Info(ctx, "import finished",
		"notes_added", res.NotesAdded,
		"entries_suggested", res.EntriesSuggested,
		"skipped", res.Skipped)
	return res
}

func (r *Reconciler) applyEntry(ctx context.Context, userID string, imp *ImportedEntry, res *Result) error {
	existing, err := r.store.FindEntry(ctx, userID, imp.ID)
	switch {
	case err == nil:
		res.NotesAdded += r.mergeMentorNotes(ctx, userID, existing, imp.Notes)
		return nil
	case errors.Is(err, common.ErrorNotFound):
		created, err := r.createSuggested(ctx, userID, imp)
		if err != nil {
			return err
		}
		res.EntriesSuggested++
		r.copyNotes(ctx, userID, created, imp.Notes)
		return nil
	default:
		return fmt.Errorf("lookup: %w", err)
	}
}

// mergeMentorNotes inserts mentor notes the existing entry does not carry
// yet, matching on text and author.
func (r *Reconciler) mergeMentorNotes(ctx context.Context, userID string, e *models.Entry, notes []ImportedNote) int {
	added := 0
	for _, n := range notes {
		if n.Text == "" || n.Author == "" {
			r.log.Warn(ctx, "skipping malformed imported note", "registro_id", e.ID)
			continue
		}
		if n.Author != models.AuthorMentor {
			continue
		}

		exists, err := r.store.NoteExists(ctx, userID, e.ID, n.Text, models.AuthorMentor)
		if err != nil {
			r.log.Error(ctx, "failed to check for existing mentor note", "registro_id", e.ID, "error", err)
			continue
		}
		if exists {
			continue
		}

		if _, err := r.store.AddNote(ctx, userID, toNote(e.ID, n)); err != nil {
			r.log.Error(ctx, "failed to insert mentor note", "registro_id", e.ID, "error", err)
			continue
		}
		added++
	}
	return added
}

func (r *Reconciler) createSuggested(ctx context.Context, userID string, imp *ImportedEntry) (*models.Entry, error) {
	e := imp.Entry
	e.ID = ""
	e.UserID = userID

	labels := make(models.StringList, 0, len(imp.Labels)+1)
	labels = append(labels, imp.Labels...)
	if !labels.Contains(common.MentorSuggestionLabel) {
		labels = append(labels, common.MentorSuggestionLabel)
	}
	e.Labels = labels

	created, err := r.store.CreateEntry(ctx, userID, &e)
	if err != nil {
		return nil, fmt.Errorf("create suggested entry: %w", err)
	}
	r.log.Debug(ctx, "suggested entry created", "imported_id", imp.ID, "registro_id", created.ID)
	return created, nil
}

// copyNotes inserts every note of a newly suggested entry, whatever its
// author. Failures are logged per note.
func (r *Reconciler) copyNotes(ctx context.Context, userID string, e *models.Entry, notes []ImportedNote) {
	for _, n := range notes {
		if n.Text == "" || n.Author == "" {
			r.log.Warn(ctx, "skipping malformed imported note", "registro_id", e.ID)
			continue
		}
		if _, err := r.store.AddNote(ctx, userID, toNote(e.ID, n)); err != nil {
			r.log.Error(ctx, "failed to insert note for suggested entry", "registro_id", e.ID, "error", err)
		}
	}
}

func toNote(entryID string, n ImportedNote) *models.Note {
	note := &models.Note{
		EntryID: entryID,
		Text:    n.Text,
		Author:  n.Author,
		Privacy: n.Privacy,
		Kind:    n.Kind,
	}
	if note.Privacy == "" {
		note.Privacy = models.PrivacyPrivate
	}
	if n.CreatedAt != nil {
		note.CreatedAt = *n.CreatedAt
	}
	return note
}
