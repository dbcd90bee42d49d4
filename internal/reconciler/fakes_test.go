package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/logging"
	"github.com/dmitrijs2005/conciencia/internal/models"
)

type fakeStore struct {
	entries map[string]*models.Entry
	notes   []*models.Note
	nextID  int

	findErr   map[string]error
	createErr error
	existsErr error
	addErr    error
	calls     []string
}

func newFakeStore(existing ...*models.Entry) *fakeStore {
	s := &fakeStore{entries: map[string]*models.Entry{}, findErr: map[string]error{}}
	for _, e := range existing {
		s.entries[e.ID] = e
	}
	return s
}

func (s *fakeStore) FindEntry(_ context.Context, userID, id string) (*models.Entry, error) {
	s.calls = append(s.calls, "find:"+id)
	if err := s.findErr[id]; err != nil {
		return nil, err
	}
	e, ok := s.entries[id]
	if !ok || e.UserID != userID {
		return nil, common.ErrorNotFound
	}
	return e, nil
}

func (s *fakeStore) CreateEntry(_ context.Context, userID string, e *models.Entry) (*models.Entry, error) {
	s.calls = append(s.calls, "create")
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	cp := *e
	cp.ID = fmt.Sprintf("new-%d", s.nextID)
	cp.UserID = userID
	s.entries[cp.ID] = &cp
	return &cp, nil
}

func (s *fakeStore) NoteExists(_ context.Context, userID, entryID, text string, author models.Author) (bool, error) {
	s.calls = append(s.calls, "exists:"+entryID)
	if s.existsErr != nil {
		return false, s.existsErr
	}
	for _, n := range s.notes {
		if n.UserID == userID && n.EntryID == entryID && n.Text == text && n.Author == author {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) AddNote(_ context.Context, userID string, n *models.Note) (*models.Note, error) {
	s.calls = append(s.calls, "note:"+n.EntryID)
	if s.addErr != nil {
		return nil, s.addErr
	}
	cp := *n
	cp.UserID = userID
	s.notes = append(s.notes, &cp)
	return &cp, nil
}

func (s *fakeStore) notesFor(entryID string) []*models.Note {
	var out []*models.Note
	for _, n := range s.notes {
		if n.EntryID == entryID {
			out = append(out, n)
		}
	}
	return out
}

func (s *fakeStore) suggested() []*models.Entry {
	var out []*models.Entry
	for _, e := range s.entries {
		if e.Labels.Contains(common.MentorSuggestionLabel) {
			out = append(out, e)
		}
	}
	return out
}

type fakeSuggestions struct {
	value  *models.Suggestion
	setErr error
}

func (f *fakeSuggestions) Get(context.Context) (*models.Suggestion, error) { return f.value, nil }

func (f *fakeSuggestions) Set(_ context.Context, s models.Suggestion) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.value = &s
	return nil
}

func (f *fakeSuggestions) Clear(context.Context) error {
	f.value = nil
	return nil
}

type fakeSession string

func (s fakeSession) CurrentUserID(context.Context) (string, bool) {
	return string(s), s != ""
}

// recordingLogger keeps the messages logged at each level.
type recordingLogger struct {
	mu    *sync.Mutex
	warns *[]string
	errs  *[]string
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{mu: &sync.Mutex{}, warns: &[]string{}, errs: &[]string{}}
}

func (l recordingLogger) Debug(context.Context, string, ...any) {}
func (l recordingLogger) Info(context.Context, string, ...any)  {}

func (l recordingLogger) Warn(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.warns = append(*l.warns, msg)
}

func (l recordingLogger) Error(_ context.Context, msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*l.errs = append(*l.errs, msg)
}

func (l recordingLogger) With(...any) logging.Logger { return l }

var errBoom = errors.New("boom")
