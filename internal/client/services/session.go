package services

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/dmitrijs2005/conciencia/internal/client/client"
	"github.com/dmitrijs2005/conciencia/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/conciencia/internal/logging"
)

// SessionKey is the local_state key holding the logged-in session.
const SessionKey = "session"

// SessionStore persists the token pair of the logged-in user so that a new
// CLI run resumes the session. It also answers who the current user is.
type SessionStore struct {
	repo   metadata.Repository
	client client.Client
	log    logging.Logger
}

// NewSessionStore binds the store to c and keeps rotated tokens on disk.
func NewSessionStore(repo metadata.Repository, c client.Client, log logging.Logger) *SessionStore {
	s := &SessionStore{repo: repo, client: c, log: log.With("module", "session")}
	c.OnTokensRefreshed(func(t client.Tokens) {
		if err := s.save(context.Background(), t); err != nil {
			s.log.Error(context.Background(), "failed to persist refreshed tokens", "error", err)
		}
	})
	return s
}

// Restore loads a saved session into the client. It reports whether one was
// found.
func (s *SessionStore) Restore(ctx context.Context) (bool, error) {
	raw, err := s.repo.Get(ctx, SessionKey)
	if err != nil {
		return false, err
	}
	if len(raw) == 0 {
		return false, nil
	}

	var t client.Tokens
	if err := sonic.Unmarshal(raw, &t); err != nil {
		s.log.Warn(ctx, "discarding unreadable session", "error", err)
		return false, s.repo.Delete(ctx, SessionKey)
	}
	if t.UserID == "" || t.AccessToken == "" {
		return false, nil
	}
	s.client.SetTokens(t)
	return true, nil
}

// Save makes t the current session.
func (s *SessionStore) Save(ctx context.Context, t client.Tokens) error {
	s.client.SetTokens(t)
	return s.save(ctx, t)
}

func (s *SessionStore) save(ctx context.Context, t client.Tokens) error {
	raw, err := sonic.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.repo.Set(ctx, SessionKey, raw)
}

// CurrentUserID returns the logged-in user, if any.
func (s *SessionStore) CurrentUserID(context.Context) (string, bool) {
	id := s.client.Tokens().UserID
	return id, id != ""
}

// Logout forgets the session locally. The mentor suggestion is kept.
func (s *SessionStore) Logout(ctx context.Context) error {
	s.client.SetTokens(client.Tokens{})
	return s.repo.Delete(ctx, SessionKey)
}
