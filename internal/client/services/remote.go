package services

import (
	"context"

	"github.com/dmitrijs2005/conciencia/internal/client/client"
	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/models"
)

// RemoteStore lets the reconciler write into the server through the
// authenticated client. The server scopes every call to the session user,
// so a userID that differs from it is refused up front.
type RemoteStore struct {
	client client.Client
}

func NewRemoteStore(c client.Client) *RemoteStore {
	return &RemoteStore{client: c}
}

func (s *RemoteStore) check(userID string) error {
	if userID == "" || userID != s.client.Tokens().UserID {
		return common.ErrorUnauthorized
	}
	return nil
}

func (s *RemoteStore) FindEntry(ctx context.Context, userID, id string) (*models.Entry, error) {
	if err := s.check(userID); err != nil {
		return nil, err
	}
	return s.client.GetEntry(ctx, id)
}

func (s *RemoteStore) CreateEntry(ctx context.Context, userID string, e *models.Entry) (*models.Entry, error) {
	if err := s.check(userID); err != nil {
		return nil, err
	}
	return s.client.CreateEntry(ctx, e)
}

func (s *RemoteStore) NoteExists(ctx context.Context, userID, entryID, text string, author models.Author) (bool, error) {
	if err := s.check(userID); err != nil {
		return false, err
	}
	return s.client.NoteExists(ctx, entryID, text, author)
}

func (s *RemoteStore) AddNote(ctx context.Context, userID string, n *models.Note) (*models.Note, error) {
	if err := s.check(userID); err != nil {
		return nil, err
	}
	return s.client.AddNote(ctx, n)
}
