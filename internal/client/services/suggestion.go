package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/dmitrijs2005/conciencia/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/conciencia/internal/common"
	"github.com/dmitrijs2005/conciencia/internal/models"
)

// SuggestionKey is the local_state key holding the mentor suggestion.
const SuggestionKey = "mentorFocusedIntention"

// SuggestionStore keeps the single mentor suggestion as JSON in the local
// key/value store. A new suggestion replaces the previous one.
type SuggestionStore struct {
	repo metadata.Repository
}

func NewSuggestionStore(repo metadata.Repository) *SuggestionStore {
	return &SuggestionStore{repo: repo}
}

// Get returns nil when no suggestion is stored.
func (s *SuggestionStore) Get(ctx context.Context) (*models.Suggestion, error) {
	raw, err := s.repo.Get(ctx, SuggestionKey)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var sug models.Suggestion
	if err := sonic.Unmarshal(raw, &sug); err != nil {
		return nil, fmt.Errorf("decode stored suggestion: %w", err)
	}
	return &sug, nil
}

func (s *SuggestionStore) Set(ctx context.Context, sug models.Suggestion) error {
	if strings.TrimSpace(sug.EntryID) == "" {
		return fmt.Errorf("%w: suggestion without registro_id", common.ErrorValidation)
	}
	raw, err := sonic.Marshal(sug)
	if err != nil {
		return fmt.Errorf("encode suggestion: %w", err)
	}
	return s.repo.Set(ctx, SuggestionKey, raw)
}

func (s *SuggestionStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, SuggestionKey)
}
