package entries

import (
	"context"
	"time"

	"github.com/dmitrijs2005/conciencia/internal/models"
)

// Order selects the sort applied by List.
type Order int

const (
	// OrderStartDesc sorts by start time, newest first, undated last.
	OrderStartDesc Order = iota
	// OrderChronological sorts by start time ascending, undated last, then
	// by creation.
	OrderChronological
	// OrderPriority sorts by priority descending, unprioritized last, then
	// chronologically.
	OrderPriority
	// OrderCreatedDesc sorts by creation time, newest first.
	OrderCreatedDesc
)

// Filter narrows List. Zero values mean "no constraint".
type Filter struct {
	States      []models.State
	StartFrom   *time.Time
	StartTo     *time.Time
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Order       Order
	Limit       int
}

type Repository interface {
	Create(ctx context.Context, e *models.Entry) (*models.Entry, error)
	// GetByID returns common.ErrorNotFound when userID owns no entry id.
	GetByID(ctx context.Context, userID, id string) (*models.Entry, error)
	List(ctx context.Context, userID string, f Filter) ([]*models.Entry, error)
	// ListIntersecting returns entries in states whose [start, end] meets
	// [from, to), ordered by start.
	ListIntersecting(ctx context.Context, userID string, from, to time.Time, states []models.State) ([]*models.Entry, error)
	UpdateState(ctx context.Context, userID, id string, state models.State, now time.Time) (*models.Entry, error)
}
