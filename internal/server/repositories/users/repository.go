package users

import (
	"context"

	"github.com/dmitrijs2005/conciencia/internal/server/models"
)

type Repository interface {
	// Create returns common.ErrorAlreadyExists when the login is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
