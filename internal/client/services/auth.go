// Package services contains the application services of the Conciencia CLI:
// authentication and session handling, journal operations, import and export.
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/conciencia/internal/client/client"
	"github.com/dmitrijs2005/conciencia/internal/common"
)

// AuthService defines authentication operations for the CLI.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Register(ctx context.Context, login, password string) error
	Login(ctx context.Context, login, password string) error
	Logout(ctx context.Context) error
	// Resume restores a saved session and reports whether one exists.
	Resume(ctx context.Context) (bool, error)
	CurrentUserID(ctx context.Context) (string, bool)
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session *SessionStore
}

func NewAuthService(c client.Client, session *SessionStore) AuthService {
	return &authService{client: c, session: session}
}

func (a *authService) Register(ctx context.Context, login, password string) error {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return fmt.Errorf("%w: login and password are required", common.ErrorValidation)
	}
	if _, err := a.client.Register(ctx, login, password); err != nil {
		return err
	}
	return nil
}

// Login authenticates against the server and stores the session locally.
func (a *authService) Login(ctx context.Context, login, password string) error {
	tokens, err := a.client.Login(ctx, strings.TrimSpace(login), password)
	if err != nil {
		return fmt.Errorf("login error: %w", err)
	}
	if err := a.session.Save(ctx, tokens); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	return nil
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) Resume(ctx context.Context) (bool, error) {
	return a.session.Restore(ctx)
}

func (a *authService) CurrentUserID(ctx context.Context) (string, bool) {
	return a.session.CurrentUserID(ctx)
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(context.Context) error {
	return a.client.Close()
}
