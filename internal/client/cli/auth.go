package cli

import (
	"context"
	"fmt"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for a login and a password and creates the account.
func (a *App) Register(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Usuario", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Register(ctx, login, password); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Cuenta creada. Ahora puedes usar 'login'.")
	return nil
}

// Login prompts for credentials and starts a session that survives restarts.
func (a *App) Login(ctx context.Context) error {
	login, err := getSimpleText(a.reader, "Usuario", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, login, password); err != nil {
		return err
	}
	a.setMode(ModeOnline)
	fmt.Fprintln(a.out, "Sesión iniciada.")
	return nil
}

// Logout forgets the local session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.lastDate = ""
	fmt.Fprintln(a.out, "Sesión cerrada.")
	return nil
}
