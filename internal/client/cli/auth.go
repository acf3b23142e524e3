package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gopherblog/internal/client/models"
	"github.com/dmitrijs2005/gopherblog/internal/common"
)

// Input seams, swapped in tests.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
	getMultiline  = GetMultiline
)

// Signup asks for name, email and the password twice, creates the account
// and signs in with the returned token.
func (a *App) Signup(ctx context.Context) error {
	fullName, err := getSimpleText(a.reader, "Full name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	confirm, err := getPassword(a.reader, "Confirm password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	s, err := a.auth.Signup(ctx, models.SignupRequest{
		FullName:        fullName,
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
	if err != nil {
		return a.report(ctx, err)
	}

	a.session = s
	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Welcome, %s!\n", s.FullName)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	s, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return a.report(ctx, err)
	}

	a.session = s
	a.setMode(ModeOnline)
	fmt.Fprintf(a.out, "Logged in as %s\n", s.Email)
	return nil
}

// Logout drops the local session; the token itself stays valid on the
// server until it expires.
func (a *App) Logout(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	if err := a.auth.Logout(ctx); err != nil {
		a.session = nil
		return a.report(ctx, err)
	}
	a.session = nil
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) Whoami(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s> (id %s)\n", a.session.FullName, a.session.Email, a.session.UserID)
	return nil
}
