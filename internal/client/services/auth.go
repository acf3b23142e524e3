// Package services contains application services for the blog CLI: the
// session (signup, login, logout, restoring a saved token) and the blog
// operations built on top of it.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gopherblog/internal/client/client"
	"github.com/dmitrijs2005/gopherblog/internal/client/models"
	"github.com/dmitrijs2005/gopherblog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/gopherblog/internal/dbx"
)

var ErrNotLoggedIn = errors.New("not logged in")

// Session is what the CLI remembers about the signed-in user.
type Session struct {
	Token    string
	UserID   string
	Email    string
	FullName string
}

// AuthService defines session operations for the CLI.
type AuthService interface {
	Signup(ctx context.Context, req models.SignupRequest) (*Session, error)
	Login(ctx context.Context, email string, password []byte) (*Session, error)
	Restore(ctx context.Context) (*Session, error)
	Logout(ctx context.Context) error
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client client.Client
	db     *sql.DB
}

// NewAuthService constructs an AuthService bound to the given API client and
// local database.
func NewAuthService(c client.Client, db *sql.DB) AuthService {
	return &authService{client: c, db: db}
}

func (a *authService) Signup(ctx context.Context, req models.SignupRequest) (*Session, error) {
	res, err := a.client.Signup(ctx, req)
	if err != nil {
		return nil, err
	}
	return a.start(ctx, res)
}

func (a *authService) Login(ctx context.Context, email string, password []byte) (*Session, error) {
	res, err := a.client.Login(ctx, email, string(password))
	if err != nil {
		return nil, err
	}
	return a.start(ctx, res)
}

func (a *authService) start(ctx context.Context, res *models.AuthResponse) (*Session, error) {
	s := &Session{
		Token:    res.Token,
		UserID:   res.User.ID,
		Email:    res.User.Email,
		FullName: res.User.FullName,
	}

	if err := a.save(ctx, s); err != nil {
		return nil, fmt.Errorf("session saving error: %w", err)
	}

	a.client.SetToken(s.Token)
	return s, nil
}

func (a *authService) save(ctx context.Context, s *Session) error {
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Clear(ctx); err != nil {
			return err
		}
		values := map[string]string{
			metadata.KeyToken:    s.Token,
			metadata.KeyUserID:   s.UserID,
			metadata.KeyEmail:    s.Email,
			metadata.KeyFullName: s.FullName,
		}
		for k, v := range values {
			if err := repo.Set(ctx, k, []byte(v)); err != nil {
				return err
			}
		}
		return nil
	})
}

// Restore loads the session saved by a previous run. It does not check the
// token with the server; an expired token shows up on the first gated call.
func (a *authService) Restore(ctx context.Context) (*Session, error) {
	m, err := metadata.NewSQLiteRepository(a.db).List(ctx)
	if err != nil {
		return nil, err
	}

	token := string(m[metadata.KeyToken])
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	a.client.SetToken(token)
	return &Session{
		Token:    token,
		UserID:   string(m[metadata.KeyUserID]),
		Email:    string(m[metadata.KeyEmail]),
		FullName: string(m[metadata.KeyFullName]),
	}, nil
}

// Logout tells the server (best effort) and always forgets the local session.
func (a *authService) Logout(ctx context.Context) error {
	serverErr := a.client.Logout(ctx)
	if errors.Is(serverErr, client.ErrUnavailable) || errors.Is(serverErr, client.ErrUnauthorized) {
		serverErr = nil
	}

	a.client.SetToken("")
	if err := metadata.NewSQLiteRepository(a.db).Clear(ctx); err != nil {
		return err
	}
	return serverErr
}

func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
