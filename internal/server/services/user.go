// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, and the owner's profile.
package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/cryptox"
	"github.com/dmitrijs2005/gopherblog/internal/server/auth"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gopherblog/internal/server/storage"
)

// RegisterInput is a signup request after transport decoding.
type RegisterInput struct {
	FullName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthResult is what signup and login hand back to the caller.
type AuthResult struct {
	Token string
	User  models.PublicUser
}

// ProfileUpdate lists the profile fields to change; nil fields stay as
// they are.
type ProfileUpdate struct {
	FullName *string
	Age      *int
	Bio      *string
}

// UserService provides account operations:
// - Register: create a user and sign them in
// - Login: verify credentials and mint a token
// - Profile / UpdateProfile: read and change the caller's own profile
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      cryptox.PasswordHasher
	issuer      *auth.Issuer
	images      storage.ImageStore
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher cryptox.PasswordHasher,
	issuer *auth.Issuer, images storage.ImageStore) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		issuer:      issuer,
		images:      images,
	}
}

// Register checks that the email is free and the two passwords agree, in
// that order, then stores the user and issues a token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetUserByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return nil, common.ErrEmailTaken
	case !errors.Is(err, common.ErrorNotFound):
		return nil, internal(err)
	}

	if in.Password != in.ConfirmPassword {
		return nil, common.ErrPasswordsMismatch
	}

	hash, err := s.hasher.Hash([]byte(in.Password))
	if err != nil {
		switch {
		case errors.Is(err, cryptox.ErrPasswordTooLong):
			return nil, common.NewValidationError("Password is too long")
		case errors.Is(err, cryptox.ErrEmptyPassword):
			return nil, common.NewValidationError("Password is required")
		}
		return nil, internal(err)
	}

	user, err := repo.Create(ctx, &models.User{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(in.FullName),
	})
	if err != nil {
		if errors.Is(err, common.ErrEmailTaken) {
			return nil, err
		}
		return nil, internal(err)
	}

	return s.signIn(user)
}

// Login verifies email and password and issues a token.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, internal(err)
	}

	if !s.hasher.Verify([]byte(password), user.PasswordHash) {
		return nil, common.ErrIncorrectPassword
	}

	return s.signIn(user)
}

// Profile returns the user with id userID.
func (s *UserService) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, internal(err)
	}
	return user, nil
}

// UpdateProfile applies upd to the caller's profile and, when image is
// given, stores it and points the profile at it. A stored image is removed
// again if the profile cannot be updated.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate, image *storage.Image) (*models.User, error) {
	patch := models.ProfilePatch{Age: upd.Age, Bio: upd.Bio}

	if upd.FullName != nil {
		name := strings.TrimSpace(*upd.FullName)
		if name == "" {
			return nil, common.NewValidationError("Full name cannot be empty")
		}
		patch.FullName = &name
	}
	if upd.Age != nil && (*upd.Age < 0 || *upd.Age > 150) {
		return nil, common.NewValidationError("Age must be between 0 and 150")
	}

	if image != nil {
		name, err := s.images.Save(ctx, image)
		if err != nil {
			return nil, internal(err)
		}
		patch.Image = &name
	}

	user, err := s.repomanager.Users(s.db).UpdateProfile(ctx, userID, patch)
	if err != nil {
		if patch.Image != nil {
			if rmErr := s.images.Remove(ctx, *patch.Image); rmErr != nil {
				err = errors.Join(err, rmErr)
			}
		}
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, internal(err)
	}
	return user, nil
}

func (s *UserService) signIn(user *models.User) (*AuthResult, error) {
	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, internal(err)
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// internal marks err as an internal failure while keeping the cause for
// logging.
func internal(err error) error {
	return errors.Join(common.ErrorInternal, err)
}
