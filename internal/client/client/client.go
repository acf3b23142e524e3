package client

import (
	"context"

	"github.com/dmitrijs2005/gopherblog/internal/client/models"
)

type Client interface {
	SetToken(token string)
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, p models.NewPost) (*models.CreatedPost, error)
	DeletePost(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}
