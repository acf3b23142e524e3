package services

import (
	"context"

	"github.com/dmitrijs2005/gopherblog/internal/client/models"
)

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	token string

	authRes   *models.AuthResponse
	authErr   error
	logoutErr error
	pingErr   error
	closed    bool

	lastSignup models.SignupRequest
	lastEmail  string
	lastPass   string
	lastPost   models.NewPost
	lastDelete string
	lastUpdate models.ProfileUpdate

	user      *models.User
	posts     []models.Post
	created   *models.CreatedPost
	deleteErr error
}

func (f *fakeClient) SetToken(token string) { f.token = token }

func (f *fakeClient) Signup(_ context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	f.lastSignup = req
	return f.authRes, f.authErr
}

func (f *fakeClient) Login(_ context.Context, email, password string) (*models.AuthResponse, error) {
	f.lastEmail, f.lastPass = email, password
	return f.authRes, f.authErr
}

func (f *fakeClient) Logout(context.Context) error { return f.logoutErr }

func (f *fakeClient) Profile(context.Context) (*models.User, error) { return f.user, nil }

func (f *fakeClient) UpdateProfile(_ context.Context, upd models.ProfileUpdate) (*models.User, error) {
	f.lastUpdate = upd
	return f.user, nil
}

func (f *fakeClient) ListPosts(context.Context) ([]models.Post, error) { return f.posts, nil }

func (f *fakeClient) CreatePost(_ context.Context, p models.NewPost) (*models.CreatedPost, error) {
	f.lastPost = p
	return f.created, nil
}

func (f *fakeClient) DeletePost(_ context.Context, id string) error {
	f.lastDelete = id
	return f.deleteErr
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }

func (f *fakeClient) Close() error {
	f.closed = true
	return nil
}
