package cli

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/client/client"
	"github.com/dmitrijs2005/gopherblog/internal/client/config"
	"github.com/dmitrijs2005/gopherblog/internal/client/models"
	"github.com/dmitrijs2005/gopherblog/internal/client/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBlog struct {
	user    *models.User
	upd     models.ProfileUpdate
	posts   []models.Post
	created [3]string
	deleted string
	err     error
}

func (f *fakeBlog) Profile(context.Context) (*models.User, error) { return f.user, f.err }
func (f *fakeBlog) UpdateProfile(_ context.Context, upd models.ProfileUpdate) (*models.User, error) {
	f.upd = upd
	return f.user, f.err
}
func (f *fakeBlog) ListPosts(context.Context) ([]models.Post, error) { return f.posts, f.err }
func (f *fakeBlog) CreatePost(_ context.Context, title, content, categories string) (*models.CreatedPost, error) {
	f.created = [3]string{title, content, categories}
	if f.err != nil {
		return nil, f.err
	}
	return &models.CreatedPost{ID: "p1"}, nil
}
func (f *fakeBlog) DeletePost(_ context.Context, id string) error {
	f.deleted = id
	return f.err
}

func loggedIn(app *App) *App {
	app.session = &services.Session{Token: "t", Email: "ada@example.com", FullName: "Ada"}
	return app
}

func TestPosts_Lists(t *testing.T) {
	b := &fakeBlog{posts: []models.Post{{
		ID: "p1", Title: "Hello", Content: "line1\nline2", Categories: []string{"go", "web"},
		Author:    models.Author{FullName: "Ada", Email: "ada@example.com"},
		CreatedAt: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}}}
	app, out := newTestApp(&fakeAuth{}, b)

	require.NoError(t, app.Posts(context.Background()))

	s := out.String()
	assert.Contains(t, s, "p1  Hello")
	assert.Contains(t, s, "by Ada <ada@example.com>")
	assert.Contains(t, s, "[go, web]")
	assert.Contains(t, s, "    line1\n    line2")
}

func TestPosts_Empty(t *testing.T) {
	app, out := newTestApp(&fakeAuth{}, &fakeBlog{})
	require.NoError(t, app.Posts(context.Background()))
	assert.Equal(t, "No posts yet\n", out.String())
}

func TestPost_RequiresLogin(t *testing.T) {
	b := &fakeBlog{}
	app, out := newTestApp(&fakeAuth{}, b)

	require.NoError(t, app.Post(context.Background()))
	assert.Contains(t, out.String(), "Please log in first")
	assert.Empty(t, b.created[0])
}

func TestPost_Publishes(t *testing.T) {
	b := &fakeBlog{}
	app, out := newTestApp(&fakeAuth{}, b)
	loggedIn(app)

	stubInputs(t, []string{"Title", "Body\nmore", "go, web"})

	require.NoError(t, app.Post(context.Background()))
	assert.Equal(t, [3]string{"Title", "Body\nmore", "go, web"}, b.created)
	assert.Contains(t, out.String(), "Published p1")
}

func TestPost_ValidationMessage(t *testing.T) {
	b := &fakeBlog{err: services.ErrTitleAndContentRequired}
	app, out := newTestApp(&fakeAuth{}, b)
	loggedIn(app)

	stubInputs(t, []string{"", "", ""})

	require.Error(t, app.Post(context.Background()))
	assert.Contains(t, out.String(), "Error: title and content are required")
}

func TestDelete_IDFromArgsOrPrompt(t *testing.T) {
	b := &fakeBlog{}
	app, _ := newTestApp(&fakeAuth{}, b)
	loggedIn(app)

	require.NoError(t, app.Delete(context.Background(), []string{"abc"}))
	assert.Equal(t, "abc", b.deleted)

	stubInputs(t, []string{"def"})
	require.NoError(t, app.Delete(context.Background(), nil))
	assert.Equal(t, "def", b.deleted)
}

func TestDelete_NotFoundOrUnauthorized(t *testing.T) {
	b := &fakeBlog{err: &client.APIError{StatusCode: 404, Message: "Blog not found or unauthorized"}}
	app, out := newTestApp(&fakeAuth{}, b)
	loggedIn(app)

	require.Error(t, app.Delete(context.Background(), []string{"abc"}))
	assert.Contains(t, out.String(), "Error: Blog not found or unauthorized")
	assert.True(t, app.isLoggedIn())
}

func TestExpiredTokenDropsSession(t *testing.T) {
	f := &fakeAuth{}
	b := &fakeBlog{err: &client.APIError{StatusCode: 401, Message: "Invalid token"}}
	app, out := newTestApp(f, b)
	loggedIn(app)

	require.Error(t, app.Delete(context.Background(), []string{"abc"}))
	assert.Contains(t, out.String(), "Session expired")
	assert.True(t, f.logoutCalled)
	assert.False(t, app.isLoggedIn())
}

func TestProfile_Show(t *testing.T) {
	age, img := 36, "x.png"
	b := &fakeBlog{user: &models.User{FullName: "Ada", Email: "ada@example.com", Age: &age, Image: &img}}
	app, out := newTestApp(&fakeAuth{}, b)
	app.config = &config.Config{ServerEndpointAddr: "http://localhost:3000/"}
	loggedIn(app)

	require.NoError(t, app.Profile(context.Background(), nil))

	s := out.String()
	assert.Contains(t, s, "Name:  Ada")
	assert.Contains(t, s, "Age:   36")
	assert.Contains(t, s, "Image: http://localhost:3000/uploads/x.png")
	assert.NotContains(t, s, "Bio:")
}

func TestProfile_Edit(t *testing.T) {
	b := &fakeBlog{user: &models.User{FullName: "Ada L.", Email: "ada@example.com"}}
	app, out := newTestApp(&fakeAuth{}, b)
	loggedIn(app)

	stubInputs(t, []string{"Ada L.", "", "hello", "/tmp/me.png"})

	require.NoError(t, app.Profile(context.Background(), []string{"edit"}))

	require.NotNil(t, b.upd.FullName)
	assert.Equal(t, "Ada L.", *b.upd.FullName)
	assert.Nil(t, b.upd.Age)
	require.NotNil(t, b.upd.Bio)
	assert.Equal(t, "hello", *b.upd.Bio)
	assert.Equal(t, "/tmp/me.png", b.upd.ImagePath)
	assert.Equal(t, "Ada L.", app.session.FullName)
	assert.Contains(t, out.String(), "Profile updated")
}

func TestProfile_EditBadAge(t *testing.T) {
	b := &fakeBlog{}
	app, out := newTestApp(&fakeAuth{}, b)
	loggedIn(app)

	stubInputs(t, []string{"", "old"})

	require.Error(t, app.Profile(context.Background(), []string{"edit"}))
	assert.Contains(t, out.String(), "Age must be a number")
}
