// Package memory holds map-backed repositories with the same contracts as
// the PostgreSQL ones. They ignore the DBTX they are handed, so a
// transaction around them only serializes through their own mutex.
package memory

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/dbx"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/posts"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/users"
	"github.com/google/uuid"
)

type store struct {
	mu    sync.RWMutex
	users map[string]*models.User
	posts map[string]*models.Post
	now   func() time.Time
}

// InMemoryRepositoryManager vends repositories sharing one in-memory store.
type InMemoryRepositoryManager struct {
	s *store
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{s: &store{
		users: map[string]*models.User{},
		posts: map[string]*models.Post{},
		now:   time.Now,
	}}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *InMemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return (*userRepo)(m.s) }

func (m *InMemoryRepositoryManager) Posts(dbx.DBTX) posts.Repository { return (*postRepo)(m.s) }

type userRepo store

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, common.ErrEmailTaken
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = r.now()
	c := *user
	r.users[user.ID] = &c
	return user, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			c := *u
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	c := *u
	return &c, nil
}

func (r *userRepo) UpdateProfile(ctx context.Context, id string, patch models.ProfilePatch) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if patch.FullName != nil {
		u.FullName = *patch.FullName
	}
	if patch.Age != nil {
		age := *patch.Age
		u.Age = &age
	}
	if patch.Bio != nil {
		bio := *patch.Bio
		u.Bio = &bio
	}
	if patch.Image != nil {
		img := *patch.Image
		u.Image = &img
	}
	c := *u
	return &c, nil
}

type postRepo store

func (r *postRepo) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[post.AuthorID]; !ok {
		return nil, common.ErrorNotFound
	}
	if post.Categories == nil {
		post.Categories = []string{}
	}
	post.ID = uuid.NewString()
	post.CreatedAt = r.now()
	c := *post
	c.Categories = append([]string(nil), post.Categories...)
	r.posts[post.ID] = &c
	return post, nil
}

func (r *postRepo) ListWithAuthors(ctx context.Context) ([]*models.PostWithAuthor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.PostWithAuthor, 0, len(r.posts))
	for _, p := range r.posts {
		author, ok := r.users[p.AuthorID]
		if !ok {
			continue
		}
		result = append(result, &models.PostWithAuthor{
			ID:         p.ID,
			Title:      p.Title,
			Content:    p.Content,
			Categories: append([]string{}, p.Categories...),
			Author:     author.Public(),
			CreatedAt:  p.CreatedAt,
		})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *postRepo) FindByIDAndAuthor(ctx context.Context, id, authorID string) (*models.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok || p.AuthorID != authorID {
		return nil, common.ErrorNotFound
	}
	c := *p
	return &c, nil
}

func (r *postRepo) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.posts, id)
	return nil
}
