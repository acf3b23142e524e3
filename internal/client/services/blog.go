package services

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gopherblog/internal/client/client"
	"github.com/dmitrijs2005/gopherblog/internal/client/models"
)

var ErrTitleAndContentRequired = errors.New("title and content are required")

// BlogService covers the profile and post commands.
type BlogService interface {
	Profile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
	CreatePost(ctx context.Context, title, content, categories string) (*models.CreatedPost, error)
	DeletePost(ctx context.Context, id string) error
}

type blogService struct {
	client client.Client
}

func NewBlogService(c client.Client) BlogService {
	return &blogService{client: c}
}

func (b *blogService) Profile(ctx context.Context) (*models.User, error) {
	return b.client.Profile(ctx)
}

func (b *blogService) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.User, error) {
	return b.client.UpdateProfile(ctx, upd)
}

func (b *blogService) ListPosts(ctx context.Context) ([]models.Post, error) {
	return b.client.ListPosts(ctx)
}

// CreatePost checks the required fields locally and splits categories on
// commas, dropping blanks.
func (b *blogService) CreatePost(ctx context.Context, title, content, categories string) (*models.CreatedPost, error) {
	title, content = strings.TrimSpace(title), strings.TrimSpace(content)
	if title == "" || content == "" {
		return nil, ErrTitleAndContentRequired
	}

	return b.client.CreatePost(ctx, models.NewPost{
		Title:      title,
		Content:    content,
		Categories: SplitCategories(categories),
	})
}

func (b *blogService) DeletePost(ctx context.Context, id string) error {
	return b.client.DeletePost(ctx, strings.TrimSpace(id))
}

func SplitCategories(s string) []string {
	out := []string{}
	for _, c := range strings.Split(s, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}
