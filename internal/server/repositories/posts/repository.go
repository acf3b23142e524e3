package posts

import (
	"context"

	"github.com/dmitrijs2005/gopherblog/internal/server/models"
)

// Repository is the post collection.
type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	ListWithAuthors(ctx context.Context) ([]*models.PostWithAuthor, error)
	FindByIDAndAuthor(ctx context.Context, id, authorID string) (*models.Post, error)
	DeleteByID(ctx context.Context, id string) error
}
