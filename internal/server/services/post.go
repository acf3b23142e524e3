package services

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/dbx"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
	"github.com/dmitrijs2005/gopherblog/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// CreatePostInput is a new post after transport decoding.
type CreatePostInput struct {
	Title      string
	Content    string
	Categories []string
}

type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// Create stores a post written by authorID.
func (s *PostService) Create(ctx context.Context, authorID string, in CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	content := strings.TrimSpace(in.Content)
	if title == "" || content == "" {
		return nil, common.NewValidationError("Title and content are required")
	}

	categories := make([]string, 0, len(in.Categories))
	for _, c := range in.Categories {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}

	post, err := s.repomanager.Posts(s.db).Create(ctx, &models.Post{
		Title:      title,
		Content:    content,
		Categories: categories,
		AuthorID:   authorID,
	})
	if err != nil {
		return nil, internal(err)
	}
	return post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.PostWithAuthor, error) {
	posts, err := s.repomanager.Posts(s.db).ListWithAuthors(ctx)
	if err != nil {
		return nil, internal(err)
	}
	return posts, nil
}

// Delete removes post postID if userID wrote it. A post that does not
// exist and a post written by someone else both yield
// common.ErrNotFoundOrUnauthorized. The lookup and the delete run in one
// transaction with the row locked in between.
func (s *PostService) Delete(ctx context.Context, userID, postID string) error {
	id, err := uuid.Parse(postID)
	if err != nil {
		return common.ErrNotFoundOrUnauthorized
	}
	postID = id.String()

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)

		if _, err := repo.FindByIDAndAuthor(ctx, postID, userID); err != nil {
			return err
		}
		return repo.DeleteByID(ctx, postID)
	})

	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrNotFoundOrUnauthorized
	default:
		return internal(err)
	}
}
