// Package posts provides the PostgreSQL-backed blog post repository.
package posts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gopherblog/internal/common"
	"github.com/dmitrijs2005/gopherblog/internal/dbx"
	"github.com/dmitrijs2005/gopherblog/internal/server/models"
)

// PostgresRepository implements post storage over a dbx.DBTX (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts post and fills in the generated id and creation time.
func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if post.Categories == nil {
		post.Categories = []string{}
	}
	categories, err := json.Marshal(post.Categories)
	if err != nil {
		return nil, fmt.Errorf("encode categories: %w", err)
	}

	query := `
		INSERT INTO posts (title, content, author_id, categories)
		VALUES ($1, $2, $3, $4::jsonb)
		RETURNING id, created_at
	`
	err = r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.AuthorID, string(categories)).
		Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return post, nil
}

// ListWithAuthors returns every post, newest first, with the author
// expanded to public fields.
func (r *PostgresRepository) ListWithAuthors(ctx context.Context) ([]*models.PostWithAuthor, error) {
	query := `
		SELECT p.id, p.title, p.content, p.categories, p.created_at, u.id, u.full_name, u.email
		FROM posts p
		JOIN users u ON u.id = p.author_id
		ORDER BY p.created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to select posts: %w", err)
	}
	defer rows.Close()

	result := []*models.PostWithAuthor{}
	for rows.Next() {
		var item models.PostWithAuthor
		var categories []byte
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Content, &categories, &item.CreatedAt,
			&item.Author.ID, &item.Author.FullName, &item.Author.Email,
		); err != nil {
			return nil, err
		}
		if item.Categories, err = decodeCategories(categories); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindByIDAndAuthor locks and returns the post only when both id and author
// match. Absence for either reason is common.ErrorNotFound.
func (r *PostgresRepository) FindByIDAndAuthor(ctx context.Context, id, authorID string) (*models.Post, error) {
	query := `
		SELECT id, title, content, categories, author_id, created_at FROM posts
		WHERE id = $1 AND author_id = $2
		FOR UPDATE
	`
	var post models.Post
	var categories []byte
	err := r.db.QueryRowContext(ctx, query, id, authorID).Scan(
		&post.ID, &post.Title, &post.Content, &categories, &post.AuthorID, &post.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	if post.Categories, err = decodeCategories(categories); err != nil {
		return nil, err
	}
	return &post, nil
}

// DeleteByID removes the post with id. Deleting a missing post is
// common.ErrorNotFound.
func (r *PostgresRepository) DeleteByID(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func decodeCategories(raw []byte) ([]string, error) {
	categories := []string{}
	if len(raw) == 0 {
		return categories, nil
	}
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return categories, nil
}
