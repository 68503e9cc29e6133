package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogapi/internal/apperror"
	"blogapi/internal/database"
	"blogapi/internal/models"
)

const (
	postColumns = `id, title, content, published, author_id, created_at, updated_at`

	postWithAuthorSelect = `
		SELECT p.id, p.title, p.content, p.published, p.author_id, p.created_at, p.updated_at,
			u.id AS "author.id", u.username AS "author.username"
		FROM posts p
		JOIN users u ON u.id = p.author_id`
)

var postSortColumns = map[string]string{
	"id":         "p.id",
	"title":      "p.title",
	"created_at": "p.created_at",
	"updated_at": "p.updated_at",
}

type PostRepositoryImpl struct {
	DB database.DBTX
}

func NewPostRepository(db database.DBTX) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) WithTx(tx database.DBTX) PostRepository {
	return &PostRepositoryImpl{DB: tx}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, published, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + postColumns

	err := r.DB.GetContext(ctx, post, query, post.Title, post.Content, post.Published, post.AuthorID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("Author not found")
		}
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

// GetByID returns the post with the public projection of its author.
func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	query := postWithAuthorSelect + ` WHERE p.id = $1`

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) GetByAuthorID(ctx context.Context, authorID int64) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE author_id = $1 ORDER BY id DESC`

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, query, authorID); err != nil {
		return nil, fmt.Errorf("get posts by author: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) CountByAuthorID(ctx context.Context, authorID int64) (int, error) {
	var total int
	if err := r.DB.GetContext(ctx, &total, `SELECT COUNT(*) FROM posts WHERE author_id = $1`, authorID); err != nil {
		return 0, fmt.Errorf("count posts by author: %w", err)
	}
	return total, nil
}

func postConditions(f PostFilter) ([]string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)

	if f.AuthorID != nil {
		conds = append(conds, "p.author_id = ?")
		args = append(args, *f.AuthorID)
	}

	if f.Search != nil {
		pattern := containsPattern(*f.Search)
		conds = append(conds, "(p.title ILIKE ? OR u.username ILIKE ?)")
		args = append(args, pattern, pattern)
	}

	switch f.Published {
	case "true":
		conds = append(conds, "p.published = ?")
		args = append(args, true)
	case "false":
		conds = append(conds, "p.published = ?")
		args = append(args, false)
	}

	return conds, args
}

func (r *PostRepositoryImpl) List(ctx context.Context, f PostFilter) ([]models.Post, error) {
	conds, args := postConditions(f)

	q := postWithAuthorSelect +
		where(conds) +
		orderBy(postSortColumns, "p.id", f.Sort, f.Order) +
		` LIMIT ? OFFSET ?`
	args = append(args, f.Size, f.Skip)

	posts := []models.Post{}
	if err := r.DB.SelectContext(ctx, &posts, rebind(q), args...); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

// Count applies the same filter as List.
func (r *PostRepositoryImpl) Count(ctx context.Context, f PostFilter) (int, error) {
	conds, args := postConditions(f)

	q := `SELECT COUNT(*) FROM posts p JOIN users u ON u.id = p.author_id` + where(conds)

	var total int
	if err := r.DB.GetContext(ctx, &total, rebind(q), args...); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}

	return total, nil
}

// GetOwned locks the post row for the rest of the transaction. A post that
// exists but belongs to someone else is reported as not found.
func (r *PostRepositoryImpl) GetOwned(ctx context.Context, postID, authorID int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1 AND author_id = $2 FOR UPDATE`

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, fmt.Errorf("get owned post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) Update(ctx context.Context, postID, authorID int64, patch PostPatch) (*models.Post, error) {
	query := `
		UPDATE posts SET
			title = COALESCE($1, title),
			content = COALESCE($2, content),
			published = COALESCE($3, published),
			updated_at = NOW()
		WHERE id = $4 AND author_id = $5
		RETURNING ` + postColumns

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, patch.Title, patch.Content, patch.Published, postID, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) Delete(ctx context.Context, postID, authorID int64) (*models.Post, error) {
	query := `DELETE FROM posts WHERE id = $1 AND author_id = $2 RETURNING ` + postColumns

	var post models.Post
	err := r.DB.GetContext(ctx, &post, query, postID, authorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Post not found")
		}
		return nil, fmt.Errorf("delete post: %w", err)
	}

	return &post, nil
}
