package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blogapi/internal/apperror"
	"blogapi/internal/database"
	"blogapi/internal/models"

	"github.com/google/uuid"
)

const imageColumns = `id, post_id, object_name, url, content_type, size, created_at`

type ImageRepositoryImpl struct {
	db database.DBTX
}

func NewImageRepository(db database.DBTX) *ImageRepositoryImpl {
	return &ImageRepositoryImpl{db: db}
}

func (r *ImageRepositoryImpl) WithTx(tx database.DBTX) ImageRepository {
	return &ImageRepositoryImpl{db: tx}
}

func (r *ImageRepositoryImpl) Create(ctx context.Context, image *models.Image) error {
	query := `
		INSERT INTO post_images (id, post_id, object_name, url, content_type, size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	if image.ImageID == "" {
		image.ImageID = uuid.New().String()
	}

	if image.CreatedAt.IsZero() {
		image.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		image.ImageID,
		image.PostID,
		image.ObjectName,
		image.ImageURL,
		image.ContentType,
		image.Size,
		image.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperror.NotFound("Post not found")
		}
		return fmt.Errorf("create image: %w", err)
	}

	return nil
}

func (r *ImageRepositoryImpl) GetByID(ctx context.Context, postID int64, imageID string) (*models.Image, error) {
	if _, err := uuid.Parse(imageID); err != nil {
		return nil, apperror.NotFound("Image not found")
	}

	query := `SELECT ` + imageColumns + ` FROM post_images WHERE id = $1 AND post_id = $2`

	var image models.Image
	err := r.db.GetContext(ctx, &image, query, imageID, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Image not found")
		}
		return nil, fmt.Errorf("get image: %w", err)
	}

	return &image, nil
}

func (r *ImageRepositoryImpl) GetByPostID(ctx context.Context, postID int64) ([]models.Image, error) {
	query := `SELECT ` + imageColumns + ` FROM post_images WHERE post_id = $1 ORDER BY created_at, id`

	images := []models.Image{}
	if err := r.db.SelectContext(ctx, &images, query, postID); err != nil {
		return nil, fmt.Errorf("get images by post: %w", err)
	}

	return images, nil
}

// GetByAuthorID lists the images attached to any post of the author.
func (r *ImageRepositoryImpl) GetByAuthorID(ctx context.Context, authorID int64) ([]models.Image, error) {
	query := `
		SELECT i.id, i.post_id, i.object_name, i.url, i.content_type, i.size, i.created_at
		FROM post_images i
		JOIN posts p ON p.id = i.post_id
		WHERE p.author_id = $1`

	images := []models.Image{}
	if err := r.db.SelectContext(ctx, &images, query, authorID); err != nil {
		return nil, fmt.Errorf("get images by author: %w", err)
	}

	return images, nil
}

func (r *ImageRepositoryImpl) Delete(ctx context.Context, imageID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM post_images WHERE id = $1`, imageID)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete image: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return apperror.NotFound("Image not found")
	}

	return nil
}
