package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"blogapi/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Storage keeps post image bytes outside the database.
type Storage interface {
	UploadImage(ctx context.Context, postID int64, fileName, contentType string, file io.Reader, size int64) (objectName, url string, err error)
	DeleteImage(ctx context.Context, objectName string) error
}

// ImageTypes maps the accepted image content types to the extension used
// when the upload carries none.
var ImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type MinIOClient struct {
	client *minio.Client
	cfg    config.MinIO
}

// NewMinIOClient connects to MinIO and creates the bucket if needed.
func NewMinIOClient(ctx context.Context, cfg config.MinIO) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.BucketName, err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region})
		if err != nil {
			return nil, fmt.Errorf("create bucket %q: %w", cfg.BucketName, err)
		}
	}

	return &MinIOClient{client: client, cfg: cfg}, nil
}

// Connect returns a ready Storage, or nil when MinIO is not configured or not
// reachable. Image uploads answer 400 while storage is nil.
func Connect(ctx context.Context, cfg config.MinIO, log *slog.Logger) Storage {
	if cfg.Endpoint == "" {
		log.Warn("object storage disabled: no endpoint configured")
		return nil
	}

	client, err := NewMinIOClient(ctx, cfg)
	if err != nil {
		log.Warn("object storage unavailable, image uploads disabled", "endpoint", cfg.Endpoint, "error", err)
		return nil
	}

	log.Info("object storage ready", "bucket", cfg.BucketName)
	return client
}

// ObjectName lays objects out as posts/<postID>/<yyyy>/<mm>/<id><ext>.
func ObjectName(postID int64, fileName, contentType string, now time.Time, id uuid.UUID) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ImageTypes[contentType]
	}

	return fmt.Sprintf("posts/%d/%d/%02d/%s%s", postID, now.Year(), int(now.Month()), id.String(), ext)
}

// ObjectURL is the public address of an object in the bucket.
func ObjectURL(cfg config.MinIO, objectName string) string {
	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, cfg.Endpoint, cfg.BucketName, objectName)
}

func (m *MinIOClient) UploadImage(ctx context.Context, postID int64, fileName, contentType string, file io.Reader, size int64) (string, string, error) {
	if contentType == "" {
		contentType = mime.TypeByExtension(strings.ToLower(filepath.Ext(fileName)))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	now := time.Now().UTC()
	objectName := ObjectName(postID, fileName, contentType, now, uuid.New())

	_, err := m.client.PutObject(ctx, m.cfg.BucketName, objectName, file, size,
		minio.PutObjectOptions{
			ContentType: contentType,
			UserMetadata: map[string]string{
				"original-filename": filepath.Base(fileName),
				"post-id":           strconv.FormatInt(postID, 10),
				"uploaded-at":       now.Format(time.RFC3339),
			},
		})
	if err != nil {
		return "", "", fmt.Errorf("upload %q: %w", objectName, err)
	}

	return objectName, ObjectURL(m.cfg, objectName), nil
}

func (m *MinIOClient) DeleteImage(ctx context.Context, objectName string) error {
	err := m.client.RemoveObject(ctx, m.cfg.BucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("remove %q: %w", objectName, err)
	}
	return nil
}
