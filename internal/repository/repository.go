package repository

import (
	"context"

	"blogapi/internal/database"
	"blogapi/internal/models"
	"blogapi/internal/query"

	"github.com/jmoiron/sqlx"
)

// UserPatch holds the columns an update may change. Nil leaves a column as is.
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
}

// PostPatch is the partial update of a post.
type PostPatch struct {
	Title     *string
	Content   *string
	Published *bool
}

// PostFilter narrows a post listing. AuthorID scopes it to one owner.
type PostFilter struct {
	query.Descriptor
	AuthorID *int64
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context, d query.Descriptor) ([]models.User, error)
	CountUsers(ctx context.Context, d query.Descriptor) (int, error)
	UpdateUser(ctx context.Context, userID int64, patch UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) (*models.User, error)
	WithTx(tx database.DBTX) UserRepository
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID int64) (*models.Post, error)
	GetByAuthorID(ctx context.Context, authorID int64) ([]models.Post, error)
	CountByAuthorID(ctx context.Context, authorID int64) (int, error)
	List(ctx context.Context, f PostFilter) ([]models.Post, error)
	Count(ctx context.Context, f PostFilter) (int, error)
	GetOwned(ctx context.Context, postID, authorID int64) (*models.Post, error)
	Update(ctx context.Context, postID, authorID int64, patch PostPatch) (*models.Post, error)
	Delete(ctx context.Context, postID, authorID int64) (*models.Post, error)
	WithTx(tx database.DBTX) PostRepository
}

type ImageRepository interface {
	Create(ctx context.Context, image *models.Image) error
	GetByID(ctx context.Context, postID int64, imageID string) (*models.Image, error)
	GetByPostID(ctx context.Context, postID int64) ([]models.Image, error)
	GetByAuthorID(ctx context.Context, authorID int64) ([]models.Image, error)
	Delete(ctx context.Context, imageID string) error
	WithTx(tx database.DBTX) ImageRepository
}

type HealthRepository interface {
	Ping(ctx context.Context) error
	CountTables(ctx context.Context) (int, error)
}

type Repository struct {
	User   UserRepository
	Post   PostRepository
	Image  ImageRepository
	Health HealthRepository
	Tx     database.Transactor
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		User:   NewUserRepository(db),
		Post:   NewPostRepository(db),
		Image:  NewImageRepository(db),
		Health: NewHealthRepository(db),
		Tx:     database.NewTransactor(db),
	}
}
