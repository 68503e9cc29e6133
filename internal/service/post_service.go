package service

import (
	"context"
	"io"
	"log/slog"

	"blogapi/internal/apperror"
	"blogapi/internal/database"
	"blogapi/internal/models"
	"blogapi/internal/query"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

// ImageUpload is one file taken from a multipart request.
type ImageUpload struct {
	FileName    string
	ContentType string
	Size        int64
	File        io.Reader
}

type PostService interface {
	CreatePost(ctx context.Context, authorID int64, req models.CreatePostRequest) (*models.Post, error)
	FindAll(ctx context.Context, in query.Input, authorID *int64) (*models.Page[models.Post], error)
	FindOne(ctx context.Context, postID int64) (*models.Post, error)
	UpdatePost(ctx context.Context, postID, authorID int64, req models.UpdatePostRequest) (*models.Post, error)
	DeletePost(ctx context.Context, postID, authorID int64) (*models.Post, error)
	AddImage(ctx context.Context, postID, authorID int64, upload ImageUpload) (*models.Image, error)
	DeleteImage(ctx context.Context, postID, authorID int64, imageID string) error
}

type postService struct {
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	tx        database.Transactor
	storage   storage.Storage
	log       *slog.Logger
}

func NewPostService(
	postRepo repository.PostRepository,
	imageRepo repository.ImageRepository,
	tx database.Transactor,
	storage storage.Storage,
	log *slog.Logger,
) PostService {
	return &postService{
		postRepo:  postRepo,
		imageRepo: imageRepo,
		tx:        tx,
		storage:   storage,
		log:       log,
	}
}

func (p *postService) CreatePost(ctx context.Context, authorID int64, req models.CreatePostRequest) (*models.Post, error) {
	post := &models.Post{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: authorID,
	}
	if req.Published != nil {
		post.Published = *req.Published
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// FindAll pages through posts. A non-nil authorID limits both the page and
// the total to that author's posts.
func (p *postService) FindAll(ctx context.Context, in query.Input, authorID *int64) (*models.Page[models.Post], error) {
	filter := repository.PostFilter{
		Descriptor: query.Normalize(in),
		AuthorID:   authorID,
	}

	var (
		posts []models.Post
		total int
	)

	err := p.tx.WithTx(ctx, database.ReadSnapshot, func(ctx context.Context, tx database.DBTX) error {
		repo := p.postRepo.WithTx(tx)

		var err error
		if posts, err = repo.List(ctx, filter); err != nil {
			return err
		}
		total, err = repo.Count(ctx, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &models.Page[models.Post]{
		Data:  posts,
		Page:  filter.Page,
		Size:  filter.Size,
		Total: total,
		Sort:  filter.Sort,
		Order: filter.Order,
	}, nil
}

func (p *postService) FindOne(ctx context.Context, postID int64) (*models.Post, error) {
	var post *models.Post

	err := p.tx.WithTx(ctx, database.ReadSnapshot, func(ctx context.Context, tx database.DBTX) error {
		var err error
		if post, err = p.postRepo.WithTx(tx).GetByID(ctx, postID); err != nil {
			return err
		}
		post.Images, err = p.imageRepo.WithTx(tx).GetByPostID(ctx, postID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) UpdatePost(ctx context.Context, postID, authorID int64, req models.UpdatePostRequest) (*models.Post, error) {
	patch := repository.PostPatch{
		Title:     req.Title,
		Content:   req.Content,
		Published: req.Published,
	}

	var post *models.Post

	err := p.tx.WithTx(ctx, nil, func(ctx context.Context, tx database.DBTX) error {
		repo := p.postRepo.WithTx(tx)

		if _, err := repo.GetOwned(ctx, postID, authorID); err != nil {
			return err
		}

		var err error
		post, err = repo.Update(ctx, postID, authorID, patch)
		return err
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

func (p *postService) DeletePost(ctx context.Context, postID, authorID int64) (*models.Post, error) {
	if postID == 0 || authorID == 0 {
		return nil, apperror.BadRequest("Invalid Request")
	}

	var (
		post    *models.Post
		objects []string
	)

	err := p.tx.WithTx(ctx, nil, func(ctx context.Context, tx database.DBTX) error {
		repo := p.postRepo.WithTx(tx)

		if _, err := repo.GetOwned(ctx, postID, authorID); err != nil {
			return err
		}

		images, err := p.imageRepo.WithTx(tx).GetByPostID(ctx, postID)
		if err != nil {
			return err
		}

		if post, err = repo.Delete(ctx, postID, authorID); err != nil {
			return err
		}

		objects = objectNames(images)
		return nil
	})
	if err != nil {
		return nil, err
	}

	removeObjects(ctx, p.storage, p.log, objects)

	return post, nil
}

// AddImage stores the file and records it while the post row is locked. If
// the record cannot be committed the uploaded object is removed again.
func (p *postService) AddImage(ctx context.Context, postID, authorID int64, upload ImageUpload) (*models.Image, error) {
	if _, ok := storage.ImageTypes[upload.ContentType]; !ok {
		return nil, apperror.Validation("image", "image must be a jpeg, png, gif or webp file")
	}

	if p.storage == nil {
		return nil, apperror.BadRequest("Image storage is not configured")
	}

	var (
		image      *models.Image
		objectName string
	)

	err := p.tx.WithTx(ctx, nil, func(ctx context.Context, tx database.DBTX) error {
		if _, err := p.postRepo.WithTx(tx).GetOwned(ctx, postID, authorID); err != nil {
			return err
		}

		name, url, err := p.storage.UploadImage(ctx, postID, upload.FileName, upload.ContentType, upload.File, upload.Size)
		if err != nil {
			return err
		}
		objectName = name

		image = &models.Image{
			PostID:      postID,
			ObjectName:  name,
			ImageURL:    url,
			ContentType: upload.ContentType,
			Size:        upload.Size,
		}
		return p.imageRepo.WithTx(tx).Create(ctx, image)
	})
	if err != nil {
		if objectName != "" {
			removeObjects(ctx, p.storage, p.log, []string{objectName})
		}
		return nil, err
	}

	return image, nil
}

func (p *postService) DeleteImage(ctx context.Context, postID, authorID int64, imageID string) error {
	var objectName string

	err := p.tx.WithTx(ctx, nil, func(ctx context.Context, tx database.DBTX) error {
		if _, err := p.postRepo.WithTx(tx).GetOwned(ctx, postID, authorID); err != nil {
			return err
		}

		images := p.imageRepo.WithTx(tx)

		image, err := images.GetByID(ctx, postID, imageID)
		if err != nil {
			return err
		}

		if err := images.Delete(ctx, image.ImageID); err != nil {
			return err
		}

		objectName = image.ObjectName
		return nil
	})
	if err != nil {
		return err
	}

	removeObjects(ctx, p.storage, p.log, []string{objectName})

	return nil
}
