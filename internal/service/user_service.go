package service

import (
	"context"
	"log/slog"
	"slices"

	"blogapi/internal/apperror"
	"blogapi/internal/database"
	"blogapi/internal/models"
	"blogapi/internal/query"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

// Relations that FindOne can eager-load.
const (
	RelationPosts     = "posts"
	RelationPostCount = "_count"
)

// FindUserParams selects a user by ID or, when ID is zero, by Email.
type FindUserParams struct {
	ID        int64
	Email     string
	Relations []string
}

type UserService interface {
	CreateUser(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	FindAll(ctx context.Context, in query.Input) (*models.Page[models.User], error)
	FindOne(ctx context.Context, params FindUserParams) (*models.User, error)
	UpdateUser(ctx context.Context, userID int64, req models.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) (*models.User, error)
}

type userService struct {
	userRepo  repository.UserRepository
	postRepo  repository.PostRepository
	imageRepo repository.ImageRepository
	tx        database.Transactor
	creds     CredentialService
	storage   storage.Storage
	log       *slog.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
	imageRepo repository.ImageRepository,
	tx database.Transactor,
	creds CredentialService,
	storage storage.Storage,
	log *slog.Logger,
) UserService {
	return &userService{
		userRepo:  userRepo,
		postRepo:  postRepo,
		imageRepo: imageRepo,
		tx:        tx,
		creds:     creds,
		storage:   storage,
		log:       log,
	}
}

func (s *userService) CreateUser(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	hashed, err := s.creds.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
	}

	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

func (s *userService) FindAll(ctx context.Context, in query.Input) (*models.Page[models.User], error) {
	d := query.Normalize(in)

	var (
		users []models.User
		total int
	)

	err := s.tx.WithTx(ctx, database.ReadSnapshot, func(ctx context.Context, tx database.DBTX) error {
		repo := s.userRepo.WithTx(tx)

		var err error
		if users, err = repo.ListUsers(ctx, d); err != nil {
			return err
		}
		total, err = repo.CountUsers(ctx, d)
		return err
	})
	if err != nil {
		return nil, err
	}

	for i := range users {
		users[i].Sanitize()
	}

	return &models.Page[models.User]{
		Data:  users,
		Page:  d.Page,
		Size:  d.Size,
		Total: total,
		Sort:  d.Sort,
		Order: d.Order,
	}, nil
}

func (s *userService) FindOne(ctx context.Context, params FindUserParams) (*models.User, error) {
	if params.ID == 0 && params.Email == "" {
		return nil, apperror.Validation("id", "Either id or email must be provided")
	}

	var (
		user *models.User
		err  error
	)
	if params.ID != 0 {
		user, err = s.userRepo.GetUserByID(ctx, params.ID)
	} else {
		user, err = s.userRepo.GetUserByEmail(ctx, params.Email)
	}
	if err != nil {
		return nil, err
	}

	if slices.Contains(params.Relations, RelationPosts) {
		posts, err := s.postRepo.GetByAuthorID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.Posts = posts
	}

	if slices.Contains(params.Relations, RelationPostCount) {
		count, err := s.postRepo.CountByAuthorID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		user.Count = &models.UserCount{Posts: count}
	}

	return user.Sanitize(), nil
}

func (s *userService) UpdateUser(ctx context.Context, userID int64, req models.UpdateUserRequest) (*models.User, error) {
	patch := repository.UserPatch{
		Username: req.Username,
		Email:    req.Email,
	}

	if req.Password != nil {
		hashed, err := s.creds.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hashed
	}

	user, err := s.userRepo.UpdateUser(ctx, userID, patch)
	if err != nil {
		return nil, err
	}

	return user.Sanitize(), nil
}

// DeleteUser removes the user together with their posts. Stored images are
// cleaned up once the database delete has committed.
func (s *userService) DeleteUser(ctx context.Context, userID int64) (*models.User, error) {
	var (
		user    *models.User
		objects []string
	)

	err := s.tx.WithTx(ctx, nil, func(ctx context.Context, tx database.DBTX) error {
		images, err := s.imageRepo.WithTx(tx).GetByAuthorID(ctx, userID)
		if err != nil {
			return err
		}

		if user, err = s.userRepo.WithTx(tx).DeleteUser(ctx, userID); err != nil {
			return err
		}

		objects = objectNames(images)
		return nil
	})
	if err != nil {
		return nil, err
	}

	removeObjects(ctx, s.storage, s.log, objects)

	return user.Sanitize(), nil
}
