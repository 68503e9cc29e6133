package service

import (
	"context"
	"errors"
	"sync"

	"blogapi/internal/apperror"
	"blogapi/internal/models"
	"blogapi/internal/repository"
)

type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error)
}

type authService struct {
	users    UserService
	userRepo repository.UserRepository
	creds    CredentialService

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users UserService, userRepo repository.UserRepository, creds CredentialService) AuthService {
	return &authService{
		users:    users,
		userRepo: userRepo,
		creds:    creds,
	}
}

func (s *authService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return s.users.CreateUser(ctx, req)
}

// Login answers ErrInvalidCredentials for an unknown email and for a wrong
// password alike.
func (s *authService) Login(ctx context.Context, req models.LoginRequest) (*models.User, string, error) {
	user, err := s.userRepo.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.creds.VerifyPassword(req.Password, s.dummyPasswordHash())
			return nil, "", apperror.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.creds.VerifyPassword(req.Password, user.Password) {
		return nil, "", apperror.ErrInvalidCredentials
	}

	token, err := s.creds.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user.Sanitize(), token, nil
}

// dummyPasswordHash is compared against when no user matches, so an unknown
// email costs the same bcrypt work as a wrong password.
func (s *authService) dummyPasswordHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.creds.HashPassword("no-such-user#0")
	})
	return s.dummyHash
}
