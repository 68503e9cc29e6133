package service

import (
	"log/slog"

	"blogapi/internal/config"
	"blogapi/internal/repository"
	"blogapi/internal/storage"
)

type Service struct {
	User        UserService
	Post        PostService
	Auth        AuthService
	Credentials CredentialService
	Health      HealthService
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, log *slog.Logger) *Service {
	creds := NewCredentialService(cfg)
	users := NewUserService(rep.User, rep.Post, rep.Image, rep.Tx, creds, storage, log)

	return &Service{
		User:        users,
		Post:        NewPostService(rep.Post, rep.Image, rep.Tx, storage, log),
		Auth:        NewAuthService(users, rep.User, creds),
		Credentials: creds,
		Health:      NewHealthService(rep.Health),
	}
}
