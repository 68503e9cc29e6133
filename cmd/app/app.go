package app

import (
	"context"
	"log/slog"
	"net/http"

	"blogapi/internal/config"
	"blogapi/internal/database"
	handlers "blogapi/internal/handler"
	"blogapi/internal/middleware"
	"blogapi/internal/repository"
	"blogapi/internal/service"
	"blogapi/internal/storage"
)

type App struct {
	DB       *database.DB
	Services *service.Service
	Handler  http.Handler
}

// New connects the database and object storage and builds the full handler
// chain. Call Close when the server has stopped.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*App, error) {
	db, err := database.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, storage.Connect(ctx, cfg.MinIO, log), log)

	h := handlers.NewHandlers(services, cfg, log)

	return &App{
		DB:       db,
		Services: services,
		Handler:  middleware.Standard(h.Routes(services.Credentials), log),
	}, nil
}

func (a *App) Close() error {
	return a.DB.CloseDB()
}
