package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"blogapi/internal/apperror"
	"blogapi/internal/config"
	"blogapi/internal/middleware"
	"blogapi/internal/response"
	"blogapi/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

const maxJSONBody = 1 << 20

type Handlers struct {
	UserService   service.UserService
	AuthService   service.AuthService
	PostService   service.PostService
	HealthService service.HealthService
	Cfg           *config.Config
	Validate      *validator.Validate
	Log           *slog.Logger
}

func NewHandlers(services *service.Service, cfg *config.Config, log *slog.Logger) *Handlers {
	return &Handlers{
		UserService:   services.User,
		AuthService:   services.Auth,
		PostService:   services.Post,
		HealthService: services.Health,
		Cfg:           cfg,
		Validate:      NewValidator(),
		Log:           log,
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	response.Error(w, h.Log.With("request_id", middleware.RequestIDFromContext(r.Context())), err)
}

// decodeJSON reads a bounded JSON body into dst and validates it.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody))

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return apperror.BadRequest("Request body too large")
		case errors.Is(err, io.EOF):
			return apperror.BadRequest("Request body is empty")
		default:
			return apperror.BadRequest("Invalid request body")
		}
	}

	return h.validate(dst)
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.BadRequest("Invalid " + name)
	}
	return id, nil
}

// currentUserID is only called behind AuthMiddleware.
func currentUserID(r *http.Request) (int64, error) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		return 0, apperror.Unauthorized("Authorization required")
	}
	return userID, nil
}
