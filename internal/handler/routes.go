package handlers

import (
	"net/http"

	"blogapi/internal/middleware"
	"blogapi/internal/response"

	"github.com/gorilla/mux"
)

// Routes registers every endpoint. Routes that act for a user are wrapped in
// AuthMiddleware one by one, so GET /post/{id} stays public while PATCH on
// the same path does not.
func (h *Handlers) Routes(tokens middleware.TokenParser) *mux.Router {
	r := mux.NewRouter()
	auth := middleware.AuthMiddleware(tokens)

	protected := func(fn http.HandlerFunc) http.Handler {
		return auth(fn)
	}

	r.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", h.Register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", h.Login).Methods(http.MethodPost)

	// /post/me is matched before /post/{id}.
	r.Handle("/post/me", protected(h.GetMyPosts)).Methods(http.MethodGet)
	r.HandleFunc("/post", h.GetPosts).Methods(http.MethodGet)
	r.Handle("/post", protected(h.CreatePost)).Methods(http.MethodPost)
	r.HandleFunc("/post/{id:[0-9]+}", h.GetPost).Methods(http.MethodGet)
	r.Handle("/post/{id:[0-9]+}", protected(h.UpdatePost)).Methods(http.MethodPatch)
	r.Handle("/post/{id:[0-9]+}", protected(h.DeletePost)).Methods(http.MethodDelete)
	r.Handle("/post/{id:[0-9]+}/images", protected(h.AddImage)).Methods(http.MethodPost)
	r.Handle("/post/{id:[0-9]+}/images/{imageId}", protected(h.DeleteImage)).Methods(http.MethodDelete)

	r.Handle("/user/me", protected(h.GetCurrentUser)).Methods(http.MethodGet)
	r.HandleFunc("/user", h.GetUsers).Methods(http.MethodGet)
	r.Handle("/user", protected(h.UpdateUser)).Methods(http.MethodPatch)
	r.Handle("/user", protected(h.DeleteUser)).Methods(http.MethodDelete)
	r.HandleFunc("/user/{id:[0-9]+}", h.GetUser).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.ErrorMessage(w, http.StatusNotFound, "Route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.ErrorMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}
