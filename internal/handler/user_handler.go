package handlers

import (
	"net/http"

	"blogapi/internal/models"
	"blogapi/internal/response"
	"blogapi/internal/service"
)

func (h *Handlers) GetUsers(w http.ResponseWriter, r *http.Request) {
	in, err := h.listInput(r, userSortFields)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.UserService.FindAll(r.Context(), in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, page)
}

func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.UserService.FindOne(r.Context(), service.FindUserParams{
		ID:        userID,
		Relations: []string{service.RelationPosts},
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"data": user})
}

func (h *Handlers) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.UserService.FindOne(r.Context(), service.FindUserParams{
		ID:        userID,
		Relations: []string{service.RelationPosts, service.RelationPostCount},
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"data": user})
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.UpdateUserRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.UserService.UpdateUser(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{Data: user, Message: "Updated successfully"})
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	user, err := h.UserService.DeleteUser(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{Data: user, Message: "Deleted successfully"})
}
