package handlers

import (
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"

	"blogapi/internal/apperror"
	"blogapi/internal/models"
	"blogapi/internal/query"
	"blogapi/internal/response"
	"blogapi/internal/service"

	"github.com/gorilla/mux"
)

var (
	postSortFields = []string{"id", "title", "created_at", "updated_at"}
	userSortFields = []string{"id", "username", "created_at", "updated_at"}
)

// listInput reads the paging parameters and rejects enum values the listing
// does not support. Numeric fields are never rejected.
func (h *Handlers) listInput(r *http.Request, sortFields []string) (query.Input, error) {
	in := query.FromValues(r.URL.Query())

	if err := h.validate(in); err != nil {
		return in, err
	}

	if in.Sort != "" && !slices.Contains(sortFields, in.Sort) {
		return in, apperror.Validation("sort", "sort must be one of: "+strings.Join(sortFields, ", "))
	}

	return in, nil
}

func (h *Handlers) GetPosts(w http.ResponseWriter, r *http.Request) {
	in, err := h.listInput(r, postSortFields)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.PostService.FindAll(r.Context(), in, nil)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, page)
}

func (h *Handlers) GetMyPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	in, err := h.listInput(r, postSortFields)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page, err := h.PostService.FindAll(r.Context(), in, &userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, page)
}

func (h *Handlers) GetPost(w http.ResponseWriter, r *http.Request) {
	postID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	post, err := h.PostService.FindOne(r.Context(), postID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{"data": post})
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.CreatePostRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, post)
}

func (h *Handlers) UpdatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	postID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	var req models.UpdatePostRequest
	if err := h.decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	post, err := h.PostService.UpdatePost(r.Context(), postID, userID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{Data: post, Message: "Updated successfully"})
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	postID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	post, err := h.PostService.DeletePost(r.Context(), postID, userID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{Data: post, Message: "Deleted successfully"})
}

func (h *Handlers) AddImage(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	postID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	// Multipart framing gets a little room on top of the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.MaxUploadSize+maxJSONBody)
	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.ErrorMessage(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		h.writeError(w, r, apperror.BadRequest("Invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		h.writeError(w, r, apperror.Validation("image", "image is required"))
		return
	}
	defer file.Close()

	if header.Size > h.Cfg.MaxUploadSize {
		response.ErrorMessage(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	// The declared part header is not trusted; the type comes from the bytes.
	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		h.writeError(w, r, apperror.BadRequest("Unreadable file"))
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		h.writeError(w, r, err)
		return
	}

	image, err := h.PostService.AddImage(r.Context(), postID, userID, service.ImageUpload{
		FileName:    header.Filename,
		ContentType: http.DetectContentType(sniff[:n]),
		Size:        header.Size,
		File:        file,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusCreated, image)
}

func (h *Handlers) DeleteImage(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	postID, err := pathID(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	imageID := mux.Vars(r)["imageId"]

	if err := h.PostService.DeleteImage(r.Context(), postID, userID, imageID); err != nil {
		h.writeError(w, r, err)
		return
	}

	response.JSON(w, http.StatusOK, response.MessageResponse{
		Data:    map[string]string{"id": imageID},
		Message: "Deleted successfully",
	})
}
