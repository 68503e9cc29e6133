package handlers

import (
	"net/http"

	"blogapi/internal/response"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status := h.HealthService.Check(r.Context())

	code := http.StatusOK
	if !status.Healthy() {
		code = http.StatusServiceUnavailable
	}

	response.JSON(w, code, status)
}
