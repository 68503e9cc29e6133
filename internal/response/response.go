package response

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"blogapi/internal/apperror"
)

// ErrorResponse is the single error body shape of the API.
type ErrorResponse struct {
	Error      string            `json:"error"`
	Message    string            `json:"message"`
	StatusCode int               `json:"statusCode"`
	Fields     map[string]string `json:"fields,omitempty"`
}

// MessageResponse wraps mutation results as {data, message}.
type MessageResponse struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, code int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal Server Error","message":"Failed to marshal JSON response","statusCode":500}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(body)
}

// Error writes err in the uniform error shape. 5xx causes are logged, never
// sent to the client.
func Error(w http.ResponseWriter, log *slog.Logger, err error) {
	code := apperror.HTTPStatus(err)
	if code >= http.StatusInternalServerError && log != nil {
		log.Error("request failed", "error", err)
	}

	body := ErrorResponse{
		Error:      http.StatusText(code),
		Message:    apperror.Message(err),
		StatusCode: code,
	}

	var ve *apperror.ValidationError
	if errors.As(err, &ve) {
		body.Fields = ve.Fields
	}

	JSON(w, code, body)
}

// ErrorMessage writes a fixed status and message, for failures that happen
// before any service is involved (bad JSON, missing token).
func ErrorMessage(w http.ResponseWriter, code int, message string) {
	JSON(w, code, ErrorResponse{
		Error:      http.StatusText(code),
		Message:    message,
		StatusCode: code,
	})
}
