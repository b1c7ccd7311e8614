// Package response provides shared JSON response helpers for HTTP handlers.
package response

import (
	"log"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
)

// ContentTypeJSON is the media type of every JSON body the API writes.
const ContentTypeJSON = "application/json; charset=utf-8"

// Envelope is the standard API error envelope.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// JSON writes a JSON-encoded payload with the given HTTP status code. The
// payload is encoded before anything is written, so an encoding failure
// produces a 500 instead of a truncated body.
func JSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("response: encode %T: %v", payload, err)
		Raw(w, http.StatusInternalServerError, ContentTypeJSON, []byte(`{"success":false,"error":"internal server error"}`))
		return
	}
	Raw(w, status, ContentTypeJSON, body)
}

// Raw writes an already encoded body with the given status and content type.
func Raw(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Error writes an error response with the given status and message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Success: false, Error: message})
}

// BadRequest writes a 400 response.
func BadRequest(w http.ResponseWriter, message string) {
	Error(w, http.StatusBadRequest, message)
}

// Unauthorized writes a 401 response.
func Unauthorized(w http.ResponseWriter, message string) {
	Error(w, http.StatusUnauthorized, message)
}

// TooLarge writes a 413 response.
func TooLarge(w http.ResponseWriter, message string) {
	Error(w, http.StatusRequestEntityTooLarge, message)
}

// InternalError writes a 500 response with a generic message.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "internal server error")
}
