// Package respond writes JSON bodies and the {"error":{"message":...}}
// envelope shared by handlers and middlewares.
package respond

import (
	"bytes"
	"encoding/json"
	"net/http"
)

// ErrorBody is the inner object of the error envelope.
type ErrorBody struct {
	Message string `json:"message"`
}

// Envelope is the shape of every error response.
// Details is only filled outside production.
type Envelope struct {
	Error   ErrorBody `json:"error"`
	Details string    `json:"details,omitempty"`
}

// encodeFailure is written when v cannot be marshalled; the status has not
// been sent yet at that point.
var encodeFailure = []byte(`{"error":{"message":"server error"}}` + "\n")

// JSON writes v with the given status. v is encoded before the header goes
// out so an unencodable value becomes a 500 instead of an empty body.
func JSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		status = http.StatusInternalServerError
		buf.Reset()
		buf.Write(encodeFailure)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Error writes the error envelope with message.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{Error: ErrorBody{Message: message}})
}

// NoContent writes an empty 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
