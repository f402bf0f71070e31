// Package jsonio decodes JSON request bodies and writes the
// {"message": ..., "data": ...} envelope every API response uses.
package jsonio

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// MaxBodyBytes caps request bodies.
const MaxBodyBytes = 1 << 20

// ErrInvalidBody wraps every decode or validation failure.
var ErrInvalidBody = errors.New("invalid request body")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Response is the envelope written by Write.
type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Decode reads a single JSON object from r's body into v, rejecting unknown
// fields and trailing data, then runs struct validation tags.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidBody)
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data", ErrInvalidBody)
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBody, err)
	}
	return nil
}

// Write sends status with a {message,data} body.
func Write(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(Response{Message: message, Data: data})
}

// Message sends status with a message and no data.
func Message(w http.ResponseWriter, status int, message string) {
	Write(w, status, message, nil)
}
