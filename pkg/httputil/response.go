package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperr "github.com/matzehuels/jsonscope/pkg/errors"
)

// ErrorBody is the JSON error envelope.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail is the payload of [ErrorBody].
type ErrorDetail struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

// WriteJSON writes v as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

// WriteError writes err as an [ErrorBody] and returns the status used.
func WriteError(w http.ResponseWriter, err error) int {
	status := StatusFor(err)
	code := apperr.GetCode(err)
	msg := apperr.UserMessage(err)

	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		code = apperr.ErrCodeInvalidInput
		msg = fmt.Sprintf("request body exceeds %d bytes", maxErr.Limit)
	case code == "":
		code = apperr.ErrCodeInternal
		msg = "internal error"
	case status == http.StatusInternalServerError:
		msg = "internal error"
	}

	_ = WriteJSON(w, status, ErrorBody{Error: ErrorDetail{Code: code, Message: msg}})
	return status
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch {
	case apperr.IsInvalid(err):
		return http.StatusBadRequest
	case apperr.IsNotFound(err):
		return http.StatusNotFound
	}
	switch apperr.GetCode(err) {
	case apperr.ErrCodeRender:
		return http.StatusUnprocessableEntity
	case apperr.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case apperr.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperr.ErrCodeUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// ReadBody reads at most limit bytes of r's body.
func ReadBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
}

// DecodeJSON decodes r's body into v. Unknown fields and trailing data are
// rejected with INVALID_INPUT.
func DecodeJSON(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return err
		}
		return apperr.Wrap(apperr.ErrCodeInvalidInput, err, "invalid request body: %v", err)
	}
	if dec.More() {
		return apperr.New(apperr.ErrCodeInvalidInput, "invalid request body: trailing data")
	}
	return nil
}
