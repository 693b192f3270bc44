package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	fgerrors "github.com/matzehuels/forcegraph/pkg/errors"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    fgerrors.Code `json:"code"`
	Message string        `json:"message"`
}

// classify gives uncoded errors from the transport a code.
func classify(err error) error {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return fgerrors.Wrap(fgerrors.ErrCodeTooLarge, err, "request body exceeds %d bytes", tooLarge.Limit)
	case fgerrors.GetCode(err) != "":
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return fgerrors.Wrap(fgerrors.ErrCodeTimeout, err, "request timed out")
	default:
		return fgerrors.Wrap(fgerrors.ErrCodeInternal, err, "internal error")
	}
}

func writeError(w http.ResponseWriter, err error) {
	err = classify(err)
	writeJSON(w, fgerrors.HTTPStatus(err), errorResponse{
		Code:    fgerrors.GetCode(err),
		Message: fgerrors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errNotFound(path string) error {
	return fgerrors.New(fgerrors.ErrCodeNotFound, "no route for %s", path)
}

func writeMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{
		Code:    fgerrors.ErrCodeUnsupported,
		Message: r.Method + " is not allowed on " + r.URL.Path,
	})
}
