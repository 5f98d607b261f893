// Package handlers provides the REST control API for the test bench.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/retailqa/scanbench/backend/internal/errors"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps an application error to an HTTP status and a structured
// error body.
func writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)

	status := http.StatusInternalServerError
	switch code {
	case errors.ErrValidation, errors.ErrInvalid, errors.ErrMissingGoodsID,
		errors.ErrInvalidProductType, errors.ErrInvalidPrefix,
		errors.ErrUnknownTemplate, errors.ErrUnknownFieldConfig,
		errors.ErrUnknownMutation, errors.ErrNothingSelected,
		errors.ErrNoSession, errors.ErrEncodingSkipped:
		status = http.StatusBadRequest
	case errors.ErrNotFound, errors.ErrItemNotFound, errors.ErrFolderNotFound:
		status = http.StatusNotFound
	}

	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"code":    string(code),
			"message": err.Error(),
		},
	})
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrInvalid, "malformed request body", err)
	}
	return nil
}
