package handler

import (
	"errors"
	"net/http"

	"filedepot/internal/domain"
	"filedepot/internal/httputil"
)

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var dupErr *domain.DuplicateFileError

	switch {
	case errors.As(err, &dupErr):
		// Structured conflict so the client can offer replace/keep-both.
		httputil.RespondErrorWithExtras(w, http.StatusConflict, dupErr.Message, map[string]interface{}{
			"duplicate": true,
			"existing_file": map[string]interface{}{
				"id":   dupErr.ExistingID,
				"name": dupErr.ExistingName,
				"path": dupErr.ExistingPath,
			},
		})
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
