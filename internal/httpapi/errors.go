package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/invotrack/invotrack/internal/httpapi/respond"
	"github.com/invotrack/invotrack/internal/storage"
)

// internalErrorMessage is the only text a client sees for unexpected
// failures. Internal error details go to the log, never over the wire.
const internalErrorMessage = "internal server error"

// storeError translates a storage failure into an HTTP response using the
// error taxonomy: ErrNotFound -> 404, uniqueness conflicts -> 409,
// ErrNegativeAmount -> 400, anything else -> 500 with a generic message.
// resource names what the 404 is about ("invoice", "user").
func storeError(w http.ResponseWriter, logger *slog.Logger, op, resource string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, storage.ErrEmailTaken):
		respond.Error(w, http.StatusConflict, storage.ErrEmailTaken.Error())
	case errors.Is(err, storage.ErrNumberTaken):
		respond.Error(w, http.StatusConflict, storage.ErrNumberTaken.Error())
	case errors.Is(err, storage.ErrNegativeAmount):
		respond.Error(w, http.StatusBadRequest, storage.ErrNegativeAmount.Error())
	default:
		logger.Error("store operation failed", "op", op, "error", err)
		respond.Error(w, http.StatusInternalServerError, internalErrorMessage)
	}
}
