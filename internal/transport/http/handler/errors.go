package handler

import (
	"errors"
	"net/http"

	"github.com/go-ulidgen/internal/domain"
)

// httpStatus maps engine errors to response codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrConflictingTimestampSource),
		errors.Is(err, domain.ErrTimestampOutOfRange),
		errors.Is(err, domain.ErrInvalidDatetimeFormat),
		errors.Is(err, domain.ErrInvalidLength),
		errors.Is(err, domain.ErrInvalidCharacter),
		errors.Is(err, domain.ErrOverflow):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrMonotonicOverflow):
		return http.StatusConflict
	case errors.Is(err, domain.ErrBatchTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// httpError writes err with its mapped status. Internal errors are not echoed to the client.
func httpError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	writeError(w, status, msg)
}
