package http

import (
	"errors"
	"net/http"

	"github.com/vncsmyrnk/engage/internal/core/domain"
)

// writeServiceError maps domain sentinels to HTTP statuses. Anything
// unmapped is treated as an internal error.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrActivityNotFound),
		errors.Is(err, domain.ErrParticipantNotFound),
		errors.Is(err, domain.ErrLogoNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, domain.ErrInvalidActivityID),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidConfig):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, domain.ErrUnauthorized):
		http.Error(w, err.Error(), http.StatusForbidden)
	case errors.Is(err, domain.ErrAlreadyVoted),
		errors.Is(err, domain.ErrStaleRound),
		errors.Is(err, domain.ErrAlreadySolved):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, domain.ErrNotLive),
		errors.Is(err, domain.ErrActivityEnded),
		errors.Is(err, domain.ErrSubmissionLimitReached),
		errors.Is(err, domain.ErrMaxAttemptsReached):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
