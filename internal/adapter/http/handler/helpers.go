package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/opencap/internal/adapter/http/dto"
	"github.com/iho/opencap/internal/domain"
	"github.com/iho/opencap/internal/numeric"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrRoundNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrChainEmpty),
		errors.Is(err, domain.ErrChainExists):
		return http.StatusConflict
	case errors.Is(err, numeric.ErrNotANumber),
		errors.Is(err, domain.ErrNegativeAmount),
		errors.Is(err, domain.ErrOwnershipOutOfRange),
		errors.Is(err, domain.ErrEquityOutOfRange),
		errors.Is(err, domain.ErrZeroPostMoney),
		errors.Is(err, domain.ErrNonPositivePostMoney),
		errors.Is(err, domain.ErrInvalidRoundName),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidCurrency):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
