package adaptor

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/usecase"

	"go.uber.org/zap"
)

func TestWriteServiceErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("movie x: %w", repository.ErrNotFound), http.StatusNotFound},
		{"seat conflict", &entity.SeatConflictError{Seats: []string{"A1"}}, http.StatusConflict},
		{"invalid transition", fmt.Errorf("pay in state %q: %w", "paid", entity.ErrInvalidTransition), http.StatusConflict},
		{"duplicate", fmt.Errorf("user: %w", repository.ErrDuplicate), http.StatusConflict},
		{"age violation", &entity.AgeViolationError{Rating: entity.Rating19Plus}, http.StatusBadRequest},
		{"seat count mismatch", fmt.Errorf("1 seats for a party of 2: %w", usecase.ErrSeatCountMismatch), http.StatusBadRequest},
		{"forbidden", fmt.Errorf("reservation x: %w", usecase.ErrForbidden), http.StatusForbidden},
		{"bad credentials", usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad input", fmt.Errorf("%w: movie ID %q is not a UUID", usecase.ErrBadInput, "nope"), http.StatusBadRequest},
		// Internal errors stay 500 even when their message happens to
		// contain words like "invalid".
		{"internal mentioning invalid", errors.New("store row has invalid checksum"), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, zap.NewNop(), tc.err, "test operation")
			if rec.Code != tc.want {
				t.Errorf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}
