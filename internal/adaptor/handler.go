package adaptor

import (
	"errors"
	"net/http"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/usecase"
	"movie-reservation/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	Catalog     *CatalogHandler
	Reservation *ReservationHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		Catalog:     NewCatalogHandler(service.Catalog, log),
		Reservation: NewReservationHandler(service.Reservation, log),
	}
}

// writeServiceError translates engine errors into HTTP responses.
// Every mapping keys on a typed error; anything unrecognized is a 500.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var seatConflict *entity.SeatConflictError
	var ageViolation *entity.AgeViolationError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.As(err, &seatConflict):
		log.Warn(operation+" failed - seat conflict",
			zap.Error(err),
			zap.Strings("seats", seatConflict.Seats))
		utils.ResponseConflict(w, err.Error(), map[string]any{"seats": seatConflict.Seats})

	case errors.Is(err, entity.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid state", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.Is(err, repository.ErrDuplicate):
		log.Warn(operation+" failed - duplicate", zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case errors.As(err, &ageViolation):
		log.Warn(operation+" failed - age violation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrSeatCountMismatch):
		log.Warn(operation+" failed - seat count mismatch", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - bad credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, err.Error())

	case errors.Is(err, usecase.ErrBadInput):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
