package wire

import (
	"movie-reservation/internal/adaptor"
	"movie-reservation/internal/data/repository"
	"movie-reservation/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReservation(
	r chi.Router,
	reservationHandler *adaptor.ReservationHandler,
	repo *repository.Repository,
	log *zap.Logger,
) {
	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/reservations - book seats
		r.Post("/api/reservations", reservationHandler.CreateReservation)

		// GET /api/user/reservations - booking history (insertion order)
		r.Get("/api/user/reservations", reservationHandler.ListReservations)

		// POST /api/reservations/{id}/pay - pay a pending reservation
		r.Post("/api/reservations/{id}/pay", reservationHandler.Pay)

		// POST /api/reservations/{id}/cancel - cancel and release seats
		r.Post("/api/reservations/{id}/cancel", reservationHandler.Cancel)
	})
}
