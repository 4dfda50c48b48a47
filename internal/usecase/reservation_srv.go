package usecase

import (
	"context"
	"fmt"
	"time"

	"movie-reservation/internal/data/entity"
	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/request"
	"movie-reservation/internal/dto/response"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationService is the booking engine: it decides whether a
// booking is admissible, commits seats atomically, prices the ticket
// and drives the pending -> paid/cancelled state machine.
type ReservationService interface {
	CreateReservation(ctx context.Context, userPhone string, req *request.CreateReservationRequest) (*response.ReservationResponse, error)
	Pay(ctx context.Context, userPhone, reservationID, method string) (*response.ReservationResponse, error)
	Cancel(ctx context.Context, userPhone, reservationID string) (*response.ReservationResponse, error)
	ListReservations(ctx context.Context, userPhone string) ([]response.ReservationResponse, error)

	// RestoreOccupancy replays persisted non-cancelled reservations
	// into their showtimes' seat grids after a restart.
	RestoreOccupancy(ctx context.Context) error
}

type reservationService struct {
	repo   *repository.Repository
	prices entity.PriceTable
	log    *zap.Logger
}

var _ ReservationService = (*reservationService)(nil)

func NewReservationService(repo *repository.Repository, config *utils.Config, log *zap.Logger) ReservationService {
	return &reservationService{
		repo: repo,
		prices: entity.PriceTable{
			Adult: config.Pricing.Adult,
			Teen:  config.Pricing.Teen,
			Child: config.Pricing.Child,
		},
		log: log.With(zap.String("service", "reservation")),
	}
}

func (s *reservationService) CreateReservation(ctx context.Context, userPhone string, req *request.CreateReservationRequest) (*response.ReservationResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create reservation validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("%w: %s", ErrBadInput, utils.FormatValidationErrors(errs))
	}

	movieID, err := uuid.Parse(req.MovieID)
	if err != nil {
		return nil, fmt.Errorf("%w: movie ID %q is not a UUID", ErrBadInput, req.MovieID)
	}

	if _, err := s.repo.Reservation.FindUser(ctx, userPhone); err != nil {
		return nil, err
	}

	movie, showtime, err := s.repo.Catalog.GetShowtime(ctx, movieID, req.Showtime)
	if err != nil {
		return nil, err
	}

	party := entity.PartyComposition{
		Adults:   req.Adults,
		Teens:    req.Teens,
		Children: req.Children,
	}
	if err := movie.Rating.Admits(party); err != nil {
		return nil, err
	}

	if party.Size() == 0 || len(req.Seats) != party.Size() || hasDuplicates(req.Seats) {
		return nil, fmt.Errorf("%d seats for a party of %d: %w", len(req.Seats), party.Size(), ErrSeatCountMismatch)
	}

	// The single atomic commit point: either every seat flips to
	// occupied or none does.
	if err := showtime.Seats.Reserve(req.Seats); err != nil {
		return nil, err
	}

	now := time.Now()
	reservation := &entity.Reservation{
		ID:         utils.GenerateUUID(),
		Code:       utils.GenerateReservationCode(),
		UserPhone:  userPhone,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		Showtime:   showtime.Time,
		Date:       now.Format("2006-01-02"),
		Seats:      req.Seats,
		Party:      party,
		TotalPrice: s.prices.Total(party),
		Status:     entity.ReservationStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	// The store appends and persists under its own lock; on failure
	// nothing was recorded, so only the seats need undoing.
	if err := s.repo.Reservation.AppendReservation(ctx, userPhone, reservation); err != nil {
		showtime.Seats.Release(req.Seats)
		s.log.Error("Failed to persist reservation",
			zap.Error(err),
			zap.String("user", userPhone),
			zap.String("movie", movie.Title),
		)
		return nil, fmt.Errorf("persist reservation: %w", err)
	}

	s.log.Info("Reservation created",
		zap.String("reservation_id", reservation.ID.String()),
		zap.String("code", reservation.Code),
		zap.String("user", userPhone),
		zap.String("movie", movie.Title),
		zap.String("showtime", showtime.Time),
		zap.Strings("seats", req.Seats),
		zap.Int64("total_price", reservation.TotalPrice),
	)

	resp := response.ReservationToResponse(reservation)
	return &resp, nil
}

func (s *reservationService) Pay(ctx context.Context, userPhone, reservationID, method string) (*response.ReservationResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: reservation ID %q is not a UUID", ErrBadInput, reservationID)
	}

	updated, err := s.repo.Reservation.UpdateReservation(ctx, id, func(r *entity.Reservation, owner string) error {
		if owner != userPhone {
			return fmt.Errorf("reservation %s: %w", reservationID, ErrForbidden)
		}
		if err := r.MarkPaid(entity.PaymentMethod(method)); err != nil {
			return fmt.Errorf("pay reservation in state %q: %w", r.Status, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Reservation paid",
		zap.String("reservation_id", reservationID),
		zap.String("user", userPhone),
		zap.String("method", method),
	)

	resp := response.ReservationToResponse(updated)
	return &resp, nil
}

func (s *reservationService) Cancel(ctx context.Context, userPhone, reservationID string) (*response.ReservationResponse, error) {
	id, err := uuid.Parse(reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: reservation ID %q is not a UUID", ErrBadInput, reservationID)
	}

	updated, err := s.repo.Reservation.UpdateReservation(ctx, id, func(r *entity.Reservation, owner string) error {
		if owner != userPhone {
			return fmt.Errorf("reservation %s: %w", reservationID, ErrForbidden)
		}
		if err := r.MarkCancelled(); err != nil {
			return fmt.Errorf("cancel reservation in state %q: %w", r.Status, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Seats go back to the pool once the cancelled state is durable.
	// Release is idempotent, and the state machine guarantees this
	// runs at most once per reservation.
	_, showtime, err := s.repo.Catalog.GetShowtime(ctx, updated.MovieID, updated.Showtime)
	if err != nil {
		s.log.Warn("Cancelled reservation references unknown showtime, seats not released",
			zap.String("reservation_id", reservationID),
			zap.Error(err),
		)
	} else {
		showtime.Seats.Release(updated.Seats)
	}

	s.log.Info("Reservation cancelled",
		zap.String("reservation_id", reservationID),
		zap.String("user", userPhone),
		zap.Strings("seats", updated.Seats),
	)

	resp := response.ReservationToResponse(updated)
	return &resp, nil
}

func (s *reservationService) ListReservations(ctx context.Context, userPhone string) ([]response.ReservationResponse, error) {
	user, err := s.repo.Reservation.FindUser(ctx, userPhone)
	if err != nil {
		return nil, err
	}

	// Insertion order is the documented history order.
	out := make([]response.ReservationResponse, len(user.Reservations))
	for i, r := range user.Reservations {
		out[i] = response.ReservationToResponse(r)
	}
	return out, nil
}

func (s *reservationService) RestoreOccupancy(ctx context.Context) error {
	users, err := s.repo.Reservation.LoadAll(ctx)
	if err != nil {
		return err
	}

	restored := 0
	for _, user := range users {
		for _, r := range user.Reservations {
			if r.Status == entity.ReservationStatusCancelled {
				continue
			}
			_, showtime, err := s.repo.Catalog.GetShowtime(ctx, r.MovieID, r.Showtime)
			if err != nil {
				s.log.Warn("Stored reservation references unknown showtime",
					zap.String("reservation_id", r.ID.String()),
					zap.String("movie", r.MovieTitle),
					zap.String("showtime", r.Showtime),
				)
				continue
			}
			if err := showtime.Seats.Reserve(r.Seats); err != nil {
				// Two stored reservations claiming one seat means the
				// store was tampered with; first one wins.
				s.log.Warn("Stored reservation conflicts with occupied seats",
					zap.String("reservation_id", r.ID.String()),
					zap.Error(err),
				)
				continue
			}
			restored++
		}
	}

	s.log.Info("Seat occupancy restored", zap.Int("reservations", restored))
	return nil
}

func hasDuplicates(seats []string) bool {
	seen := make(map[string]bool, len(seats))
	for _, s := range seats {
		if seen[s] {
			return true
		}
		seen[s] = true
	}
	return false
}
