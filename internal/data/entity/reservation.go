package entity

import (
	"time"

	"github.com/google/uuid"
)

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "pending"
	ReservationStatusPaid      ReservationStatus = "paid"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// ValidStatus reports whether s is one of the persisted status values.
func ValidStatus(s ReservationStatus) bool {
	switch s {
	case ReservationStatusPending, ReservationStatusPaid, ReservationStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodCash PaymentMethod = "cash"
)

// Reservation is one booking of seats for a movie showtime. It
// references its movie and showtime by identifier and never owns the
// seat grid; the reservation engine is the sole writer of Status.
type Reservation struct {
	ID            uuid.UUID         `json:"id"`
	Code          string            `json:"code"`
	UserPhone     string            `json:"user_phone"`
	MovieID       uuid.UUID         `json:"movie_id"`
	MovieTitle    string            `json:"movie_title"`
	Showtime      string            `json:"showtime"`
	Date          string            `json:"date"`
	Seats         []string          `json:"seats"`
	Party         PartyComposition  `json:"party"`
	TotalPrice    int64             `json:"total_price"`
	Status        ReservationStatus `json:"status"`
	PaymentMethod PaymentMethod     `json:"payment_method,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// MarkPaid transitions pending -> paid, recording the method label.
func (r *Reservation) MarkPaid(method PaymentMethod) error {
	if r.Status != ReservationStatusPending {
		return ErrInvalidTransition
	}
	r.Status = ReservationStatusPaid
	r.PaymentMethod = method
	r.UpdatedAt = time.Now()
	return nil
}

// MarkCancelled transitions pending or paid -> cancelled. Cancelled is
// terminal; a second cancel fails so seats are never double-released.
func (r *Reservation) MarkCancelled() error {
	if r.Status != ReservationStatusPending && r.Status != ReservationStatusPaid {
		return ErrInvalidTransition
	}
	r.Status = ReservationStatusCancelled
	r.UpdatedAt = time.Now()
	return nil
}

// User is a reservation owner, keyed by phone number. Reservations are
// kept in insertion (chronological) order.
type User struct {
	Phone        string         `json:"phone"`
	PasswordHash string         `json:"password_hash"`
	Reservations []*Reservation `json:"reservations"`
}

// FindReservation returns the user's reservation with the given ID.
func (u *User) FindReservation(id uuid.UUID) *Reservation {
	for _, r := range u.Reservations {
		if r.ID == id {
			return r
		}
	}
	return nil
}
