package response

import (
	"time"

	"movie-reservation/internal/data/entity"
)

type ReservationResponse struct {
	ID            string                  `json:"id"`
	Code          string                  `json:"code"`
	MovieTitle    string                  `json:"movie_title"`
	Showtime      string                  `json:"showtime"`
	Date          string                  `json:"date"`
	Seats         []string                `json:"seats"`
	Party         entity.PartyComposition `json:"party"`
	TotalPrice    int64                   `json:"total_price"`
	Status        string                  `json:"status"`
	PaymentMethod string                  `json:"payment_method,omitempty"`
	CreatedAt     time.Time               `json:"created_at"`
}

func ReservationToResponse(r *entity.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:            r.ID.String(),
		Code:          r.Code,
		MovieTitle:    r.MovieTitle,
		Showtime:      r.Showtime,
		Date:          r.Date,
		Seats:         r.Seats,
		Party:         r.Party,
		TotalPrice:    r.TotalPrice,
		Status:        string(r.Status),
		PaymentMethod: string(r.PaymentMethod),
		CreatedAt:     r.CreatedAt,
	}
}
