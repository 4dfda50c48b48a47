package response

import "movie-reservation/internal/data/entity"

type MovieResponse struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Theater   string   `json:"theater"`
	Rating    string   `json:"rating"`
	Showtimes []string `json:"showtimes"`
}

func MovieToResponse(m *entity.Movie) MovieResponse {
	times := make([]string, len(m.Showtimes))
	for i, st := range m.Showtimes {
		times[i] = st.Time
	}
	return MovieResponse{
		ID:        m.ID.String(),
		Title:     m.Title,
		Theater:   m.Theater,
		Rating:    string(m.Rating),
		Showtimes: times,
	}
}

type SeatMapResponse struct {
	MovieID   string   `json:"movie_id"`
	Title     string   `json:"title"`
	Showtime  string   `json:"showtime"`
	Seats     []string `json:"seats"`
	Available []string `json:"available"`
}
