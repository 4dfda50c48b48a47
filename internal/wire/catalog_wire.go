package wire

import (
	"movie-reservation/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/movies?title=q - search the catalog
	r.Get("/api/movies", catalogHandler.SearchMovies)

	// GET /api/movies/{id}/showtimes/{time}/seats - seat availability
	r.Get("/api/movies/{id}/showtimes/{time}/seats", catalogHandler.GetSeats)
}
