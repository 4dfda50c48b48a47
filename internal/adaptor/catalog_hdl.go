package adaptor

import (
	"net/http"

	"movie-reservation/internal/usecase"
	"movie-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// SearchMovies handles GET /api/movies?title=q&limit=n (public)
func (h *CatalogHandler) SearchMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("title")

	movies, err := h.service.SearchMovies(r.Context(), query)
	if err != nil {
		writeServiceError(w, h.log, err, "search movies")
		return
	}

	if limit := utils.ParseInt(r.URL.Query().Get("limit"), 0); limit > 0 && limit < len(movies) {
		movies = movies[:limit]
	}

	utils.ResponseSuccess(w, "success", movies)
}

// GetSeats handles GET /api/movies/{id}/showtimes/{time}/seats (public)
func (h *CatalogHandler) GetSeats(w http.ResponseWriter, r *http.Request) {
	movieID := chi.URLParam(r, "id")
	showtime := chi.URLParam(r, "time")
	if movieID == "" || showtime == "" {
		utils.ResponseBadRequest(w, "Movie ID and showtime are required", nil)
		return
	}

	seats, err := h.service.GetSeats(r.Context(), movieID, showtime)
	if err != nil {
		writeServiceError(w, h.log, err, "get seats")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}
