package usecase

import (
	"context"
	"fmt"

	"movie-reservation/internal/data/repository"
	"movie-reservation/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogService interface {
	// SearchMovies matches a case-insensitive title substring; an
	// empty query lists the whole catalog in title order.
	SearchMovies(ctx context.Context, query string) ([]response.MovieResponse, error)
	// GetSeats returns the seat grid of one showtime with its current
	// availability.
	GetSeats(ctx context.Context, movieID, time string) (*response.SeatMapResponse, error)
}

type catalogService struct {
	repo *repository.Repository
	log  *zap.Logger
}

var _ CatalogService = (*catalogService)(nil)

func NewCatalogService(repo *repository.Repository, log *zap.Logger) CatalogService {
	return &catalogService{
		repo: repo,
		log:  log.With(zap.String("service", "catalog")),
	}
}

func (s *catalogService) SearchMovies(ctx context.Context, query string) ([]response.MovieResponse, error) {
	movies := s.repo.Catalog.SearchByTitle(ctx, query)

	out := make([]response.MovieResponse, len(movies))
	for i, m := range movies {
		out[i] = response.MovieToResponse(m)
	}

	s.log.Debug("Catalog searched",
		zap.String("query", query),
		zap.Int("matches", len(out)),
	)
	return out, nil
}

func (s *catalogService) GetSeats(ctx context.Context, movieID, time string) (*response.SeatMapResponse, error) {
	id, err := uuid.Parse(movieID)
	if err != nil {
		return nil, fmt.Errorf("%w: movie ID %q is not a UUID", ErrBadInput, movieID)
	}

	movie, showtime, err := s.repo.Catalog.GetShowtime(ctx, id, time)
	if err != nil {
		return nil, err
	}

	return &response.SeatMapResponse{
		MovieID:   movie.ID.String(),
		Title:     movie.Title,
		Showtime:  showtime.Time,
		Seats:     showtime.Seats.All(),
		Available: showtime.Seats.Available(),
	}, nil
}
