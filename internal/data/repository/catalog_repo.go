package repository

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"movie-reservation/internal/data/entity"
	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CatalogRepository interface {
	// SearchByTitle matches the query as a case-insensitive substring
	// of movie titles. An empty query returns the whole catalog.
	// Results come back in catalog (title-ascending) order.
	SearchByTitle(ctx context.Context, query string) []*entity.Movie
	FindByID(ctx context.Context, movieID uuid.UUID) (*entity.Movie, error)
	GetShowtime(ctx context.Context, movieID uuid.UUID, time string) (*entity.Movie, *entity.Showtime, error)
}

// fileCatalog is the read-mostly in-memory catalog loaded once at
// startup from a delimited text file. One movie per line:
//
//	title,time;time;...,theater,rating
//
// Rating tokens: ALL, 15, 19. Malformed lines are skipped with a
// warning. Movies are held title-sorted; every (movie, showtime) pair
// gets its own seat grid.
type fileCatalog struct {
	movies []*entity.Movie
	byID   map[uuid.UUID]*entity.Movie
	log    *zap.Logger
}

// NewFileCatalog loads the catalog file. A missing or unreadable file
// yields an empty catalog together with an error wrapping
// ErrPersistence so the caller can log a warning and keep going.
func NewFileCatalog(path string, rows, cols int, log *zap.Logger) (CatalogRepository, error) {
	c := &fileCatalog{
		byID: make(map[uuid.UUID]*entity.Movie),
		log:  log.With(zap.String("repository", "catalog")),
	}

	f, err := os.Open(path)
	if err != nil {
		return c, fmt.Errorf("%w: open catalog %s: %v", ErrPersistence, path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		movie, err := parseCatalogLine(line, rows, cols)
		if err != nil {
			c.log.Warn("Skipping malformed catalog line",
				zap.Int("line", lineNo),
				zap.Error(err),
			)
			continue
		}

		if _, dup := c.byID[movie.ID]; dup {
			c.log.Warn("Skipping duplicate movie title",
				zap.Int("line", lineNo),
				zap.String("title", movie.Title),
			)
			continue
		}

		c.movies = append(c.movies, movie)
		c.byID[movie.ID] = movie
	}
	if err := scanner.Err(); err != nil {
		return c, fmt.Errorf("%w: read catalog %s: %v", ErrPersistence, path, err)
	}

	sort.Slice(c.movies, func(i, j int) bool {
		return strings.ToLower(c.movies[i].Title) < strings.ToLower(c.movies[j].Title)
	})

	c.log.Info("Catalog loaded",
		zap.String("path", path),
		zap.Int("movies", len(c.movies)),
	)
	return c, nil
}

func parseCatalogLine(line string, rows, cols int) (*entity.Movie, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("expected 4 fields, got %d", len(parts))
	}

	title := strings.TrimSpace(parts[0])
	if title == "" {
		return nil, fmt.Errorf("empty title")
	}

	rating, err := entity.ParseAgeRating(strings.TrimSpace(parts[3]))
	if err != nil {
		return nil, err
	}

	var showtimes []*entity.Showtime
	seen := make(map[string]bool)
	for _, t := range strings.Split(parts[1], ";") {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		showtimes = append(showtimes, &entity.Showtime{
			Time:  t,
			Seats: entity.NewSeatMap(rows, cols),
		})
	}
	if len(showtimes) == 0 {
		return nil, fmt.Errorf("movie %q has no showtimes", title)
	}

	return &entity.Movie{
		ID:        utils.MovieID(title),
		Title:     title,
		Theater:   strings.TrimSpace(parts[2]),
		Rating:    rating,
		Showtimes: showtimes,
	}, nil
}

func (c *fileCatalog) SearchByTitle(_ context.Context, query string) []*entity.Movie {
	if query == "" {
		out := make([]*entity.Movie, len(c.movies))
		copy(out, c.movies)
		return out
	}

	q := strings.ToLower(query)
	var out []*entity.Movie
	for _, m := range c.movies {
		if strings.Contains(strings.ToLower(m.Title), q) {
			out = append(out, m)
		}
	}
	return out
}

func (c *fileCatalog) FindByID(_ context.Context, movieID uuid.UUID) (*entity.Movie, error) {
	movie, ok := c.byID[movieID]
	if !ok {
		return nil, fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
	}
	return movie, nil
}

func (c *fileCatalog) GetShowtime(ctx context.Context, movieID uuid.UUID, time string) (*entity.Movie, *entity.Showtime, error) {
	movie, err := c.FindByID(ctx, movieID)
	if err != nil {
		return nil, nil, err
	}

	st := movie.FindShowtime(time)
	if st == nil {
		return nil, nil, fmt.Errorf("showtime %q of %q: %w", time, movie.Title, ErrNotFound)
	}
	return movie, st, nil
}
