package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"movie-reservation/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.txt")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileCatalogLoad(t *testing.T) {
	path := writeCatalogFile(t,
		"Oppenheimer,11:00;15:00,Hall 2,15\n"+
			"Inside Out 2,10:00;13:30,Hall 1,ALL\n"+
			"this line is broken\n"+
			"Ghost Movie,,Hall 4,ALL\n"+
			"The Roundup,09:30,Hall 3,19\n")

	catalog, err := NewFileCatalog(path, 6, 6, zap.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	movies := catalog.SearchByTitle(context.Background(), "")
	if len(movies) != 3 {
		t.Fatalf("expected 3 movies (bad lines skipped), got %d", len(movies))
	}

	// Title-ascending order.
	if movies[0].Title != "Inside Out 2" || movies[1].Title != "Oppenheimer" || movies[2].Title != "The Roundup" {
		t.Errorf("unexpected order: %s, %s, %s", movies[0].Title, movies[1].Title, movies[2].Title)
	}

	// Every showtime carries its own fresh grid.
	opp := movies[1]
	if len(opp.Showtimes) != 2 {
		t.Fatalf("expected 2 showtimes, got %d", len(opp.Showtimes))
	}
	if opp.Showtimes[0].Seats == opp.Showtimes[1].Seats {
		t.Error("showtimes must not share a seat map")
	}
	if got := len(opp.Showtimes[0].Seats.All()); got != 36 {
		t.Errorf("expected 36 seats, got %d", got)
	}
}

func TestFileCatalogMissingFile(t *testing.T) {
	catalog, err := NewFileCatalog(filepath.Join(t.TempDir(), "nope.txt"), 6, 6, zap.NewNop())
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
	// Still usable, just empty.
	if got := catalog.SearchByTitle(context.Background(), ""); len(got) != 0 {
		t.Errorf("expected empty catalog, got %d movies", len(got))
	}
}

func TestFileCatalogSearchByTitle(t *testing.T) {
	path := writeCatalogFile(t,
		"Inside Out 2,10:00,Hall 1,ALL\n"+
			"Oppenheimer,11:00,Hall 2,15\n"+
			"Outbreak,12:00,Hall 3,15\n")

	catalog, err := NewFileCatalog(path, 6, 6, zap.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()

	tests := []struct {
		query string
		want  []string
	}{
		{"out", []string{"Inside Out 2", "Outbreak"}}, // case-insensitive substring
		{"OPPEN", []string{"Oppenheimer"}},
		{"zzz", nil},
		{"", []string{"Inside Out 2", "Oppenheimer", "Outbreak"}},
	}

	for _, tt := range tests {
		got := catalog.SearchByTitle(ctx, tt.query)
		if len(got) != len(tt.want) {
			t.Errorf("query %q: expected %d matches, got %d", tt.query, len(tt.want), len(got))
			continue
		}
		for i := range tt.want {
			if got[i].Title != tt.want[i] {
				t.Errorf("query %q: match %d = %q, want %q", tt.query, i, got[i].Title, tt.want[i])
			}
		}
	}
}

func TestFileCatalogGetShowtime(t *testing.T) {
	path := writeCatalogFile(t, "Oppenheimer,11:00;15:00,Hall 2,15\n")
	catalog, err := NewFileCatalog(path, 6, 6, zap.NewNop())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()

	movieID := utils.MovieID("Oppenheimer")

	movie, showtime, err := catalog.GetShowtime(ctx, movieID, "15:00")
	if err != nil {
		t.Fatalf("get showtime: %v", err)
	}
	if movie.Title != "Oppenheimer" || showtime.Time != "15:00" {
		t.Errorf("got %q at %q", movie.Title, showtime.Time)
	}

	if _, _, err := catalog.GetShowtime(ctx, movieID, "23:00"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown time: expected ErrNotFound, got %v", err)
	}
	if _, _, err := catalog.GetShowtime(ctx, uuid.New(), "15:00"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown movie: expected ErrNotFound, got %v", err)
	}
}
