package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// AgeRating is a movie's minimum-audience policy. Values mirror the
// catalog file tokens.
type AgeRating string

const (
	RatingAll    AgeRating = "all" // no restriction
	Rating15Plus AgeRating = "15"  // teens and adults
	Rating19Plus AgeRating = "19"  // adults only
)

// ParseAgeRating maps a catalog file token to an AgeRating.
func ParseAgeRating(token string) (AgeRating, error) {
	switch token {
	case "ALL", "all":
		return RatingAll, nil
	case "15":
		return Rating15Plus, nil
	case "19":
		return Rating19Plus, nil
	default:
		return "", fmt.Errorf("unknown age rating %q", token)
	}
}

// Admits checks a party's age-group composition against the rating.
//
//	all: any composition
//	15:  no children, at least one adult or teen
//	19:  adults only, at least one adult
func (r AgeRating) Admits(party PartyComposition) error {
	switch r {
	case RatingAll:
		return nil
	case Rating15Plus:
		if party.Children == 0 && party.Adults+party.Teens > 0 {
			return nil
		}
	case Rating19Plus:
		if party.Teens == 0 && party.Children == 0 && party.Adults > 0 {
			return nil
		}
	}
	return &AgeViolationError{Rating: r, Party: party}
}

type Movie struct {
	ID      uuid.UUID
	Title   string
	Theater string
	Rating  AgeRating

	Showtimes []*Showtime
}

// Showtime is one scheduled screening of a movie with its own seat
// grid. A Showtime is only ever constructed together with a SeatMap.
type Showtime struct {
	Time  string
	Seats *SeatMap
}

// FindShowtime returns the showtime with the given start time label.
func (m *Movie) FindShowtime(time string) *Showtime {
	for _, st := range m.Showtimes {
		if st.Time == time {
			return st
		}
	}
	return nil
}
