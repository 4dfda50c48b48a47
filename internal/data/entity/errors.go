// Domain error values raised by the entities themselves. Seat
// conflicts and age violations are expected, recoverable outcomes:
// callers can report them and retry without any state having changed.
package entity

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTransition is returned for illegal reservation state
// machine moves, e.g. paying a cancelled reservation or cancelling
// twice.
var ErrInvalidTransition = errors.New("invalid reservation state transition")

// SeatConflictError reports a reserve attempt against seats that are
// already occupied (or do not exist in the grid). The request had no
// effect.
type SeatConflictError struct {
	Seats []string
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seats not available: %s", strings.Join(e.Seats, ", "))
}

// AgeViolationError reports a party composition that the movie's age
// rating does not admit.
type AgeViolationError struct {
	Rating AgeRating
	Party  PartyComposition
}

func (e *AgeViolationError) Error() string {
	return fmt.Sprintf("rating %q does not admit party (adults=%d teens=%d children=%d)",
		e.Rating, e.Party.Adults, e.Party.Teens, e.Party.Children)
}
