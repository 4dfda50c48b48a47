package usecase

import "errors"

// ErrSeatCountMismatch is returned when the number of chosen seats
// does not equal the party size (or the party is empty).
var ErrSeatCountMismatch = errors.New("seat count does not match party size")

// ErrForbidden is returned when a user touches a reservation owned by
// someone else.
var ErrForbidden = errors.New("not the reservation owner")

// ErrBadInput marks request input that fails format or validation
// checks before any work happens.
var ErrBadInput = errors.New("invalid input")
