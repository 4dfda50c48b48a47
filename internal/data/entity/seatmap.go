package entity

import (
	"fmt"
	"sort"
	"sync"
)

// SeatMap is the occupancy grid of one showtime. Reserve and Release
// are the only writers and are serialized by the map's own lock, so
// bookings for the same showtime never interleave while different
// showtimes proceed independently.
type SeatMap struct {
	mu       sync.Mutex
	seats    []string // grid order: A1..A6, B1..B6, ...
	occupied map[string]bool
}

// NewSeatMap builds a free rows x cols grid with row letters and
// 1-based column numbers (A1..F6 for the default 6x6 hall).
func NewSeatMap(rows, cols int) *SeatMap {
	seats := make([]string, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 1; c <= cols; c++ {
			seats = append(seats, fmt.Sprintf("%c%d", 'A'+r, c))
		}
	}
	return &SeatMap{
		seats:    seats,
		occupied: make(map[string]bool),
	}
}

// IsAvailable reports whether the seat exists and is free.
func (m *SeatMap) IsAvailable(seatID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exists(seatID) && !m.occupied[seatID]
}

// Reserve marks every requested seat occupied in one step. If any seat
// is unknown or already occupied, nothing changes and the returned
// SeatConflictError lists every conflicting seat.
func (m *SeatMap) Reserve(seatIDs []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var conflicts []string
	for _, id := range seatIDs {
		if !m.exists(id) || m.occupied[id] {
			conflicts = append(conflicts, id)
		}
	}
	if len(conflicts) > 0 {
		sort.Strings(conflicts)
		return &SeatConflictError{Seats: conflicts}
	}

	for _, id := range seatIDs {
		m.occupied[id] = true
	}
	return nil
}

// Release marks the seats free again. Releasing a free or unknown seat
// is a no-op.
func (m *SeatMap) Release(seatIDs []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range seatIDs {
		delete(m.occupied, id)
	}
}

// Available returns the free seat IDs in grid order.
func (m *SeatMap) Available() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	free := make([]string, 0, len(m.seats))
	for _, id := range m.seats {
		if !m.occupied[id] {
			free = append(free, id)
		}
	}
	return free
}

// All returns every seat ID in grid order.
func (m *SeatMap) All() []string {
	out := make([]string, len(m.seats))
	copy(out, m.seats)
	return out
}

// OccupiedCount returns how many seats are currently occupied.
func (m *SeatMap) OccupiedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.occupied)
}

// exists assumes the lock is held.
func (m *SeatMap) exists(seatID string) bool {
	for _, id := range m.seats {
		if id == seatID {
			return true
		}
	}
	return false
}
