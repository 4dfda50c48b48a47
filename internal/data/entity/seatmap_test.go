package entity

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestNewSeatMapGrid(t *testing.T) {
	m := NewSeatMap(6, 6)

	all := m.All()
	if len(all) != 36 {
		t.Fatalf("expected 36 seats, got %d", len(all))
	}
	if all[0] != "A1" || all[5] != "A6" || all[6] != "B1" || all[35] != "F6" {
		t.Errorf("unexpected grid order: %v", all)
	}

	for _, id := range []string{"A1", "C4", "F6"} {
		if !m.IsAvailable(id) {
			t.Errorf("fresh seat %s should be available", id)
		}
	}
	if m.IsAvailable("G1") {
		t.Error("seat outside the grid should not be available")
	}
}

func TestSeatMapReserveAllOrNothing(t *testing.T) {
	m := NewSeatMap(6, 6)

	if err := m.Reserve([]string{"A1", "A2"}); err != nil {
		t.Fatalf("reserve free seats: %v", err)
	}

	// A3 is free but A1 is taken: nothing may change.
	err := m.Reserve([]string{"A3", "A1"})
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SeatConflictError, got %v", err)
	}
	if len(conflict.Seats) != 1 || conflict.Seats[0] != "A1" {
		t.Errorf("expected conflict on A1 only, got %v", conflict.Seats)
	}
	if !m.IsAvailable("A3") {
		t.Error("A3 must stay free after a failed reserve")
	}
	if m.OccupiedCount() != 2 {
		t.Errorf("expected 2 occupied seats, got %d", m.OccupiedCount())
	}
}

func TestSeatMapReserveUnknownSeat(t *testing.T) {
	m := NewSeatMap(2, 2)

	err := m.Reserve([]string{"A1", "Z9"})
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SeatConflictError, got %v", err)
	}
	if m.OccupiedCount() != 0 {
		t.Error("no seat may be committed when the request names an unknown seat")
	}
}

func TestSeatMapReleaseIdempotent(t *testing.T) {
	m := NewSeatMap(6, 6)

	if err := m.Reserve([]string{"B1", "B2"}); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	m.Release([]string{"B1", "B2"})
	if m.OccupiedCount() != 0 {
		t.Fatalf("expected all seats free, got %d occupied", m.OccupiedCount())
	}

	// Releasing again (or releasing a never-reserved seat) is a no-op.
	m.Release([]string{"B1", "C5", "Z9"})
	if m.OccupiedCount() != 0 {
		t.Error("double release must not change anything")
	}

	// Released seats can be taken again.
	if err := m.Reserve([]string{"B1", "B2"}); err != nil {
		t.Errorf("re-reserve after release: %v", err)
	}
}

func TestSeatMapAvailable(t *testing.T) {
	m := NewSeatMap(2, 3)

	if err := m.Reserve([]string{"A2", "B3"}); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	free := m.Available()
	want := []string{"A1", "A3", "B1", "B2"}
	if len(free) != len(want) {
		t.Fatalf("expected %v, got %v", want, free)
	}
	for i := range want {
		if free[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, free)
		}
	}
}

func TestSeatMapConcurrentReserveOverlap(t *testing.T) {
	// Many goroutines fight over one seat; exactly one may win.
	for round := 0; round < 50; round++ {
		m := NewSeatMap(6, 6)

		const n = 8
		var wg sync.WaitGroup
		wins := make(chan int, n)

		for i := 0; i < n; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				// Each goroutine wants a private seat plus the contested A1.
				if err := m.Reserve([]string{fmt.Sprintf("B%d", i%6+1), "A1"}); err == nil {
					wins <- i
				}
			}(i)
		}
		wg.Wait()
		close(wins)

		count := 0
		for range wins {
			count++
		}
		if count != 1 {
			t.Fatalf("round %d: expected exactly 1 winner, got %d", round, count)
		}
		if m.OccupiedCount() != 2 {
			t.Fatalf("round %d: expected 2 occupied seats, got %d", round, m.OccupiedCount())
		}
	}
}
