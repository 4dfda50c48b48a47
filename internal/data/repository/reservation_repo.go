package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"movie-reservation/internal/data/entity"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationRepository persists users and their reservations, keyed
// by phone number. Reservation order within a user is insertion
// (chronological) order and survives the round trip.
//
// Lookups hand back private copies; all mutation of stored state goes
// through the store itself, under its lock, so callers never share
// memory with a concurrent flush.
type ReservationRepository interface {
	LoadAll(ctx context.Context) ([]*entity.User, error)
	SaveAll(ctx context.Context, users []*entity.User) error

	FindUser(ctx context.Context, phone string) (*entity.User, error)
	CreateUser(ctx context.Context, user *entity.User) error
	// SaveUser persists the current state of one user and their
	// reservations, replacing whatever the store held for that phone.
	SaveUser(ctx context.Context, user *entity.User) error
	// FindReservation locates a reservation and its owner.
	FindReservation(ctx context.Context, id uuid.UUID) (*entity.Reservation, *entity.User, error)

	// AppendReservation adds one reservation to a user's history and
	// persists it in a single step. On failure nothing is appended.
	AppendReservation(ctx context.Context, phone string, r *entity.Reservation) error
	// UpdateReservation applies apply to the stored reservation and
	// persists the result in a single step. apply returning an error
	// aborts the update; a failed persist restores the previous state.
	// Returns a copy of the updated reservation.
	UpdateReservation(ctx context.Context, id uuid.UUID, apply func(r *entity.Reservation, ownerPhone string) error) (*entity.Reservation, error)
}

// storeFile is the on-disk JSON document of the file driver. Tagged,
// schema-checked records; nothing is ever round-tripped through
// language-level value dumps.
type storeFile struct {
	Users []*entity.User `json:"users"`
}

// fileReservationStore keeps the working set in memory and rewrites
// the whole document on every mutation, via a temp file and an atomic
// rename so a crash can never leave a half-written store behind.
type fileReservationStore struct {
	mu    sync.RWMutex
	path  string
	users []*entity.User // registration order
	byKey map[string]*entity.User
	log   *zap.Logger
}

// NewFileReservationStore loads the store file. A missing file is a
// fresh store; a corrupt one yields an empty store plus an error
// wrapping ErrPersistence, which the caller should surface as a
// warning rather than die on.
func NewFileReservationStore(path string, log *zap.Logger) (ReservationRepository, error) {
	s := &fileReservationStore{
		path:  path,
		byKey: make(map[string]*entity.User),
		log:   log.With(zap.String("repository", "reservation")),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return s, fmt.Errorf("%w: read %s: %v", ErrPersistence, path, err)
	}

	var doc storeFile
	if err := json.Unmarshal(raw, &doc); err != nil {
		return s, fmt.Errorf("%w: decode %s: %v", ErrPersistence, path, err)
	}
	if err := validateStore(&doc); err != nil {
		return s, fmt.Errorf("%w: validate %s: %v", ErrPersistence, path, err)
	}

	for _, u := range doc.Users {
		s.users = append(s.users, u)
		s.byKey[u.Phone] = u
	}

	s.log.Info("Reservation store loaded",
		zap.String("path", path),
		zap.Int("users", len(s.users)),
	)
	return s, nil
}

// validateStore rejects documents that do not match the schema, so a
// hand-edited or truncated file cannot smuggle bogus state in.
func validateStore(doc *storeFile) error {
	seen := make(map[string]bool)
	for _, u := range doc.Users {
		if u == nil || u.Phone == "" {
			return fmt.Errorf("user with empty phone")
		}
		if seen[u.Phone] {
			return fmt.Errorf("duplicate user %s", u.Phone)
		}
		seen[u.Phone] = true

		for _, r := range u.Reservations {
			if r == nil {
				return fmt.Errorf("user %s: nil reservation", u.Phone)
			}
			if r.ID == uuid.Nil {
				return fmt.Errorf("user %s: reservation without id", u.Phone)
			}
			if !entity.ValidStatus(r.Status) {
				return fmt.Errorf("user %s: reservation %s has unknown status %q", u.Phone, r.ID, r.Status)
			}
			if len(r.Seats) == 0 {
				return fmt.Errorf("user %s: reservation %s has no seats", u.Phone, r.ID)
			}
		}
	}
	return nil
}

func copyReservation(r *entity.Reservation) *entity.Reservation {
	c := *r
	return &c
}

func copyUser(u *entity.User) *entity.User {
	c := &entity.User{Phone: u.Phone, PasswordHash: u.PasswordHash}
	if len(u.Reservations) > 0 {
		c.Reservations = make([]*entity.Reservation, len(u.Reservations))
		for i, r := range u.Reservations {
			c.Reservations[i] = copyReservation(r)
		}
	}
	return c
}

func (s *fileReservationStore) LoadAll(_ context.Context) ([]*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*entity.User, len(s.users))
	for i, u := range s.users {
		out[i] = copyUser(u)
	}
	return out, nil
}

func (s *fileReservationStore) SaveAll(_ context.Context, users []*entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevUsers, prevByKey := s.users, s.byKey

	s.users = make([]*entity.User, len(users))
	s.byKey = make(map[string]*entity.User, len(users))
	for i, u := range users {
		c := copyUser(u)
		s.users[i] = c
		s.byKey[c.Phone] = c
	}

	if err := s.flushLocked(); err != nil {
		s.users, s.byKey = prevUsers, prevByKey
		return err
	}
	return nil
}

func (s *fileReservationStore) FindUser(_ context.Context, phone string) (*entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byKey[phone]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", phone, ErrNotFound)
	}
	return copyUser(u), nil
}

func (s *fileReservationStore) CreateUser(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byKey[user.Phone]; ok {
		return fmt.Errorf("user %s: %w", user.Phone, ErrDuplicate)
	}

	u := copyUser(user)
	s.users = append(s.users, u)
	s.byKey[u.Phone] = u

	if err := s.flushLocked(); err != nil {
		s.users = s.users[:len(s.users)-1]
		delete(s.byKey, u.Phone)
		return err
	}
	return nil
}

func (s *fileReservationStore) SaveUser(_ context.Context, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := copyUser(user)
	prev, existed := s.byKey[u.Phone]

	idx := -1
	if existed {
		for i, held := range s.users {
			if held.Phone == u.Phone {
				idx = i
				s.users[i] = u
				break
			}
		}
	} else {
		s.users = append(s.users, u)
	}
	s.byKey[u.Phone] = u

	if err := s.flushLocked(); err != nil {
		if existed {
			s.users[idx] = prev
			s.byKey[u.Phone] = prev
		} else {
			s.users = s.users[:len(s.users)-1]
			delete(s.byKey, u.Phone)
		}
		return err
	}
	return nil
}

func (s *fileReservationStore) FindReservation(_ context.Context, id uuid.UUID) (*entity.Reservation, *entity.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if r := u.FindReservation(id); r != nil {
			return copyReservation(r), copyUser(u), nil
		}
	}
	return nil, nil, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
}

func (s *fileReservationStore) AppendReservation(_ context.Context, phone string, r *entity.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.byKey[phone]
	if !ok {
		return fmt.Errorf("user %s: %w", phone, ErrNotFound)
	}

	u.Reservations = append(u.Reservations, copyReservation(r))
	if err := s.flushLocked(); err != nil {
		u.Reservations = u.Reservations[:len(u.Reservations)-1]
		return err
	}
	return nil
}

func (s *fileReservationStore) UpdateReservation(_ context.Context, id uuid.UUID, apply func(r *entity.Reservation, ownerPhone string) error) (*entity.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		r := u.FindReservation(id)
		if r == nil {
			continue
		}

		snapshot := *r
		if err := apply(r, u.Phone); err != nil {
			*r = snapshot
			return nil, err
		}
		if err := s.flushLocked(); err != nil {
			*r = snapshot
			return nil, err
		}
		return copyReservation(r), nil
	}
	return nil, fmt.Errorf("reservation %s: %w", id, ErrNotFound)
}

// flushLocked writes the whole document to a temp file next to the
// target and renames it into place. Assumes the write lock is held.
func (s *fileReservationStore) flushLocked() error {
	doc := storeFile{Users: s.users}
	raw, err := json.MarshalIndent(&doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode store: %v", ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: create %s: %v", ErrPersistence, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: temp file: %v", ErrPersistence, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", ErrPersistence, tmpName, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename to %s: %v", ErrPersistence, s.path, err)
	}
	return nil
}
