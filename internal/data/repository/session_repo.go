package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"movie-reservation/internal/data/entity"

	"go.uber.org/zap"
)

type SessionRepository interface {
	Create(ctx context.Context, session *entity.Session) error
	// FindValidSession returns (nil, nil) for unknown or expired
	// tokens; an expired token is dropped on the spot.
	FindValidSession(ctx context.Context, token string) (*entity.Session, error)
	Revoke(ctx context.Context, token string) error
}

// memorySessionRepository holds bearer sessions in process memory.
// One desktop-style session store, nothing shared across processes.
type memorySessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*entity.Session
	log      *zap.Logger
}

func NewMemorySessionRepository(log *zap.Logger) SessionRepository {
	return &memorySessionRepository{
		sessions: make(map[string]*entity.Session),
		log:      log.With(zap.String("repository", "session")),
	}
}

func (r *memorySessionRepository) Create(_ context.Context, session *entity.Session) error {
	if session.Token == "" {
		return fmt.Errorf("session without token")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token] = session
	return nil
}

func (r *memorySessionRepository) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	session, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}
	if session.Expired(time.Now()) {
		delete(r.sessions, token)
		return nil, nil
	}
	return session, nil
}

func (r *memorySessionRepository) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
	return nil
}
