package repositories

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"smartbot/career-matcher/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository stores live sessions. The implementation is an
// in-memory map: sessions are not persisted across restarts.
type SessionRepository interface {
	Save(session *models.Session)
	FindByID(id uuid.UUID) (*models.Session, error)
	Delete(id uuid.UUID)
	PruneExpired(cutoff time.Time) int
	Count() int
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*models.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]*models.Session),
	}
}

// Save implements SessionRepository.
func (r *sessionRepository) Save(session *models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id uuid.UUID) (*models.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete implements SessionRepository.
func (r *sessionRepository) Delete(id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// PruneExpired implements SessionRepository. It drops every session
// whose last activity predates the cutoff and reports how many went.
func (r *sessionRepository) PruneExpired(cutoff time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	pruned := 0
	for id, session := range r.sessions {
		if session.LastActive().Before(cutoff) {
			delete(r.sessions, id)
			pruned++
		}
	}
	return pruned
}

// Count implements SessionRepository.
func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
