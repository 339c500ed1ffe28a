package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smartbot/career-matcher/internal/models"
	"smartbot/career-matcher/internal/repositories"
)

// SessionService owns session lifecycle: creation, lookup, and a
// background janitor that expires sessions idle past the TTL.
type SessionService interface {
	Create() *models.Session
	Get(id uuid.UUID) (*models.Session, error)
	Start(ctx context.Context)
	Stop()
}

type sessionService struct {
	repo     repositories.SessionRepository
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
	wg       sync.WaitGroup
	stopChan chan struct{}
}

func NewSessionService(
	repo repositories.SessionRepository,
	ttl time.Duration,
	interval time.Duration,
	logger *zap.Logger,
) SessionService {
	return &sessionService{
		repo:     repo,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Create implements SessionService.
func (s *sessionService) Create() *models.Session {
	session := models.NewSession()
	s.repo.Save(session)

	s.logger.Info("session created",
		zap.String("session_id", session.ID.String()),
		zap.Int("active_sessions", s.repo.Count()),
	)
	return session
}

// Get implements SessionService.
func (s *sessionService) Get(id uuid.UUID) (*models.Session, error) {
	return s.repo.FindByID(id)
}

// Start implements SessionService.
func (s *sessionService) Start(ctx context.Context) {
	s.wg.Add(1)
	go s.pruneLoop(ctx)
}

// Stop implements SessionService.
func (s *sessionService) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}

func (s *sessionService) pruneLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("session janitor started",
		zap.Duration("ttl", s.ttl),
		zap.Duration("interval", s.interval),
	)

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			s.logger.Info("session janitor stopped")
			return
		case <-ticker.C:
			if pruned := s.repo.PruneExpired(time.Now().Add(-s.ttl)); pruned > 0 {
				s.logger.Info("expired sessions pruned",
					zap.Int("pruned", pruned),
					zap.Int("active_sessions", s.repo.Count()),
				)
			}
		}
	}
}
