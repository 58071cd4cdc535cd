package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/erasmus-advisor-api/internal/models"
	"github.com/noah-isme/erasmus-advisor-api/pkg/config"
	appErrors "github.com/noah-isme/erasmus-advisor-api/pkg/errors"
)

// Store keeps advising sessions in memory. Sessions are volatile: a restart
// drops them and clients recover by rerunning step 1. Expiry is enforced on
// every read and by a background sweep.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*entry

	ttl   time.Duration
	sweep time.Duration
	log   *zap.Logger
	now   func() time.Time

	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
}

type entry struct {
	mu      sync.Mutex
	session models.AdvisingSession
}

// NewStore builds a session store from configuration.
func NewStore(cfg config.SessionConfig, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	sweep := cfg.CleanupInterval
	if sweep <= 0 {
		sweep = 10 * time.Minute
	}

	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		sweep:    sweep,
		log:      log,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start launches the expiry sweeper.
func (s *Store) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	s.wg.Add(1)
	go s.sweeper()
}

// Stop terminates the sweeper and waits for it to exit.
func (s *Store) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
}

// Create registers a new session for the given home university.
func (s *Store) Create(homeUniversity string) models.AdvisingSession {
	now := s.now()
	sess := models.AdvisingSession{
		ID:             uuid.NewString(),
		HomeUniversity: homeUniversity,
		CreatedAt:      now,
		ExpiresAt:      now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = &entry{session: sess}
	s.mu.Unlock()

	return sess
}

// Get returns a copy of the session, dropping it when expired.
func (s *Store) Get(id string) (models.AdvisingSession, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return models.AdvisingSession{}, appErrors.ErrSessionInvalid
	}

	e.mu.Lock()
	sess := e.session
	e.mu.Unlock()

	if sess.Expired(s.now()) {
		s.Delete(id)
		return models.AdvisingSession{}, appErrors.ErrSessionInvalid
	}

	return sess, nil
}

// Delete removes a session.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Handle is an acquired session. It holds the per-session step lock until
// Release, so concurrent steps on the same session run one at a time while
// unrelated sessions stay independent.
type Handle struct {
	e        *entry
	released bool
}

// Acquire validates the session and takes its step lock.
func (s *Store) Acquire(id string) (*Handle, error) {
	s.mu.RLock()
	e, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.ErrSessionInvalid
	}

	e.mu.Lock()
	if e.session.Expired(s.now()) {
		e.mu.Unlock()
		s.Delete(id)
		return nil, appErrors.ErrSessionInvalid
	}

	return &Handle{e: e}, nil
}

// Session returns a copy of the locked session.
func (h *Handle) Session() models.AdvisingSession {
	return h.e.session
}

// SetPeriod commits the period of a fully successful destination step.
func (h *Handle) SetPeriod(period models.Period) {
	p := period
	h.e.session.Period = &p
}

// Release frees the step lock. Safe to call more than once.
func (h *Handle) Release() {
	if h.released {
		return
	}
	h.released = true
	h.e.mu.Unlock()
}

// Len reports the number of stored sessions, expired ones included.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) sweeper() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.sweep)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			removed := s.removeExpired()
			if removed > 0 {
				s.log.Debug("expired sessions removed", zap.Int("count", removed))
			}
		}
	}
}

func (s *Store) removeExpired() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if e.session.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
	}

	return removed
}
