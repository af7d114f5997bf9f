package quiz

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/directionwise/internal/types"
)

type memorySession struct {
	answers   []types.QuizAnswer
	expiresAt time.Time
}

// MemoryStore is a process-local SessionStore with idle expiry.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memorySession
	ttl      time.Duration
	now      func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewMemoryStore creates a store whose sessions expire after ttl of inactivity.
// A background sweep runs every cleanupInterval when it is positive.
func NewMemoryStore(ttl, cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		sessions: make(map[string]*memorySession),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	if cleanupInterval > 0 {
		go s.sweepLoop(cleanupInterval)
	}
	return s
}

func (s *MemoryStore) Create(_ context.Context) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &memorySession{expiresAt: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return id, nil
}

func (s *MemoryStore) Append(_ context.Context, id string, answer types.QuizAnswer) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(id)
	if !ok {
		return 0, ErrSessionNotFound
	}
	sess.answers = upsertAnswer(sess.answers, answer)
	sess.expiresAt = s.now().Add(s.ttl)
	return len(sess.answers), nil
}

func (s *MemoryStore) Take(_ context.Context, id string) ([]types.QuizAnswer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.live(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	delete(s.sessions, id)
	return sess.answers, nil
}

// live returns a non-expired session. Caller holds mu.
func (s *MemoryStore) live(id string) (*memorySession, bool) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	if s.now().After(sess.expiresAt) {
		delete(s.sessions, id)
		return nil, false
	}
	return sess, true
}

// Len is the number of sessions currently held, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *MemoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stop:
			return
		}
	}
}

func (s *MemoryStore) sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, sess := range s.sessions {
		if now.After(sess.expiresAt) {
			delete(s.sessions, id)
		}
	}
}

// Close stops the background sweep.
func (s *MemoryStore) Close() error {
	s.stopOnce.Do(func() { close(s.stop) })
	return nil
}
