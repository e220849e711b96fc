package sessions

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	userID    string
	expiresAt time.Time
}

// MemoryStore keeps sessions in process. Single-instance deployments and tests only.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]entry
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]entry),
		now:  time.Now,
	}
}

func (m *MemoryStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	sessionID, err := newSessionID()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[sessionID] = entry{userID: userID, expiresAt: m.now().Add(ttl)}
	return sessionID, nil
}

func (m *MemoryStore) Lookup(ctx context.Context, sessionID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.data[sessionID]
	if !ok {
		return "", ErrSessionNotFound
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.data, sessionID)
		return "", ErrSessionNotFound
	}
	return e.userID, nil
}

func (m *MemoryStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, sessionID)
	return nil
}
