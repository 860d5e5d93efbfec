package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Manager is the in-process registry of running sessions. Sessions live only
// in memory; an abandoned session is swept once it passes the TTL.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	logger   zerolog.Logger
}

// NewManager creates a session registry with the given idle TTL.
func NewManager(ttl time.Duration, logger zerolog.Logger) *Manager {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		logger:   logger.With().Str("component", "session_manager").Logger(),
	}
}

// Put registers a session.
func (m *Manager) Put(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
}

// Get returns a session by ID.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete removes a session from the registry.
func (m *Manager) Delete(id uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ReapExpired removes sessions idle past the TTL and reports how many went.
func (m *Manager) ReapExpired(now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	reaped := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.LastActive)
		s.mu.Unlock()
		if idle > m.ttl {
			delete(m.sessions, id)
			reaped++
			m.logger.Info().Str("session_id", id.String()).Str("username", s.Username).Msg("reaped expired session")
		}
	}
	return reaped
}

// Reaper periodically sweeps expired sessions.
type Reaper struct {
	manager  *Manager
	interval time.Duration
	logger   zerolog.Logger
}

// NewReaper creates a reaper sweeping at the given interval.
func NewReaper(manager *Manager, interval time.Duration, logger zerolog.Logger) *Reaper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reaper{
		manager:  manager,
		interval: interval,
		logger:   logger.With().Str("component", "session_reaper").Logger(),
	}
}

// Run sweeps until the context is canceled.
func (r *Reaper) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			if n := r.manager.ReapExpired(now); n > 0 {
				r.logger.Debug().Int("reaped", n).Int("live", r.manager.Len()).Msg("session sweep complete")
			}
		}
	}
}
