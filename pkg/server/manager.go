package server

import (
	"sync"
	"sync/atomic"
)

// SessionObserver is notified when sessions start and end.
type SessionObserver interface {
	SessionStarted(s *Session)
	SessionEnded(s *Session)
}

// SessionManager tracks live sessions.
type SessionManager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	maxSessions int
	observers   []SessionObserver

	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64
	peak         int
}

// NewSessionManager creates a manager allowing at most maxSessions live
// sessions. 0 means no limit.
func NewSessionManager(maxSessions int, observers ...SessionObserver) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		observers:   observers,
	}
}

// Add registers s. It returns ErrMaxSessionsReached when the manager is full.
func (sm *SessionManager) Add(s *Session) error {
	sm.mu.Lock()
	if sm.maxSessions > 0 && len(sm.sessions) >= sm.maxSessions {
		sm.mu.Unlock()
		return ErrMaxSessionsReached
	}
	sm.sessions[s.ID] = s
	sm.peak = max(sm.peak, len(sm.sessions))
	sm.mu.Unlock()

	sm.totalCreated.Add(1)
	for _, o := range sm.observers {
		o.SessionStarted(s)
	}
	return nil
}

// Remove unregisters the session with id. Unknown ids are ignored.
func (sm *SessionManager) Remove(id string) {
	sm.mu.Lock()
	s, ok := sm.sessions[id]
	delete(sm.sessions, id)
	sm.mu.Unlock()

	if !ok {
		return
	}
	sm.totalClosed.Add(1)
	for _, o := range sm.observers {
		o.SessionEnded(s)
	}
}

// Get returns the session with id, or nil.
func (sm *SessionManager) Get(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// Count returns the number of live sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// Shutdown closes every live session. Sessions remove themselves once their
// connection loop returns.
func (sm *SessionManager) Shutdown() {
	sm.mu.RLock()
	live := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		live = append(live, s)
	}
	sm.mu.RUnlock()

	for _, s := range live {
		s.Close()
	}
}

// Stats returns manager counters.
func (sm *SessionManager) Stats() ManagerStats {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return ManagerStats{
		Active:       len(sm.sessions),
		Peak:         sm.peak,
		TotalCreated: sm.totalCreated.Load(),
		TotalClosed:  sm.totalClosed.Load(),
	}
}

// ManagerStats contains session manager counters.
type ManagerStats struct {
	Active       int
	Peak         int
	TotalCreated uint64
	TotalClosed  uint64
}
