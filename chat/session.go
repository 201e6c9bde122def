package chat

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"wefix/models"
)

// maxSessions bounds memory: when a new session would exceed the cap
// the oldest session is evicted.
const maxSessions = 10

type session struct {
	turns     []models.ConversationTurn
	createdAt time.Time
	epoch     uint64
}

// SessionStore keeps per-session conversation history in memory.
// Safe for concurrent use.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
	epoch    uint64
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*session)}
}

// NewSessionID mints a client-facing session identifier.
func NewSessionID() string {
	return fmt.Sprintf("session_%d_%06d", time.Now().UnixMilli(), rand.Intn(1000000))
}

// Touch gets or creates the session and returns its epoch. The epoch
// changes whenever the session is cleared and recreated, so a caller
// that captured it before slow work can detect a mid-flight reset.
func (s *SessionStore) Touch(sessionID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(sessionID).epoch
}

// Append records one turn of the conversation. Unknown session IDs
// start a fresh session; the store evicts the oldest session beyond
// the cap.
func (s *SessionStore) Append(sessionID string, turn models.ConversationTurn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreateLocked(sessionID)
	sess.turns = append(sess.turns, turn)
}

// AppendIfCurrent records the turn only if the session still exists at
// the given epoch. It reports whether the turn was kept; a stale epoch
// means the session was reset while the turn was being produced.
func (s *SessionStore) AppendIfCurrent(sessionID string, epoch uint64, turn models.ConversationTurn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok || sess.epoch != epoch {
		return false
	}
	sess.turns = append(sess.turns, turn)
	return true
}

func (s *SessionStore) getOrCreateLocked(sessionID string) *session {
	sess, ok := s.sessions[sessionID]
	if !ok {
		if len(s.sessions) >= maxSessions {
			s.evictOldestLocked()
		}
		s.epoch++
		sess = &session{createdAt: time.Now(), epoch: s.epoch}
		s.sessions[sessionID] = sess
	}
	return sess
}

// History returns a copy of the session's turns, oldest first.
func (s *SessionStore) History(sessionID string) []models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil
	}
	turns := make([]models.ConversationTurn, len(sess.turns))
	copy(turns, sess.turns)
	return turns
}

// Clear drops one session's history.
func (s *SessionStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Export returns every live session's turns keyed by session ID.
func (s *SessionStore) Export() map[string][]models.ConversationTurn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string][]models.ConversationTurn, len(s.sessions))
	for id, sess := range s.sessions {
		turns := make([]models.ConversationTurn, len(sess.turns))
		copy(turns, sess.turns)
		out[id] = turns
	}
	return out
}

// Len reports how many sessions are live.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// evictOldestLocked removes the session with the lowest epoch. Epochs
// are monotonic, so the lowest one is the least recently started
// session even when wall clocks collide.
func (s *SessionStore) evictOldestLocked() {
	var oldestID string
	var oldestEpoch uint64
	first := true
	for id, sess := range s.sessions {
		if first || sess.epoch < oldestEpoch {
			oldestID = id
			oldestEpoch = sess.epoch
			first = false
		}
	}
	if oldestID != "" {
		delete(s.sessions, oldestID)
	}
}
