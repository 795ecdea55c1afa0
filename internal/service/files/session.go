package files

import (
	"sync"
	"time"

	"filedepot/internal/domain/models"
)

// sessionStore is the process-global table of in-flight upload sessions.
// All reads and mutations go through its mutex; callers outside this file
// only ever see defensive copies.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.UploadSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: make(map[string]*models.UploadSession)}
}

func (st *sessionStore) insert(s *models.UploadSession) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.UploadID] = s
}

// snapshot returns a copy of the session with a cloned Received set, safe to
// read without holding the lock.
func (st *sessionStore) snapshot(uploadID string) (models.UploadSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[uploadID]
	if !ok {
		return models.UploadSession{}, false
	}

	copied := *s
	copied.Received = make(map[int]struct{}, len(s.Received))
	for idx := range s.Received {
		copied.Received[idx] = struct{}{}
	}
	return copied, true
}

// markReceived records a chunk index as durably stored and refreshes the
// session's activity timestamp. Returns the updated receipt counts, or
// ok=false when the session disappeared (cancelled or swept) meanwhile.
func (st *sessionStore) markReceived(uploadID string, index int) (received, total int, ok bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, exists := st.sessions[uploadID]
	if !exists {
		return 0, 0, false
	}

	s.Received[index] = struct{}{}
	s.UpdatedAt = time.Now()
	return len(s.Received), s.TotalChunks, true
}

// remove deletes the session and returns it, if it was present.
func (st *sessionStore) remove(uploadID string) (*models.UploadSession, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()

	s, ok := st.sessions[uploadID]
	if !ok {
		return nil, false
	}
	delete(st.sessions, uploadID)
	return s, true
}

// removeStale removes and returns every session whose last activity is older
// than ttl at the given instant.
func (st *sessionStore) removeStale(now time.Time, ttl time.Duration) []*models.UploadSession {
	st.mu.Lock()
	defer st.mu.Unlock()

	var stale []*models.UploadSession
	for id, s := range st.sessions {
		if now.Sub(s.UpdatedAt) > ttl {
			stale = append(stale, s)
			delete(st.sessions, id)
		}
	}
	return stale
}

func (st *sessionStore) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}
