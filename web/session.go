package web

import (
	"net/http"
	"sync"
	"time"

	uuid "github.com/satori/go.uuid"

	"github.com/pivolan/mbti_top10/dataset"
)

const sessionCookie = "session_id"

// Session holds what one visitor has loaded. Each session owns its cache so
// uploads never leak between visitors.
type Session struct {
	ID     string
	Loader *dataset.Loader

	mu       sync.Mutex
	upload   *dataset.Source
	lastSeen time.Time
}

func (s *Session) Upload() (dataset.Source, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.upload == nil {
		return dataset.Source{}, false
	}
	return *s.upload, true
}

func (s *Session) SetUpload(src dataset.Source) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upload = &src
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// Sessions is the registry of live sessions keyed by cookie value.
type Sessions struct {
	mu          sync.RWMutex
	items       map[string]*Session
	now         func() time.Time
	maxUnpacked int64
}

func NewSessions() *Sessions {
	return &Sessions{items: map[string]*Session{}, now: time.Now}
}

// WithMaxUnpacked sets the archive size limit given to new session loaders.
func (s *Sessions) WithMaxUnpacked(n int64) *Sessions {
	s.maxUnpacked = n
	return s
}

// For returns the session named by the request cookie, creating one and
// setting the cookie when it is absent or unknown.
func (s *Sessions) For(w http.ResponseWriter, r *http.Request) *Session {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.FromString(c.Value); err == nil {
			if sess := s.get(c.Value); sess != nil {
				sess.touch(s.now())
				return sess
			}
		}
	}

	sess := &Session{
		ID:     uuid.NewV4().String(),
		Loader: dataset.NewLoader(dataset.NewCache()).WithMaxUnpacked(s.maxUnpacked),
	}
	sess.touch(s.now())
	s.mu.Lock()
	s.items[sess.ID] = sess
	s.mu.Unlock()
	sessionsActive.Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *Sessions) get(id string) *Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items[id]
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sweep drops sessions idle for longer than maxIdle and returns how many were removed.
func (s *Sessions) Sweep(maxIdle time.Duration) int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, sess := range s.items {
		if sess.idleSince(now) > maxIdle {
			delete(s.items, id)
			removed++
		}
	}
	sessionsActive.Sub(float64(removed))
	return removed
}
