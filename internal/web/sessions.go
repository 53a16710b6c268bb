package web

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spigell/resume-parser/internal/form"
)

type session struct {
	controller *form.Controller
	lastSeen   time.Time
}

// sessions keeps one form controller per browser session.
type sessions struct {
	mu    sync.Mutex
	items map[string]*session
	ttl   time.Duration
	now   func() time.Time
	build func() *form.Controller
}

func newSessions(ttl time.Duration, build func() *form.Controller) *sessions {
	return &sessions{
		items: make(map[string]*session),
		ttl:   ttl,
		now:   time.Now,
		build: build,
	}
}

// get returns the controller of session id, creating a fresh session when id is unknown.
// The returned id differs from the argument when a new session was created.
func (s *sessions) get(id string) (string, *form.Controller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	if sess, ok := s.items[id]; ok && !s.expired(sess, now) {
		sess.lastSeen = now
		return id, sess.controller
	}

	s.evict(now)

	id = uuid.NewString()
	sess := &session{controller: s.build(), lastSeen: now}
	s.items[id] = sess

	return id, sess.controller
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *sessions) expired(sess *session, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.lastSeen) > s.ttl
}

// evict drops idle sessions. Sessions with a submission in flight are kept.
func (s *sessions) evict(now time.Time) {
	for id, sess := range s.items {
		if s.expired(sess, now) && !sess.controller.Snapshot().IsLoading() {
			delete(s.items, id)
		}
	}
}
