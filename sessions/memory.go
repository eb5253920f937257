package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

var _ Registry = (*MemoryRegistry)(nil)

// MemoryRegistry keeps sessions in process memory. Expired records are
// evicted on lookup and, when a sweep interval is set, in the background.
type MemoryRegistry struct {
	sessions      map[string]*Session
	lock          sync.RWMutex
	ttl           time.Duration
	now           func() time.Time
	sweepInterval time.Duration

	stop      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

type MemoryOption func(*MemoryRegistry)

// WithNowTime overrides the registry clock.
func WithNowTime(now func() time.Time) MemoryOption {
	return func(r *MemoryRegistry) {
		r.now = now
	}
}

// WithSweepInterval starts a background reaper. Zero disables it.
func WithSweepInterval(d time.Duration) MemoryOption {
	return func(r *MemoryRegistry) {
		r.sweepInterval = d
	}
}

func NewMemoryRegistry(ttl time.Duration, opts ...MemoryOption) *MemoryRegistry {
	r := &MemoryRegistry{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.sweepInterval > 0 {
		go r.sweep()
	} else {
		close(r.done)
	}
	return r
}

func (r *MemoryRegistry) Create(_ context.Context, p Principal) (*Session, error) {
	s, err := NewSession(p, r.now(), r.ttl)
	if err != nil {
		return nil, err
	}

	r.lock.Lock()
	r.sessions[s.ID] = s
	r.lock.Unlock()

	out := *s
	return &out, nil
}

func (r *MemoryRegistry) Get(_ context.Context, id string) (*Session, error) {
	r.lock.RLock()
	s, ok := r.sessions[id]
	var out Session
	if ok {
		out = *s
	}
	r.lock.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if out.Expired(r.now()) {
		r.lock.Lock()
		// Recheck under the write lock; the id may have been replaced.
		if cur, ok := r.sessions[id]; ok && cur.Expired(r.now()) {
			delete(r.sessions, id)
		}
		r.lock.Unlock()
		return nil, ErrNotFound
	}
	return &out, nil
}

func (r *MemoryRegistry) Delete(_ context.Context, id string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	delete(r.sessions, id)
	return nil
}

// DeleteExpiredSessions removes every session expired at now and returns
// how many were removed.
func (r *MemoryRegistry) DeleteExpiredSessions(now time.Time) int {
	r.lock.Lock()
	defer r.lock.Unlock()

	removed := 0
	for id, s := range r.sessions {
		if s.Expired(now) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored records, expired or not.
func (r *MemoryRegistry) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()
	return len(r.sessions)
}

// Close stops the background reaper. It is safe to call more than once.
func (r *MemoryRegistry) Close() error {
	r.closeOnce.Do(func() {
		close(r.stop)
	})
	<-r.done
	return nil
}

func (r *MemoryRegistry) sweep() {
	defer close(r.done)

	ticker := time.NewTicker(r.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case <-ticker.C:
			if n := r.DeleteExpiredSessions(r.now()); n > 0 {
				log.Debug().Int("removed", n).Msg("swept expired sessions")
			}
		}
	}
}
