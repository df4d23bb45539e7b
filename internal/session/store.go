package session

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yanizio/linkpage/internal/cache"
	"github.com/yanizio/linkpage/internal/contact"
	"github.com/yanizio/linkpage/internal/metrics"
)

// Static defaults.  Override through config.
const (
	IdleTTL       = 30 * time.Minute
	MaxEntries    = 10000
	EvictInterval = time.Minute
)

// Options tune a Store.  Zero values fall back to the defaults above.
type Options struct {
	IdleTTL       time.Duration
	MaxEntries    int
	EvictInterval time.Duration
}

// Store holds live visitors.  Safe for concurrent use.
type Store struct {
	sink     contact.Sink
	idleTTL  time.Duration
	interval time.Duration
	lru      *cache.LRU[string, *Visitor]
	now      func() time.Time
}

// NewStore builds a Store whose visitors deliver through s.
func NewStore(s contact.Sink, opts Options) *Store {
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = IdleTTL
	}
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = MaxEntries
	}
	if opts.EvictInterval <= 0 {
		opts.EvictInterval = EvictInterval
	}
	return &Store{
		sink:     s,
		idleTTL:  opts.IdleTTL,
		interval: opts.EvictInterval,
		lru: cache.New(opts.MaxEntries, func(id string, _ *Visitor) {
			metrics.SessionEvictTotal.Inc()
			metrics.ActiveSessions.Dec()
		}),
		now: time.Now,
	}
}

// Visitor returns the caller's Visitor, creating it (and setting the cookie)
// when the request carries no live session.
func (s *Store) Visitor(w http.ResponseWriter, r *http.Request) *Visitor {
	if id, ok := cookieID(r); ok {
		if v, ok := s.Get(id); ok {
			return v
		}
	}

	v := s.create()
	setCookie(w, r, v.ID)
	return v
}

// Get returns a live visitor by ID and refreshes its idle clock.
func (s *Store) Get(id string) (*Visitor, bool) {
	v, ok := s.lru.Get(id)
	if !ok {
		return nil, false
	}
	v.touch(s.now())
	return v, true
}

// Len reports the number of live visitors.
func (s *Store) Len() int { return s.lru.Len() }

func (s *Store) create() *Visitor {
	v := &Visitor{ID: uuid.NewString()}
	v.Controller = contact.NewController(s.sink, v)
	v.touch(s.now())
	s.lru.Add(v.ID, v)
	metrics.ActiveSessions.Inc()
	return v
}

// Sweep drops visitors idle longer than the TTL.  Visitors with a submission
// in flight are kept.
func (s *Store) Sweep() int {
	now := s.now()
	return s.lru.Sweep(func(_ string, v *Visitor) bool {
		return v.idleFor(now) > s.idleTTL && v.Controller.State() != contact.Sending
	})
}

// Run sweeps every EvictInterval until ctx is done.
func (s *Store) Run(ctx context.Context) error {
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				zap.S().Debugw("sessions evicted", "count", n, "live", s.Len())
			}
		}
	}
}
