// Package session keeps one cart per browser session in memory.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Ansh037/ShopifyCheckout/internal/cart"
)

// CleanupInterval is how often idle sessions are swept.
const CleanupInterval = time.Minute

type entry struct {
	store    *cart.Store
	lastSeen time.Time
}

// Registry maps session ids to carts. Sessions untouched for longer than the
// idle TTL are dropped by a background sweep.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	checkout cart.CheckoutGateway
	idleTTL  time.Duration
	logger   *zap.Logger
	now      func() time.Time

	stopCleanup chan struct{}
	wg          sync.WaitGroup
	closeOnce   sync.Once
}

func NewRegistry(checkout cart.CheckoutGateway, idleTTL time.Duration, logger *zap.Logger) *Registry {
	r := &Registry{
		sessions:    make(map[string]*entry),
		checkout:    checkout,
		idleTTL:     idleTTL,
		logger:      logger,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	if idleTTL > 0 {
		r.wg.Add(1)
		go r.cleanupLoop(CleanupInterval)
	}
	return r
}

// Create starts a new session with an empty cart.
func (r *Registry) Create() (string, *cart.Store) {
	id := uuid.NewString()
	store := cart.NewStore(r.checkout, r.logger)

	r.mu.Lock()
	r.sessions[id] = &entry{store: store, lastSeen: r.now()}
	r.mu.Unlock()

	return id, store
}

// Get returns the session's cart and marks the session as active.
func (r *Registry) Get(id string) (*cart.Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.store, true
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) cleanupLoop(interval time.Duration) {
	defer r.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.expireIdle()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *Registry) expireIdle() int {
	cutoff := r.now().Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	expired := 0
	for id, e := range r.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(r.sessions, id)
			expired++
		}
	}
	if expired > 0 {
		r.logger.Info("expired idle sessions", zap.Int("count", expired), zap.Int("active", len(r.sessions)))
	}
	return expired
}

// Close stops the background sweep and waits for it to finish.
func (r *Registry) Close() {
	r.closeOnce.Do(func() {
		close(r.stopCleanup)
		r.wg.Wait()
	})
}
