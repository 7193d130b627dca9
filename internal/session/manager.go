// Package session owns the per-browser form state for the web surface.
package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/SandipWaghchaure7/ai-code-review-assistant/internal/core"
)

// CookieName is the cookie carrying the session id.
const CookieName = "crs_session"

const defaultTTL = 30 * time.Minute

type entry struct {
	state  core.Session
	cancel context.CancelFunc // set while a request is in flight
}

// Manager keeps one core.Session per session id in an expiring table.
// All transitions go through core.Reduce under a single lock.
type Manager struct {
	mu     sync.Mutex
	store  *cache.Cache
	logger *slog.Logger
}

// NewManager creates a Manager whose idle sessions expire after ttl.
func NewManager(ttl time.Duration, logger *slog.Logger) *Manager {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	m := &Manager{store: cache.New(ttl, ttl/2), logger: logger}
	m.store.OnEvicted(m.evicted)
	return m
}

func (m *Manager) evicted(id string, v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := v.(*entry); ok && e.cancel != nil {
		e.cancel()
	}
	m.logger.Debug("session expired", "session_id", id)
}

// NewID returns a fresh random session id.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

// Valid reports whether id is well formed.
func Valid(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// lookup returns the entry for id, creating it when absent. Callers hold mu.
func (m *Manager) lookup(id string) *entry {
	if v, ok := m.store.Get(id); ok {
		if e, ok := v.(*entry); ok {
			return e
		}
	}
	return &entry{state: core.NewSession()}
}

func (m *Manager) save(id string, e *entry) {
	m.store.Set(id, e, cache.DefaultExpiration)
}

// Get returns the current snapshot for id.
func (m *Manager) Get(id string) core.Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lookup(id).state
}

// Apply runs events through the reducer and returns the resulting snapshot.
func (m *Manager) Apply(id string, events ...core.Event) core.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.lookup(id)
	m.reduce(id, e, events)
	m.save(id, e)
	return e.state
}

// reduce applies events to e and cancels the request in flight once an
// event has superseded it. Callers hold mu.
func (m *Manager) reduce(id string, e *entry, events []core.Event) {
	for _, ev := range events {
		e.state = core.Reduce(e.state, ev)
	}
	if e.cancel != nil && !e.state.Busy {
		m.logger.Info("cancelling superseded review", "session_id", id)
		e.cancel()
		e.cancel = nil
	}
}

// Begin applies edits followed by a submit. When the session turns busy, the
// previous in-flight request is cancelled and a context for the new request is
// returned with ok set. A blank submission leaves ok false and the session in
// its validation error state.
func (m *Manager) Begin(ctx context.Context, id string, edits ...core.Event) (context.Context, core.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.lookup(id)
	m.reduce(id, e, edits)
	e.state = core.Reduce(e.state, core.SubmitRequested{})

	if !e.state.Busy {
		m.save(id, e)
		return ctx, e.state, false
	}

	if e.cancel != nil {
		m.logger.Info("cancelling superseded review", "session_id", id)
		e.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	m.save(id, e)
	return reqCtx, e.state, true
}

// Finish delivers the outcome of the request started at gen. Results for an
// older generation are dropped by the reducer.
func (m *Manager) Finish(id string, gen uint64, review string, err error) core.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.lookup(id)
	var ev core.Event
	if err != nil {
		ev = core.ReviewFailed{Generation: gen, Message: core.UserMessage(err)}
	} else {
		ev = core.ReviewSucceeded{Generation: gen, Review: review}
	}
	before := e.state.Generation
	e.state = core.Reduce(e.state, ev)
	if gen == before && e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	if gen != before {
		m.logger.Debug("dropping stale review result", "session_id", id, "generation", gen, "current", before)
	}
	m.save(id, e)
	return e.state
}

// Clear cancels any in-flight request and resets the session.
func (m *Manager) Clear(id string) core.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := m.lookup(id)
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.state = core.Reduce(e.state, core.Cleared{})
	m.save(id, e)
	return e.state
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	return m.store.ItemCount()
}
