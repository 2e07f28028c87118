package wizard

import (
	"sync"
	"time"
)

// DefaultSelectionTimeout is how long a class or role view stays clickable
const DefaultSelectionTimeout = 5 * time.Minute

// expiredRetention bounds how long expired session ids are remembered.
// Interaction tokens are only valid for 15 minutes, so older views can no
// longer be edited anyway.
const expiredRetention = 15 * time.Minute

// Tracker owns the one-shot timeout of each displayed selection view.
// Sessions are keyed by the id embedded in the view's custom ids.
type Tracker struct {
	timeout time.Duration

	mu      sync.Mutex
	timers  map[string]*armed
	expired map[string]time.Time
	gen     uint64
}

type armed struct {
	timer *time.Timer
	gen   uint64
}

// NewTracker creates a tracker; a zero timeout uses DefaultSelectionTimeout
func NewTracker(timeout time.Duration) *Tracker {
	if timeout <= 0 {
		timeout = DefaultSelectionTimeout
	}

	return &Tracker{
		timeout: timeout,
		timers:  make(map[string]*armed),
		expired: make(map[string]time.Time),
	}
}

// Timeout returns the configured selection timeout
func (t *Tracker) Timeout() time.Duration {
	return t.timeout
}

// Arm starts the timeout for the view currently displayed by a session,
// replacing any previous timer for that session. onExpire runs once, after
// the session has been marked expired.
func (t *Tracker) Arm(sessionID string, onExpire func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pruneLocked(time.Now())

	if prev, ok := t.timers[sessionID]; ok {
		prev.timer.Stop()
	}

	t.gen++
	gen := t.gen
	t.timers[sessionID] = &armed{
		gen: gen,
		timer: time.AfterFunc(t.timeout, func() {
			if !t.expire(sessionID, gen) {
				return
			}
			if onExpire != nil {
				onExpire()
			}
		}),
	}
}

// expire marks the session expired if gen is still the armed generation
func (t *Tracker) expire(sessionID string, gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	current, ok := t.timers[sessionID]
	if !ok || current.gen != gen {
		return false
	}

	delete(t.timers, sessionID)
	t.expired[sessionID] = time.Now()
	return true
}

// Cancel stops the session's timer without expiring it
func (t *Tracker) Cancel(sessionID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if current, ok := t.timers[sessionID]; ok {
		current.timer.Stop()
		delete(t.timers, sessionID)
	}
}

// Expired reports whether the session's view timed out
func (t *Tracker) Expired(sessionID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	_, ok := t.expired[sessionID]
	return ok
}

// Resolve returns StepExpired for an expired session, otherwise displayed.
// Sessions the tracker has never seen, e.g. after a restart, are treated
// as live.
func (t *Tracker) Resolve(sessionID string, displayed Step) Step {
	if displayed.Expires() && t.Expired(sessionID) {
		return StepExpired
	}
	return displayed
}

// Active returns the number of armed timers
func (t *Tracker) Active() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	return len(t.timers)
}

// Stop cancels every pending timer
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for id, a := range t.timers {
		a.timer.Stop()
		delete(t.timers, id)
	}
}

func (t *Tracker) pruneLocked(now time.Time) {
	for id, at := range t.expired {
		if now.Sub(at) > expiredRetention {
			delete(t.expired, id)
		}
	}
}
