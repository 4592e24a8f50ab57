// ABOUTME: Per-user conversation session storage with TTL-based expiry
// ABOUTME: Serializes all access for one user while keeping distinct users independent

package session

import (
	"sync"
	"time"

	"github.com/workee/orderdesk/internal/catalog"
)

// State identifies which prompt the user is expected to answer next.
// Completed and cancelled conversations are terminal and are represented by
// removal from the store, so they can never accept another transition.
type State string

const (
	StateAwaitingQuantity State = "awaiting_quantity"
	StateAwaitingName     State = "awaiting_name"
	StateAwaitingPhone    State = "awaiting_phone"
	StateAwaitingAddress  State = "awaiting_address"
)

// Session is the mutable record of one user's in-progress order conversation.
// Product is captured at selection time and never re-resolved, so a catalog
// edit mid-conversation cannot silently change the committed order.
type Session struct {
	UserID          string
	Product         catalog.Product
	State           State
	Quantity        int
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// New creates a session for a freshly selected product.
func New(userID string, product catalog.Product) *Session {
	now := time.Now()
	return &Session{
		UserID:    userID,
		Product:   product,
		State:     StateAwaitingQuantity,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch records activity on the session, resetting its idle clock.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now()
}

// slot holds one user's session. The slot mutex serializes all work for that
// user, including any I/O done while a transition is in flight.
type slot struct {
	mu   sync.Mutex
	sess *Session
	gone bool // set when the janitor removes the slot from the map
}

// Store holds at most one live session per user. It is a passive keyed
// container: it performs no validation, only storage, per-user exclusion,
// and idle expiry.
type Store struct {
	mu    sync.Mutex
	slots map[string]*slot
	ttl   time.Duration
	done  chan struct{}
	close sync.Once
}

// DefaultTTL is how long an idle session survives before it is treated as
// cancelled and evicted.
const DefaultTTL = 30 * time.Minute

// NewStore creates a session store whose idle sessions expire after ttl.
// A ttl of zero uses DefaultTTL. A background janitor sweeps expired
// sessions; Close stops it.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		slots: make(map[string]*slot),
		ttl:   ttl,
		done:  make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Do runs fn with exclusive access to userID's session. The session passed
// to fn is nil when the user has no live session (including when it has
// expired). The session fn returns replaces the stored one; returning nil
// removes it. Calls for the same user are fully serialized; calls for
// distinct users do not block each other.
func (s *Store) Do(userID string, fn func(*Session) *Session) {
	for {
		s.mu.Lock()
		sl, ok := s.slots[userID]
		if !ok {
			sl = &slot{}
			s.slots[userID] = sl
		}
		s.mu.Unlock()

		sl.mu.Lock()
		if sl.gone {
			// Janitor removed this slot between lookup and lock.
			sl.mu.Unlock()
			continue
		}

		sess := sl.sess
		if sess != nil && time.Since(sess.UpdatedAt) >= s.ttl {
			// Idle past the TTL: treated as cancelled before fn observes it.
			sess = nil
		}
		sl.sess = fn(sess)
		sl.mu.Unlock()
		return
	}
}

// Get returns a copy of the user's live session, or false when none exists.
func (s *Store) Get(userID string) (Session, bool) {
	var out Session
	var ok bool
	s.Do(userID, func(sess *Session) *Session {
		if sess != nil {
			out = *sess
			ok = true
		}
		return sess
	})
	return out, ok
}

// Put stores a session for the user, replacing any existing one.
func (s *Store) Put(userID string, sess *Session) {
	s.Do(userID, func(*Session) *Session {
		return sess
	})
}

// Remove deletes the user's session if present.
func (s *Store) Remove(userID string) {
	s.Do(userID, func(*Session) *Session {
		return nil
	})
}

// Len returns the number of live (non-expired) sessions.
func (s *Store) Len() int {
	n := 0
	for _, sl := range s.snapshot() {
		sl.mu.Lock()
		if !sl.gone && sl.sess != nil && time.Since(sl.sess.UpdatedAt) < s.ttl {
			n++
		}
		sl.mu.Unlock()
	}
	return n
}

// snapshot copies the slot map so callers can lock slots one at a time
// without holding s.mu. Holding s.mu while waiting on a slot mutex would
// stall every other user's Do behind one slot's in-flight transition.
func (s *Store) snapshot() map[string]*slot {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*slot, len(s.slots))
	for userID, sl := range s.slots {
		out[userID] = sl
	}
	return out
}

// janitor periodically evicts expired sessions and empty slots.
func (s *Store) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.done:
			return
		}
	}
}

// sweep removes expired sessions and releases their slots.
func (s *Store) sweep() {
	for userID, sl := range s.snapshot() {
		// A slot busy with an in-flight transition is active, not idle.
		// Skip it rather than wait out its I/O.
		if !sl.mu.TryLock() {
			continue
		}
		if !sl.gone && (sl.sess == nil || time.Since(sl.sess.UpdatedAt) >= s.ttl) {
			sl.sess = nil
			sl.gone = true
			s.mu.Lock()
			delete(s.slots, userID)
			s.mu.Unlock()
		}
		sl.mu.Unlock()
	}
}

// Close stops the background janitor. It is safe to call multiple times.
func (s *Store) Close() {
	s.close.Do(func() {
		close(s.done)
	})
}
