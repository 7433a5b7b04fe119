package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/dineline/dineline-backend/internal/models"
)

// Session TTL and sweep cadence
const (
	sessionTTL    = 30 * time.Minute
	sweepInterval = 10 * time.Minute
)

// ErrSessionNotFound is returned for phones with no live session
var ErrSessionNotFound = errors.New("session not found")

// FlowType identifies which guided conversation a session is in
type FlowType string

const (
	FlowNone      FlowType = "none"
	FlowOrder     FlowType = "order"
	FlowBooking   FlowType = "book"
	FlowFeedback  FlowType = "feedback"
	FlowComplaint FlowType = "complaint"
)

// stepChooseFlow is the step every fresh session starts at, before a
// flow has been selected. Flow-specific steps begin at 2.
const stepChooseFlow = 1

// Session is one active WhatsApp conversation, keyed by the customer's
// phone number. Sessions live only in the SessionStore; a restart drops
// every in-flight conversation.
type Session struct {
	Phone        string   `json:"phone"`
	RestaurantID string   `json:"restaurant_id"`
	Flow         FlowType `json:"flow"`
	Step         int      `json:"step"`

	// Flow drafts. Only the draft matching Flow is ever populated;
	// drafts are value types replaced wholesale on each successful
	// transition, never patched in place.
	Order     OrderDraft     `json:"order"`
	Booking   BookingDraft   `json:"booking"`
	Feedback  FeedbackDraft  `json:"feedback"`
	Complaint ComplaintDraft `json:"complaint"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	// ended marks the session for deletion once the current message
	// has been answered (confirm or cancel at a terminal step).
	ended bool
}

// OrderDraft accumulates an order across steps 2-10
type OrderDraft struct {
	Category  string             `json:"category"`
	Selected  models.MenuItem    `json:"selected"` // item awaiting a quantity
	Items     []models.OrderItem `json:"items"`
	OrderType string             `json:"order_type"`
	Address   string             `json:"address"`
	Name      string             `json:"name"`
	Phone     string             `json:"phone"`
	Total     float64            `json:"total"`
}

// BookingDraft accumulates a table reservation across steps 2-6
type BookingDraft struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Notes  string `json:"notes"`
}

// FeedbackDraft accumulates a rating across steps 2-5
type FeedbackDraft struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
}

// ComplaintDraft accumulates a complaint across steps 2-5
type ComplaintDraft struct {
	Issue string `json:"issue"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// SessionStore is the pluggable backing table for active sessions. Get
// must treat sessions past their expiry as absent. Expired reports the
// phones whose sessions are due for eviction; backends that expire keys
// natively may report none.
type SessionStore interface {
	Get(ctx context.Context, phone string) (*Session, error)
	Put(ctx context.Context, session *Session) error
	Delete(ctx context.Context, phone string) error
	Touch(ctx context.Context, phone string, expiresAt time.Time) error
	Expired(ctx context.Context, now time.Time) ([]string, error)
}

// MemorySessionStore keeps sessions in a process-local map
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemorySessionStore creates an empty in-memory session table
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Session)}
}

func (s *MemorySessionStore) Get(ctx context.Context, phone string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, exists := s.sessions[phone]
	if !exists || !time.Now().Before(session.ExpiresAt) {
		return nil, ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (s *MemorySessionStore) Put(ctx context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *session
	s.sessions[session.Phone] = &copied
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, phone)
	return nil
}

func (s *MemorySessionStore) Touch(ctx context.Context, phone string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, exists := s.sessions[phone]
	if !exists {
		return ErrSessionNotFound
	}
	session.ExpiresAt = expiresAt
	return nil
}

func (s *MemorySessionStore) Expired(ctx context.Context, now time.Time) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var phones []string
	for phone, session := range s.sessions {
		if !now.Before(session.ExpiresAt) {
			phones = append(phones, phone)
		}
	}
	return phones, nil
}

// keyedMutex serializes work per phone number so two near-simultaneous
// messages from the same customer cannot both advance the same step,
// without a global lock stalling unrelated phones.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

// Lock blocks until the key is exclusively held and returns the
// release function. Lock entries are refcounted and removed once idle.
func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, exists := k.locks[key]
	if !exists {
		l = &keyedLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

// SessionManager owns the session table, the per-phone locks and the
// background expiry sweeper.
type SessionManager struct {
	store SessionStore
	locks *keyedMutex

	ttl        time.Duration
	sweepEvery time.Duration

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewSessionManager creates a session manager over the given store
func NewSessionManager(store SessionStore) *SessionManager {
	return &SessionManager{
		store:      store,
		locks:      newKeyedMutex(),
		ttl:        sessionTTL,
		sweepEvery: sweepInterval,
		done:       make(chan struct{}),
	}
}

// LockPhone serializes all work for one phone number. Callers must
// invoke the returned release function when done.
func (m *SessionManager) LockPhone(phone string) func() {
	return m.locks.Lock(phone)
}

// NewSession builds a fresh session at the flow-selection step
func (m *SessionManager) NewSession(phone, restaurantID string) *Session {
	now := time.Now()
	return &Session{
		Phone:        phone,
		RestaurantID: restaurantID,
		Flow:         FlowNone,
		Step:         stepChooseFlow,
		CreatedAt:    now,
		ExpiresAt:    now.Add(m.ttl),
	}
}

// Get returns the live session for a phone, or ErrSessionNotFound
func (m *SessionManager) Get(ctx context.Context, phone string) (*Session, error) {
	return m.store.Get(ctx, phone)
}

// Put saves a session
func (m *SessionManager) Put(ctx context.Context, session *Session) error {
	return m.store.Put(ctx, session)
}

// Delete removes a session
func (m *SessionManager) Delete(ctx context.Context, phone string) error {
	return m.store.Delete(ctx, phone)
}

// Touch extends a session's expiry to now plus the session TTL, both
// in the store and on the caller's copy.
func (m *SessionManager) Touch(ctx context.Context, session *Session) error {
	session.ExpiresAt = time.Now().Add(m.ttl)
	return m.store.Touch(ctx, session.Phone, session.ExpiresAt)
}

// Start launches the background expiry sweeper
func (m *SessionManager) Start() {
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(m.sweepEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				m.sweep(context.Background())
			case <-m.done:
				return
			}
		}
	}()
	log.Println("✅ Session expiry sweeper started")
}

// Stop halts the sweeper and waits for it to exit
func (m *SessionManager) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
	m.wg.Wait()
}

// sweep evicts every session past its expiry. A failed sweep logs and
// leaves the rest to the next tick.
func (m *SessionManager) sweep(ctx context.Context) {
	phones, err := m.store.Expired(ctx, time.Now())
	if err != nil {
		log.Printf("⚠️ Session sweep failed: %v", err)
		return
	}

	evicted := 0
	for _, phone := range phones {
		unlock := m.locks.Lock(phone)
		// Re-check under the key lock: the phone may have started a
		// fresh conversation since the scan.
		if _, err := m.store.Get(ctx, phone); errors.Is(err, ErrSessionNotFound) {
			if err := m.store.Delete(ctx, phone); err != nil {
				log.Printf("⚠️ Failed to evict session for %s: %v", phone, err)
			} else {
				evicted++
			}
		}
		unlock()
	}

	if evicted > 0 {
		log.Printf("🧹 Session sweep evicted %d stale session(s)", evicted)
	}
}
