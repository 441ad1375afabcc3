// Package session tracks per-client storefront state: one cart per session
// and, while the checkout UI is open, one checkout machine.
package session

import (
	"sync"

	"github.com/andreasstove999/storefront/internal/cart"
	"github.com/andreasstove999/storefront/internal/checkout"
)

// Session pairs a cart with an optional in-flight checkout.
type Session struct {
	ID   string
	Cart *cart.Store

	mu      sync.Mutex
	machine *checkout.Machine
}

// OpenCheckout returns the session's checkout machine, creating a fresh
// one (empty form, Editing stage) if the checkout UI was closed.
func (s *Session) OpenCheckout(newMachine func(*cart.Store) *checkout.Machine) *checkout.Machine {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.machine == nil {
		s.machine = newMachine(s.Cart)
	}
	return s.machine
}

// Checkout returns the current machine, or false if checkout is not open.
func (s *Session) Checkout() (*checkout.Machine, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.machine, s.machine != nil
}

// CloseCheckout discards the machine and with it the form; reopening
// starts from an empty form, matching the reset-on-close lifecycle.
func (s *Session) CloseCheckout() {
	s.mu.Lock()
	s.machine = nil
	s.mu.Unlock()
}

// Manager is the session registry. Sessions are created on first touch and
// live for the process lifetime; carts are deliberately not durable.
type Manager struct {
	mu         sync.RWMutex
	sessions   map[string]*Session
	newMachine func(*cart.Store) *checkout.Machine
}

func NewManager(newMachine func(*cart.Store) *checkout.Machine) *Manager {
	return &Manager{
		sessions:   make(map[string]*Session),
		newMachine: newMachine,
	}
}

// Get returns the session with the given id, creating it with an empty
// cart if it does not exist yet.
func (m *Manager) Get(id string) *Session {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if ok {
		return s
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s = &Session{ID: id, Cart: cart.NewStore()}
	m.sessions[id] = s
	return s
}

// Open opens (or returns) the checkout machine for a session.
func (m *Manager) Open(id string) *checkout.Machine {
	return m.Get(id).OpenCheckout(m.newMachine)
}
