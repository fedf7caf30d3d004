package domain

import "sync"

// State is the process-wide sourcing state shared by the dispatcher and the
// sourcing coordinator. One State is built per process, so the touched set
// starts empty on every run and is never cleared afterwards.
type State struct {
	owners *TypeOwners

	mu      sync.RWMutex
	touched map[string]struct{}
	sourced bool
	cycles  int
}

// NewState returns a State for a fresh process.
func NewState() *State {
	return &State{
		owners:  NewTypeOwners(),
		touched: make(map[string]struct{}),
	}
}

// TypeOwners returns the type ownership mapping.
func (s *State) TypeOwners() *TypeOwners {
	return s.owners
}

// Touch marks a node id as produced or confirmed during this process.
func (s *State) Touch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touched[id] = struct{}{}
}

// Untouch removes a node id from the touched set.
func (s *State) Untouch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.touched, id)
}

// IsTouched reports whether the node id is in the touched set.
func (s *State) IsTouched(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.touched[id]
	return ok
}

// TouchedCount returns the size of the touched set.
func (s *State) TouchedCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.touched)
}

// TouchedSnapshot returns a copy of the touched set.
func (s *State) TouchedSnapshot() map[string]struct{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]struct{}, len(s.touched))
	for id := range s.touched {
		out[id] = struct{}{}
	}
	return out
}

// IsInitialSourcing reports whether no sourcing cycle has completed reconciliation yet.
func (s *State) IsInitialSourcing() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.sourced
}

// MarkSourced records that the initial reconciliation has run.
func (s *State) MarkSourced() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sourced = true
}

// SourcingCount returns the number of completed sourcing cycles.
func (s *State) SourcingCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cycles
}

// IncrementSourcingCount records a completed sourcing cycle.
func (s *State) IncrementSourcingCount() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cycles++
}
