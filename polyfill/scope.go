package polyfill

import (
	"sync"

	"github.com/arloliu/textcodec/internal/collision"
	"github.com/arloliu/textcodec/internal/hash"
)

// Scope is a named set of values, the Go stand-in for a global object that
// constructors are installed into.
//
// Names are keyed by their xxHash64 ID. Scope is safe for concurrent use.
type Scope struct {
	mu      sync.RWMutex
	tracker *collision.Tracker
	values  map[uint64]any
}

// NewScope creates an empty scope.
func NewScope() *Scope {
	return &Scope{
		tracker: collision.NewTracker(),
		values:  make(map[uint64]any),
	}
}

// Define binds name to value.
//
// Returns an error if:
//   - name is empty (ErrInvalidName)
//   - name is already defined (ErrAlreadyDefined)
//   - name hashes to the ID of a different defined name (ErrHashCollision)
func (s *Scope) Define(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.defineLocked(name, value)
}

func (s *Scope) defineLocked(name string, value any) error {
	id := hash.ID(name)
	if err := s.tracker.Track(name, id); err != nil {
		return err
	}
	s.values[id] = value

	return nil
}

// Has reports whether name is defined.
func (s *Scope) Has(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Lookup returns the value bound to name.
func (s *Scope) Lookup(name string) (any, bool) {
	if name == "" {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id := hash.ID(name)
	if defined, ok := s.tracker.Lookup(id); !ok || defined != name {
		return nil, false
	}

	return s.values[id], true
}

// Names returns the defined names in definition order.
func (s *Scope) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := s.tracker.Names()
	out := make([]string, len(names))
	copy(out, names)

	return out
}

// DefineIfAbsent binds name to value unless name is already defined.
// It reports whether value was bound.
func (s *Scope) DefineIfAbsent(name string, value any) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := hash.ID(name)
	if defined, ok := s.tracker.Lookup(id); ok && defined == name {
		return false, nil
	}

	if err := s.defineLocked(name, value); err != nil {
		return false, err
	}

	return true, nil
}

