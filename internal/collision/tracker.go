package collision

import (
	"fmt"

	"github.com/arloliu/textcodec/errs"
)

// Tracker records names by their 64-bit hash and rejects duplicate names as
// well as different names that share a hash.
//
// Tracker is not safe for concurrent use; callers guard it with their own lock.
type Tracker struct {
	names map[uint64]string // Hash → name mapping for collision detection
	order []string          // Names in the order they were tracked
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names: make(map[uint64]string),
		order: make([]string, 0),
	}
}

// Track records name under hash.
//
// Returns an error if:
//   - name is empty (ErrInvalidName)
//   - name was already tracked (ErrAlreadyDefined)
//   - a different name was tracked under the same hash (ErrHashCollision)
func (t *Tracker) Track(name string, hash uint64) error {
	if name == "" {
		return errs.ErrInvalidName
	}

	if existing, exists := t.names[hash]; exists {
		if existing == name {
			return fmt.Errorf("%w: %q", errs.ErrAlreadyDefined, name)
		}

		return fmt.Errorf("%w: %q and %q share hash 0x%016x", errs.ErrHashCollision, existing, name, hash)
	}

	t.names[hash] = name
	t.order = append(t.order, name)

	return nil
}

// Lookup returns the name tracked under hash.
func (t *Tracker) Lookup(hash uint64) (string, bool) {
	name, ok := t.names[hash]
	return name, ok
}

// Names returns the tracked names in the order Track accepted them.
func (t *Tracker) Names() []string {
	return t.order
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.order)
}

// Reset clears all tracked names.
func (t *Tracker) Reset() {
	// Clear maps but preserve capacity to avoid allocations
	for k := range t.names {
		delete(t.names, k)
	}
	t.order = t.order[:0]
}
