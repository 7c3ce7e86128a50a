// Package hash computes the 64-bit IDs used to key scope entries.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of name.
func ID(name string) uint64 {
	return xxhash.Sum64String(name)
}
