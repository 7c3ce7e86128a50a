package pool

import "sync"

// UnitSliceMaxThreshold caps the capacity of code-unit slices kept by the pool.
const UnitSliceMaxThreshold = 1024 * 128

var uint16SlicePool = sync.Pool{
	New: func() any { return &[]uint16{} },
}

// GetUint16Slice retrieves a UTF-16 code-unit slice of length zero and
// capacity of at least size.
//
// The caller must call the returned cleanup function, typically with defer,
// once the slice is no longer referenced.
//
// Example:
//
//	units, cleanup := pool.GetUint16Slice(len(src))
//	defer cleanup()
//	units = append(units, 'a')
func GetUint16Slice(size int) ([]uint16, func()) {
	ptr, _ := uint16SlicePool.Get().(*[]uint16)
	slice := (*ptr)[:0]

	if cap(slice) < size {
		slice = make([]uint16, 0, size)
	}

	return slice, func() {
		if cap(slice) > UnitSliceMaxThreshold {
			return
		}
		*ptr = slice[:0]
		uint16SlicePool.Put(ptr)
	}
}
