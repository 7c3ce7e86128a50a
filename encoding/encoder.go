package encoding

import (
	"github.com/arloliu/textcodec/internal/pool"
)

// EncodeResult reports the progress of EncodeInto.
type EncodeResult struct {
	// Read is the number of code points consumed from the input.
	Read int
	// Written is the number of bytes placed into the destination.
	Written int
	// Units is the number of UTF-16 code units consumed from the input.
	// A surrogate pair counts as 2. Encoding can resume from input[Units:].
	Units int
}

// Encoder converts UTF-16 code units to UTF-8 bytes.
//
// Encoder has no state and is safe for concurrent use. It never fails:
// unpaired surrogates are encoded from their raw 16-bit value, and the only
// way to lose input is a destination that is too small for EncodeInto.
type Encoder struct{}

// NewEncoder creates a new UTF-8 encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encoding returns the canonical encoding name, always "utf-8".
func (e *Encoder) Encoding() string {
	return Label
}

// Encode encodes input into a newly allocated byte slice.
//
// The input is encoded into a pooled worst-case buffer of MaxBytesPerUnit
// bytes per code unit and only the written prefix is copied out, so the
// returned slice is exactly as long as the encoded text. Empty input yields
// a non-nil empty slice.
func (e *Encoder) Encode(input []uint16) []byte {
	buf := pool.GetEncodeBuffer()
	defer pool.PutEncodeBuffer(buf)

	buf.ExtendOrGrow(len(input) * MaxBytesPerUnit)
	res := e.EncodeInto(input, buf.B)

	out := make([]byte, res.Written)
	copy(out, buf.B[:res.Written])

	return out
}

// EncodeString encodes a Go string.
//
// Invalid UTF-8 in s is first replaced with U+FFFD.
func (e *Encoder) EncodeString(s string) []byte {
	return e.Encode(UnitsFromString(s))
}

// EncodeInto encodes as much of input as fits into dst.
//
// Encoding stops before the first code point whose complete byte sequence
// does not fit, so dst never holds a partial sequence and Written never
// exceeds len(dst).
func (e *Encoder) EncodeInto(input []uint16, dst []byte) EncodeResult {
	var res EncodeResult

	for i := 0; i < len(input); {
		cp, width := CodePointAt(input, i)
		n := SequenceLen(cp)
		if res.Written+n > len(dst) {
			break
		}

		putSequence(dst[res.Written:], cp, n)
		res.Written += n
		res.Read++
		res.Units += width
		i += width
	}

	return res
}

// EncodeStringInto encodes as much of s as fits into dst.
//
// Units in the result refers to UTF-16 code units of s, not bytes of s.
func (e *Encoder) EncodeStringInto(s string, dst []byte) EncodeResult {
	return e.EncodeInto(UnitsFromString(s), dst)
}

// putSequence writes the n-byte UTF-8 form of cp to dst.
func putSequence(dst []byte, cp rune, n int) {
	switch n {
	case 1:
		dst[0] = byte(cp)
	case 2:
		_ = dst[1]
		dst[0] = 0xC0 | byte(cp>>6)
		dst[1] = 0x80 | byte(cp&0x3F)
	case 3:
		_ = dst[2]
		dst[0] = 0xE0 | byte(cp>>12)
		dst[1] = 0x80 | byte((cp>>6)&0x3F)
		dst[2] = 0x80 | byte(cp&0x3F)
	default:
		_ = dst[3]
		dst[0] = 0xF0 | byte(cp>>18)
		dst[1] = 0x80 | byte((cp>>12)&0x3F)
		dst[2] = 0x80 | byte((cp>>6)&0x3F)
		dst[3] = 0x80 | byte(cp&0x3F)
	}
}
