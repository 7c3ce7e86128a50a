package encoding

import (
	"unicode/utf16"
)

// Surrogate and replacement constants for UTF-16 code units.
const (
	surrHighStart = 0xD800
	surrHighEnd   = 0xDBFF
	surrLowStart  = 0xDC00
	surrLowEnd    = 0xDFFF
	surrSelf      = 0x10000

	// ReplacementUnit is U+FFFD, emitted for each malformed sequence in replacement mode.
	ReplacementUnit uint16 = 0xFFFD

	// MaxBytesPerUnit is the worst-case UTF-8 expansion of one UTF-16 code unit.
	MaxBytesPerUnit = 4
)

// CodePointAt returns the code point starting at units[i] and the number of
// code units it occupies.
//
// A high surrogate followed by a low surrogate is combined into one code
// point of width 2. Any other unit, including an unpaired surrogate, is
// returned as-is with width 1.
func CodePointAt(units []uint16, i int) (rune, int) {
	first := units[i]
	if first >= surrHighStart && first <= surrHighEnd && i+1 < len(units) {
		second := units[i+1]
		if second >= surrLowStart && second <= surrLowEnd {
			return (rune(first)-surrHighStart)<<10 + (rune(second) - surrLowStart) + surrSelf, 2
		}
	}

	return rune(first), 1
}

// IsHighSurrogate reports whether u is the first half of a surrogate pair.
func IsHighSurrogate(u uint16) bool {
	return u >= surrHighStart && u <= surrHighEnd
}

// SequenceLen returns the number of UTF-8 bytes used to encode cp.
func SequenceLen(cp rune) int {
	switch {
	case cp <= 0x7F:
		return 1
	case cp <= 0x7FF:
		return 2
	case cp <= 0xFFFF:
		return 3
	default:
		return 4
	}
}

// UnitsFromString converts a Go string to UTF-16 code units.
// Invalid UTF-8 in s becomes U+FFFD.
func UnitsFromString(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// StringFromUnits converts UTF-16 code units to a Go string.
// Unpaired surrogates become U+FFFD.
func StringFromUnits(units []uint16) string {
	return string(utf16.Decode(units))
}
