package encoding

import (
	"fmt"

	"github.com/arloliu/textcodec/errs"
	"github.com/arloliu/textcodec/internal/options"
	"github.com/arloliu/textcodec/internal/pool"
)

// maxPending is the longest incomplete sequence a streaming call can carry:
// a 4-byte lead plus two continuation bytes.
const maxPending = 3

var bom = [3]byte{0xEF, 0xBB, 0xBF}

// Decoder converts UTF-8 bytes to UTF-16 code units.
//
// A Decoder keeps at most three bytes of an incomplete sequence between
// streaming calls, so a multi-byte sequence split across chunks decodes the
// same as when it arrives whole. Overlong forms and encoded surrogates are
// not rejected; they decode to the code unit their bits describe.
//
// Note: The Decoder is NOT thread-safe. Each instance should be used by a single goroutine at a time.
type Decoder struct {
	encoding  string
	fatal     bool
	ignoreBOM bool

	pending    [maxPending]byte
	pendingLen int

	// started is set once a streaming sequence has consumed input, after
	// which a leading BOM is no longer possible. Pending bytes do not set it,
	// so a BOM split across the first chunks is still stripped.
	started bool
}

// NewDecoder creates a decoder for the given encoding label.
//
// An empty label selects "utf-8". Any label that does not normalize to
// "utf-8" returns errs.ErrInvalidEncodingLabel.
//
// Parameters:
//   - label: Encoding label, matched case-insensitively after trimming whitespace
//   - opts: WithFatal, WithIgnoreBOM
//
// Returns:
//   - *Decoder: New decoder with empty state
//   - error: ErrInvalidEncodingLabel for unsupported labels
func NewDecoder(label string, opts ...DecoderOption) (*Decoder, error) {
	if label == "" {
		label = Label
	}

	name, err := NormalizeLabel(label)
	if err != nil {
		return nil, err
	}

	cfg := &DecoderConfig{}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return &Decoder{
		encoding:  name,
		fatal:     cfg.fatal,
		ignoreBOM: cfg.ignoreBOM,
	}, nil
}

// Encoding returns the canonical encoding name, always "utf-8".
func (d *Decoder) Encoding() string {
	return d.encoding
}

// Fatal reports whether malformed input returns an error instead of U+FFFD.
func (d *Decoder) Fatal() bool {
	return d.fatal
}

// IgnoreBOM reports whether a leading byte order mark is kept in the output.
func (d *Decoder) IgnoreBOM() bool {
	return d.ignoreBOM
}

// Buffered returns the number of bytes carried over from the last streaming call.
func (d *Decoder) Buffered() int {
	return d.pendingLen
}

// Reset discards carried-over bytes and starts a new byte stream.
func (d *Decoder) Reset() {
	d.pendingLen = 0
	d.started = false
}

// Decode decodes input into UTF-16 code units.
//
// Bytes carried over from a previous streaming call are decoded first. With
// WithStream(true) an incomplete trailing sequence is kept for the next call;
// otherwise it is resolved and all state is cleared before returning.
//
// In fatal mode the first malformed or incomplete sequence returns an error
// wrapping errs.ErrDecode, no code units, and clears the decoder state.
func (d *Decoder) Decode(input []byte, opts ...DecodeOption) ([]uint16, error) {
	var call decodeCall
	if err := options.Apply(&call, opts...); err != nil {
		return nil, err
	}

	return d.decode(input, call.stream)
}

// DecodeString decodes input into a Go string.
//
// Unpaired surrogates in the decoded code units become U+FFFD.
func (d *Decoder) DecodeString(input []byte, opts ...DecodeOption) (string, error) {
	units, err := d.Decode(input, opts...)
	if err != nil {
		return "", err
	}

	return StringFromUnits(units), nil
}

// DecodeSource coerces src with ToBytes and decodes the result.
//
// Returns an error wrapping errs.ErrInvalidArgumentType if src is not a byte
// source. The decoder state is left untouched in that case.
func (d *Decoder) DecodeSource(src any, opts ...DecodeOption) ([]uint16, error) {
	input, err := ToBytes(src)
	if err != nil {
		return nil, err
	}

	return d.Decode(input, opts...)
}

func (d *Decoder) decode(input []byte, stream bool) ([]uint16, error) {
	src := input
	if d.pendingLen > 0 {
		buf := pool.GetEncodeBuffer()
		defer pool.PutEncodeBuffer(buf)

		buf.MustWrite(d.pending[:d.pendingLen])
		buf.MustWrite(input)
		src = buf.B
		d.pendingLen = 0
	}

	// Every byte yields at most one code unit, a 4-byte sequence yields two.
	scratch, cleanup := pool.GetUint16Slice(len(src))
	defer cleanup()

	units, consumed, err := d.scan(src, scratch, stream)
	if err != nil {
		d.Reset()
		return nil, err
	}

	if consumed > 0 {
		d.started = true
	}
	if !stream {
		d.Reset()
	}

	out := make([]uint16, len(units))
	copy(out, units)

	return out, nil
}

// scan decodes src, appending to units. It returns the extended units and
// the number of bytes consumed; bytes saved as pending are not consumed.
//
// Each sequence length decides at the exact failing offset whether to carry
// the sequence over (streaming) or resolve it (substitute or fail).
func (d *Decoder) scan(src []byte, units []uint16, stream bool) ([]uint16, int, error) {
	i := 0
	if !d.ignoreBOM && !d.started && hasBOM(src) {
		i = len(bom)
	}

	for i < len(src) {
		start := i
		lead := src[i]
		i++

		if lead <= 0x7F {
			units = append(units, uint16(lead))
			continue
		}

		n := continuationCount(lead)
		if n == 0 {
			if d.fatal {
				return nil, 0, fmt.Errorf("%w: invalid byte 0x%02X at offset %d", errs.ErrDecode, lead, start)
			}
			units = append(units, ReplacementUnit)

			continue
		}

		// Presence of every continuation byte is checked before validity.
		cp := rune(lead & (0xFF >> (n + 2)))
		valid := true
		for range n {
			if i >= len(src) {
				if stream {
					d.pendingLen = copy(d.pending[:], src[start:])
					return units, start, nil
				}
				if d.fatal {
					return nil, 0, fmt.Errorf("%w: incomplete byte sequence at offset %d", errs.ErrDecode, start)
				}
				units = append(units, ReplacementUnit)

				return units, len(src), nil
			}

			c := src[i]
			i++
			if c&0xC0 != 0x80 {
				valid = false
			}
			cp = cp<<6 | rune(c&0x3F)
		}

		if !valid {
			if d.fatal {
				return nil, 0, fmt.Errorf("%w: invalid continuation byte after 0x%02X at offset %d",
					errs.ErrDecode, lead, start)
			}
			units = append(units, ReplacementUnit)
			i = start + 1

			continue
		}

		if n == 3 {
			cp -= surrSelf
			units = append(units,
				uint16(surrHighStart+((cp>>10)&0x3FF)),
				uint16(surrLowStart+(cp&0x3FF)),
			)

			continue
		}

		units = append(units, uint16(cp))
	}

	return units, len(src), nil
}

// continuationCount returns how many continuation bytes follow lead, or 0
// when lead cannot start a multi-byte sequence.
func continuationCount(lead byte) int {
	switch {
	case lead >= 0xC0 && lead <= 0xDF:
		return 1
	case lead >= 0xE0 && lead <= 0xEF:
		return 2
	case lead >= 0xF0 && lead <= 0xF7:
		return 3
	default:
		return 0
	}
}

func hasBOM(src []byte) bool {
	return len(src) >= len(bom) && src[0] == bom[0] && src[1] == bom[1] && src[2] == bom[2]
}
