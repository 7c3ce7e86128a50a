package xtext

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/transform"

	"github.com/arloliu/textcodec/encoding"
)

// DecodeTransformer is a transform.Transformer that decodes UTF-8 input with
// an encoding.Decoder and writes the result as well-formed UTF-8.
//
// Malformed sequences become U+FFFD, or fail the transform in fatal mode, and
// a leading byte order mark is stripped unless WithIgnoreBOM(true) is given.
// Sequences cut by the end of src are carried over until atEOF, and so is a
// trailing high surrogate whose low half may start the next src.
type DecodeTransformer struct {
	dec *encoding.Decoder

	// out holds decoded bytes that did not fit into dst yet.
	out     []byte
	flushed bool

	// held is a trailing high surrogate kept back until more input arrives.
	held    uint16
	hasHeld bool
}

var _ transform.Transformer = (*DecodeTransformer)(nil)

// NewDecodeTransformer creates a DecodeTransformer.
// Decoder options are the ones accepted by encoding.NewDecoder.
func NewDecodeTransformer(opts ...encoding.DecoderOption) (*DecodeTransformer, error) {
	dec, err := encoding.NewDecoder(encoding.Label, opts...)
	if err != nil {
		return nil, err
	}

	return &DecodeTransformer{dec: dec}, nil
}

// Transform implements transform.Transformer.
func (t *DecodeTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	nDst = t.drain(dst)
	if len(t.out) > 0 {
		return nDst, 0, transform.ErrShortDst
	}

	if t.flushed {
		return nDst, 0, nil
	}

	units, err := t.dec.Decode(src, encoding.WithStream(!atEOF))
	if err != nil {
		return nDst, 0, err
	}
	nSrc = len(src)
	t.flushed = atEOF

	if t.hasHeld {
		units = append([]uint16{t.held}, units...)
		t.hasHeld = false
	}
	if n := len(units); !atEOF && n > 0 && encoding.IsHighSurrogate(units[n-1]) {
		t.held, t.hasHeld = units[n-1], true
		units = units[:n-1]
	}

	t.out = appendUnits(t.out[:0], units)
	nDst += t.drain(dst[nDst:])
	if len(t.out) > 0 {
		return nDst, nSrc, transform.ErrShortDst
	}

	return nDst, nSrc, nil
}

// Reset implements transform.Transformer.
func (t *DecodeTransformer) Reset() {
	t.dec.Reset()
	t.out = t.out[:0]
	t.flushed = false
	t.hasHeld = false
}

func (t *DecodeTransformer) drain(dst []byte) int {
	n := copy(dst, t.out)
	t.out = t.out[n:]

	return n
}

// appendUnits appends the UTF-8 form of units to b. Unpaired surrogates
// become U+FFFD.
func appendUnits(b []byte, units []uint16) []byte {
	for i := 0; i < len(units); {
		r, width := encoding.CodePointAt(units, i)
		if utf16.IsSurrogate(r) {
			r = utf8.RuneError
		}
		b = utf8.AppendRune(b, r)
		i += width
	}

	return b
}
