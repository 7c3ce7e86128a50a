package xtext

import (
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/transform"

	"github.com/arloliu/textcodec/encoding"
)

// EncodeTransformer is a transform.Transformer that encodes Go text with an
// encoding.Encoder. Invalid UTF-8 in the source is replaced with U+FFFD.
type EncodeTransformer struct {
	transform.NopResetter

	enc *encoding.Encoder
}

var _ transform.Transformer = (*EncodeTransformer)(nil)

// NewEncodeTransformer creates an EncodeTransformer.
func NewEncodeTransformer() *EncodeTransformer {
	return &EncodeTransformer{enc: encoding.NewEncoder()}
}

// Transform implements transform.Transformer.
func (t *EncodeTransformer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	var buf [2]uint16

	for nSrc < len(src) {
		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 && !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		units := utf16.AppendRune(buf[:0], r)
		res := t.enc.EncodeInto(units, dst[nDst:])
		if res.Units < len(units) {
			return nDst, nSrc, transform.ErrShortDst
		}

		nDst += res.Written
		nSrc += size
	}

	return nDst, nSrc, nil
}
