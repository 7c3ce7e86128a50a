// Package xtext adapts the UTF-8 codec to golang.org/x/text.
//
// UTF8 implements encoding.Encoding, so the codec can be used anywhere an
// x/text encoding is accepted:
//
//	r := transform.NewReader(f, xtext.UTF8.NewDecoder())
//
// NewDecodeReader and NewEncodeWriter wrap io streams directly and accept the
// decoder options of package encoding.
package xtext

import (
	"io"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/transform"

	"github.com/arloliu/textcodec/encoding"
)

// UTF8 is the codec as an x/text Encoding with default decoder options.
var UTF8 xencoding.Encoding = utf8Encoding{}

type utf8Encoding struct{}

func (utf8Encoding) NewDecoder() *xencoding.Decoder {
	// Default options never fail.
	t, _ := NewDecodeTransformer()
	return &xencoding.Decoder{Transformer: t}
}

func (utf8Encoding) NewEncoder() *xencoding.Encoder {
	return &xencoding.Encoder{Transformer: NewEncodeTransformer()}
}

func (utf8Encoding) String() string {
	return "UTF-8"
}

// NewDecodeReader returns a reader that decodes r.
//
// With WithFatal(true) the first malformed sequence makes Read return an
// error wrapping errs.ErrDecode.
func NewDecodeReader(r io.Reader, opts ...encoding.DecoderOption) (io.Reader, error) {
	t, err := NewDecodeTransformer(opts...)
	if err != nil {
		return nil, err
	}

	return transform.NewReader(r, t), nil
}

// NewEncodeWriter returns a writer that encodes text written to it into w.
// The caller must Close the writer to flush a trailing incomplete rune.
func NewEncodeWriter(w io.Writer) io.WriteCloser {
	return transform.NewWriter(w, NewEncodeTransformer())
}
