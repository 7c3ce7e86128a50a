package stream

import (
	"github.com/arloliu/textcodec/encoding"
)

// DecoderStream decodes a stream of UTF-8 byte chunks into strings.
//
// Sequences split across written chunks are carried over by the wrapped
// Decoder, so the concatenated output does not depend on how the input was
// chunked, including surrogate pairs whose halves arrive in different chunks.
// Empty decode results are not forwarded to the reader.
type DecoderStream struct {
	*TransformStream[[]byte, string]

	dec *encoding.Decoder
}

// NewDecoderStream creates a decoding stream for the given encoding label.
//
// An empty label selects "utf-8"; unsupported labels return
// errs.ErrInvalidEncodingLabel.
//
// Parameters:
//   - label: Encoding label, see encoding.NormalizeLabel
//   - opts: WithFatal, WithIgnoreBOM, WithLogger, WithQueueSize
//
// Returns:
//   - *DecoderStream: Open stream
//   - error: Invalid label or option
func NewDecoderStream(label string, opts ...Option) (*DecoderStream, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	dec, err := encoding.NewDecoder(label, cfg.decoderOpts...)
	if err != nil {
		return nil, err
	}

	return &DecoderStream{
		TransformStream: newTransformStream[[]byte, string](&decodeTransformer{dec: dec}, cfg),
		dec:             dec,
	}, nil
}

// Encoding returns the canonical encoding name, always "utf-8".
func (s *DecoderStream) Encoding() string {
	return s.dec.Encoding()
}

// Fatal reports whether malformed input errors the stream.
func (s *DecoderStream) Fatal() bool {
	return s.dec.Fatal()
}

// IgnoreBOM reports whether a leading byte order mark is kept.
func (s *DecoderStream) IgnoreBOM() bool {
	return s.dec.IgnoreBOM()
}

type decodeTransformer struct {
	dec *encoding.Decoder

	// held is a trailing high surrogate kept back until the next chunk,
	// which may start with its low half.
	held    uint16
	hasHeld bool
}

func (t *decodeTransformer) Transform(chunk []byte, emit func(string) error) error {
	units, err := t.dec.Decode(chunk, encoding.WithStream(true))
	if err != nil {
		return err
	}

	return t.emitUnits(units, false, emit)
}

func (t *decodeTransformer) Flush(emit func(string) error) error {
	units, err := t.dec.Decode(nil)
	if err != nil {
		return err
	}

	return t.emitUnits(units, true, emit)
}

func (t *decodeTransformer) Cancel(error) error {
	t.hasHeld = false
	_, err := t.dec.Decode(nil)

	return err
}

// emitUnits forwards units as one string. Unless final, a trailing high
// surrogate is held back so a pair split between chunks stays a pair.
func (t *decodeTransformer) emitUnits(units []uint16, final bool, emit func(string) error) error {
	if t.hasHeld {
		units = append([]uint16{t.held}, units...)
		t.hasHeld = false
	}

	if n := len(units); !final && n > 0 && encoding.IsHighSurrogate(units[n-1]) {
		t.held, t.hasHeld = units[n-1], true
		units = units[:n-1]
	}

	if len(units) == 0 {
		return nil
	}

	return emit(encoding.StringFromUnits(units))
}
