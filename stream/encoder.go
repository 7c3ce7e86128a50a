package stream

import (
	"github.com/arloliu/textcodec/encoding"
)

// EncoderStream encodes a stream of strings into UTF-8 byte chunks.
//
// Every written chunk is encoded on its own and forwarded immediately, empty
// chunks included. Nothing is carried between chunks.
type EncoderStream struct {
	*TransformStream[string, []byte]

	enc *encoding.Encoder
}

// NewEncoderStream creates an encoding stream.
//
// Decoder options such as WithFatal are accepted and ignored.
func NewEncoderStream(opts ...Option) (*EncoderStream, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	enc := encoding.NewEncoder()

	return &EncoderStream{
		TransformStream: newTransformStream[string, []byte](&encodeTransformer{enc: enc}, cfg),
		enc:             enc,
	}, nil
}

// Encoding returns the canonical encoding name, always "utf-8".
func (s *EncoderStream) Encoding() string {
	return s.enc.Encoding()
}

type encodeTransformer struct {
	enc *encoding.Encoder
}

func (t *encodeTransformer) Transform(chunk string, emit func([]byte) error) error {
	return emit(t.enc.EncodeString(chunk))
}

func (t *encodeTransformer) Flush(func([]byte) error) error {
	return nil
}

func (t *encodeTransformer) Cancel(error) error {
	return nil
}
