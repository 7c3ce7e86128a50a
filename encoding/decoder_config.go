package encoding

import (
	"github.com/arloliu/textcodec/internal/options"
)

// DecoderConfig holds the construction-time settings of a Decoder.
type DecoderConfig struct {
	fatal     bool
	ignoreBOM bool
}

// DecoderOption configures a Decoder at construction.
type DecoderOption = options.Option[*DecoderConfig]

// WithFatal selects the error policy for malformed input.
//
// When true, Decode returns errs.ErrDecode on the first malformed or
// incomplete sequence. When false (the default), each malformed sequence is
// replaced with U+FFFD.
func WithFatal(fatal bool) DecoderOption {
	return options.NoError(func(cfg *DecoderConfig) {
		cfg.fatal = fatal
	})
}

// WithIgnoreBOM keeps a leading byte order mark in the output when true.
// Default is false, which strips it.
func WithIgnoreBOM(ignore bool) DecoderOption {
	return options.NoError(func(cfg *DecoderConfig) {
		cfg.ignoreBOM = ignore
	})
}

// decodeCall holds per-call settings.
type decodeCall struct {
	stream bool
}

// DecodeOption configures a single Decode call.
type DecodeOption = options.Option[*decodeCall]

// WithStream marks the input as one chunk of a longer byte stream.
//
// A streaming call keeps an incomplete trailing sequence for the next call
// instead of resolving it. The stream must be finished with a non-streaming
// call, typically Decode(nil).
func WithStream(stream bool) DecodeOption {
	return options.NoError(func(c *decodeCall) {
		c.stream = stream
	})
}
