// Package textcodec provides a UTF-8 text codec with the semantics of the
// WHATWG TextEncoder and TextDecoder.
//
// Text on the codec boundary is a sequence of UTF-16 code units, so unpaired
// surrogates survive an encode/decode round trip. Decoding is lenient by
// default: each malformed byte sequence becomes U+FFFD.
//
// # Core Features
//
//   - Encoding of UTF-16 code units, including unpaired surrogates, to UTF-8
//   - EncodeInto with partial-progress reporting into a fixed buffer
//   - Streaming decode that carries sequences split across chunks
//   - Replacement or fatal error policy, optional byte order mark handling
//   - Goroutine-friendly encoder and decoder streams with backpressure
//   - golang.org/x/text adapters (package xtext)
//   - Constructor installation into a scope (package polyfill)
//
// # Basic Usage
//
// Encoding and decoding whole documents:
//
//	import "github.com/arloliu/textcodec"
//
//	data := textcodec.EncodeString("héllo 🌏")
//	text := textcodec.DecodeString(data)
//
// Decoding chunked input:
//
//	dec, _ := textcodec.NewDecoder("utf-8", encoding.WithFatal(true))
//	for _, chunk := range chunks {
//	    units, err := dec.Decode(chunk, encoding.WithStream(true))
//	    ...
//	}
//	tail, err := dec.Decode(nil)
//
// Streaming between goroutines:
//
//	ds, _ := textcodec.NewDecoderStream("utf-8")
//	go produce(ds)
//	parts, err := ds.ReadAll(ctx)
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the encoding and
// stream packages. For fine-grained control, use those packages directly.
package textcodec

import (
	"github.com/arloliu/textcodec/encoding"
	"github.com/arloliu/textcodec/stream"
)

var defaultEncoder = encoding.NewEncoder()

// NewEncoder creates a UTF-8 encoder.
//
// The encoder is stateless and safe for concurrent use.
func NewEncoder() *encoding.Encoder {
	return encoding.NewEncoder()
}

// NewDecoder creates a decoder for the given encoding label.
//
// Parameters:
//   - label: "utf-8" or "utf8" in any case, surrounding whitespace ignored; "" selects "utf-8"
//   - opts: Optional configuration functions (see encoding.DecoderOption)
//
// Returns:
//   - *encoding.Decoder: The created decoder
//   - error: errs.ErrInvalidEncodingLabel for any other label
//
// Available options:
//   - encoding.WithFatal(true|false)
//   - encoding.WithIgnoreBOM(true|false)
//
// Example:
//
//	dec, err := textcodec.NewDecoder("utf-8", encoding.WithFatal(true))
func NewDecoder(label string, opts ...encoding.DecoderOption) (*encoding.Decoder, error) {
	return encoding.NewDecoder(label, opts...)
}

// Encode encodes UTF-16 code units to UTF-8.
func Encode(units []uint16) []byte {
	return defaultEncoder.Encode(units)
}

// EncodeString encodes a Go string to UTF-8.
// Invalid UTF-8 in s is replaced with U+FFFD first.
func EncodeString(s string) []byte {
	return defaultEncoder.EncodeString(s)
}

// EncodeInto encodes as much of units as fits into dst.
// See encoding.Encoder.EncodeInto.
func EncodeInto(units []uint16, dst []byte) encoding.EncodeResult {
	return defaultEncoder.EncodeInto(units, dst)
}

// Decode decodes UTF-8 bytes to UTF-16 code units with a fresh default
// decoder: malformed sequences become U+FFFD and a leading byte order mark is
// stripped.
func Decode(data []byte) []uint16 {
	dec, _ := encoding.NewDecoder(encoding.Label)

	// A replacement-mode decoder never fails.
	units, _ := dec.Decode(data)

	return units
}

// DecodeString decodes UTF-8 bytes to a Go string like Decode.
// Unpaired surrogates in the decoded text also become U+FFFD.
func DecodeString(data []byte) string {
	return encoding.StringFromUnits(Decode(data))
}

// Valid reports whether data decodes without any malformed sequence.
func Valid(data []byte) bool {
	dec, _ := encoding.NewDecoder(encoding.Label, encoding.WithFatal(true), encoding.WithIgnoreBOM(true))
	_, err := dec.Decode(data)

	return err == nil
}

// NewDecoderStream creates a stream that decodes byte chunks into strings.
//
// Available options:
//   - stream.WithFatal(true|false)
//   - stream.WithIgnoreBOM(true|false)
//   - stream.WithQueueSize(n)
//   - stream.WithLogger(logger)
func NewDecoderStream(label string, opts ...stream.Option) (*stream.DecoderStream, error) {
	return stream.NewDecoderStream(label, opts...)
}

// NewEncoderStream creates a stream that encodes strings into byte chunks.
func NewEncoderStream(opts ...stream.Option) (*stream.EncoderStream, error) {
	return stream.NewEncoderStream(opts...)
}
