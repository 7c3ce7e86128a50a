// Package errs defines the sentinel errors returned by textcodec packages.
//
// Errors are returned wrapped with context, so callers should compare with
// errors.Is rather than ==:
//
//	if _, err := dec.Decode(data); errors.Is(err, errs.ErrDecode) {
//	    // malformed input in fatal mode
//	}
package errs

import "errors"

// Codec errors.
var (
	// ErrInvalidEncodingLabel is returned when a decoder is constructed with a
	// label that does not name UTF-8.
	ErrInvalidEncodingLabel = errors.New("invalid encoding label")

	// ErrInvalidArgumentType is returned when a decode input is not a recognized byte source.
	ErrInvalidArgumentType = errors.New("invalid argument type: expected a byte source")

	// ErrDecode is returned by a fatal decoder on the first malformed or incomplete byte sequence.
	ErrDecode = errors.New("decode error")
)

// Stream errors.
var (
	// ErrStreamClosed is returned when writing to a stream whose writable end was closed.
	ErrStreamClosed = errors.New("stream closed")

	// ErrStreamCancelled is returned when using a stream that was cancelled.
	ErrStreamCancelled = errors.New("stream cancelled")
)

// Registry errors.
var (
	// ErrAlreadyDefined is returned when defining a name that already exists in a scope.
	ErrAlreadyDefined = errors.New("name already defined")

	// ErrHashCollision is returned when two different names hash to the same ID.
	ErrHashCollision = errors.New("hash collision")

	// ErrInvalidName is returned for an empty scope name.
	ErrInvalidName = errors.New("invalid name")
)

// Format errors.
var (
	// ErrInvalidCompression is returned for an unknown compression name or type.
	ErrInvalidCompression = errors.New("invalid compression")

	// ErrInvalidTextForm is returned for an unknown text form name.
	ErrInvalidTextForm = errors.New("invalid text form")

	// ErrOddUnitData is returned when UTF-16 input has an odd number of bytes.
	ErrOddUnitData = errors.New("odd number of bytes in UTF-16 data")
)
