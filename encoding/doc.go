// Package encoding implements the UTF-8 text codec core: an Encoder from
// UTF-16 code units to UTF-8 bytes and a Decoder from UTF-8 bytes back to
// code units, following the WHATWG Encoding Standard's TextEncoder and
// TextDecoder behavior.
//
// # Text Representation
//
// Text on the codec boundary is a []uint16 of UTF-16 code units, so unpaired
// surrogates survive a round trip. EncodeString, DecodeString, UnitsFromString
// and StringFromUnits convert to and from Go strings.
//
// # Encoding
//
//	enc := encoding.NewEncoder()
//	data := enc.EncodeString("héllo 🌏")
//
//	dst := make([]byte, 8)
//	res := enc.EncodeStringInto("𠜎𠜱𠝹𠱓", dst) // res.Read == 2, res.Written == 8
//
// EncodeInto never writes a partial sequence: it stops at the first code
// point that does not fit.
//
// # Decoding
//
//	dec, err := encoding.NewDecoder("utf-8", encoding.WithFatal(true))
//	if err != nil {
//	    return err
//	}
//	text, err := dec.DecodeString(data)
//
// Error policy:
//   - Replacement (default): each malformed sequence becomes one U+FFFD
//   - Fatal (WithFatal(true)): the first malformed byte returns errs.ErrDecode
//
// A leading UTF-8 byte order mark is stripped unless WithIgnoreBOM(true).
//
// # Streaming
//
// Chunks of one byte stream are decoded with WithStream(true). A multi-byte
// sequence cut by a chunk boundary is carried to the next call. The stream is
// finished with a non-streaming call:
//
//	for _, chunk := range chunks {
//	    units, err := dec.Decode(chunk, encoding.WithStream(true))
//	    ...
//	}
//	tail, err := dec.Decode(nil)
//
// Decoding every split of a byte sequence this way yields the same text as
// decoding it in one call.
//
// # Byte Sources
//
// DecodeSource accepts any source ToBytes understands: byte slices, ByteView
// windows, numeric slices, WebAssembly linear memory and memory blocks.
package encoding
