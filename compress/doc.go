// Package compress provides compression codecs for encoded text payloads.
//
// Encoded text is exchanged as whole documents: UTF-8 bytes from the encoder
// or UTF-16 code units serialized by package endian. This package compresses
// those documents with one of four algorithms, selected by
// format.CompressionType:
//   - None: payload passes through unchanged
//   - Zstd: best ratio, moderate speed
//   - S2: fastest compression, good ratio on text
//   - LZ4: fastest decompression
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//
//	compressed, err := codec.Compress(payload)
//	original, err := codec.Decompress(compressed)
//
// CompressWithStats reports sizes and timing alongside the compressed payload:
//
//	compressed, stats, err := compress.CompressWithStats(format.CompressionS2, payload)
//	fmt.Printf("%.1f%% saved\n", stats.SpaceSavings())
//
// # Zstd Backends
//
// Zstd uses the pure Go klauspost/compress implementation by default. Build
// with cgo enabled and the gozstd tag to use the C library via valyala/gozstd:
//
//	go build -tags gozstd ./...
//
// Both backends read and write standard zstd frames, so payloads are
// interchangeable.
//
// # LZ4 Payloads
//
// LZ4 payloads carry the original size as a little-endian uint32 before the
// block. They are not LZ4 frames and cannot be read by the lz4 command line
// tool.
//
// # Thread Safety
//
// All codecs are stateless values and safe for concurrent use. Zstd and LZ4
// keep pooled encoder state internally.
package compress
