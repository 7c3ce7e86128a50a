package compress

// ZstdCompressor provides Zstandard compression, the best ratio of the
// built-in codecs for text.
//
// The implementation is pure Go (klauspost/compress) by default. Building with
// cgo and the gozstd tag switches to the C library through valyala/gozstd;
// both produce standard zstd frames.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
