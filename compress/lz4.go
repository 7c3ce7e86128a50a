package compress

import (
	"fmt"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/textcodec/endian"
)

// lz4SizePrefix is the length of the little-endian uint32 original size that
// precedes every LZ4 block.
const lz4SizePrefix = 4

// lz4MaxSize bounds the original size accepted on decompression.
const lz4MaxSize = 1 << 30

// lz4MaxRatio bounds the expansion of a single LZ4 block; each extra byte of
// match length adds at most 255 bytes of output.
const lz4MaxRatio = 256

// lz4CompressorPool pools lz4.Compressor instances, which keep a hash table
// between calls.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4Compressor provides LZ4 block compression.
//
// A payload is the original size as a little-endian uint32 followed by one
// LZ4 block, so decompression allocates the exact output size up front.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 compressor.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data using LZ4 compression.
//
// Returns:
//   - []byte: Size-prefixed LZ4 block (nil if input is empty)
//   - error: Compression error if any
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) > lz4MaxSize {
		return nil, fmt.Errorf("lz4 compression failed: payload of %d bytes exceeds %d", len(data), lz4MaxSize)
	}

	engine := endian.GetLittleEndianEngine()
	dst := make([]byte, lz4SizePrefix+lz4.CompressBlockBound(len(data)))
	engine.PutUint32(dst, uint32(len(data)))

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[lz4SizePrefix:])
	if err != nil {
		return nil, fmt.Errorf("lz4 compression failed: %w", err)
	}

	return dst[:lz4SizePrefix+n], nil
}

// Decompress decompresses a payload produced by Compress.
//
// Returns an error if the size prefix is missing or too large, or if the block
// does not decompress to exactly the recorded size.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	if len(data) < lz4SizePrefix {
		return nil, fmt.Errorf("lz4 decompression failed: truncated size prefix")
	}

	size := endian.GetLittleEndianEngine().Uint32(data)
	block := data[lz4SizePrefix:]
	if size > lz4MaxSize || uint64(size) > uint64(len(block))*lz4MaxRatio {
		return nil, fmt.Errorf("lz4 decompression failed: recorded size %d is implausible for a %d byte block", size, len(block))
	}

	buf := make([]byte, size)
	n, err := lz4.UncompressBlock(block, buf)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompression failed: %w", err)
	}
	if n != int(size) {
		return nil, fmt.Errorf("lz4 decompression failed: got %d bytes, want %d", n, size)
	}

	return buf, nil
}
