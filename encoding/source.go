package encoding

import (
	"fmt"
	"unsafe"

	"github.com/tetratelabs/wazero/api"

	"github.com/arloliu/textcodec/errs"
)

// ByteView is a window of Len bytes starting at Off within a backing region.
type ByteView struct {
	Buf []byte
	Off int
	Len int
}

// Bytes returns the viewed bytes, or an error when the window does not lie
// within Buf.
func (v ByteView) Bytes() ([]byte, error) {
	if v.Off < 0 || v.Len < 0 || v.Off > len(v.Buf) || v.Len > len(v.Buf)-v.Off {
		return nil, fmt.Errorf("%w: view [%d:+%d] outside backing region of %d bytes",
			errs.ErrInvalidArgumentType, v.Off, v.Len, len(v.Buf))
	}

	return v.Buf[v.Off : v.Off+v.Len], nil
}

// Block is a raw memory block that can be read as a whole, such as
// *bytes.Buffer.
type Block interface {
	Bytes() []byte
}

// ToBytes coerces a byte source to a byte slice without copying.
//
// Accepted sources:
//   - nil: empty input
//   - []byte: used as-is
//   - ByteView, *ByteView: the viewed window
//   - numeric slices ([]int8, []uint16, []int16, []uint32, []int32, []uint64,
//     []int64, []float32, []float64): their backing memory in host byte order
//   - api.Memory: the whole WebAssembly linear memory
//   - Block: the whole block
//
// Anything else, including string, returns errs.ErrInvalidArgumentType.
func ToBytes(src any) ([]byte, error) {
	switch v := src.(type) {
	case nil:
		return []byte{}, nil
	case []byte:
		return v, nil
	case ByteView:
		return v.Bytes()
	case *ByteView:
		if v == nil {
			return []byte{}, nil
		}
		return v.Bytes()
	case []int8:
		return sliceBytes(v), nil
	case []uint16:
		return sliceBytes(v), nil
	case []int16:
		return sliceBytes(v), nil
	case []uint32:
		return sliceBytes(v), nil
	case []int32:
		return sliceBytes(v), nil
	case []uint64:
		return sliceBytes(v), nil
	case []int64:
		return sliceBytes(v), nil
	case []float32:
		return sliceBytes(v), nil
	case []float64:
		return sliceBytes(v), nil
	case api.Memory:
		return memoryBytes(v)
	case Block:
		return v.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: got %T", errs.ErrInvalidArgumentType, src)
	}
}

// sliceBytes reinterprets the backing array of s as bytes.
func sliceBytes[T any](s []T) []byte {
	if len(s) == 0 {
		return []byte{}
	}

	var zero T
	size := len(s) * int(unsafe.Sizeof(zero))

	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(s))), size)
}

func memoryBytes(mem api.Memory) ([]byte, error) {
	size := mem.Size()
	if size == 0 {
		return []byte{}, nil
	}

	data, ok := mem.Read(0, size)
	if !ok {
		return nil, fmt.Errorf("%w: unreadable memory of %d bytes", errs.ErrInvalidArgumentType, size)
	}

	return data, nil
}
