// Package format defines the text forms and compression types that codec
// payloads are exchanged in.
package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/textcodec/errs"
)

type (
	TextForm        uint8
	CompressionType uint8
)

const (
	TextUTF8    TextForm = 0x1 // TextUTF8 represents UTF-8 bytes.
	TextUTF16LE TextForm = 0x2 // TextUTF16LE represents little-endian UTF-16 code units.
	TextUTF16BE TextForm = 0x3 // TextUTF16BE represents big-endian UTF-16 code units.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (f TextForm) String() string {
	switch f {
	case TextUTF8:
		return "utf-8"
	case TextUTF16LE:
		return "utf-16le"
	case TextUTF16BE:
		return "utf-16be"
	default:
		return "unknown"
	}
}

// ParseTextForm resolves a text form name, case-insensitively.
// "utf8", "utf-8", "utf16le", "utf-16le", "utf16be" and "utf-16be" are accepted.
func ParseTextForm(name string) (TextForm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8":
		return TextUTF8, nil
	case "utf-16le", "utf16le":
		return TextUTF16LE, nil
	case "utf-16be", "utf16be":
		return TextUTF16BE, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidTextForm, name)
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression resolves a compression name, case-insensitively.
// An empty name selects CompressionNone.
func ParseCompression(name string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidCompression, name)
	}
}
