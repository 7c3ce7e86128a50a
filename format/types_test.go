package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/textcodec/errs"
)

func TestParseTextForm(t *testing.T) {
	tests := []struct {
		name string
		want TextForm
	}{
		{"utf-8", TextUTF8},
		{"UTF8", TextUTF8},
		{"utf-16le", TextUTF16LE},
		{"UTF16LE", TextUTF16LE},
		{" utf-16be ", TextUTF16BE},
		{"utf16be", TextUTF16BE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTextForm(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTextForm("latin1")
	require.ErrorIs(t, err, errs.ErrInvalidTextForm)
}

func TestTextForm_String(t *testing.T) {
	require.Equal(t, "utf-8", TextUTF8.String())
	require.Equal(t, "utf-16le", TextUTF16LE.String())
	require.Equal(t, "utf-16be", TextUTF16BE.String())
	require.Equal(t, "unknown", TextForm(0).String())
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		name string
		want CompressionType
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"Zstd", CompressionZstd},
		{"s2", CompressionS2},
		{"LZ4", CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCompression(tt.name)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			if tt.name != "" {
				// Names round-trip through String.
				again, err := ParseCompression(got.String())
				require.NoError(t, err)
				require.Equal(t, got, again)
			}
		})
	}

	_, err := ParseCompression("gzip")
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}
