package xtext

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/transform"

	"github.com/arloliu/textcodec/encoding"
	"github.com/arloliu/textcodec/errs"
)

func TestUTF8_Decoder(t *testing.T) {
	dec := UTF8.NewDecoder()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"ascii", "hello", "hello"},
		{"multi-byte", "naïve 🌏", "naïve 🌏"},
		{"bom stripped", "\xEF\xBB\xBFhi", "hi"},
		{"invalid bytes", "a\xFF\xFEb", "a\uFFFD\uFFFDb"},
		{"truncated", "ok\xE2\x82", "ok\uFFFD"},
		{"encoded surrogate", "\xED\xA0\x80", "\uFFFD"},
		{"overlong slash", "\xC0\xAF", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec.String(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestUTF8_Encoder(t *testing.T) {
	enc := UTF8.NewEncoder()

	got, err := enc.String("héllo 🌏")
	require.NoError(t, err)
	require.Equal(t, "héllo 🌏", got)

	got, err = enc.String("bad\xFF")
	require.NoError(t, err)
	require.Equal(t, "bad\uFFFD", got)
}

func TestUTF8_String(t *testing.T) {
	require.Equal(t, "UTF-8", UTF8.(interface{ String() string }).String())
}

func TestNewDecodeReader_OneByteReads(t *testing.T) {
	input := "\xEF\xBB\xBF" + strings.Repeat("こんにちは 🌏 ", 100) + "\xF0\x9F"

	r, err := NewDecodeReader(iotest.OneByteReader(strings.NewReader(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("こんにちは 🌏 ", 100)+"\uFFFD", string(got))
}

func TestNewDecodeReader_Fatal(t *testing.T) {
	r, err := NewDecodeReader(strings.NewReader("good\xFFbad"), encoding.WithFatal(true))
	require.NoError(t, err)

	_, err = io.ReadAll(r)
	require.ErrorIs(t, err, errs.ErrDecode)
}

func TestNewDecodeReader_IgnoreBOM(t *testing.T) {
	r, err := NewDecodeReader(strings.NewReader("\xEF\xBB\xBFx"), encoding.WithIgnoreBOM(true))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, "\uFEFFx", string(got))
}

func TestDecodeTransformer_ShortDst(t *testing.T) {
	tr, err := NewDecodeTransformer()
	require.NoError(t, err)

	src := []byte("€€")
	dst := make([]byte, 4)

	nDst, nSrc, err := tr.Transform(dst, src, true)
	require.ErrorIs(t, err, transform.ErrShortDst)
	require.Equal(t, 4, nDst)
	require.Equal(t, len(src), nSrc)

	var out []byte
	out = append(out, dst[:nDst]...)

	nDst, nSrc, err = tr.Transform(dst, nil, true)
	require.NoError(t, err)
	require.Zero(t, nSrc)
	out = append(out, dst[:nDst]...)

	require.Equal(t, "€€", string(out))
}

func TestDecodeTransformer_Reset(t *testing.T) {
	tr, err := NewDecodeTransformer()
	require.NoError(t, err)

	dst := make([]byte, 16)
	_, _, err = tr.Transform(dst, []byte{0xE2, 0x82}, false)
	require.NoError(t, err)

	tr.Reset()

	nDst, _, err := tr.Transform(dst, []byte("\xEF\xBB\xBFok"), true)
	require.NoError(t, err)
	require.Equal(t, "ok", string(dst[:nDst]))
}

func TestEncodeTransformer_ShortSrcAndDst(t *testing.T) {
	tr := NewEncodeTransformer()
	dst := make([]byte, 16)

	// An incomplete rune is left for the next call unless at EOF.
	nDst, nSrc, err := tr.Transform(dst, []byte("a\xE2\x82"), false)
	require.ErrorIs(t, err, transform.ErrShortSrc)
	require.Equal(t, 1, nDst)
	require.Equal(t, 1, nSrc)

	nDst, nSrc, err = tr.Transform(dst, []byte("\xE2\x82"), true)
	require.NoError(t, err)
	require.Equal(t, 2, nSrc)
	require.Equal(t, "\uFFFD\uFFFD", string(dst[:nDst]))

	// A four-byte rune never goes out half written.
	nDst, nSrc, err = tr.Transform(dst[:3], []byte("🌏"), true)
	require.ErrorIs(t, err, transform.ErrShortDst)
	require.Zero(t, nDst)
	require.Zero(t, nSrc)
}

func TestNewEncodeWriter(t *testing.T) {
	var buf bytes.Buffer

	w := NewEncodeWriter(&buf)
	for _, b := range []byte("héllo 🌏") {
		_, err := w.Write([]byte{b})
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	require.Equal(t, "héllo 🌏", buf.String())
}

func TestDecodeTransformer_SurrogateHalvesAcrossCalls(t *testing.T) {
	tr, err := NewDecodeTransformer()
	require.NoError(t, err)

	dst := make([]byte, 16)

	nDst, nSrc, err := tr.Transform(dst, []byte{0xED, 0xA0, 0x80}, false)
	require.NoError(t, err)
	require.Equal(t, 3, nSrc)
	require.Zero(t, nDst, "high half waits for the next call")

	nDst, nSrc, err = tr.Transform(dst, []byte{0xED, 0xB0, 0x80}, true)
	require.NoError(t, err)
	require.Equal(t, 3, nSrc)
	require.Equal(t, "\U00010000", string(dst[:nDst]))
}

func TestNewDecodeReader_SurrogateHalves(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"pair", "a\xED\xA0\x80\xED\xB0\x80b", "a\U00010000b"},
		{"lone high at end", "a\xED\xA0\x80", "a\uFFFD"},
		{"high then ascii", "\xED\xA0\x80z", "\uFFFDz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewDecodeReader(iotest.OneByteReader(strings.NewReader(tt.input)))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			require.Equal(t, tt.want, string(got))
		})
	}
}
