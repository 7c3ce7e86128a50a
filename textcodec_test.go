package textcodec

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/textcodec/encoding"
	"github.com/arloliu/textcodec/errs"
	"github.com/arloliu/textcodec/stream"
)

func TestEncodeDecode(t *testing.T) {
	text := "The quick brown 🦊 jumps over the lazy 🐶. こんにちは世界🌏"

	data := EncodeString(text)
	require.Equal(t, []byte(text), data)
	require.Equal(t, text, DecodeString(data))
	require.Equal(t, encoding.UnitsFromString(text), Decode(data))
	require.Equal(t, data, Encode(encoding.UnitsFromString(text)))
}

func TestDecode_Replacement(t *testing.T) {
	require.Equal(t, "\uFFFD\uFFFD\uFFFD", DecodeString([]byte{0xFF, 0xFE, 0xFD}))
	require.Equal(t, "Hello", DecodeString([]byte("\xEF\xBB\xBFHello")))
	require.Empty(t, Decode(nil))
}

func TestEncodeInto(t *testing.T) {
	dst := make([]byte, 8)

	res := EncodeInto(encoding.UnitsFromString("𠜎𠜱𠝹𠱓"), dst)
	require.Equal(t, encoding.EncodeResult{Read: 2, Written: 8, Units: 4}, res)
}

func TestValid(t *testing.T) {
	require.True(t, Valid([]byte("héllo")))
	require.True(t, Valid(nil))
	require.True(t, Valid([]byte{0xED, 0xA0, 0x80}), "encoded surrogates are accepted")
	require.False(t, Valid([]byte{0xC3}))
	require.False(t, Valid([]byte{'a', 0xFF}))
}

func TestNewDecoder(t *testing.T) {
	dec, err := NewDecoder("UTF-8", encoding.WithFatal(true))
	require.NoError(t, err)
	require.True(t, dec.Fatal())

	_, err = dec.Decode([]byte{0xFF})
	require.ErrorIs(t, err, errs.ErrDecode)

	_, err = NewDecoder("utf-16")
	require.ErrorIs(t, err, errs.ErrInvalidEncodingLabel)
}

func TestNewEncoder(t *testing.T) {
	enc := NewEncoder()
	require.Equal(t, "utf-8", enc.Encoding())
	require.Equal(t, []byte{0xED, 0xA0, 0x80}, enc.Encode([]uint16{0xD800}))
}

func TestStreamsPipeline(t *testing.T) {
	ctx := context.Background()
	text := strings.Repeat("naïve 🌏 ", 50)

	es, err := NewEncoderStream()
	require.NoError(t, err)
	ds, err := NewDecoderStream("utf-8", stream.WithFatal(true))
	require.NoError(t, err)

	// Encode in 7-rune chunks, then re-chunk the bytes at 5 so sequences split.
	runes := []rune(text)
	go func() {
		for i := 0; i < len(runes); i += 7 {
			if err := es.Write(ctx, string(runes[i:min(i+7, len(runes))])); err != nil {
				return
			}
		}
		_ = es.Close(ctx)
	}()

	encoded, err := es.ReadAll(ctx)
	require.NoError(t, err)

	var data []byte
	for _, chunk := range encoded {
		data = append(data, chunk...)
	}

	go func() {
		for i := 0; i < len(data); i += 5 {
			if err := ds.Write(ctx, data[i:min(i+5, len(data))]); err != nil {
				return
			}
		}
		_ = ds.Close(ctx)
	}()

	parts, err := ds.ReadAll(ctx)
	require.NoError(t, err)
	require.Equal(t, text, strings.Join(parts, ""))
}
