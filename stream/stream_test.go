package stream

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/arloliu/textcodec/errs"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func writeAll[I, O any](t *testing.T, s *TransformStream[I, O], chunks ...I) {
	t.Helper()

	ctx := context.Background()
	for _, chunk := range chunks {
		require.NoError(t, s.Write(ctx, chunk))
	}
	require.NoError(t, s.Close(ctx))
}

func TestDecoderStream_Accessors(t *testing.T) {
	ds, err := NewDecoderStream("UTF8", WithFatal(true), WithIgnoreBOM(true))
	require.NoError(t, err)

	require.Equal(t, "utf-8", ds.Encoding())
	require.True(t, ds.Fatal())
	require.True(t, ds.IgnoreBOM())

	ds.Cancel(nil)
}

func TestDecoderStream_InvalidLabel(t *testing.T) {
	_, err := NewDecoderStream("iso-8859-1")
	require.ErrorIs(t, err, errs.ErrInvalidEncodingLabel)
}

func TestDecoderStream_SplitSequences(t *testing.T) {
	ds, err := NewDecoderStream("", WithQueueSize(8))
	require.NoError(t, err)

	// "€" split 2+1, "🌏" split 1+3.
	writeAll(t, ds.TransformStream,
		[]byte{'a', 0xE2, 0x82},
		[]byte{0xAC, 0xF0},
		[]byte{},
		[]byte{0x9F, 0x8C, 0x8F, 'z'},
	)

	got, err := ds.ReadAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"a", "€", "🌏z"}, got, "empty results are not forwarded")
}

func TestDecoderStream_SurrogateHalvesInSeparateChunks(t *testing.T) {
	tests := []struct {
		name   string
		chunks [][]byte
		want   string
	}{
		{
			name:   "pair split between chunks",
			chunks: [][]byte{{0xED, 0xA0, 0x80}, {0xED, 0xB0, 0x80}},
			want:   "\U00010000",
		},
		{
			name:   "pair split inside the low half",
			chunks: [][]byte{{'a', 0xED, 0xA0, 0x80, 0xED}, {0xB0}, {0x80, 'b'}},
			want:   "a\U00010000b",
		},
		{
			name:   "high half followed by ascii",
			chunks: [][]byte{{0xED, 0xA0, 0x80}, {'x'}},
			want:   "\uFFFDx",
		},
		{
			name:   "high half at end of stream",
			chunks: [][]byte{{'x'}, {0xED, 0xA0, 0x80}},
			want:   "x\uFFFD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := NewDecoderStream("")
			require.NoError(t, err)

			writeAll(t, ds.TransformStream, tt.chunks...)

			got, err := ds.ReadAll(context.Background())
			require.NoError(t, err)
			require.Equal(t, tt.want, strings.Join(got, ""))
		})
	}
}

func TestDecoderStream_FlushReplacesIncomplete(t *testing.T) {
	ds, err := NewDecoderStream("utf-8")
	require.NoError(t, err)

	writeAll(t, ds.TransformStream, []byte{'o', 'k', 0xE2, 0x82})

	got, err := ds.ReadAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"ok", "\uFFFD"}, got)
}

func TestDecoderStream_BOM(t *testing.T) {
	ds, err := NewDecoderStream("utf-8")
	require.NoError(t, err)

	writeAll(t, ds.TransformStream, []byte{0xEF}, []byte{0xBB}, []byte{0xBF, 'h', 'i'})

	got, err := ds.ReadAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, "hi", strings.Join(got, ""))
}

func TestDecoderStream_Fatal(t *testing.T) {
	ctx := context.Background()

	ds, err := NewDecoderStream("utf-8", WithFatal(true))
	require.NoError(t, err)

	require.NoError(t, ds.Write(ctx, []byte("good")))

	err = ds.Write(ctx, []byte{0xFF})
	require.ErrorIs(t, err, errs.ErrDecode)
	require.ErrorIs(t, ds.Err(), errs.ErrDecode)

	// Both ends report the stored error.
	require.ErrorIs(t, ds.Write(ctx, []byte("more")), errs.ErrDecode)
	require.ErrorIs(t, ds.Close(ctx), errs.ErrDecode)

	_, err = ds.Read(ctx)
	require.ErrorIs(t, err, errs.ErrDecode)
}

func TestDecoderStream_FatalOnClose(t *testing.T) {
	ctx := context.Background()

	ds, err := NewDecoderStream("utf-8", WithFatal(true))
	require.NoError(t, err)

	require.NoError(t, ds.Write(ctx, []byte{0xF0, 0x9F}))
	require.ErrorIs(t, ds.Close(ctx), errs.ErrDecode)

	_, err = ds.ReadAll(ctx)
	require.ErrorIs(t, err, errs.ErrDecode)
}

func TestDecoderStream_CancelLogsAndSwallows(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	ds, err := NewDecoderStream("utf-8", WithFatal(true), WithLogger(zap.New(core)))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, ds.Write(ctx, []byte{'x', 0xE2}))

	ds.Cancel(errors.New("user abort"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, zapcore.DebugLevel, entry.Level)
	require.Contains(t, entry.ContextMap()["error"], "decode error")

	_, err = ds.Read(ctx)
	require.ErrorIs(t, err, io.EOF, "queued output is discarded on cancel")
	require.ErrorIs(t, ds.Write(ctx, []byte("y")), errs.ErrStreamCancelled)
	require.ErrorIs(t, ds.Close(ctx), errs.ErrStreamCancelled)
	require.NoError(t, ds.Err())

	// A second cancel is a no-op.
	ds.Cancel(nil)
	require.Equal(t, 1, logs.Len())
}

func TestEncoderStream(t *testing.T) {
	es, err := NewEncoderStream()
	require.NoError(t, err)
	require.Equal(t, "utf-8", es.Encoding())

	writeAll(t, es.TransformStream, "héllo", "", "🌏")

	got, err := es.ReadAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, [][]byte{[]byte("héllo"), {}, []byte("🌏")}, got, "empty chunks are forwarded")
}

func TestTransformStream_WriteAfterClose(t *testing.T) {
	ctx := context.Background()

	es, err := NewEncoderStream()
	require.NoError(t, err)

	require.NoError(t, es.Close(ctx))
	require.ErrorIs(t, es.Write(ctx, "late"), errs.ErrStreamClosed)
	require.ErrorIs(t, es.Close(ctx), errs.ErrStreamClosed)

	_, err = es.Read(ctx)
	require.ErrorIs(t, err, io.EOF)
}

func TestTransformStream_InvalidQueueSize(t *testing.T) {
	_, err := NewEncoderStream(WithQueueSize(-1))
	require.Error(t, err)
}

func TestTransformStream_Backpressure(t *testing.T) {
	es, err := NewEncoderStream(WithQueueSize(1))
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, es.Write(ctx, "a"))

	// The queue is full, so the next write waits until the context expires.
	shortCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, es.Write(shortCtx, "b"), context.DeadlineExceeded)
	require.ErrorIs(t, es.Err(), context.DeadlineExceeded)
}

func TestTransformStream_CancelReleasesBlockedWriter(t *testing.T) {
	es, err := NewEncoderStream(WithQueueSize(0))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		done <- es.Write(context.Background(), "blocked")
	}()

	// Give the writer time to block on the unbuffered queue.
	time.Sleep(10 * time.Millisecond)
	es.Cancel(nil)

	select {
	case err := <-done:
		require.ErrorIs(t, err, errs.ErrStreamCancelled)
	case <-time.After(time.Second):
		t.Fatal("writer was not released by Cancel")
	}
	require.NoError(t, es.Err())
}

func TestTransformStream_ConcurrentReadWrite(t *testing.T) {
	ds, err := NewDecoderStream("utf-8", WithQueueSize(2))
	require.NoError(t, err)

	text := strings.Repeat("naïve café 🌏 ", 200)
	data := []byte(text)
	ctx := context.Background()

	writeErr := make(chan error, 1)
	go func() {
		for rest := data; len(rest) > 0; {
			n := min(3, len(rest))
			if err := ds.Write(ctx, rest[:n]); err != nil {
				writeErr <- err
				return
			}
			rest = rest[n:]
		}
		writeErr <- ds.Close(ctx)
	}()

	got, err := ds.ReadAll(ctx)
	require.NoError(t, err)
	require.NoError(t, <-writeErr)
	require.Equal(t, text, strings.Join(got, ""))
}

func TestTransformStream_ReadContext(t *testing.T) {
	es, err := NewEncoderStream()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = es.Read(ctx)
	require.ErrorIs(t, err, context.Canceled)

	es.Cancel(nil)
}

type failingTransformer struct{}

func (failingTransformer) Transform(int, func(int) error) error { return errors.New("boom") }
func (failingTransformer) Flush(func(int) error) error            { return nil }
func (failingTransformer) Cancel(error) error                     { return nil }

func TestNewTransformStream_CustomTransformer(t *testing.T) {
	s, err := NewTransformStream[int, int](failingTransformer{})
	require.NoError(t, err)

	ctx := context.Background()
	require.EqualError(t, s.Write(ctx, 1), "boom")

	_, err = s.Read(ctx)
	require.EqualError(t, err, "boom")
}

func TestSetLogger(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))

	ds, err := NewDecoderStream("utf-8", WithFatal(true))
	require.NoError(t, err)
	require.NoError(t, ds.Write(context.Background(), []byte{0xC3}))
	ds.Cancel(nil)

	require.Equal(t, 1, logs.Len())
}
