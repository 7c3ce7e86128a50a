package stream

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/arloliu/textcodec/errs"
)

// Transformer converts input chunks into output chunks for a TransformStream.
//
// The stream never calls a Transformer concurrently. Output is handed to emit,
// which blocks while the reader's queue is full and returns an error when the
// stream is cancelled or the caller's context is done. Transformers must
// return that error unchanged.
type Transformer[I, O any] interface {
	// Transform handles one chunk written to the stream.
	Transform(chunk I, emit func(O) error) error
	// Flush is called once when the writable end is closed.
	Flush(emit func(O) error) error
	// Cancel is called once when the readable end is cancelled. Its error is
	// logged and discarded.
	Cancel(reason error) error
}

type streamState int

const (
	stateOpen streamState = iota
	stateClosed
	stateCancelled
	stateErrored
)

// TransformStream connects a writable end to a readable end through a
// Transformer and a bounded queue of output chunks.
//
// Write and Close may be called from one goroutine while Read is called from
// another. All Transformer calls are serialized.
type TransformStream[I, O any] struct {
	transformer Transformer[I, O]
	logger      *zap.Logger

	// mu serializes transformer calls and the end of the queue.
	mu    sync.Mutex
	queue chan O

	cancelCh   chan struct{}
	cancelOnce sync.Once

	stateMu sync.Mutex
	state   streamState
	err     error
}

// NewTransformStream creates a stream around t.
//
// Parameters:
//   - t: Transformer invoked for every written chunk
//   - opts: WithLogger, WithQueueSize
//
// Returns:
//   - *TransformStream: Open stream
//   - error: Invalid option
func NewTransformStream[I, O any](t Transformer[I, O], opts ...Option) (*TransformStream[I, O], error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	return newTransformStream(t, cfg), nil
}

func newTransformStream[I, O any](t Transformer[I, O], cfg *Config) *TransformStream[I, O] {
	return &TransformStream[I, O]{
		transformer: t,
		logger:      cfg.logger,
		queue:       make(chan O, cfg.queueSize),
		cancelCh:    make(chan struct{}),
	}
}

// Write transforms chunk and queues the output for the reader.
//
// Write blocks while the queue is full. It returns ctx.Err() if ctx is done
// first, errs.ErrStreamClosed after Close, errs.ErrStreamCancelled after
// Cancel, and the stored error once the stream has errored. An error from the
// Transformer puts the stream in the errored state.
func (s *TransformStream[I, O]) Write(ctx context.Context, chunk I) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable(); err != nil {
		return err
	}

	if err := s.transformer.Transform(chunk, s.emitter(ctx)); err != nil {
		return s.fail(err)
	}

	return nil
}

// Close flushes the Transformer and ends the readable side.
//
// Chunks emitted by the flush are queued before the reader sees io.EOF.
func (s *TransformStream[I, O]) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.writable(); err != nil {
		return err
	}

	if err := s.transformer.Flush(s.emitter(ctx)); err != nil {
		return s.fail(err)
	}

	s.setState(stateClosed, nil)
	close(s.queue)

	return nil
}

// Read returns the next output chunk.
//
// Read returns io.EOF once the stream is closed and drained, or cancelled.
// After an error, Read returns that error without draining the queue.
func (s *TransformStream[I, O]) Read(ctx context.Context) (O, error) {
	var zero O

	switch state, err := s.loadState(); state {
	case stateErrored:
		return zero, err
	case stateCancelled:
		return zero, io.EOF
	}

	select {
	case v, ok := <-s.queue:
		if ok {
			return v, nil
		}
		if state, err := s.loadState(); state == stateErrored {
			return zero, err
		}

		return zero, io.EOF
	case <-s.cancelCh:
		return zero, io.EOF
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// ReadAll reads chunks until the stream ends.
// A clean end returns the chunks and a nil error.
func (s *TransformStream[I, O]) ReadAll(ctx context.Context) ([]O, error) {
	var out []O
	for {
		v, err := s.Read(ctx)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
}

// Cancel cancels the readable end and discards queued output.
//
// A writer blocked on a full queue is released with errs.ErrStreamCancelled.
// The Transformer's Cancel runs once; its error is logged at debug level and
// discarded. Cancel on a stream that already ended only discards the queue.
func (s *TransformStream[I, O]) Cancel(reason error) {
	s.cancelOnce.Do(func() { close(s.cancelCh) })

	s.mu.Lock()
	defer s.mu.Unlock()

	state, _ := s.loadState()
	switch state {
	case stateCancelled, stateErrored:
		return
	case stateClosed:
		s.setState(stateCancelled, nil)
		return
	}

	if err := s.transformer.Cancel(reason); err != nil {
		s.logger.Debug("error discarded on stream cancel",
			zap.NamedError("reason", reason),
			zap.Error(err),
		)
	}

	s.setState(stateCancelled, nil)
	close(s.queue)
}

// Err returns the error that put the stream in the errored state, or nil.
func (s *TransformStream[I, O]) Err() error {
	if state, err := s.loadState(); state == stateErrored {
		return err
	}

	return nil
}

func (s *TransformStream[I, O]) emitter(ctx context.Context) func(O) error {
	return func(v O) error {
		select {
		case <-s.cancelCh:
			return errs.ErrStreamCancelled
		default:
		}

		select {
		case s.queue <- v:
			return nil
		case <-s.cancelCh:
			return errs.ErrStreamCancelled
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// writable reports why the writable end cannot accept calls. Caller holds mu.
func (s *TransformStream[I, O]) writable() error {
	select {
	case <-s.cancelCh:
		return errs.ErrStreamCancelled
	default:
	}

	switch state, err := s.loadState(); state {
	case stateClosed:
		return errs.ErrStreamClosed
	case stateCancelled:
		return errs.ErrStreamCancelled
	case stateErrored:
		return err
	default:
		return nil
	}
}

// fail moves an open stream to the errored state. Caller holds mu.
func (s *TransformStream[I, O]) fail(err error) error {
	// Cancellation that raced the transformer is not a stream error.
	if errors.Is(err, errs.ErrStreamCancelled) {
		return err
	}

	s.setState(stateErrored, err)
	close(s.queue)

	return err
}

func (s *TransformStream[I, O]) loadState() (streamState, error) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	return s.state, s.err
}

func (s *TransformStream[I, O]) setState(state streamState, err error) {
	s.stateMu.Lock()
	s.state = state
	s.err = err
	s.stateMu.Unlock()
}
