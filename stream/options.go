package stream

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/arloliu/textcodec/encoding"
	"github.com/arloliu/textcodec/internal/options"
)

// DefaultQueueSize is the number of output chunks a stream buffers before
// writes block on the reader.
const DefaultQueueSize = 16

// Config holds the settings of a stream.
type Config struct {
	logger      *zap.Logger
	queueSize   int
	decoderOpts []encoding.DecoderOption
}

// Option configures a stream at construction.
type Option = options.Option[*Config]

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		logger:    Logger(),
		queueSize: DefaultQueueSize,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithLogger sets the logger for one stream, overriding the package logger.
// A nil logger disables logging.
func WithLogger(l *zap.Logger) Option {
	return options.NoError(func(cfg *Config) {
		if l == nil {
			l = zap.NewNop()
		}
		cfg.logger = l
	})
}

// WithQueueSize sets how many output chunks are buffered for the reader.
// Zero makes every emitted chunk wait for a Read. Negative sizes are rejected.
func WithQueueSize(size int) Option {
	return options.New(func(cfg *Config) error {
		if size < 0 {
			return fmt.Errorf("invalid queue size %d: must not be negative", size)
		}
		cfg.queueSize = size

		return nil
	})
}

// WithFatal sets the error policy of a DecoderStream's decoder.
// See encoding.WithFatal.
func WithFatal(fatal bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.decoderOpts = append(cfg.decoderOpts, encoding.WithFatal(fatal))
	})
}

// WithIgnoreBOM keeps a leading byte order mark in a DecoderStream's output.
// See encoding.WithIgnoreBOM.
func WithIgnoreBOM(ignore bool) Option {
	return options.NoError(func(cfg *Config) {
		cfg.decoderOpts = append(cfg.decoderOpts, encoding.WithIgnoreBOM(ignore))
	})
}
