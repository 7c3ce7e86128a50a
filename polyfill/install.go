package polyfill

import (
	"sync"

	"github.com/arloliu/textcodec/encoding"
	"github.com/arloliu/textcodec/stream"
)

// Names of the constructors installed by Install.
const (
	TextEncoderName       = "TextEncoder"
	TextDecoderName       = "TextDecoder"
	TextEncoderStreamName = "TextEncoderStream"
	TextDecoderStreamName = "TextDecoderStream"
)

// Constructor types bound by Install.
type (
	TextEncoderFunc       = func() *encoding.Encoder
	TextDecoderFunc       = func(label string, opts ...encoding.DecoderOption) (*encoding.Decoder, error)
	TextEncoderStreamFunc = func(opts ...stream.Option) (*stream.EncoderStream, error)
	TextDecoderStreamFunc = func(label string, opts ...stream.Option) (*stream.DecoderStream, error)
)

type entry struct {
	name  string
	value any
}

func constructors() []entry {
	return []entry{
		{TextEncoderName, TextEncoderFunc(encoding.NewEncoder)},
		{TextDecoderName, TextDecoderFunc(encoding.NewDecoder)},
		{TextEncoderStreamName, TextEncoderStreamFunc(stream.NewEncoderStream)},
		{TextDecoderStreamName, TextDecoderStreamFunc(stream.NewDecoderStream)},
	}
}

// Install defines the TextEncoder, TextDecoder, TextEncoderStream and
// TextDecoderStream constructors in scope, skipping every name scope already
// defines. Existing definitions are never replaced, so calling Install again
// is a no-op.
//
// It returns the names it defined, in installation order.
func Install(scope *Scope) ([]string, error) {
	var installed []string
	for _, c := range constructors() {
		ok, err := scope.DefineIfAbsent(c.name, c.value)
		if err != nil {
			return installed, err
		}
		if ok {
			installed = append(installed, c.name)
		}
	}

	return installed, nil
}

var (
	global     *Scope
	globalOnce sync.Once
)

// Global returns the process-wide scope.
func Global() *Scope {
	globalOnce.Do(func() {
		global = NewScope()
	})

	return global
}

// InstallGlobal installs the constructors into Global.
func InstallGlobal() ([]string, error) {
	return Install(Global())
}
