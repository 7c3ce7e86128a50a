// Command utf8x encodes and decodes text with the textcodec UTF-8 codec.
package main

import (
	"os"

	"github.com/arloliu/textcodec/cmd/utf8x/command"
)

func main() {
	if err := command.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
