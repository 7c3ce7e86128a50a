package command

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/arloliu/textcodec/encoding"
	"github.com/arloliu/textcodec/endian"
	"github.com/arloliu/textcodec/format"
)

// readInput reads the file named by args[0], or stdin when there is no
// argument or it is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	return data, nil
}

// openOutput returns the file named by path, or stdout when path is empty or
// "-". The returned close function must always be called.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output: %w", err)
	}

	return f, f.Close, nil
}

// unitsFromForm converts raw input in form to UTF-16 code units.
func unitsFromForm(form format.TextForm, data []byte) ([]uint16, error) {
	switch form {
	case format.TextUTF16LE:
		return endian.DecodeUnits(endian.GetLittleEndianEngine(), data)
	case format.TextUTF16BE:
		return endian.DecodeUnits(endian.GetBigEndianEngine(), data)
	default:
		return encoding.UnitsFromString(string(data)), nil
	}
}

// appendForm appends s to dst in form.
func appendForm(form format.TextForm, dst []byte, s string) []byte {
	switch form {
	case format.TextUTF16LE:
		return endian.AppendUnits(endian.GetLittleEndianEngine(), dst, encoding.UnitsFromString(s))
	case format.TextUTF16BE:
		return endian.AppendUnits(endian.GetBigEndianEngine(), dst, encoding.UnitsFromString(s))
	default:
		return append(dst, s...)
	}
}
