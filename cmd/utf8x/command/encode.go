package command

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/textcodec/compress"
	"github.com/arloliu/textcodec/encoding"
	"github.com/arloliu/textcodec/format"
)

func newEncodeCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode text to UTF-8, optionally compressed.",
		Long: `Encode reads text from file, or stdin, and writes its UTF-8 encoding.

The input is Go text (UTF-8) by default. With --from utf-16le or utf-16be it
is read as UTF-16 code units, and unpaired surrogates are encoded as-is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runEncode,
	}

	cmd.Flags().String("from", "utf-8", "input text form: utf-8, utf-16le or utf-16be")
	cmd.Flags().String("compression", "none", "output compression: none, zstd, s2 or lz4")
	cmd.Flags().StringP("output", "o", "", "output file (default stdout)")
	cmd.Flags().Bool("stats", false, "print compression statistics to stderr")

	return cmd
}

func (c *cli) runEncode(cmd *cobra.Command, args []string) error {
	form, err := format.ParseTextForm(c.v.GetString("from"))
	if err != nil {
		return err
	}
	compression, err := format.ParseCompression(c.v.GetString("compression"))
	if err != nil {
		return err
	}

	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	units, err := unitsFromForm(form, data)
	if err != nil {
		return err
	}

	encoded := encoding.NewEncoder().Encode(units)

	payload, stats, err := compress.CompressWithStats(compression, encoded)
	if err != nil {
		return err
	}

	c.logger.Debug("encoded input",
		zap.Stringer("from", form),
		zap.Int("units", len(units)),
		zap.Int("bytes", len(encoded)),
		zap.Stringer("compression", compression),
		zap.Int("payload", len(payload)),
	)

	if c.v.GetBool("stats") {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %d -> %d bytes (%.1f%% saved)\n",
			stats.Algorithm, stats.OriginalSize, stats.CompressedSize, stats.SpaceSavings())
	}

	w, closeOutput, err := openOutput(cmd, c.v.GetString("output"))
	if err != nil {
		return err
	}

	if _, err := w.Write(payload); err != nil {
		_ = closeOutput()
		return fmt.Errorf("write output: %w", err)
	}

	return closeOutput()
}
