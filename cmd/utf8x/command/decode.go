package command

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arloliu/textcodec/compress"
	"github.com/arloliu/textcodec/format"
	"github.com/arloliu/textcodec/internal/pool"
	"github.com/arloliu/textcodec/stream"
)

// DefaultChunkSize is the number of input bytes written to the decoder
// stream at a time.
const DefaultChunkSize = 4096

func newDecodeCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode UTF-8 bytes, optionally decompressing them first.",
		Long: `Decode reads bytes from file, or stdin, and writes the decoded text.

The input is decoded in --chunk-size pieces through a streaming decoder, so
sequences split between chunks decode the same as whole input. Malformed
sequences become U+FFFD unless --fatal is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: c.runDecode,
	}

	cmd.Flags().String("label", "utf-8", "encoding label")
	cmd.Flags().Bool("fatal", false, "fail on the first malformed sequence")
	cmd.Flags().Bool("ignore-bom", false, "keep a leading byte order mark")
	cmd.Flags().Int("chunk-size", DefaultChunkSize, "bytes per decoder write")
	cmd.Flags().String("to", "utf-8", "output text form: utf-8, utf-16le or utf-16be")
	cmd.Flags().String("compression", "none", "input compression: none, zstd, s2 or lz4")
	cmd.Flags().StringP("output", "o", "", "output file (default stdout)")

	return cmd
}

func (c *cli) runDecode(cmd *cobra.Command, args []string) error {
	form, err := format.ParseTextForm(c.v.GetString("to"))
	if err != nil {
		return err
	}
	compression, err := format.ParseCompression(c.v.GetString("compression"))
	if err != nil {
		return err
	}
	chunkSize := c.v.GetInt("chunk-size")
	if chunkSize <= 0 {
		return fmt.Errorf("invalid chunk size %d: must be positive", chunkSize)
	}

	ds, err := stream.NewDecoderStream(c.v.GetString("label"),
		stream.WithFatal(c.v.GetBool("fatal")),
		stream.WithIgnoreBOM(c.v.GetBool("ignore-bom")),
		stream.WithLogger(c.logger),
	)
	if err != nil {
		return err
	}

	payload, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	codec, err := compress.CreateCodec(compression, "input")
	if err != nil {
		return err
	}
	data, err := codec.Decompress(payload)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	writeErr := make(chan error, 1)
	go func() {
		writeErr <- writeChunks(ctx, ds, data, chunkSize)
	}()

	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)

	for {
		s, err := ds.Read(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			<-writeErr
			return err
		}
		buf.B = appendForm(form, buf.B, s)
	}
	if err := <-writeErr; err != nil {
		return err
	}

	c.logger.Debug("decoded input",
		zap.Int("payload", len(payload)),
		zap.Int("bytes", len(data)),
		zap.Int("chunk_size", chunkSize),
		zap.Stringer("to", form),
		zap.Int("output", buf.Len()),
	)

	w, closeOutput, err := openOutput(cmd, c.v.GetString("output"))
	if err != nil {
		return err
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		_ = closeOutput()
		return fmt.Errorf("write output: %w", err)
	}

	return closeOutput()
}

// writeChunks writes data to ds in chunkSize pieces and closes it.
func writeChunks(ctx context.Context, ds *stream.DecoderStream, data []byte, chunkSize int) error {
	for rest := data; len(rest) > 0; {
		n := min(chunkSize, len(rest))
		if err := ds.Write(ctx, rest[:n]); err != nil {
			return err
		}
		rest = rest[n:]
	}

	return ds.Close(ctx)
}
