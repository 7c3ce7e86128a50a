// Package stream provides streaming adapters around the UTF-8 codec.
//
// A TransformStream has a writable end (Write, Close) and a readable end
// (Read, Cancel) joined by a bounded queue. DecoderStream turns byte chunks
// into strings and EncoderStream turns strings into byte chunks.
//
// Basic usage:
//
//	ds, err := stream.NewDecoderStream("utf-8", stream.WithFatal(true))
//	if err != nil {
//	    return err
//	}
//
//	go func() {
//	    for _, chunk := range chunks {
//	        if err := ds.Write(ctx, chunk); err != nil {
//	            return
//	        }
//	    }
//	    _ = ds.Close(ctx)
//	}()
//
//	for {
//	    s, err := ds.Read(ctx)
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(s)
//	}
//
// Errors raised while transforming move the stream to the errored state, in
// which both ends return the error. Errors raised while cancelling are logged
// through zap at debug level and discarded.
package stream
