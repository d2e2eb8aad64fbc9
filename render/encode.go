// Package render interprets layout instructions into pixels.
//
// encode.go implements the bounded PNG encode molecule. Encoding runs in
// its own goroutine racing a timeout so a pathological surface can never
// hang a generation indefinitely.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"time"
)

// DefaultEncodeTimeout bounds PNG encoding when the caller passes no
// budget.
const DefaultEncodeTimeout = 10 * time.Second

// EncodePNG serializes the frame to a PNG blob within the given timeout.
//
// Returns ErrEncodeTimeout when the budget elapses first (the encode
// goroutine is abandoned; its buffer is garbage collected), and
// ErrEncodeFailed wrapping the encoder error on failure. A nil image fails
// immediately.
func EncodePNG(ctx context.Context, img image.Image, timeout time.Duration) ([]byte, error) {
	if img == nil {
		return nil, ErrEncodeFailed
	}
	if timeout <= 0 {
		timeout = DefaultEncodeTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		data []byte
		err  error
	}
	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		enc := png.Encoder{CompressionLevel: png.DefaultCompression}
		if err := enc.Encode(&buf, img); err != nil {
			done <- result{nil, fmt.Errorf("%w: %v", ErrEncodeFailed, err)}
			return
		}
		done <- result{buf.Bytes(), nil}
	}()

	select {
	case res := <-done:
		return res.data, res.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrEncodeTimeout
		}
		return nil, ctx.Err()
	}
}
