package engine

import (
	"context"
	"errors"
	"io"
)

// DefaultBufferSize is the per-worker copy buffer used when none is configured.
const DefaultBufferSize = 10240

// copyStream copies src to dst through buf using positioned reads and
// writes. The offset starts at zero on every call and advances by the
// bytes actually read, so a short final chunk lands at the right place.
// onBytes is called after each chunk is written.
func copyStream(
	ctx context.Context,
	src io.ReaderAt,
	dst io.WriterAt,
	buf []byte,
	onBytes func(n int64),
) (int64, error) {
	var offset int64
	for {
		if err := ctx.Err(); err != nil {
			return offset, err
		}

		n, rerr := src.ReadAt(buf, offset)
		if n > 0 {
			if _, err := dst.WriteAt(buf[:n], offset); err != nil {
				return offset, &CopyError{Kind: ErrWrite, Err: err}
			}
			offset += int64(n)
			if onBytes != nil {
				onBytes(int64(n))
			}
		}

		switch {
		case errors.Is(rerr, io.EOF):
			return offset, nil
		case rerr != nil:
			return offset, &CopyError{Kind: ErrRead, Err: rerr}
		case n == 0:
			return offset, nil
		}
	}
}
