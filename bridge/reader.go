package bridge

import (
	"errors"
	"fmt"
	"io"
	"net"
	"time"
)

// frameReader reads exact-length frames from a net.Conn.
//
// The wire format carries no length prefix or delimiter; a frame boundary is
// established purely by the statically agreed byte count, so the reader must
// accumulate bytes until exactly len(buf) have arrived. A short result is
// never returned: the peer closing the stream mid-frame is reported as
// ErrPeerClosed.
//
// frameReader is NOT goroutine-safe. The caller must ensure that only one
// ReadFrame call is active per connection at a time, consistent with the
// single-reader design of a bridge endpoint.
type frameReader struct {
	// idleTimeout is the per-read deadline while waiting for bytes.
	idleTimeout time.Duration

	// keepWaiting, when non-nil, is consulted after each idle timeout.
	// Returning false aborts the read with ErrStopped; a nil func retries
	// idle timeouts indefinitely.
	keepWaiting func() bool
}

// ReadFrame fills buf with exactly len(buf) bytes from conn.
//
// Idle timeouts are treated as "no data yet" and retried (subject to
// keepWaiting); they are not connection failures. EOF before the frame is
// complete reports ErrPeerClosed, with or without partial data. Any other
// read failure wraps ErrTransport.
func (fr *frameReader) ReadFrame(conn net.Conn, buf []byte) error {
	total := 0

	for total < len(buf) {
		if err := conn.SetReadDeadline(time.Now().Add(fr.idleTimeout)); err != nil {
			return fmt.Errorf("%w: set read deadline: %w", ErrTransport, err)
		}

		n, err := conn.Read(buf[total:])
		total += n

		if err == nil {
			continue
		}

		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			if fr.keepWaiting != nil && !fr.keepWaiting() {
				return ErrStopped
			}
			continue
		}

		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrPeerClosed
		}

		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return nil
}
