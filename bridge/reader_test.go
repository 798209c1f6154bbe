package bridge

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReadFrameAssemblesChunks(t *testing.T) {
	require := require.New(t)

	client, peer := net.Pipe()
	defer client.Close()
	defer peer.Close()

	go func() {
		// deliver the frame in three writes to exercise accumulation
		_, _ = peer.Write([]byte{0x01, 0x02})
		time.Sleep(10 * time.Millisecond)
		_, _ = peer.Write([]byte{0x03})
		time.Sleep(10 * time.Millisecond)
		_, _ = peer.Write([]byte{0x04, 0x05})
	}()

	reader := frameReader{idleTimeout: time.Second}
	buf := make([]byte, 5)
	require.NoError(reader.ReadFrame(client, buf))
	require.Equal([]byte{0x01, 0x02, 0x03, 0x04, 0x05}, buf)
}

func TestReadFramePartialThenClose(t *testing.T) {
	require := require.New(t)

	client, peer := net.Pipe()
	defer client.Close()

	go func() {
		_, _ = peer.Write([]byte{0x01, 0x02, 0x03})
		_ = peer.Close()
	}()

	reader := frameReader{idleTimeout: time.Second}
	buf := make([]byte, 8)

	// a short read is reported as peer closure, never as a truncated frame
	err := reader.ReadFrame(client, buf)
	require.ErrorIs(err, ErrPeerClosed)
}

func TestReadFrameImmediateClose(t *testing.T) {
	require := require.New(t)

	client, peer := net.Pipe()
	defer client.Close()

	_ = peer.Close()

	reader := frameReader{idleTimeout: time.Second}
	err := reader.ReadFrame(client, make([]byte, 4))
	require.ErrorIs(err, ErrPeerClosed)
}

func TestReadFrameIdleTimeoutRetried(t *testing.T) {
	require := require.New(t)

	client, peer := net.Pipe()
	defer client.Close()
	defer peer.Close()

	go func() {
		// stay idle across several timeout periods before delivering
		time.Sleep(80 * time.Millisecond)
		_, _ = peer.Write([]byte{0xAA, 0xBB})
	}()

	reader := frameReader{idleTimeout: 10 * time.Millisecond}
	buf := make([]byte, 2)
	require.NoError(reader.ReadFrame(client, buf))
	require.Equal([]byte{0xAA, 0xBB}, buf)
}

func TestReadFrameStopsWhenAskedTo(t *testing.T) {
	require := require.New(t)

	client, peer := net.Pipe()
	defer client.Close()
	defer peer.Close()

	reader := frameReader{
		idleTimeout: 10 * time.Millisecond,
		keepWaiting: func() bool { return false },
	}

	err := reader.ReadFrame(client, make([]byte, 4))
	require.ErrorIs(err, ErrStopped)
}
