package logger

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestSlogLoggerLevel(t *testing.T) {
	require := require.New(t)

	log := NewSlog(InfoLevel, false)
	require.Equal(InfoLevel, log.Level())

	log.SetLevel(DebugLevel)
	require.Equal(DebugLevel, log.Level())

	child := log.With("component", "test")
	require.Equal(DebugLevel, child.Level())
}

func TestZerologAdapter(t *testing.T) {
	require := require.New(t)

	var buf bytes.Buffer
	log := NewZerolog(zerolog.New(&buf).Level(zerolog.InfoLevel))
	require.Equal(InfoLevel, log.Level())

	log.Info("frame sent", "frame_size", 11)
	require.Contains(buf.String(), "frame sent")
	require.Contains(buf.String(), "frame_size")

	buf.Reset()
	log.Debug("suppressed")
	require.Empty(buf.String())

	log.SetLevel(DebugLevel)
	require.Equal(DebugLevel, log.Level())
	log.Debug("enabled now")
	require.Contains(buf.String(), "enabled now")

	child := log.With("conn_id", "abc")
	child.Info("with context")
	require.Contains(buf.String(), "abc")
}
