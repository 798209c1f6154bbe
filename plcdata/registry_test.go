package plcdata

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	require := require.New(t)

	reg := NewRegistry()

	status := NewFrame()
	require.NoError(status.AddField("speed", Uint32, 0))

	command := NewFrame()
	require.NoError(command.AddField("target", Uint32, 0))

	require.NoError(reg.Register("status", status))
	require.NoError(reg.Register("command", command))
	require.ErrorIs(reg.Register("status", command), ErrTemplateExists)

	got, ok := reg.Get("status")
	require.True(ok)
	require.Same(status, got)

	_, ok = reg.Get("unknown")
	require.False(ok)

	require.ElementsMatch([]string{"status", "command"}, reg.Names())
}

func TestRegistryConcurrent(t *testing.T) {
	require := require.New(t)

	reg := NewRegistry()
	template := NewFrame()
	require.NoError(template.AddField("v", Uint8, 0))
	require.NoError(reg.Register("v", template))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if _, ok := reg.Get("v"); !ok {
					t.Error("template disappeared")
					return
				}
			}
		}()
	}
	wg.Wait()
}
