package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConnStateString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("disconnected", DisconnectedState.String())
	assert.Equal("connecting", ConnectingState.String())
	assert.Equal("connected", ConnectedState.String())
	assert.Equal("unknown", ConnState(99).String())
}

func TestAtomicConnStateTransitions(t *testing.T) {
	assert := assert.New(t)

	var st AtomicConnState
	assert.True(st.Get().IsDisconnected())

	assert.True(st.ToConnecting())
	assert.True(st.Get().IsConnecting())

	// connecting -> connecting is not a valid transition
	assert.False(st.ToConnecting())

	assert.True(st.ToConnected())
	assert.True(st.Get().IsConnected())

	// connected -> connected is not a valid transition
	assert.False(st.ToConnected())

	st.ToDisconnected()
	assert.True(st.Get().IsDisconnected())

	// disconnected -> connected requires passing through connecting
	assert.False(st.ToConnected())
}
