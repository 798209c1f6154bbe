package bridge

import "sync/atomic"

// ConnState represents the client connection lifecycle:
//
//	Disconnected -> Connecting -> Connected -> Disconnected (on transport error)
//
// A transport error during Send or Receive transitions the client back to
// DisconnectedState and immediately schedules the reconnect sequence; there
// is no terminal state beyond an explicit Close.
type ConnState uint32

const (
	// DisconnectedState indicates that no transport connection is held.
	DisconnectedState ConnState = iota
	// ConnectingState indicates that a connection attempt is in progress.
	ConnectingState
	// ConnectedState indicates that the transport connection is established
	// and frames can be exchanged.
	ConnectedState
)

// IsDisconnected returns if the current state is disconnected.
func (cs ConnState) IsDisconnected() bool { return cs == DisconnectedState }

// IsConnecting returns if the current state is connecting.
func (cs ConnState) IsConnecting() bool { return cs == ConnectingState }

// IsConnected returns if the current state is connected.
func (cs ConnState) IsConnected() bool { return cs == ConnectedState }

// String returns string representation of the current state.
func (cs ConnState) String() string {
	switch cs {
	case DisconnectedState:
		return "disconnected"
	case ConnectingState:
		return "connecting"
	case ConnectedState:
		return "connected"
	default:
		return "unknown"
	}
}

// AtomicConnState holds a ConnState with atomic transitions, so tests and
// observers can assert the client's state directly.
type AtomicConnState struct {
	state atomic.Uint32
}

// Get returns the current state.
func (st *AtomicConnState) Get() ConnState {
	return ConnState(st.state.Load())
}

// Set stores the given state unconditionally.
func (st *AtomicConnState) Set(state ConnState) {
	st.state.Store(uint32(state))
}

// ToConnecting transitions from the disconnected to the connecting state.
// It reports whether the transition took place.
func (st *AtomicConnState) ToConnecting() bool {
	return st.state.CompareAndSwap(uint32(DisconnectedState), uint32(ConnectingState))
}

// ToConnected transitions from the connecting to the connected state.
// It reports whether the transition took place.
func (st *AtomicConnState) ToConnected() bool {
	return st.state.CompareAndSwap(uint32(ConnectingState), uint32(ConnectedState))
}

// ToDisconnected stores the disconnected state from any state.
func (st *AtomicConnState) ToDisconnected() {
	st.state.Store(uint32(DisconnectedState))
}
