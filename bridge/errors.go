package bridge

import "errors"

var (
	// ErrConfigNil indicates that a nil ConnectionConfig was provided.
	ErrConfigNil = errors.New("bridge: connection config is nil")

	// ErrTemplateNil indicates that a nil frame template was provided.
	ErrTemplateNil = errors.New("bridge: frame template is nil")

	// ErrNotConnected indicates that a send or receive was attempted while
	// the client is not in the connected state.
	ErrNotConnected = errors.New("bridge: not connected")

	// ErrConnectFailed indicates that the client could not reach the peer
	// within its retry budget. The caller may re-invoke Connect later.
	ErrConnectFailed = errors.New("bridge: connect failed, retries exhausted")

	// ErrBindFailed indicates that the server could not claim its listen
	// address. Fatal to that Start call; the caller may retry later.
	ErrBindFailed = errors.New("bridge: bind failed")

	// ErrPeerClosed indicates that the peer closed the stream before a full
	// frame was read. A short read is always reported as ErrPeerClosed,
	// never as a truncated frame.
	ErrPeerClosed = errors.New("bridge: peer closed connection")

	// ErrTransport indicates a mid-session read or write failure on the
	// underlying stream.
	ErrTransport = errors.New("bridge: transport failure")

	// ErrStopped indicates that the server is not running.
	ErrStopped = errors.New("bridge: server stopped")
)
