package bridge

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/kkats/go-plcbridge/internal/pool"
	"github.com/kkats/go-plcbridge/logger"
	"github.com/kkats/go-plcbridge/plcdata"
)

// Client is the active endpoint of a bridge link. It establishes the
// transport connection to the controller-facing server, and exchanges
// fixed-layout frames built from a shared template.
//
// Transport failures during Send and Receive are absorbed by the client
// itself: it transitions to DisconnectedState and immediately runs the
// reconnect sequence before returning, so long-running polling loops
// self-heal transient link drops without caller-side retry logic. The cost
// is that a single Send or Receive call may block for the duration of a
// full reconnect sequence.
//
// A Client owns exactly one transport handle at a time and is not safe for
// concurrent use from multiple goroutines without external synchronization.
type Client struct {
	pctx     context.Context
	cfg      *ConnectionConfig
	logger   logger.Logger
	template *plcdata.Frame

	conn    net.Conn
	state   AtomicConnState
	reader  frameReader
	recvBuf []byte
	metrics ConnectionMetrics
}

// NewClient creates a client for the link described by cfg. The template
// defines the frame layout exchanged on the link; both endpoints must build
// structurally compatible templates.
//
// ctx bounds the client's lifetime: canceling it aborts in-progress connect
// waits.
func NewClient(ctx context.Context, cfg *ConnectionConfig, template *plcdata.Frame) (*Client, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}
	if template == nil {
		return nil, ErrTemplateNil
	}

	return &Client{
		pctx:     ctx,
		cfg:      cfg,
		logger:   cfg.Logger(),
		template: template,
		reader:   frameReader{idleTimeout: cfg.ReadIdleTimeout()},
		recvBuf:  make([]byte, template.Size()),
	}, nil
}

// State returns the current connection state.
func (c *Client) State() ConnState {
	return c.state.Get()
}

// Metrics returns the client's connection metrics.
func (c *Client) Metrics() *ConnectionMetrics {
	return &c.metrics
}

// Connect attempts to establish the transport connection, making up to
// MaxRetries sequential attempts with a per-attempt timeout and waiting
// RetryDelay between failed attempts (no delay after the final one).
//
// On success the client transitions to ConnectedState. When every attempt
// fails the client is left in DisconnectedState and ErrConnectFailed is
// returned, wrapping the last dial error; the caller may invoke Connect
// again later.
func (c *Client) Connect() error {
	if c.state.Get().IsConnected() {
		return nil
	}

	c.state.Set(ConnectingState)
	c.metrics.resetConnRetryGauge()

	address := net.JoinHostPort(c.cfg.Host(), strconv.Itoa(c.cfg.Port()))
	maxRetries := c.cfg.MaxRetries()

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		c.metrics.incConnRetryGauge()

		conn, err := c.dial(address)
		if err == nil {
			c.conn = conn
			c.state.Set(ConnectedState)
			c.logger.Info("connected to remote",
				"address", address,
				"local_addr", conn.LocalAddr().String(),
				"attempt", attempt,
			)

			return nil
		}

		lastErr = err
		c.logger.Warn("connection attempt failed", "address", address, "attempt", attempt, "error", err)

		if attempt < maxRetries {
			if err := c.waitRetryDelay(); err != nil {
				c.state.ToDisconnected()
				return fmt.Errorf("%w: %w", ErrConnectFailed, err)
			}
		}
	}

	c.state.ToDisconnected()

	return fmt.Errorf("%w: %w", ErrConnectFailed, lastErr)
}

// Send encodes frame and writes it fully to the stream.
//
// The frame must be structurally compatible with the peer's template; this
// is the caller's responsibility and is not verified on the wire. Encoding
// errors are schema misuse and propagate immediately without touching the
// connection. A transport write failure transitions the client to
// DisconnectedState, runs the reconnect sequence, and then returns an error
// wrapping ErrTransport; the caller is free to retry on the next loop
// iteration.
func (c *Client) Send(frame *plcdata.Frame) error {
	if !c.state.Get().IsConnected() {
		return ErrNotConnected
	}

	data, err := frame.Encode()
	if err != nil {
		return err
	}

	if _, err := c.conn.Write(data); err != nil {
		c.metrics.incSendErrCount()
		c.handleDisconnect(err)

		return fmt.Errorf("%w: send: %w", ErrTransport, err)
	}

	c.metrics.incFrameSendCount()

	return nil
}

// Receive reads exactly one frame from the stream and decodes it with the
// client's template.
//
// Idle timeouts while waiting for bytes are retried internally. When the
// peer closes the stream or a hard transport error occurs, the client
// transitions to DisconnectedState, runs the reconnect sequence, and
// returns a nil frame with the error; no partial frame is ever returned.
func (c *Client) Receive() (*plcdata.Frame, error) {
	if !c.state.Get().IsConnected() {
		return nil, ErrNotConnected
	}

	if err := c.reader.ReadFrame(c.conn, c.recvBuf); err != nil {
		c.metrics.incRecvErrCount()
		c.handleDisconnect(err)

		return nil, err
	}

	frame, err := c.template.Decode(c.recvBuf)
	if err != nil {
		return nil, err
	}

	c.metrics.incFrameRecvCount()

	return frame, nil
}

// Close releases the transport connection if held and forces the client
// into DisconnectedState. It is idempotent and safe to call without a prior
// Connect.
func (c *Client) Close() error {
	c.cleanup()
	return nil
}

func (c *Client) dial(address string) (net.Conn, error) {
	dialer := &net.Dialer{}

	dialCtx, cancel := context.WithTimeout(c.pctx, c.cfg.ConnectTimeout())
	defer cancel()

	return dialer.DialContext(dialCtx, "tcp", address)
}

func (c *Client) waitRetryDelay() error {
	timer := pool.GetTimer(c.cfg.RetryDelay())
	defer pool.PutTimer(timer)

	select {
	case <-c.pctx.Done():
		return c.pctx.Err()
	case <-timer.C:
		return nil
	}
}

// handleDisconnect is the reconnect sequence: release the broken transport
// handle, transition to DisconnectedState, and immediately re-run Connect.
// The failed call still reports its error; only future calls see the
// restored connection.
func (c *Client) handleDisconnect(cause error) {
	c.logger.Warn("connection lost, attempting reconnect", "error", cause)

	c.cleanup()
	c.metrics.incReconnectCount()

	if err := c.Connect(); err != nil {
		c.logger.Error("reconnect failed", "error", err)
	}
}

func (c *Client) cleanup() {
	c.state.ToDisconnected()

	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}
