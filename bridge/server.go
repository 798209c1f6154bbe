package bridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kkats/go-plcbridge/logger"
	"github.com/kkats/go-plcbridge/plcdata"
)

// Handler computes the response frame for one received request frame.
//
// Handlers run on the serve loop; a blocking handler stalls the link. The
// returned frame must be structurally compatible with the server's template.
type Handler func(req *plcdata.Frame) (*plcdata.Frame, error)

// Server is the passive endpoint of a bridge link. It accepts one inbound
// connection at a time and serves it with a strict read/compute/write loop
// until the peer disconnects or the server is stopped, then accepts the next
// peer.
//
// Serving a single peer at a time is a deliberate simplicity trade-off for a
// single-controller link, not an accident: no two peers are ever served
// concurrently by one Server, and frames within a connection are processed
// strictly in arrival order. Multi-peer support would need one Serve call
// per accepted connection on separate goroutines and changes the resource
// sharing assumptions; it is intentionally not provided here.
type Server struct {
	cfg      *ConnectionConfig
	logger   logger.Logger
	template *plcdata.Frame
	handler  Handler

	listener   net.Listener
	listenerMu sync.Mutex
	running    atomic.Bool
	metrics    ConnectionMetrics
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithHandler replaces the server's placeholder transform with fn.
func WithHandler(fn Handler) ServerOption {
	return func(s *Server) {
		s.handler = fn
	}
}

// NewServer creates a server for the link described by cfg. The template
// defines the frame layout exchanged on the link.
//
// Unless WithHandler is given, the server responds with the placeholder
// transform of DefaultHandler.
func NewServer(cfg *ConnectionConfig, template *plcdata.Frame, opts ...ServerOption) (*Server, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}
	if template == nil {
		return nil, ErrTemplateNil
	}

	s := &Server{
		cfg:      cfg,
		logger:   cfg.Logger(),
		template: template,
		handler:  DefaultHandler(template),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Metrics returns the server's connection metrics.
func (s *Server) Metrics() *ConnectionMetrics {
	return &s.metrics
}

// Running reports whether the server is accepting and serving connections.
func (s *Server) Running() bool {
	return s.running.Load()
}

// Addr returns the listener's address, or nil when the server is not
// started. Useful when the server was configured with port 0.
func (s *Server) Addr() net.Addr {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	if s.listener == nil {
		return nil
	}

	return s.listener.Addr()
}

// Start binds and listens on the configured address. On failure it reports
// an error wrapping ErrBindFailed and leaves the server without side
// effects. Address reuse is enabled, so a restarting server can rebind a
// port still in TIME_WAIT (the Go runtime sets SO_REUSEADDR on TCP
// listeners).
func (s *Server) Start() error {
	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	if s.listener != nil {
		return nil
	}

	address := net.JoinHostPort(s.cfg.Host(), strconv.Itoa(s.cfg.Port()))

	var lc net.ListenConfig
	listener, err := lc.Listen(context.Background(), "tcp", address)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBindFailed, err)
	}

	s.listener = listener
	s.running.Store(true)
	s.logger.Info("server listening", "address", listener.Addr().String())

	return nil
}

// AcceptConnection blocks until one inbound connection is accepted and
// returns it. The accepted connection's reads are governed by the
// configured read idle timeout during Serve.
//
// ErrStopped is returned when the server was stopped while waiting.
func (s *Server) AcceptConnection() (net.Conn, error) {
	s.listenerMu.Lock()
	listener := s.listener
	s.listenerMu.Unlock()

	if listener == nil || !s.running.Load() {
		return nil, ErrStopped
	}

	conn, err := listener.Accept()
	if err != nil {
		if !s.running.Load() {
			return nil, ErrStopped
		}

		return nil, fmt.Errorf("%w: accept: %w", ErrTransport, err)
	}

	s.logger.Info("client connected", "remote_addr", conn.RemoteAddr().String())

	return conn, nil
}

// Serve runs the request/response loop on conn: read exactly one frame,
// compute the response with the handler, write it fully, repeat. The loop
// ends when the peer disconnects (nil return), the server is stopped (nil
// return) or a hard transport or handler error occurs. The connection is
// released on every exit path.
func (s *Server) Serve(conn net.Conn) error {
	defer func() { _ = conn.Close() }()

	log := s.logger.With("conn_id", uuid.NewString(), "remote_addr", conn.RemoteAddr().String())

	reader := frameReader{
		idleTimeout: s.cfg.ReadIdleTimeout(),
		keepWaiting: s.running.Load,
	}
	buf := make([]byte, s.template.Size())

	for s.running.Load() {
		err := reader.ReadFrame(conn, buf)
		if errors.Is(err, ErrPeerClosed) {
			log.Info("client disconnected")
			return nil
		}
		if errors.Is(err, ErrStopped) {
			return nil
		}
		if err != nil {
			s.metrics.incRecvErrCount()
			log.Warn("read frame failed", "error", err)

			return err
		}

		req, err := s.template.Decode(buf)
		if err != nil {
			return err
		}

		s.metrics.incFrameRecvCount()
		log.Debug("frame received", "frame", req.String())

		resp, err := s.handler(req)
		if err != nil {
			return fmt.Errorf("bridge: handler: %w", err)
		}

		data, err := resp.Encode()
		if err != nil {
			return err
		}

		if _, err := conn.Write(data); err != nil {
			s.metrics.incSendErrCount()
			log.Warn("write frame failed", "error", err)

			return fmt.Errorf("%w: send: %w", ErrTransport, err)
		}

		s.metrics.incFrameSendCount()
		log.Debug("frame sent", "frame", resp.String())
	}

	return nil
}

// Run starts the server if needed and runs the sequential accept/serve
// loop: accept one peer, serve it until it disconnects, accept the next.
// It returns when the server is stopped.
func (s *Server) Run() error {
	if err := s.Start(); err != nil {
		return err
	}

	for s.running.Load() {
		conn, err := s.AcceptConnection()
		if errors.Is(err, ErrStopped) {
			return nil
		}
		if err != nil {
			s.logger.Error("accept failed", "error", err)
			continue
		}

		if err := s.Serve(conn); err != nil {
			s.logger.Warn("connection ended with error", "error", err)
		}
	}

	return nil
}

// Stop marks the server not-running and releases the listening socket,
// unblocking a pending AcceptConnection. It is idempotent.
func (s *Server) Stop() {
	s.running.Store(false)

	s.listenerMu.Lock()
	defer s.listenerMu.Unlock()

	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
		s.logger.Info("server stopped")
	}
}

// DefaultHandler returns the placeholder transform served until a real
// handler is injected: integer fields are incremented by one, float fields
// are doubled, every other field is echoed unchanged.
func DefaultHandler(template *plcdata.Frame) Handler {
	return func(req *plcdata.Frame) (*plcdata.Frame, error) {
		resp := template.Clone()

		for _, spec := range req.Fields() {
			value, err := req.Get(spec.Name)
			if err != nil {
				return nil, err
			}

			switch v := value.(type) {
			case int64:
				err = resp.Set(spec.Name, v+1)
			case uint64:
				err = resp.Set(spec.Name, v+1)
			case float64:
				err = resp.Set(spec.Name, v*2)
			default:
				err = resp.Set(spec.Name, v)
			}
			if err != nil {
				return nil, err
			}
		}

		return resp, nil
	}
}
