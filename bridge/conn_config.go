package bridge

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kkats/go-plcbridge/logger"
)

const (
	// DefaultMaxRetries is the default number of sequential connection
	// attempts made by Client.Connect.
	DefaultMaxRetries = 5

	// MaxRetryLimit bounds the configurable retry count.
	MaxRetryLimit = 100
)

// ConnectionConfig holds the configuration parameters shared by the active
// (client) and passive (server) endpoints of a bridge link.
type ConnectionConfig struct {
	mu sync.RWMutex

	// host is the remote host (client) or local bind host (server).
	host string

	// port is the TCP port of the link.
	port int

	// maxRetries is the number of sequential connection attempts made by
	// Client.Connect before reporting failure.
	maxRetries int

	// retryDelay is the wait between failed connection attempts. No delay
	// is applied after the final attempt.
	retryDelay time.Duration

	// connectTimeout bounds each individual connection attempt.
	connectTimeout time.Duration

	// readIdleTimeout is the per-read idle deadline applied while waiting
	// for frame bytes. An idle timeout is treated as "no data yet" and the
	// read is retried; it is not a connection failure.
	readIdleTimeout time.Duration

	// logger receives structured connection lifecycle events.
	logger logger.Logger
}

// NewConnectionConfig creates a connection configuration for the given host
// and port with default values, then applies the provided options.
//
// Defaults: 5 connection attempts, 2s retry delay, 5s connect timeout,
// 5s read idle timeout, the package default logger.
func NewConnectionConfig(host string, port int, opts ...ConnOption) (*ConnectionConfig, error) {
	cfg := &ConnectionConfig{
		host:            host,
		port:            port,
		maxRetries:      DefaultMaxRetries,
		retryDelay:      2 * time.Second,
		connectTimeout:  5 * time.Second,
		readIdleTimeout: 5 * time.Second,
		logger:          logger.GetLogger(),
	}

	if port < 0 || port > 65535 {
		return nil, errors.New("bridge: port is out of range [0, 65535]")
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Host returns the configured host.
func (cfg *ConnectionConfig) Host() string {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.host
}

// Port returns the configured TCP port.
func (cfg *ConnectionConfig) Port() int {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.port
}

// MaxRetries returns the connection attempt budget.
func (cfg *ConnectionConfig) MaxRetries() int {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.maxRetries
}

// RetryDelay returns the wait between failed connection attempts.
func (cfg *ConnectionConfig) RetryDelay() time.Duration {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.retryDelay
}

// ConnectTimeout returns the per-attempt connection timeout.
func (cfg *ConnectionConfig) ConnectTimeout() time.Duration {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.connectTimeout
}

// ReadIdleTimeout returns the per-read idle deadline.
func (cfg *ConnectionConfig) ReadIdleTimeout() time.Duration {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.readIdleTimeout
}

// Logger returns the configured logger.
func (cfg *ConnectionConfig) Logger() logger.Logger {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	return cfg.logger
}

// ConnOption represents a functional option for configuring a ConnectionConfig.
type ConnOption interface {
	apply(*ConnectionConfig) error
}

type connOptFunc struct {
	name      string
	applyFunc func(*ConnectionConfig) error
}

func (c *connOptFunc) apply(cfg *ConnectionConfig) error { return c.applyFunc(cfg) }

func newConnOptFunc(name string, f func(*ConnectionConfig) error) *connOptFunc {
	return &connOptFunc{
		name:      name,
		applyFunc: f,
	}
}

// WithMaxRetries sets the number of sequential connection attempts made by
// Client.Connect before reporting failure.
//
// The default value is 5.
func WithMaxRetries(n int) ConnOption {
	return newConnOptFunc("WithMaxRetries", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if n < 1 || n > MaxRetryLimit {
			return fmt.Errorf("bridge: max retries %d out of range [1, %d]", n, MaxRetryLimit)
		}
		cfg.maxRetries = n

		return nil
	})
}

// WithRetryDelay sets the wait between failed connection attempts. No delay
// is applied after the final attempt.
//
// The default value is 2 seconds.
func WithRetryDelay(d time.Duration) ConnOption {
	return newConnOptFunc("WithRetryDelay", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if d < 0 || d > 240*time.Second {
			return errors.New("bridge: retry delay out of range [0, 240s]")
		}
		cfg.retryDelay = d

		return nil
	})
}

// WithConnectTimeout sets the timeout for each individual connection
// attempt.
//
// The default value is 5 seconds.
func WithConnectTimeout(d time.Duration) ConnOption {
	return newConnOptFunc("WithConnectTimeout", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if d < 100*time.Millisecond || d > 30*time.Second {
			return errors.New("bridge: connect timeout out of range [0.1s, 30s]")
		}
		cfg.connectTimeout = d

		return nil
	})
}

// WithReadIdleTimeout sets the per-read idle deadline applied while waiting
// for frame bytes. An idle timeout is retried internally and never surfaces
// as a connection failure.
//
// The default value is 5 seconds.
func WithReadIdleTimeout(d time.Duration) ConnOption {
	return newConnOptFunc("WithReadIdleTimeout", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		if d < 10*time.Millisecond || d > 120*time.Second {
			return errors.New("bridge: read idle timeout out of range [0.01s, 120s]")
		}
		cfg.readIdleTimeout = d

		return nil
	})
}

// WithLogger sets the logger for the connection.
//
// The default logger is the global logger instance.
func WithLogger(l logger.Logger) ConnOption {
	return newConnOptFunc("WithLogger", func(cfg *ConnectionConfig) error {
		if cfg == nil {
			return ErrConfigNil
		}

		cfg.logger = l

		return nil
	})
}
