package stats

import (
	"time"
)

// ConnectionStats is a snapshot of a ConnectionMonitor.
type ConnectionStats struct {
	Total               uint64
	Successful          uint64
	Failed              uint64
	SuccessRate         float64 // percent
	ConsecutiveFailures int
	Uptime              time.Duration
}

// ConnectionMonitor tracks the success/failure history of repeated
// operations (sends, receives, polls) on one link.
type ConnectionMonitor struct {
	alertThreshold int

	total       uint64
	successful  uint64
	failed      uint64
	consecutive int
	lastError   error
	started     time.Time
}

// NewConnectionMonitor creates a monitor whose RecordFailure reports an
// alert once alertThreshold consecutive failures accumulate.
func NewConnectionMonitor(alertThreshold int) *ConnectionMonitor {
	return &ConnectionMonitor{
		alertThreshold: alertThreshold,
		started:        time.Now(),
	}
}

// RecordSuccess records one successful operation and clears the consecutive
// failure streak.
func (m *ConnectionMonitor) RecordSuccess() {
	m.total++
	m.successful++
	m.consecutive = 0
}

// RecordFailure records one failed operation with its cause. It returns
// true when the consecutive failure streak has reached the alert threshold.
func (m *ConnectionMonitor) RecordFailure(err error) bool {
	m.total++
	m.failed++
	m.consecutive++
	m.lastError = err

	return m.alertThreshold > 0 && m.consecutive >= m.alertThreshold
}

// LastError returns the cause recorded with the most recent failure.
func (m *ConnectionMonitor) LastError() error {
	return m.lastError
}

// Stats returns a snapshot of the recorded history.
func (m *ConnectionMonitor) Stats() ConnectionStats {
	stats := ConnectionStats{
		Total:               m.total,
		Successful:          m.successful,
		Failed:              m.failed,
		ConsecutiveFailures: m.consecutive,
		Uptime:              time.Since(m.started),
	}
	if m.total > 0 {
		stats.SuccessRate = float64(m.successful) / float64(m.total) * 100
	}

	return stats
}

// Reset clears the recorded history and restarts the uptime clock.
func (m *ConnectionMonitor) Reset() {
	m.total = 0
	m.successful = 0
	m.failed = 0
	m.consecutive = 0
	m.lastError = nil
	m.started = time.Now()
}

// Watchdog detects stalled loops: if Kick is not called within the timeout,
// Expired reports the stall once until the next Kick.
type Watchdog struct {
	timeout   time.Duration
	lastKick  time.Time
	triggered bool
}

// NewWatchdog creates a watchdog with the given stall timeout.
func NewWatchdog(timeout time.Duration) *Watchdog {
	return &Watchdog{
		timeout:  timeout,
		lastKick: time.Now(),
	}
}

// Kick resets the watchdog. Call once per healthy loop iteration.
func (w *Watchdog) Kick() {
	w.lastKick = time.Now()
	w.triggered = false
}

// Expired reports whether the timeout elapsed since the last Kick. It
// returns true only on the first check after expiry; subsequent checks
// return false until the watchdog is kicked again.
func (w *Watchdog) Expired() bool {
	if w.triggered {
		return false
	}
	if time.Since(w.lastKick) <= w.timeout {
		return false
	}

	w.triggered = true

	return true
}

// Healthy reports whether the watchdog was kicked within the timeout.
func (w *Watchdog) Healthy() bool {
	return time.Since(w.lastKick) <= w.timeout
}
