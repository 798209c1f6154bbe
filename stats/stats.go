// Package stats provides timing and connection-health helpers for polling
// loops: loop frequency measurement, rate limiting, loop timing statistics,
// connection success tracking and stall detection.
//
// The helpers are pure observers. They consume only "an event happened" or
// "a loop iteration occurred" and derive metrics from that; nothing here
// feeds back into codec or transport behavior.
//
// None of the types are safe for concurrent use; each belongs to one loop.
package stats

import (
	"time"
)

// FrequencyMonitor measures loop frequency over fixed reporting intervals.
type FrequencyMonitor struct {
	interval  time.Duration
	lastReset time.Time
	count     int
}

// NewFrequencyMonitor creates a monitor that reports once per interval.
func NewFrequencyMonitor(interval time.Duration) *FrequencyMonitor {
	return &FrequencyMonitor{
		interval:  interval,
		lastReset: time.Now(),
	}
}

// Tick records one loop iteration. When a full reporting interval has
// elapsed it returns the measured frequency in Hz and true, then starts a
// new interval; otherwise it returns 0 and false.
func (m *FrequencyMonitor) Tick() (float64, bool) {
	m.count++

	elapsed := time.Since(m.lastReset)
	if elapsed < m.interval {
		return 0, false
	}

	hz := float64(m.count) / elapsed.Seconds()
	m.count = 0
	m.lastReset = time.Now()

	return hz, true
}

// MovingAverage measures smoothed loop frequency over a sliding window of
// iteration intervals.
type MovingAverage struct {
	deltas   []time.Duration
	next     int
	filled   bool
	lastTick time.Time
}

// NewMovingAverage creates a monitor averaging over windowSize iterations.
func NewMovingAverage(windowSize int) *MovingAverage {
	if windowSize < 1 {
		windowSize = 1
	}

	return &MovingAverage{
		deltas:   make([]time.Duration, windowSize),
		lastTick: time.Now(),
	}
}

// Tick records one loop iteration and returns the current smoothed
// frequency in Hz. Until the window fills, the average covers the
// iterations seen so far.
func (m *MovingAverage) Tick() float64 {
	now := time.Now()
	m.deltas[m.next] = now.Sub(m.lastTick)
	m.lastTick = now

	m.next++
	if m.next == len(m.deltas) {
		m.next = 0
		m.filled = true
	}

	return m.Frequency()
}

// Frequency returns the current smoothed frequency in Hz, or 0 when no
// iteration was recorded yet.
func (m *MovingAverage) Frequency() float64 {
	n := m.next
	if m.filled {
		n = len(m.deltas)
	}
	if n == 0 {
		return 0
	}

	var total time.Duration
	for i := 0; i < n; i++ {
		total += m.deltas[i]
	}
	if total <= 0 {
		return 0
	}

	return float64(n) / total.Seconds()
}

// RateLimiter paces a loop to a target frequency.
type RateLimiter struct {
	period   time.Duration
	lastWait time.Time
}

// NewRateLimiter creates a limiter for the given target frequency in Hz.
func NewRateLimiter(targetHz float64) *RateLimiter {
	if targetHz <= 0 {
		targetHz = 1
	}

	return &RateLimiter{
		period:   time.Duration(float64(time.Second) / targetHz),
		lastWait: time.Now(),
	}
}

// Wait sleeps for the remainder of the current period, if any. Call once
// per loop iteration after the iteration's work.
func (r *RateLimiter) Wait() {
	elapsed := time.Since(r.lastWait)
	if sleep := r.period - elapsed; sleep > 0 {
		time.Sleep(sleep)
	}

	r.lastWait = time.Now()
}

// LoopTimerStats summarizes recorded loop iteration times.
type LoopTimerStats struct {
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
	Count int
}

// LoopTimer measures individual loop iteration durations.
type LoopTimer struct {
	started time.Time
	running bool
	times   []time.Duration
}

// NewLoopTimer creates an empty loop timer.
func NewLoopTimer() *LoopTimer {
	return &LoopTimer{}
}

// Start begins timing one iteration.
func (t *LoopTimer) Start() {
	t.started = time.Now()
	t.running = true
}

// Stop ends timing the current iteration and records it. A Stop without a
// matching Start is ignored.
func (t *LoopTimer) Stop() {
	if !t.running {
		return
	}

	t.times = append(t.times, time.Since(t.started))
	t.running = false
}

// Stats returns min/max/avg/count over the recorded iterations, and false
// when nothing was recorded.
func (t *LoopTimer) Stats() (LoopTimerStats, bool) {
	if len(t.times) == 0 {
		return LoopTimerStats{}, false
	}

	stats := LoopTimerStats{
		Min:   t.times[0],
		Max:   t.times[0],
		Count: len(t.times),
	}

	var total time.Duration
	for _, d := range t.times {
		total += d
		if d < stats.Min {
			stats.Min = d
		}
		if d > stats.Max {
			stats.Max = d
		}
	}
	stats.Avg = total / time.Duration(len(t.times))

	return stats, true
}

// Reset discards all recorded iterations.
func (t *LoopTimer) Reset() {
	t.times = t.times[:0]
	t.running = false
}
