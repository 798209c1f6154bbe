package stats

import (
	"testing"
	"time"

	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrequencyMonitor(t *testing.T) {
	require := require.New(t)

	monitor := NewFrequencyMonitor(50 * time.Millisecond)

	_, ready := monitor.Tick()
	require.False(ready)

	time.Sleep(60 * time.Millisecond)

	hz, ready := monitor.Tick()
	require.True(ready)
	require.Greater(hz, 0.0)

	// a fresh interval starts after reporting
	_, ready = monitor.Tick()
	require.False(ready)
}

func TestMovingAverage(t *testing.T) {
	require := require.New(t)

	avg := NewMovingAverage(4)
	require.Equal(0.0, avg.Frequency())

	for i := 0; i < 8; i++ {
		time.Sleep(5 * time.Millisecond)
		hz := avg.Tick()
		require.Greater(hz, 0.0)
	}

	// ~5ms per iteration puts the smoothed frequency well under 1kHz
	require.Less(avg.Frequency(), 1000.0)
	require.Greater(avg.Frequency(), 1.0)
}

func TestRateLimiter(t *testing.T) {
	require := require.New(t)

	limiter := NewRateLimiter(100) // 10ms period

	start := time.Now()
	for i := 0; i < 5; i++ {
		limiter.Wait()
	}
	elapsed := time.Since(start)

	// 5 waits at 100Hz takes at least ~40ms (first period may be partial)
	require.GreaterOrEqual(elapsed, 40*time.Millisecond)
}

func TestLoopTimer(t *testing.T) {
	require := require.New(t)

	timer := NewLoopTimer()

	_, ok := timer.Stats()
	require.False(ok)

	// a Stop without Start is ignored
	timer.Stop()
	_, ok = timer.Stats()
	require.False(ok)

	for i := 0; i < 3; i++ {
		timer.Start()
		time.Sleep(5 * time.Millisecond)
		timer.Stop()
	}

	stats, ok := timer.Stats()
	require.True(ok)
	require.Equal(3, stats.Count)
	require.GreaterOrEqual(stats.Min, 5*time.Millisecond)
	require.GreaterOrEqual(stats.Max, stats.Min)
	require.GreaterOrEqual(stats.Avg, stats.Min)
	require.LessOrEqual(stats.Avg, stats.Max)

	timer.Reset()
	_, ok = timer.Stats()
	require.False(ok)
}

func TestConnectionMonitor(t *testing.T) {
	assert := tassert.New(t)

	monitor := NewConnectionMonitor(3)

	monitor.RecordSuccess()
	monitor.RecordSuccess()
	assert.False(monitor.RecordFailure(tassert.AnError))
	assert.False(monitor.RecordFailure(tassert.AnError))
	assert.True(monitor.RecordFailure(tassert.AnError)) // threshold reached

	stats := monitor.Stats()
	assert.Equal(uint64(5), stats.Total)
	assert.Equal(uint64(2), stats.Successful)
	assert.Equal(uint64(3), stats.Failed)
	assert.Equal(3, stats.ConsecutiveFailures)
	assert.InDelta(40.0, stats.SuccessRate, 1e-9)
	assert.Equal(tassert.AnError, monitor.LastError())

	// success clears the streak
	monitor.RecordSuccess()
	assert.Equal(0, monitor.Stats().ConsecutiveFailures)

	monitor.Reset()
	stats = monitor.Stats()
	assert.Equal(uint64(0), stats.Total)
	assert.InDelta(0.0, stats.SuccessRate, 1e-9)
	assert.Nil(monitor.LastError())
}

func TestWatchdog(t *testing.T) {
	require := require.New(t)

	watchdog := NewWatchdog(20 * time.Millisecond)
	require.True(watchdog.Healthy())
	require.False(watchdog.Expired())

	time.Sleep(30 * time.Millisecond)
	require.False(watchdog.Healthy())
	require.True(watchdog.Expired())

	// expiry reports once until the next kick
	require.False(watchdog.Expired())

	watchdog.Kick()
	require.True(watchdog.Healthy())
	require.False(watchdog.Expired())
}
