// Package pool provides pooled time.Timer instances for code paths that
// wait repeatedly, such as connect retry delays.
package pool

import (
	"sync"
	"time"
)

var timerPool sync.Pool

// GetTimer returns a timer set to fire after d, reusing a pooled timer when
// one is available.
//
// Return the timer to the pool with PutTimer once it is no longer needed.
func GetTimer(d time.Duration) *time.Timer {
	if v := timerPool.Get(); v != nil {
		t, _ := v.(*time.Timer) // only *time.Timer is ever put into the pool
		if t.Reset(d) {
			// timer was still active, drain the channel to avoid a stale fire
			select {
			case <-t.C:
			default:
			}
		}
		return t
	}
	return time.NewTimer(d)
}

// PutTimer stops t and returns it to the pool.
//
// t must not be touched after the call.
func PutTimer(t *time.Timer) {
	if !t.Stop() {
		// drain t.C if the caller has not received from it
		select {
		case <-t.C:
		default:
		}
	}
	timerPool.Put(t)
}
