package bridge

import (
	"sync/atomic"
)

// ConnectionMetrics contains atomic metrics for a bridge endpoint.
// Metrics can be used as the value of a prometheus CounterFunc or GaugeFunc.
//
// The metrics are pure observers: nothing in the codec or transport path
// reads them back.
type ConnectionMetrics struct {
	// FrameSendCount indicates the number of frames written to the peer.
	FrameSendCount atomic.Uint64
	// FrameRecvCount indicates the number of complete frames read from the peer.
	FrameRecvCount atomic.Uint64
	// SendErrCount indicates the number of failed frame writes.
	SendErrCount atomic.Uint64
	// RecvErrCount indicates the number of failed frame reads.
	RecvErrCount atomic.Uint64

	// ReconnectCount indicates the number of reconnect sequences triggered
	// by in-session transport failures.
	ReconnectCount atomic.Uint64

	// ConnRetryGauge indicates the number of connection attempts made in
	// the current (or most recent failed) connect sequence.
	ConnRetryGauge atomic.Uint32
}

func (m *ConnectionMetrics) incFrameSendCount() {
	m.FrameSendCount.Add(1)
}

func (m *ConnectionMetrics) incFrameRecvCount() {
	m.FrameRecvCount.Add(1)
}

func (m *ConnectionMetrics) incSendErrCount() {
	m.SendErrCount.Add(1)
}

func (m *ConnectionMetrics) incRecvErrCount() {
	m.RecvErrCount.Add(1)
}

func (m *ConnectionMetrics) incReconnectCount() {
	m.ReconnectCount.Add(1)
}

func (m *ConnectionMetrics) incConnRetryGauge() {
	m.ConnRetryGauge.Add(1)
}

func (m *ConnectionMetrics) resetConnRetryGauge() {
	m.ConnRetryGauge.Store(0)
}
