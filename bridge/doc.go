// Package bridge implements the connection lifecycle of a PLC TCP/IP link:
// an active client endpoint with bounded-retry connect and embedded
// reconnect, and a passive server endpoint that serves one inbound
// connection at a time.
//
// Both endpoints exchange fixed-layout frames built with package plcdata.
// The wire carries nothing but the concatenated big-endian field encodings;
// frame boundaries are established purely by the statically agreed byte
// count, which is why both endpoints read through an exact-length frame
// reader that never surfaces a partial frame.
//
// Known robustness gap: because the format has no integrity check or
// resynchronization marker, a misaligned byte stream (partial write, wire
// corruption) misreads all subsequent frames with no detection. The format
// is kept as-is for compatibility with existing peers; do not add framing
// bytes here.
//
// Client usage:
//
//	cfg, _ := bridge.NewConnectionConfig("192.168.0.10", 502,
//	    bridge.WithMaxRetries(3),
//	    bridge.WithRetryDelay(time.Second),
//	)
//	client, _ := bridge.NewClient(ctx, cfg, template)
//	if err := client.Connect(); err != nil {
//	    // unreachable within the retry budget
//	}
//	_ = client.Send(frame)
//	reply, _ := client.Receive()
//	defer client.Close()
//
// Server usage:
//
//	cfg, _ := bridge.NewConnectionConfig("0.0.0.0", 502)
//	server, _ := bridge.NewServer(cfg, template, bridge.WithHandler(handle))
//	go server.Run()
//	...
//	server.Stop()
package bridge
