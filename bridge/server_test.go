package bridge

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/kkats/go-plcbridge/plcdata"
)

func startTestServer(t *testing.T, template *plcdata.Frame, opts ...ServerOption) *Server {
	t.Helper()

	cfg, err := NewConnectionConfig("127.0.0.1", 0,
		WithReadIdleTimeout(50*time.Millisecond),
	)
	require.NoError(t, err)

	server, err := NewServer(cfg, template, opts...)
	require.NoError(t, err)
	require.NoError(t, server.Start())
	t.Cleanup(server.Stop)

	go func() { _ = server.Run() }()

	return server
}

func TestServerStartBindError(t *testing.T) {
	require := require.New(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(err)
	defer listener.Close()

	port := listener.Addr().(*net.TCPAddr).Port
	cfg, err := NewConnectionConfig("127.0.0.1", port)
	require.NoError(err)

	server, err := NewServer(cfg, testTemplate(t))
	require.NoError(err)

	err = server.Start()
	require.ErrorIs(err, ErrBindFailed)
	require.False(server.Running())
	require.Nil(server.Addr())
}

func TestServerStopIdempotent(t *testing.T) {
	require := require.New(t)

	cfg, err := NewConnectionConfig("127.0.0.1", 0)
	require.NoError(err)

	server, err := NewServer(cfg, testTemplate(t))
	require.NoError(err)

	// safe without a prior Start
	server.Stop()

	require.NoError(server.Start())
	require.True(server.Running())

	server.Stop()
	server.Stop()
	require.False(server.Running())
	require.Nil(server.Addr())
}

func TestServerAcceptAfterStop(t *testing.T) {
	require := require.New(t)

	cfg, err := NewConnectionConfig("127.0.0.1", 0)
	require.NoError(err)

	server, err := NewServer(cfg, testTemplate(t))
	require.NoError(err)
	require.NoError(server.Start())
	server.Stop()

	_, err = server.AcceptConnection()
	require.ErrorIs(err, ErrStopped)
}

func TestServerPlaceholderTransform(t *testing.T) {
	require := require.New(t)

	template := testTemplate(t)
	server := startTestServer(t, template)

	conn, err := net.Dial("tcp", server.Addr().String())
	require.NoError(err)
	defer conn.Close()

	request := template.Clone()
	require.NoError(request.Set("speed", 1000))
	require.NoError(request.Set("temp", 20.0))
	require.NoError(request.Set("status", 5))

	data, err := request.Encode()
	require.NoError(err)

	_, err = conn.Write(data)
	require.NoError(err)

	reply := readWireFrame(t, conn, template)

	speed, err := reply.GetUint("speed")
	require.NoError(err)
	require.Equal(uint64(1001), speed)

	temp, err := reply.GetFloat("temp")
	require.NoError(err)
	require.InDelta(40.0, temp, 1e-6)

	status, err := reply.GetUint("status")
	require.NoError(err)
	require.Equal(uint64(6), status)
}

func TestServerInjectedHandler(t *testing.T) {
	require := require.New(t)

	template := testTemplate(t)

	handler := func(req *plcdata.Frame) (*plcdata.Frame, error) {
		resp := template.Clone()
		if err := resp.Set("status", 0xBEEF); err != nil {
			return nil, err
		}
		return resp, nil
	}

	server := startTestServer(t, template, WithHandler(handler))

	conn, err := net.Dial("tcp", server.Addr().String())
	require.NoError(err)
	defer conn.Close()

	data, err := template.Clone().Encode()
	require.NoError(err)
	_, err = conn.Write(data)
	require.NoError(err)

	reply := readWireFrame(t, conn, template)

	status, err := reply.GetUint("status")
	require.NoError(err)
	require.Equal(uint64(0xBEEF), status)
}

func TestServerServesPeersSequentially(t *testing.T) {
	require := require.New(t)

	template := testTemplate(t)
	server := startTestServer(t, template)

	// first peer holds the link; it is the only one served
	first, err := net.Dial("tcp", server.Addr().String())
	require.NoError(err)
	defer first.Close()

	data, err := template.Clone().Encode()
	require.NoError(err)

	_, err = first.Write(data)
	require.NoError(err)
	_ = readWireFrame(t, first, template)

	// a second peer connects but gets no response until the first leaves
	second, err := net.Dial("tcp", server.Addr().String())
	require.NoError(err)
	defer second.Close()

	_, err = second.Write(data)
	require.NoError(err)

	require.NoError(second.SetReadDeadline(time.Now().Add(100 * time.Millisecond)))
	one := make([]byte, 1)
	_, err = second.Read(one)
	var netErr net.Error
	require.ErrorAs(err, &netErr)
	require.True(netErr.Timeout())

	// first peer disconnects; the server accepts the queued peer and serves it
	require.NoError(first.Close())

	require.NoError(second.SetReadDeadline(time.Now().Add(2 * time.Second)))
	_ = readWireFrame(t, second, template)
}

func TestDefaultHandlerTransform(t *testing.T) {
	require := require.New(t)

	template := plcdata.NewFrame()
	require.NoError(template.AddField("count", plcdata.Int16, 0))
	require.NoError(template.AddField("total", plcdata.Uint32, 0))
	require.NoError(template.AddField("ratio", plcdata.Float64, 0.0))
	require.NoError(template.AddField("on", plcdata.Bool, false))
	require.NoError(template.AddField("grade", plcdata.Char, byte(0)))
	require.NoError(template.AddString("unit", 4, ""))

	req := template.Clone()
	require.NoError(req.Set("count", -7))
	require.NoError(req.Set("total", 41))
	require.NoError(req.Set("ratio", 1.5))
	require.NoError(req.Set("on", true))
	require.NoError(req.Set("grade", byte('A')))
	require.NoError(req.Set("unit", "rpm"))

	resp, err := DefaultHandler(template)(req)
	require.NoError(err)

	count, _ := resp.GetInt("count")
	require.Equal(int64(-6), count)

	total, _ := resp.GetUint("total")
	require.Equal(uint64(42), total)

	ratio, _ := resp.GetFloat("ratio")
	require.InDelta(3.0, ratio, 1e-9)

	on, _ := resp.GetBool("on")
	require.True(on)

	grade, _ := resp.GetChar("grade")
	require.Equal(byte('A'), grade)

	unit, _ := resp.GetString("unit")
	require.Equal("rpm\x00", unit)
}

// readWireFrame reads exactly one encoded frame from conn and decodes it
// with template.
func readWireFrame(t *testing.T, conn net.Conn, template *plcdata.Frame) *plcdata.Frame {
	t.Helper()

	reader := frameReader{idleTimeout: 2 * time.Second}
	buf := make([]byte, template.Size())
	require.NoError(t, reader.ReadFrame(conn, buf))

	frame, err := template.Decode(buf)
	require.NoError(t, err)

	return frame
}
