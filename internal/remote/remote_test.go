package remote

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
)

func startServer(t *testing.T) (*httptest.Server, chan gesture.Sample) {
	t.Helper()
	samples := make(chan gesture.Sample, 16)
	feed := NewServer(func(s gesture.Sample) { samples <- s }, geom.R(0, 0, 80, 24))
	srv := httptest.NewServer(feed.Handler())
	t.Cleanup(srv.Close)
	return srv, samples
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + Path
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	return ws
}

func send(t *testing.T, ws *websocket.Conn, msg interface{}) Reply {
	t.Helper()
	switch m := msg.(type) {
	case string:
		require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(m)))
	default:
		require.NoError(t, ws.WriteJSON(m))
	}
	ws.SetReadDeadline(time.Now().Add(2 * time.Second))
	var reply Reply
	require.NoError(t, ws.ReadJSON(&reply))
	return reply
}

func receive(t *testing.T, samples chan gesture.Sample) gesture.Sample {
	t.Helper()
	select {
	case s := <-samples:
		return s
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for a sample")
		return gesture.Sample{}
	}
}

func TestFeedForwardsSamples(t *testing.T) {
	srv, samples := startServer(t)
	ws := dial(t, srv)
	defer ws.Close()

	for _, msg := range []Message{
		{Phase: "down", X: 10, Y: 5},
		{Phase: "move", X: 12, Y: 5},
		{Phase: "up", X: 14, Y: 6},
	} {
		require.True(t, send(t, ws, msg).OK)
	}

	require.Equal(t, gesture.Sample{Phase: gesture.PhaseDown, Pos: geom.Point{X: 10, Y: 5}}, receive(t, samples))
	require.Equal(t, gesture.PhaseMove, receive(t, samples).Phase)
	require.Equal(t, gesture.Sample{Phase: gesture.PhaseUp, Pos: geom.Point{X: 14, Y: 6}}, receive(t, samples))
}

func TestFeedRejectsBadSamples(t *testing.T) {
	srv, samples := startServer(t)
	ws := dial(t, srv)
	defer ws.Close()

	reply := send(t, ws, Message{Phase: "hover", X: 1, Y: 1})
	require.False(t, reply.OK)
	require.NotEmpty(t, reply.Error)

	reply = send(t, ws, Message{Phase: "down", X: 80, Y: 1})
	require.False(t, reply.OK)
	require.Contains(t, reply.Error, "outside")

	reply = send(t, ws, "{nope")
	require.False(t, reply.OK)

	reply = send(t, ws, `{"phase": 3}`)
	require.False(t, reply.OK)

	require.True(t, send(t, ws, Message{Phase: "down", X: 1, Y: 1}).OK)
	require.Equal(t, gesture.PhaseDown, receive(t, samples).Phase)
	require.Len(t, samples, 0)
}

func TestSecondFeedIsRefused(t *testing.T) {
	srv, _ := startServer(t)
	ws := dial(t, srv)
	defer ws.Close()
	require.True(t, send(t, ws, Message{Phase: "up"}).OK)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + Path
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestDroppedFeedLiftsTheTouch(t *testing.T) {
	srv, samples := startServer(t)
	ws := dial(t, srv)
	require.True(t, send(t, ws, Message{Phase: "down", X: 3, Y: 4}).OK)
	require.True(t, send(t, ws, Message{Phase: "move", X: 6, Y: 4}).OK)
	receive(t, samples)
	receive(t, samples)

	ws.Close()
	require.Equal(t, gesture.Sample{Phase: gesture.PhaseUp, Pos: geom.Point{X: 6, Y: 4}}, receive(t, samples))
}

func TestServeStopsWithContext(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	feed := NewServer(func(gesture.Sample) {}, geom.Rect{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- feed.Serve(ctx, ln) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatalf("server did not stop")
	}
}
