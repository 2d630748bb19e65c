// Package remote accepts touch samples over a websocket so a phone or a test
// script can drive the widgets.
//
// Each text frame carries one JSON sample:
//
//	{"phase": "down", "x": 40, "y": 12}
//
// and is answered with {"ok": true} once the sample has been handed to the
// sink, or {"ok": false, "error": "..."} when it was rejected. One feed is
// served at a time.
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/atomicstack/touch-widgets/internal/geom"
	"github.com/atomicstack/touch-widgets/internal/gesture"
	"github.com/atomicstack/touch-widgets/internal/logging/events"
)

// Path is where the websocket endpoint is mounted.
const Path = "/touch"

// Message is one sample on the wire.
type Message struct {
	Phase string `json:"phase"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// Reply acknowledges one message.
type Reply struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Sink receives validated samples. It is called from connection goroutines
// and must hand the sample over to the loop that owns the widgets.
type Sink func(gesture.Sample)

// ErrBusy is returned to a second client while a feed is connected.
var ErrBusy = errors.New("another touch feed is connected")

// Server serves the touch feed.
type Server struct {
	sink     Sink
	bounds   geom.Rect
	upgrader websocket.Upgrader

	mu        sync.Mutex
	connected bool
	active    *websocket.Conn
	srv       *http.Server
}

// NewServer returns a feed delivering to sink. Samples outside bounds are
// rejected; an empty bounds accepts anything.
func NewServer(sink Sink, bounds geom.Rect) *Server {
	return &Server{
		sink:   sink,
		bounds: bounds,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the HTTP handler with the feed mounted at Path.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.serveFeed)
	return mux
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("remote feed: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()
	events.Remote.Listen(ln.Addr().String())

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.Close()
		case <-done:
		}
	}()

	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("remote feed: %w", err)
	}
	return nil
}

// Close stops the server and drops the connected feed.
func (s *Server) Close() {
	s.mu.Lock()
	srv, conn := s.srv, s.active
	s.mu.Unlock()
	if conn != nil {
		conn.Close()
	}
	if srv != nil {
		srv.Close()
	}
}

func (s *Server) serveFeed(w http.ResponseWriter, r *http.Request) {
	peer := r.RemoteAddr
	s.mu.Lock()
	if s.connected {
		s.mu.Unlock()
		events.Remote.Rejected(peer, ErrBusy.Error())
		http.Error(w, ErrBusy.Error(), http.StatusConflict)
		return
	}
	s.connected = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.connected, s.active = false, nil
		s.mu.Unlock()
	}()

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		events.Remote.Rejected(peer, err.Error())
		return
	}
	defer conn.Close()
	s.mu.Lock()
	s.active = conn
	s.mu.Unlock()
	events.Remote.Connect(peer)

	err = s.readLoop(conn, peer)
	events.Remote.Disconnect(peer, err)
}

// readLoop forwards samples until the connection fails. A feed that drops
// mid-touch gets its missing lift synthesized at the last position.
func (s *Server) readLoop(conn *websocket.Conn, peer string) error {
	var (
		pressed bool
		last    geom.Point
	)
	defer func() {
		if pressed {
			s.sink(gesture.Sample{Phase: gesture.PhaseUp, Pos: last})
		}
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			if malformed(err) {
				// The rest of a bad frame is discarded by the next read.
				events.Remote.Rejected(peer, err.Error())
				if werr := conn.WriteJSON(Reply{Error: err.Error()}); werr != nil {
					return werr
				}
				continue
			}
			return err
		}

		sample, err := s.validate(msg)
		if err != nil {
			events.Remote.Rejected(peer, err.Error())
			if werr := conn.WriteJSON(Reply{Error: err.Error()}); werr != nil {
				return werr
			}
			continue
		}

		s.sink(sample)
		pressed = sample.Phase != gesture.PhaseUp
		last = sample.Pos
		if err := conn.WriteJSON(Reply{OK: true}); err != nil {
			return err
		}
	}
}

func (s *Server) validate(msg Message) (gesture.Sample, error) {
	phase, err := gesture.ParsePhase(msg.Phase)
	if err != nil {
		return gesture.Sample{}, err
	}
	p := geom.Point{X: msg.X, Y: msg.Y}
	if !s.bounds.Empty() && !s.bounds.Contains(p) {
		return gesture.Sample{}, fmt.Errorf("sample %d,%d outside %dx%d screen", p.X, p.Y, s.bounds.W, s.bounds.H)
	}
	return gesture.Sample{Phase: phase, Pos: p}, nil
}

func malformed(err error) bool {
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	return errors.As(err, &syntax) || errors.As(err, &typ)
}
