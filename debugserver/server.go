// Package debugserver exposes per-frame tree snapshots over HTTP and a
// websocket stream.
package debugserver

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
	"github.com/plus3/ooui/ecs"
	"github.com/plus3/ooui/logger"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// sendBuffer snapshots are queued per client; a slower client drops
	// frames rather than stalling Publish.
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ErrRunning is returned by Start on a server that is already listening.
var ErrRunning = errors.New("debug server already running")

// Server holds the latest snapshot and the websocket subscribers.
type Server struct {
	log logrus.FieldLogger

	mu          sync.RWMutex
	latest      *Snapshot
	subscribers map[chan Snapshot]struct{}

	srvMu    sync.Mutex
	server   *http.Server
	listener net.Listener
}

// New creates a server. A nil log discards output.
func New(log logrus.FieldLogger) *Server {
	if log == nil {
		log = logger.Discard()
	}
	return &Server{
		log:         log.WithField("component", "debugserver"),
		subscribers: make(map[chan Snapshot]struct{}),
	}
}

// Observe returns an after-frame callback that captures and publishes the
// tree. Register it with Manager.AfterFrame.
func (s *Server) Observe(storage *ecs.Storage, tree *ecs.Tree) func(frame uint64) {
	return func(frame uint64) {
		s.Publish(Capture(storage, tree, frame))
	}
}

// Publish stores snap as the latest snapshot and queues it for every
// subscriber whose buffer has room.
func (s *Server) Publish(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.latest = &snap
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
			s.log.WithField("frame", snap.Frame).Debug("subscriber behind, dropping snapshot")
		}
	}
}

// Latest returns the last published snapshot.
func (s *Server) Latest() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return Snapshot{}, false
	}
	return *s.latest, true
}

// Subscribers returns the number of connected websocket clients.
func (s *Server) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subscribers)
}

// subscribe registers a channel and queues the latest snapshot first.
func (s *Server) subscribe() chan Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, sendBuffer)
	if s.latest != nil {
		ch <- *s.latest
	}
	s.subscribers[ch] = struct{}{}
	return ch
}

func (s *Server) unsubscribe(ch chan Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; ok {
		delete(s.subscribers, ch)
		close(ch)
	}
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	mux.HandleFunc("/ws", s.handleStream)
	return mux
}

// Start listens on addr and serves in the background. It returns the bound
// address, which differs from addr when the port is 0.
func (s *Server) Start(addr string) (string, error) {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()

	if s.server != nil {
		return "", ErrRunning
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", fmt.Errorf("debug server listen: %w", err)
	}

	server := &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	s.server = server
	s.listener = listener

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.WithError(err).Error("debug server stopped")
			s.srvMu.Lock()
			s.server = nil
			s.listener = nil
			s.srvMu.Unlock()
		}
	}()

	bound := listener.Addr().String()
	s.log.WithField("addr", bound).Info("debug server listening")
	return bound, nil
}

// Stop shuts the listener down and disconnects every subscriber.
func (s *Server) Stop(ctx context.Context) error {
	s.srvMu.Lock()
	server := s.server
	s.server = nil
	s.listener = nil
	s.srvMu.Unlock()

	s.mu.Lock()
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]string{"status": "ok"})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	snap, ok := s.Latest()
	if !ok {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, snap)
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	ch := s.subscribe()
	log := s.log.WithField("remote", conn.RemoteAddr().String())
	log.Info("stream client connected")

	go s.writePump(conn, ch, log)
	s.readPump(conn, ch, log)
}

// readPump discards client messages and unsubscribes on close.
func (s *Server) readPump(conn *websocket.Conn, ch chan Snapshot, log logrus.FieldLogger) {
	defer func() {
		s.unsubscribe(ch)
		log.Info("stream client disconnected")
	}()

	conn.SetReadLimit(512)
	if err := conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.WithError(err).Warn("failed to set read deadline")
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Warn("stream read failed")
			}
			return
		}
	}
}

// writePump sends queued snapshots and keeps the connection alive with
// pings. It closes the connection when ch is closed.
func (s *Server) writePump(conn *websocket.Conn, ch chan Snapshot, log logrus.FieldLogger) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := conn.Close(); err != nil {
			log.WithError(err).Debug("close failed")
		}
	}()

	for {
		select {
		case snap, ok := <-ch:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(snap); err != nil {
				log.WithError(err).Debug("write snapshot failed")
				return
			}

		case <-ticker.C:
			if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
