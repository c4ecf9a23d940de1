// Package web streams simulation snapshots to browsers over websockets.
package web

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/tomz197/rigid2d/internal/loop"
)

const writeTimeout = 5 * time.Second

// Control messages a browser may send.
var controls = map[string]loop.Command{
	"pause": loop.CommandTogglePause,
	"step":  loop.CommandStep,
	"spawn": loop.CommandSpawn,
}

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Server serves the viewer page, a JSON snapshot endpoint and a websocket feed.
type Server struct {
	world  loop.World
	page   []byte
	logger *zap.Logger
	hub    *hub
}

// NewServer creates a server for world. page is served at "/".
func NewServer(world loop.World, page []byte, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		world:  world,
		page:   page,
		logger: logger,
		hub:    newHub(),
	}
}

// Handler returns the HTTP routes of the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.servePage)
	mux.HandleFunc("GET /snapshot", s.serveSnapshot)
	mux.HandleFunc("GET /ws", s.serveWS)
	mux.HandleFunc("POST /control/{cmd}", s.serveControl)
	return mux
}

func (s *Server) servePage(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(s.page)
}

func (s *Server) serveSnapshot(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.world.Snapshot()); err != nil {
		s.logger.Warn("encode snapshot", zap.Error(err))
	}
}

func (s *Server) serveControl(w http.ResponseWriter, r *http.Request) {
	cmd, ok := controls[r.PathValue("cmd")]
	if !ok {
		http.Error(w, "unknown command", http.StatusNotFound)
		return
	}
	if !s.world.Submit(cmd) {
		http.Error(w, "busy", http.StatusServiceUnavailable)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	s.hub.add(c)
	defer s.hub.remove(c)
	s.logger.Info("viewer connected", zap.String("remote", r.RemoteAddr))

	// Reader: control messages. A read error ends the session.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if cmd, ok := controls[string(msg)]; ok {
				s.world.Submit(cmd)
			}
		}
	}()

	for {
		select {
		case <-done:
			s.logger.Info("viewer disconnected", zap.String("remote", r.RemoteAddr))
			return
		case b, ok := <-c.send:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		}
	}
}

// Broadcast pushes every new snapshot to connected clients once per frame
// until ctx is cancelled.
func (s *Server) Broadcast(ctx context.Context) error {
	ticker := time.NewTicker(loop.FrameTime)
	defer ticker.Stop()
	defer s.hub.closeAll()

	var last *loop.Snapshot
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		snap := s.world.Snapshot()
		if snap == last || s.hub.len() == 0 {
			continue
		}
		b, err := json.Marshal(snap)
		if err != nil {
			return err
		}
		s.hub.broadcast(b)
		last = snap
	}
}
