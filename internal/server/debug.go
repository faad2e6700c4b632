// Package server exposes the running simulation to inspection tooling
// over websockets. The simulation itself stays single-threaded: the server
// never touches the engine directly, it streams snapshots the host pushes
// from the tick loop.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/aethersim/aether/internal/core/engine"
	"github.com/aethersim/aether/internal/core/observability/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

const writeTimeout = 5 * time.Second

// DebugServer fans the latest engine snapshot out to every connected
// inspector. Publish is called from the simulation goroutine; everything
// else runs on the server's own goroutines behind the mutex.
type DebugServer struct {
	log  log.Log
	bind string

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	latest  []byte

	httpServer *http.Server
}

func NewDebugServer(logger log.Log, bind string) *DebugServer {
	return &DebugServer{
		log:     logger,
		bind:    bind,
		clients: make(map[*websocket.Conn]bool),
	}
}

// Start begins serving on the configured bind address. The listener runs
// on its own goroutine; Start returns immediately.
func (s *DebugServer) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/snapshot", s.handleSnapshot)
	s.httpServer = &http.Server{Addr: s.bind, Handler: mux}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.log.Error("debug server stopped", log.Error(err))
		}
	}()
	s.log.Info("debug server listening", log.String("bind", s.bind))
}

// Stop closes the listener and every connected client.
func (s *DebugServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	for conn := range s.clients {
		_ = conn.Close()
	}
	s.clients = make(map[*websocket.Conn]bool)
	s.mu.Unlock()
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Publish encodes snap and pushes it to every connected client. Clients
// that cannot keep up are dropped rather than stalling the publisher.
func (s *DebugServer) Publish(snap engine.Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		s.log.Error("encode snapshot", log.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = data
	for conn := range s.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.log.Debug("dropping slow inspector",
				log.String("remote", conn.RemoteAddr().String()), log.Error(err))
			_ = conn.Close()
			delete(s.clients, conn)
		}
	}
}

// ClientCount reports the connected inspector count.
func (s *DebugServer) ClientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *DebugServer) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade failed", log.Error(err))
		return
	}

	s.mu.Lock()
	s.clients[conn] = true
	latest := s.latest
	s.mu.Unlock()
	s.log.Debug("inspector connected", log.String("remote", conn.RemoteAddr().String()))

	// New inspectors get the last published snapshot right away instead of
	// waiting for the next tick.
	if latest != nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		_ = conn.WriteMessage(websocket.TextMessage, latest)
	}

	go s.readLoop(conn)
}

// readLoop discards inbound frames and reaps the connection on close. The
// inspection protocol is one-way.
func (s *DebugServer) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	s.mu.Lock()
	delete(s.clients, conn)
	s.mu.Unlock()
	_ = conn.Close()
}

// handleSnapshot serves the latest snapshot once, for curl-style poking
// without a websocket client.
func (s *DebugServer) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	latest := s.latest
	s.mu.Unlock()
	if latest == nil {
		http.Error(w, "no snapshot published yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(latest)
}
