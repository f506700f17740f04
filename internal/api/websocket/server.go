// Package websocket streams dispatched match records to subscribers.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/luciengaly/football-scraping/internal/match"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Server represents the WebSocket server
type Server struct {
	server *http.Server
	hub    *Hub
	stop   context.CancelFunc
}

// NewServer creates a new WebSocket server and starts its hub
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{hub: NewHub(), stop: cancel}
	go s.hub.Run(ctx)
	return s
}

// Handler returns the websocket routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/matches", s.handleMatches)
	mux.HandleFunc("/ws/health", s.handleHealth)
	return mux
}

// Start starts the WebSocket server
func (s *Server) Start(port int) error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("WebSocket server listening on :%d", port)
	return s.server.ListenAndServe()
}

// handleMatches subscribes a connection to dispatched records
func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	select {
	case s.hub.register <- client:
	case <-s.hub.done:
		conn.Close()
		return
	}

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status": "healthy", "clients": %d}`, s.hub.ClientCount())
}

// ClientCount returns the number of subscribers
func (s *Server) ClientCount() int {
	return s.hub.ClientCount()
}

// Name identifies the server as a sink
func (s *Server) Name() string { return "websocket" }

// Write broadcasts rec as JSON to every subscriber
func (s *Server) Write(ctx context.Context, rec *match.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode match %s: %w", rec.ID, err)
	}
	select {
	case s.hub.broadcast <- data:
		return nil
	case <-s.hub.done:
		return errors.New("websocket hub stopped")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops the hub and gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.stop()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
