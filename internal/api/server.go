// Package api provides a local HTTP status API and a WebSocket event stream.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"

	"headmouse/internal/bridge"
	"headmouse/internal/config"
	"headmouse/internal/input"
	"headmouse/internal/protocol"
)

// StatusProvider reports the bridge's counters.
type StatusProvider interface {
	Status() bridge.Status
}

// Server serves status and settings and streams injected batches.
type Server struct {
	configMgr *config.Manager
	status    StatusProvider
	token     string
	wsMgr     *WSManager
	http      *http.Server
}

// NewServer creates a new API server
func NewServer(configMgr *config.Manager, status StatusProvider) *Server {
	s := &Server{
		configMgr: configMgr,
		status:    status,
		token:     configMgr.Get().API.Token,
	}
	s.wsMgr = newWSManager(s)
	s.http = &http.Server{Handler: s.Handler()}
	return s
}

// Handler returns the routed handler with auth and panic recovery.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/settings", s.handleSettings)
	mux.HandleFunc("/ws", s.wsMgr.handleWebSocket)
	return s.authMiddleware(s.recoverMiddleware(mux))
}

// Start listens on localhost at port and serves until Shutdown. It blocks.
func (s *Server) Start(port int) error {
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Printf("API: Failed to listen on %s: %v", addr, err)
		return err
	}
	return s.Serve(ln)
}

// Serve runs the server on ln. It blocks.
func (s *Server) Serve(ln net.Listener) error {
	go s.wsMgr.start()

	log.Printf("API: Listening on http://%s", ln.Addr())

	if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
		log.Printf("API: Server stopped: %v", err)
		return err
	}
	return nil
}

// Shutdown stops the HTTP server and disconnects stream clients.
func (s *Server) Shutdown(ctx context.Context) error {
	s.wsMgr.stop()
	return s.http.Shutdown(ctx)
}

// recoverMiddleware prevents panics from crashing the whole server
func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				log.Printf("API: Recovered from panic: %v", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// authMiddleware checks the bearer token if one is configured
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" || s.token == "" {
			next.ServeHTTP(w, r)
			return
		}

		// Browsers cannot set headers on a WebSocket handshake.
		if r.Header.Get("Authorization") != "Bearer "+s.token && r.URL.Query().Get("token") != s.token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

// handleHealth handles GET /health (for monitoring)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleStatus handles GET /api/status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, s.status.Status().Payload())
}

// handleSettings handles GET (read) and POST (replace and save) of the settings
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, s.configMgr.Get())

	case http.MethodPost:
		next := config.DefaultSettings()
		if err := json.NewDecoder(r.Body).Decode(next); err != nil {
			http.Error(w, "Invalid settings", http.StatusBadRequest)
			return
		}

		log.Printf("API: Settings update from %s", r.RemoteAddr)
		s.configMgr.Set(next)
		if err := s.configMgr.Save(); err != nil {
			log.Printf("API: Failed to save settings: %v", err)
			http.Error(w, "Failed to save settings", http.StatusInternalServerError)
			return
		}
		writeJSON(w, s.configMgr.Get())

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// OnBatch streams an injected batch to connected clients.
func (s *Server) OnBatch(tick uint64, events []input.Event) {
	batch := make([]input.Event, len(events))
	copy(batch, events)
	s.wsMgr.Broadcast(protocol.Message{
		Type:    protocol.TypeBatch,
		Payload: protocol.BatchPayload{Tick: tick, Events: batch},
	})
}

// OnStatus streams a status change to connected clients.
func (s *Server) OnStatus(st bridge.Status) {
	s.wsMgr.Broadcast(protocol.Message{Type: protocol.TypeStatus, Payload: st.Payload()})
}
