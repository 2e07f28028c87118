// Package health serves the uptime endpoints hosting platforms poll to keep
// the bot alive.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
)

// RootMessage is the plain-text body of GET /
const RootMessage = "Discord bot is running!"

// Response is the JSON body of GET /health
type Response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Handler serves the uptime endpoints
type Handler struct{}

// NewHandler creates a Handler
func NewHandler() *Handler {
	return &Handler{}
}

// Routes returns a mux with both endpoints
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.Root)
	mux.HandleFunc("GET /health", h.Health)
	return mux
}

// Root reports that the process is up
func (h *Handler) Root(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(RootMessage))
}

// Health always reports online; it does not probe the gateway connection
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, Response{
		Status:  "online",
		Message: "Bot is healthy",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

// Server runs the uptime endpoints until its context is cancelled
type Server struct {
	srv *http.Server
}

// NewServer creates a server listening on addr
func NewServer(addr string, handler *Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           handler.Routes(),
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[Health] Listening on %s", s.srv.Addr)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Println("[Health] Server stopped")
	return nil
}
