package web

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Server is the web server for Docent.
type Server struct {
	ports *Ports
	mux   *http.ServeMux

	// lastReindexErr holds the error of the last background rebuild
	// started from the UI, surfaced through /api/status.
	mu             sync.Mutex
	lastReindexErr string
}

// NewServer creates a new web server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		mux:   http.NewServeMux(),
	}

	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/", s.handleIndex)
	s.mux.HandleFunc("/api/ask", s.handleAsk)
	s.mux.HandleFunc("/api/reindex", s.handleReindex)
	s.mux.HandleFunc("/api/status", s.handleStatus)
	s.mux.HandleFunc("/api/categories", s.handleCategories)
	s.mux.HandleFunc("/api/documents", s.handleDocuments)
}

// Run starts the web server on the specified address.
// It blocks until the context is cancelled or an error occurs.
// Write timeouts are left unset: answer generation holds the
// connection for as long as the LLM takes.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
