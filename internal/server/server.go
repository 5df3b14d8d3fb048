// Package server provides HTTP server initialization and lifecycle
// management for the Glossa analysis API.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/glossahq/glossa/internal/config"
	"github.com/glossahq/glossa/internal/loader"
	"github.com/glossahq/glossa/internal/storage"
	"github.com/glossahq/glossa/web/handlers"
)

// securityHeadersMiddleware adds security headers to all HTTP responses.
func securityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// Start initializes and starts the HTTP server.
// Returns the actual address being listened on (useful for testing with
// port 0) and the WebSocketHub so callers can broadcast events or stop
// the feed. The server shuts down when ctx is cancelled.
func Start(ctx context.Context, cfg *config.Config, store storage.ReportStore) (string, *handlers.WebSocketHub) {
	mux := http.NewServeMux()

	// WebSocket hub for the analysis activity feed
	wsHub := handlers.NewWebSocketHub()
	go wsHub.Run()

	// Rate limiter (10 req/sec, burst of 20)
	rateLimiter := handlers.NewRateLimiter(10.0, 20)

	docLoader := loader.New()
	analysisHandler := handlers.NewAnalysisHandler(docLoader, store, wsHub, cfg)
	reportsHandler := handlers.NewReportsHandler(store)
	statsHandler := handlers.NewStatsHandler(store)

	// API routes, wrapped with auth below
	apiMux := http.NewServeMux()
	apiMux.HandleFunc("/api/analyze/triples", analysisHandler.AnalyzeTriples)
	apiMux.HandleFunc("/api/analyze/ontology", analysisHandler.AnalyzeOntology)
	apiMux.HandleFunc("/api/load/raw", analysisHandler.LoadRaw)
	apiMux.HandleFunc("/api/reports", reportsHandler.ListReports)
	apiMux.HandleFunc("/api/reports/{id}", reportsHandler.HandleReport)
	apiMux.HandleFunc("/api/stats", statsHandler.GetStats)

	// Health endpoint — no auth required, used by monitoring
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy","version":"1.0.0"}`))
	})

	// Wrap API routes with auth middleware
	mux.Handle("/api/", handlers.RequireAuth(apiMux, cfg))

	// WebSocket endpoint (no auth required - origin validation handles security)
	mux.Handle("/ws", wsHub)

	// Wrap entire server with rate limiting, then security headers
	handler := handlers.RateLimitMiddleware(mux, rateLimiter)
	handler = securityHeadersMiddleware(handler)

	// Create server with security timeouts
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatalf("Failed to listen on %s: %v", addr, err)
	}

	actualAddr := listener.Addr().String()

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
		}
	}()

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
		wsHub.Stop()
	}()

	return actualAddr, wsHub
}
