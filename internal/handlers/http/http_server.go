package http

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"uniLeaderboard/internal/app/dto"
	"uniLeaderboard/internal/domain/repository"
	"uniLeaderboard/internal/domain/service"
	"uniLeaderboard/internal/domain/useCases"
)

// Server represents an HTTP server with all routes configured
type Server struct {
	leaderboards useCases.LeaderboardService
	broadcaster  useCases.Broadcaster
	archive      repository.SwapArchive
	mux          *http.ServeMux
	server       *http.Server
}

// NewServer creates a new HTTP server with configured routes. The broadcaster
// and archive may be nil, in which case the websocket and swap history routes
// are not registered.
func NewServer(addr string, leaderboards useCases.LeaderboardService, broadcaster useCases.Broadcaster, archive repository.SwapArchive) *Server {
	mux := http.NewServeMux()

	server := &Server{
		leaderboards: leaderboards,
		broadcaster:  broadcaster,
		archive:      archive,
		mux:          mux,
		server: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 90 * time.Second, // live runs may take close to a minute
			IdleTimeout:  60 * time.Second,
		},
	}

	server.registerRoutes()

	return server
}

// registerRoutes configures all HTTP routes
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("/api/leaderboard", s.handleLeaderboard)
	s.mux.HandleFunc("/health", s.handleHealth)
	if s.archive != nil {
		s.mux.HandleFunc("/api/swaps", s.handleSwapHistory)
	}
	if s.broadcaster != nil {
		s.mux.HandleFunc("/ws", s.broadcaster.Handler())
	}
}

// handleLeaderboard runs the aggregation pipeline for a posted query.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.LeaderboardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	lb, err := s.leaderboards.BuildLeaderboard(r.Context(), req.ToQuery())
	if err != nil {
		if service.IsInvalidInput(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("leaderboard request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to build leaderboard")
		return
	}

	writeJSON(w, http.StatusOK, lb)
}

// handleSwapHistory serves archived swap records for a token, from an
// optional since_block onward.
func (s *Server) handleSwapHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	token := strings.ToLower(r.URL.Query().Get("token"))
	if !service.ValidTokenAddress(token) {
		writeError(w, http.StatusBadRequest, "invalid token address format, expected 0x-prefixed 40-char hex string")
		return
	}

	var sinceBlock uint64
	if v := r.URL.Query().Get("since_block"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "since_block must be a block number")
			return
		}
		sinceBlock = parsed
	}

	swaps, err := s.archive.GetSwapsSince(r.Context(), token, sinceBlock)
	if err != nil {
		log.Printf("swap history request failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load swap history")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"count": len(swaps),
		"swaps": swaps,
	})
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
