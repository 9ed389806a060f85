package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/emellop-senai/arena-senai-forca/internal/domain"
	"github.com/emellop-senai/arena-senai-forca/internal/websocket"
)

// Service is the business surface the HTTP layer exposes
type Service interface {
	Login(ctx context.Context, req domain.LoginRequest) (*domain.User, error)
	RandomWord(ctx context.Context) (*domain.Word, error)
	RecordMatch(ctx context.Context, m domain.MatchSubmission) (*domain.User, error)
	Ranking(ctx context.Context) ([]domain.RankingEntry, error)
}

// Handler provides HTTP handlers for the game API
type Handler struct {
	service Service
	hub     *websocket.Hub
	logger  *slog.Logger
}

// NewHandler creates a new HTTP handler
func NewHandler(service Service, hub *websocket.Hub, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		hub:     hub,
		logger:  logger,
	}
}

// errorResponse is the body of every non-2xx response
type errorResponse struct {
	Error string `json:"error"`
}

// Router creates and configures the HTTP router
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(corsMiddleware)

	// Health check
	r.Get("/health", h.HealthCheck)
	r.Get("/ready", h.ReadyCheck)

	// WebSocket endpoint
	r.Get("/ws", h.HandleWebSocket)

	// Game API
	r.Route("/api", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Get("/palavras/aleatoria", h.RandomWord)
		r.Post("/partidas", h.RecordMatch)
		r.Get("/ranking", h.Ranking)
	})

	return r
}

// corsMiddleware adds CORS headers
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Accept, Authorization, Content-Type, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError maps a domain error onto its status code and the
// {error: string} body
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidationError(err):
		h.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case domain.IsNotFoundError(err):
		h.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrUsernameTaken):
		h.writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		h.logger.Error("request failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: domain.ErrInternalError.Error()})
	}
}

// HandleWebSocket handles WebSocket upgrade requests
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.ServeWs(h.hub, h.logger, w, r)
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// ReadyCheck returns service readiness status
func (h *Handler) ReadyCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// Login finds or creates the user and returns it with its cumulative score
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, domain.ErrValidation)
		return
	}

	user, err := h.service.Login(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, user)
}

// RandomWord returns one random puzzle
func (h *Handler) RandomWord(w http.ResponseWriter, r *http.Request) {
	word, err := h.service.RandomWord(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, word)
}

// RecordMatch appends a finished match and credits the points
func (h *Handler) RecordMatch(w http.ResponseWriter, r *http.Request) {
	var m domain.MatchSubmission
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		h.writeError(w, domain.ErrValidation)
		return
	}

	if _, err := h.service.RecordMatch(r.Context(), m); err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]string{"message": "partida registrada"})
}

// Ranking returns the top users, best first. An empty board is an empty
// array, not an error.
func (h *Handler) Ranking(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.Ranking(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	if entries == nil {
		entries = []domain.RankingEntry{}
	}
	h.writeJSON(w, http.StatusOK, entries)
}
