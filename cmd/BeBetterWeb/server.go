package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/apex/log"

	"github.com/sebuszqo/BeBetterWeb/internal/auth"
	"github.com/sebuszqo/BeBetterWeb/internal/reference/interfaces"
)

type Response struct {
	Message string `json:"message"`
}

type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start).String(),
		}).Info("Completed request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Error encoding response")
	}
}

func respondError(w http.ResponseWriter, status int, message string, errors ...[]string) {
	payload := map[string]interface{}{
		"status":  "error",
		"message": message,
		"code":    status,
	}
	if len(errors) > 0 && len(errors[0]) > 0 {
		payload["errors"] = errors[0]
	}
	respondJSON(w, status, payload)
}

type Server struct {
	router          *http.ServeMux
	categoryHandler *interfaces.CategoryHandler
	tagHandler      *interfaces.TagHandler
	statusHandler   *interfaces.StatusHandler
	jwtManager      auth.JWTManagerInterface
	refreshRoles    []string
	health          HealthChecker
}

func NewServer(
	categoryHandler *interfaces.CategoryHandler,
	tagHandler *interfaces.TagHandler,
	statusHandler *interfaces.StatusHandler,
	jwtManager auth.JWTManagerInterface,
	refreshRoles []string,
	health HealthChecker,
) *Server {
	return &Server{
		categoryHandler: categoryHandler,
		tagHandler:      tagHandler,
		statusHandler:   statusHandler,
		jwtManager:      jwtManager,
		refreshRoles:    refreshRoles,
		health:          health,
		router:          http.NewServeMux(),
	}
}

func notFoundHandler(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusNotFound, Response{Message: "Path not found"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	stats := s.health.Health(r.Context())
	if stats["status"] != "up" {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "not ready",
			"error":  stats["error"],
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
	})
}

func (s *Server) RegisterRoutes() {
	// Public routes, served from the reference cache
	publicRoutes := http.NewServeMux()
	publicRoutes.Handle("GET /api/categories", http.HandlerFunc(s.categoryHandler.GetCategories))
	publicRoutes.Handle("GET /api/categories/lookup", http.HandlerFunc(s.categoryHandler.LookupCategories))
	publicRoutes.Handle("GET /api/categories/{id}", http.HandlerFunc(s.categoryHandler.GetCategory))
	publicRoutes.Handle("GET /api/tags", http.HandlerFunc(s.tagHandler.GetTags))
	publicRoutes.Handle("GET /api/tags/lookup", http.HandlerFunc(s.tagHandler.LookupTags))
	publicRoutes.Handle("GET /api/tags/{id}", http.HandlerFunc(s.tagHandler.GetTag))
	publicRoutes.Handle("GET /api/reference/status", http.HandlerFunc(s.statusHandler.GetStatus))
	publicRoutes.Handle("GET /api/ready", http.HandlerFunc(s.handleReady))

	// Protected routes (provider-issued access token with an allowed role)
	protectedRoutes := http.NewServeMux()
	protectedRoutes.Handle("POST /api/protected/reference/refresh",
		auth.JWTAccessTokenMiddleware(s.jwtManager, s.refreshRoles...)(http.HandlerFunc(s.statusHandler.ForceRefresh)))

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/api/", publicRoutes)
	mainRouter.Handle("/api/protected/", protectedRoutes)
	mainRouter.Handle("/", http.HandlerFunc(notFoundHandler))

	s.router = mainRouter
}

func (s *Server) Handler() http.Handler {
	return loggingMiddleware(s.router)
}
