package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"

	"github.com/guangfu250923/relief-backend/repository"
	"github.com/guangfu250923/relief-backend/validation"
)

// WebServer handles HTTP requests
type WebServer struct {
	httpAddr   string
	server     *http.Server
	logger     *slog.Logger
	startTime  time.Time
	repository *repository.Repository
}

// NewWebServer creates a new web server with all routes registered
func NewWebServer(httpPort string, logger *slog.Logger, repo *repository.Repository) *WebServer {
	ws := &WebServer{
		httpAddr:   ":" + httpPort,
		logger:     logger,
		startTime:  time.Now(),
		repository: repo,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", ws.handleHealth)

	// Supplies
	mux.HandleFunc("GET /supplies", ws.handleListSupplies)
	mux.HandleFunc("POST /supplies", ws.handleCreateSupply)
	mux.HandleFunc("GET /supplies/{id}", ws.handleGetSupply)
	mux.HandleFunc("PATCH /supplies/{id}", ws.handlePatchSupply)
	mux.HandleFunc("POST /supplies/{id}/distributions", ws.handleDistributeSupply)

	// Supply items
	mux.HandleFunc("GET /supply_items", ws.handleListSupplyItems)
	mux.HandleFunc("POST /supply_items", ws.handleCreateSupplyItem)
	mux.HandleFunc("GET /supply_items/{id}", ws.handleGetSupplyItem)
	mux.HandleFunc("PATCH /supply_items/{id}", ws.handlePatchSupplyItem)

	// Human resources
	mux.HandleFunc("GET /human_resources", ws.handleListHumanResources)
	mux.HandleFunc("POST /human_resources", ws.handleCreateHumanResource)
	mux.HandleFunc("GET /human_resources/{id}", ws.handleGetHumanResource)
	mux.HandleFunc("PATCH /human_resources/{id}", ws.handlePatchHumanResource)

	// Shelters
	mux.HandleFunc("GET /shelters", ws.handleListShelters)
	mux.HandleFunc("POST /shelters", ws.handleCreateShelter)
	mux.HandleFunc("GET /shelters/{id}", ws.handleGetShelter)
	mux.HandleFunc("PATCH /shelters/{id}", ws.handlePatchShelter)

	// The API is consumed directly by browser frontends on other origins.
	handler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(mux)

	ws.server = &http.Server{
		Addr:    ws.httpAddr,
		Handler: handler,
	}
	return ws
}

// Handler exposes the configured HTTP handler, mainly for tests.
func (ws *WebServer) Handler() http.Handler {
	return ws.server.Handler
}

// Start starts the web server
func (ws *WebServer) Start() {
	ws.logger.Info("Starting web server", "addr", ws.httpAddr)
	go func() {
		if err := ws.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			ws.logger.Error("web server error", "err", err)
		}
	}()
}

// Shutdown gracefully shuts down the web server
func (ws *WebServer) Shutdown(ctx context.Context) error {
	ws.logger.Info("Shutting down web server")
	return ws.server.Shutdown(ctx)
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"uptime": time.Since(ws.startTime).String(),
	})
}

// collection is the paginated list envelope shared by all list endpoints.
type collection struct {
	Member     any   `json:"member"`
	TotalItems int64 `json:"totalItems"`
	Limit      int   `json:"limit"`
	Offset     int   `json:"offset"`
}

// parsePagination reads limit/offset query parameters, clamping limit to
// [1, maxLimit].
func parsePagination(r *http.Request, defaultLimit, maxLimit int) (limit, offset int) {
	limit = defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 1 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			slog.Error("Failed to encode response", "err", err)
		}
	}
}

// errorResponse is the JSON shape of every error reply.
type errorResponse struct {
	Error  string                  `json:"error"`
	Detail string                  `json:"detail,omitempty"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

// JSONError sends a JSON formatted error response with the given status code and message
func JSONError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, errorResponse{Error: message})
}

// writeRepoError maps a repository error onto the HTTP surface. PIN
// mismatches, quantity conflicts and batch-composition failures surface as
// 400; only single-resource lookups get 404.
func (ws *WebServer) writeRepoError(w http.ResponseWriter, repoErr *repository.RepositoryError) {
	switch repoErr.Code {
	case repository.ErrCodeValidation:
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  repoErr.Message,
			Detail: repoErr.Detail,
			Fields: repoErr.Fields,
		})
	case repository.ErrCodeUnauthorized:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: repoErr.Message})
	case repository.ErrCodeNotFound:
		writeJSON(w, http.StatusNotFound, errorResponse{Error: repoErr.Message, Detail: repoErr.Detail})
	case repository.ErrCodeConflict:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: repoErr.Message, Detail: repoErr.Detail})
	default:
		ws.logger.Error("repository error", "code", repoErr.Code, "message", repoErr.Message, "detail", repoErr.Detail)
		JSONError(w, "Internal server error", http.StatusInternalServerError)
	}
}
