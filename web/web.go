// Package web provides the HTTP API for the apops service.
//
// Every data route is scoped to a workspace: /api/v1/workspaces/{ws}/...
// The workspace id must be one of the ids listed in the configuration;
// anything else is a 404 before the service layer is ever touched.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/apops/apops/adapters/auth"
	"github.com/apops/apops/adapters/metrics"
	"github.com/apops/apops/app"
	"github.com/apops/apops/config"
	"github.com/apops/apops/ports"
)

type ctxKey string

const ctxWorkspaceKey ctxKey = "workspace"

// Handler serves the JSON API.
type Handler struct {
	svc         *app.Service
	tokens      *auth.TokenService
	hasher      ports.Hasher
	metrics     *metrics.Collector
	logger      zerolog.Logger
	username    string
	password    string // bcrypt hash
	metricsPath string
	workspaces  map[string]bool
}

// Deps contains dependencies for the API handler.
type Deps struct {
	Service *app.Service
	Tokens  *auth.TokenService
	Hasher  ports.Hasher
	Metrics *metrics.Collector
	Config  *config.Config
	Logger  zerolog.Logger
}

// NewHandler creates the API handler.
func NewHandler(deps Deps) *Handler {
	h := &Handler{
		svc:         deps.Service,
		tokens:      deps.Tokens,
		hasher:      deps.Hasher,
		metrics:     deps.Metrics,
		logger:      deps.Logger.With().Str("component", "web").Logger(),
		metricsPath: "/metrics",
		workspaces:  make(map[string]bool),
	}
	if deps.Config != nil {
		h.username = deps.Config.Auth.Username
		h.password = deps.Config.Auth.PasswordHash
		if deps.Config.Metrics.Path != "" {
			h.metricsPath = deps.Config.Metrics.Path
		}
		for _, id := range deps.Config.Workspaces {
			h.workspaces[id] = true
		}
	}
	return h
}

// Router returns the HTTP router.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.loggingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	if h.metrics != nil {
		r.Use(h.metricsMiddleware)
	}

	r.Get("/healthz", h.Healthz)
	if h.metrics != nil {
		r.Handle(h.metricsPath, promhttp.Handler())
	}

	r.Post("/api/v1/login", h.Login)

	r.Group(func(r chi.Router) {
		r.Use(h.AuthMiddleware)

		r.Get("/api/v1/workspaces", h.ListWorkspaces)

		r.Route("/api/v1/workspaces/{ws}", func(r chi.Router) {
			r.Use(h.workspaceCtx)

			r.Get("/summary", h.GetSummary)

			r.Get("/units", h.ListUnits)
			r.Post("/units", h.CreateUnit)
			r.Put("/units/{id}", h.UpdateUnit)
			r.Delete("/units/{id}", h.DeleteUnit)

			r.Get("/tenants", h.ListTenants)
			r.Post("/tenants", h.CreateTenant)
			r.Put("/tenants/{id}", h.UpdateTenant)
			r.Delete("/tenants/{id}", h.DeleteTenant)

			r.Get("/leases", h.ListLeases)
			r.Post("/leases", h.SignLease)
			r.Put("/leases/{id}", h.UpdateLease)
			r.Post("/leases/{id}/end", h.EndLease)
			r.Delete("/leases/{id}", h.DeleteLease)

			r.Get("/readings", h.ListReadings)
			r.Post("/readings", h.CreateReading)
			r.Put("/readings/{id}", h.UpdateReading)
			r.Delete("/readings/{id}", h.DeleteReading)

			r.Get("/invoices", h.ListInvoices)
			r.Post("/invoices/generate", h.GenerateInvoices)
			r.Get("/invoices/{id}", h.GetInvoice)
			r.Delete("/invoices/{id}", h.DeleteInvoice)
			r.Get("/invoices/{id}/reminder", h.GetReminder)
			r.Post("/invoices/{id}/apply-credit", h.ApplyCredit)

			r.Get("/payments", h.ListPayments)
			r.Post("/payments", h.RecordPayment)
			r.Delete("/payments/{id}", h.DeletePayment)
			r.Post("/tenants/{id}/credit", h.TopUpCredit)

			r.Get("/maintenance", h.ListTickets)
			r.Post("/maintenance", h.CreateTicket)
			r.Put("/maintenance/{id}", h.UpdateTicket)
			r.Delete("/maintenance/{id}", h.DeleteTicket)

			r.Get("/settings", h.GetSettings)
			r.Put("/settings", h.UpdateSettings)

			r.Get("/backup", h.ExportBackup)
			r.Post("/backup", h.ImportBackup)
		})
	})

	return r
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents a login response.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

// Login authenticates the operator and issues a JWT.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	if req.Username != h.username || !h.hasher.Compare([]byte(h.password), req.Password) {
		h.logger.Warn().Str("username", req.Username).Msg("failed login attempt")
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "Invalid username or password")
		return
	}

	token, expiresAt, err := h.tokens.GenerateToken(req.Username)
	if err != nil {
		h.logger.Error().Err(err).Msg("token generation failed")
		writeError(w, http.StatusInternalServerError, "internal_error", "Could not issue token")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Format(time.RFC3339),
	})
}

// Healthz returns a simple liveness check.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListWorkspaces returns the configured workspace ids.
func (h *Handler) ListWorkspaces(w http.ResponseWriter, r *http.Request) {
	ids, err := h.svc.Workspaces(r.Context())
	if err != nil {
		h.writeAppError(w, r, err)
		return
	}
	// Stores only list workspaces that have been saved at least once,
	// so merge in the configured set.
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		seen[id] = true
	}
	for id := range h.workspaces {
		if !seen[id] {
			ids = append(ids, id)
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"workspaces": ids})
}

// AuthMiddleware validates the operator JWT from the Authorization
// header or the "token" cookie.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Authentication required")
			return
		}
		if _, err := h.tokens.ValidateToken(token); err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// workspaceCtx resolves and validates the {ws} URL parameter.
func (h *Handler) workspaceCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws := chi.URLParam(r, "ws")
		if !h.workspaces[ws] {
			writeError(w, http.StatusNotFound, "unknown_workspace", "Workspace not found: "+ws)
			return
		}
		ctx := context.WithValue(r.Context(), ctxWorkspaceKey, ws)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func workspaceID(r *http.Request) string {
	ws, _ := r.Context().Value(ctxWorkspaceKey).(string)
	return ws
}

func extractToken(r *http.Request) string {
	if auth := r.Header.Get("Authorization"); auth != "" {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	if cookie, err := r.Cookie("token"); err == nil {
		return cookie.Value
	}
	return ""
}

func (h *Handler) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		if r.URL.Path == "/healthz" || r.URL.Path == h.metricsPath {
			return
		}

		h.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

func (h *Handler) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/healthz" || r.URL.Path == h.metricsPath {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// The route pattern keeps label cardinality bounded; raw paths
		// would mint a series per workspace and id.
		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = "unmatched"
		}
		status := statusLabel(ww.Status())
		h.metrics.RequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		h.metrics.RequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "other"
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

// writeAppError maps service-layer errors onto HTTP statuses.
func (h *Handler) writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	var verr app.ValidationError
	if errors.As(err, &verr) {
		writeError(w, http.StatusBadRequest, "validation_failed", verr.Error())
		return
	}
	var nerr app.NotFoundError
	if errors.As(err, &nerr) {
		writeError(w, http.StatusNotFound, "not_found", nerr.Error())
		return
	}
	h.logger.Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return false
	}
	return true
}
