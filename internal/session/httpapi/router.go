// Package httpapi exposes the session/action pipeline (spec.md section 4.9,
// C9) as the action-envelope HTTP surface spec.md section 6 names: auth,
// action submission, and session introspection routes. The network
// transport layer below the session abstraction is explicitly out of
// scope (spec.md section 1); this package is the boundary, not the
// transport itself — it does no TLS/listener setup of its own, just route
// wiring the caller mounts on an *http.Server. Grounded on the chi route-
// group-plus-middleware-chain idiom in Sergey-Bar-Alfred's gateway router
// (services/gateway/router/router.go), the pack's only example that
// exercises go-chi/chi/v5 — the teacher itself routes with a plain
// net/http.ServeMux (internal/api/server.go), but chi's route groups let the
// bearer-token middleware apply to the authenticated routes only. The
// routes are fixed paths; none takes a path parameter.
package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/talgya/worldcore/internal/session"
)

// Dispatcher is the minimal surface the HTTP layer needs from the rest of
// the action pipeline: validating and queueing an already-authenticated
// action. session.Pipeline is the concrete implementation (conflict
// resolution via session.LockManager, latency tracking via
// session.LatencyTracker); httpapi depends only on this interface so it
// never reaches past the session package boundary.
type Dispatcher interface {
	Submit(a session.Action) error
}

// Server wires the session.Manager and a Dispatcher onto a chi router.
type Server struct {
	Sessions *session.Manager
	Dispatch Dispatcher
	Latency  *session.LatencyTracker
}

// NewRouter builds the chi.Router for the action envelope HTTP surface
// (spec.md section 6): registration and authentication (issuing a bearer
// token), action submission under that token, and session introspection.
func (s *Server) NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(requestLogger)

	r.Route("/v1", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/authenticate", s.handleAuthenticate)

		r.Group(func(r chi.Router) {
			r.Use(s.requireToken)
			r.Post("/actions", s.handleSubmitAction)
			r.Get("/session", s.handleSessionInfo)
			r.Post("/logout", s.handleLogout)
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Info("httpapi request",
			"method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}

type contextKey int

const playerIDKey contextKey = iota

// requireToken validates the bearer token on every route in its group and
// binds the resolved player id into the request context (spec.md section
// 4.9's "verifies signature and returns the bound player id or fails").
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		playerID, err := s.Sessions.ValidateToken(token, time.Now())
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		ctx := contextWithPlayerID(r, playerID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(h) > len(prefix) && h[:len(prefix)] == prefix {
		return h[len(prefix):]
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
