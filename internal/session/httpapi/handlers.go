package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/talgya/worldcore/internal/session"
)

func contextWithPlayerID(r *http.Request, playerID string) context.Context {
	return context.WithValue(r.Context(), playerIDKey, playerID)
}

func playerIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(playerIDKey).(string)
	return v, ok
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	playerID, err := s.Sessions.Register(req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"player_id": playerID})
}

type authenticateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authenticateResponse struct {
	Token     string    `json:"token"`
	PlayerID  string    `json:"player_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Server) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	var req authenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	sess, err := s.Sessions.Authenticate(req.Username, req.Password, time.Now())
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, authenticateResponse{
		Token: sess.Token, PlayerID: sess.PlayerID, ExpiresAt: sess.ExpiresAt,
	})
}

type submitActionRequest struct {
	ActionID   string         `json:"action_id"`
	Kind       session.Kind   `json:"kind"`
	Parameters map[string]any `json:"parameters"`
}

// handleSubmitAction builds the action envelope (spec.md section 6) from
// the request and the token-bound player id, then hands it to the
// Dispatcher. The dispatcher owns validation and conflict resolution
// (spec.md section 4.9); this handler only constructs the envelope and
// reports acceptance.
func (s *Server) handleSubmitAction(w http.ResponseWriter, r *http.Request) {
	playerID, ok := playerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing authenticated player")
		return
	}

	var req submitActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	if req.ActionID == "" {
		req.ActionID = session.NewActionID()
	}

	action := session.Action{
		ActionID:   req.ActionID,
		PlayerID:   playerID,
		Kind:       req.Kind,
		Parameters: req.Parameters,
		Timestamp:  time.Now(),
		Status:     session.Pending,
	}

	if err := s.Dispatch.Submit(action); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]string{"action_id": action.ActionID})
}

func (s *Server) handleSessionInfo(w http.ResponseWriter, r *http.Request) {
	playerID, _ := playerIDFromContext(r.Context())
	info := map[string]any{"player_id": playerID}
	if s.Latency != nil {
		info["latency_avg_ms"] = s.Latency.Average().Milliseconds()
		info["latency_p95_ms"] = s.Latency.P95().Milliseconds()
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	s.Sessions.Invalidate(token)
	w.WriteHeader(http.StatusNoContent)
}
