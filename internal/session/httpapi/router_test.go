package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/talgya/worldcore/internal/session"
	"github.com/talgya/worldcore/internal/session/httpapi"
)

type fakeDispatcher struct {
	submitted []session.Action
}

func (f *fakeDispatcher) Submit(a session.Action) error {
	f.submitted = append(f.submitted, a)
	return nil
}

func newTestServer() (*httpapi.Server, *fakeDispatcher) {
	mgr := session.NewManager([]byte("test-secret"))
	dispatch := &fakeDispatcher{}
	return &httpapi.Server{Sessions: mgr, Dispatch: dispatch, Latency: session.NewLatencyTracker(100)}, dispatch
}

func TestRegisterAuthenticateSubmitAction(t *testing.T) {
	srv, dispatch := newTestServer()
	router := srv.NewRouter()
	ts := httptest.NewServer(router)
	defer ts.Close()

	registerBody, _ := json.Marshal(map[string]string{"username": "alice", "password": "hunter22"})
	resp, err := http.Post(ts.URL+"/v1/register", "application/json", bytes.NewReader(registerBody))
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	authBody, _ := json.Marshal(map[string]string{"username": "alice", "password": "hunter22"})
	resp, err = http.Post(ts.URL+"/v1/authenticate", "application/json", bytes.NewReader(authBody))
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	var authResp struct {
		Token    string `json:"token"`
		PlayerID string `json:"player_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("decode auth response: %v", err)
	}
	resp.Body.Close()
	if authResp.Token == "" {
		t.Fatalf("expected a non-empty token")
	}

	actionBody, _ := json.Marshal(map[string]any{
		"kind":       int(session.Chat),
		"parameters": map[string]any{"message": "hello world"},
	})
	req, _ := http.NewRequest(http.MethodPost, ts.URL+"/v1/actions", bytes.NewReader(actionBody))
	req.Header.Set("Authorization", "Bearer "+authResp.Token)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("submit action: %v", err)
	}
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("submit action: expected 202, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	if len(dispatch.submitted) != 1 {
		t.Fatalf("expected exactly one submitted action, got %d", len(dispatch.submitted))
	}
	if dispatch.submitted[0].PlayerID != authResp.PlayerID {
		t.Fatalf("action's player id %q does not match the authenticated player %q",
			dispatch.submitted[0].PlayerID, authResp.PlayerID)
	}
}

func TestSubmitActionRejectsMissingToken(t *testing.T) {
	srv, _ := newTestServer()
	router := srv.NewRouter()
	ts := httptest.NewServer(router)
	defer ts.Close()

	actionBody, _ := json.Marshal(map[string]any{"kind": int(session.Chat)})
	resp, err := http.Post(ts.URL+"/v1/actions", "application/json", bytes.NewReader(actionBody))
	if err != nil {
		t.Fatalf("submit action: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a bearer token, got %d", resp.StatusCode)
	}
}
