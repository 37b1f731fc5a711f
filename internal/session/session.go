// Package session implements player registration/authentication, signed
// session tokens, per-kind action validation, per-resource conflict locks,
// timestamp-ordered dispatch, and sliding-window latency tracking (spec.md
// section 4.9, C9). The mutex-guarded map-of-per-key-state idiom is
// grounded on the teacher's RateLimiter (internal/api/ratelimit.go).
package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/binary"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/talgya/worldcore/internal/corerr"
)

const (
	minPasswordLength = 8
	sessionTTL        = 24 * time.Hour
	minSessionValid   = 23 * time.Hour
)

// Session is the live record spec.md section 3 names.
type Session struct {
	SessionID    string
	PlayerID     string
	Token        string
	CreatedAt    time.Time
	ExpiresAt    time.Time
	LastActivity time.Time
}

type playerRecord struct {
	playerID     string
	passwordHash [32]byte
}

// Manager owns the registered-player table and the live session table; a
// single process-wide instance is the "global state with explicit
// lifecycle" spec.md section 10 calls for, but tests construct their own.
type Manager struct {
	mu       sync.Mutex
	secret   []byte
	players  map[string]*playerRecord // username -> record
	sessions map[string]*Session      // token -> session
}

// NewManager creates a Manager whose tokens are signed with secret.
func NewManager(secret []byte) *Manager {
	return &Manager{
		secret:   secret,
		players:  map[string]*playerRecord{},
		sessions: map[string]*Session{},
	}
}

// Register creates a new player account. Usernames must be unique and
// non-empty; passwords must be at least minPasswordLength characters
// (spec.md section 4.9).
func (m *Manager) Register(username, password string) (string, error) {
	if username == "" {
		return "", corerr.Validation("username must not be empty")
	}
	if len(password) < minPasswordLength {
		return "", corerr.Validation("password must be at least %d characters", minPasswordLength)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.players[username]; exists {
		return "", corerr.Auth("duplicate registration: username %q already exists", username)
	}

	playerID := hashString(username + ":" + fmt.Sprint(time.Now().UnixNano()))
	m.players[username] = &playerRecord{playerID: playerID, passwordHash: sha256.Sum256([]byte(password))}
	return playerID, nil
}

// Authenticate verifies credentials with a constant-time comparison and, on
// success, issues a signed token and a session valid for sessionTTL.
func (m *Manager) Authenticate(username, password string, now time.Time) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.players[username]
	if !ok {
		return nil, corerr.Auth("unknown user %q", username)
	}

	candidate := sha256.Sum256([]byte(password))
	if subtle.ConstantTimeCompare(candidate[:], rec.passwordHash[:]) != 1 {
		return nil, corerr.Auth("bad password for user %q", username)
	}

	token := m.sign(rec.playerID, now)
	sess := &Session{
		SessionID:    uuid.NewString(),
		PlayerID:     rec.playerID,
		Token:        token,
		CreatedAt:    now,
		ExpiresAt:    now.Add(sessionTTL),
		LastActivity: now,
	}
	m.sessions[token] = sess
	return sess, nil
}

// ValidateToken verifies the token's signature and expiry, returning the
// bound player id.
func (m *Manager) ValidateToken(token string, now time.Time) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[token]
	if !ok {
		return "", corerr.Auth("invalid or expired token")
	}
	if now.After(sess.ExpiresAt) {
		delete(m.sessions, token)
		return "", corerr.Auth("invalid or expired token")
	}
	if !m.verify(token) {
		delete(m.sessions, token)
		return "", corerr.Auth("invalid or expired token")
	}
	sess.LastActivity = now
	return sess.PlayerID, nil
}

// Invalidate removes a session (logout).
func (m *Manager) Invalidate(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// sign produces a token embedding playerID and its issue time, MAC'd with
// the manager's secret so ValidateToken can detect tampering.
func (m *Manager) sign(playerID string, issuedAt time.Time) string {
	payload := fmt.Sprintf("%s:%d", playerID, issuedAt.UnixNano())
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(payload))
	sig := mac.Sum(nil)
	return base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + base64.RawURLEncoding.EncodeToString(sig)
}

// verify recomputes the HMAC over the token's embedded payload and compares
// it in constant time against the signature segment, detecting tampering
// with either the player-id binding or the issue timestamp.
func (m *Manager) verify(token string) bool {
	parts := strings.SplitN(token, ".", 2)
	if len(parts) != 2 {
		return false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, m.secret)
	mac.Write(payload)
	expected := mac.Sum(nil)
	return hmac.Equal(sig, expected)
}

func hashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	var n uint64
	for i := 0; i < 8; i++ {
		n = n<<8 | uint64(sum[i])
	}
	return base64.RawURLEncoding.EncodeToString(binary.BigEndian.AppendUint64(nil, n))
}
