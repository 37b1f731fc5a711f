package session_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/talgya/worldcore/internal/corerr"
	"github.com/talgya/worldcore/internal/session"
)

func TestSessionLiveness(t *testing.T) {
	m := session.NewManager([]byte("test-secret"))
	now := time.Unix(1700000000, 0)

	playerID, err := m.Register("alice", "password1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	sess, err := m.Authenticate("alice", "password1", now)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}

	gotPlayerID, err := m.ValidateToken(sess.Token, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if gotPlayerID != playerID {
		t.Fatalf("validated player id = %s, want %s", gotPlayerID, playerID)
	}

	m.Invalidate(sess.Token)
	if _, err := m.ValidateToken(sess.Token, now.Add(time.Hour)); err == nil {
		t.Fatal("expected validation to fail after invalidation")
	}
}

func TestRegisterRejectsDuplicateAndShortPassword(t *testing.T) {
	m := session.NewManager([]byte("secret"))

	if _, err := m.Register("bob", "short"); !errors.Is(err, corerr.ErrValidation) {
		t.Fatalf("expected ErrValidation for short password, got %v", err)
	}

	if _, err := m.Register("bob", "longenough1"); err != nil {
		t.Fatalf("unexpected error on first registration: %v", err)
	}
	if _, err := m.Register("bob", "longenough2"); !errors.Is(err, corerr.ErrAuth) {
		t.Fatalf("expected ErrAuth for duplicate registration, got %v", err)
	}
}

func TestActionExpiredByLivenessWindow(t *testing.T) {
	now := time.Unix(1700000000, 0)
	a := session.Action{ActionID: "a1", PlayerID: "p1", Kind: session.Chat, Parameters: map[string]any{"message": "hi"}, Timestamp: now.Add(-10 * time.Second)}

	err := session.Validate(a, "p1", now, func(string) bool { return true })
	if !errors.Is(err, corerr.ErrValidation) {
		t.Fatalf("expected expired action to be rejected, got %v", err)
	}
}

func TestActionRequiredParametersPerKind(t *testing.T) {
	now := time.Unix(1700000000, 0)
	hasChar := func(string) bool { return true }

	move := session.Action{ActionID: "a1", PlayerID: "p1", Kind: session.Move, Parameters: map[string]any{}, Timestamp: now}
	if err := session.Validate(move, "p1", now, hasChar); !errors.Is(err, corerr.ErrValidation) {
		t.Fatalf("expected MOVE without x,y to be rejected, got %v", err)
	}

	move.Parameters = map[string]any{"x": 1, "y": 2}
	if err := session.Validate(move, "p1", now, hasChar); err != nil {
		t.Fatalf("unexpected rejection of valid MOVE: %v", err)
	}
}

func TestNonChatActionsRequireCharacter(t *testing.T) {
	now := time.Unix(1700000000, 0)
	a := session.Action{ActionID: "a1", PlayerID: "p1", Kind: session.Harvest, Parameters: map[string]any{"resource_node_id": "r1"}, Timestamp: now}

	err := session.Validate(a, "p1", now, func(string) bool { return false })
	if !errors.Is(err, corerr.ErrValidation) {
		t.Fatalf("expected rejection for characterless player, got %v", err)
	}
}

func TestConflictKeySerializesSameResourceActions(t *testing.T) {
	lm := session.NewLockManager()
	key, ok := session.ConflictKey(session.Action{Kind: session.Harvest, Parameters: map[string]any{"resource_node_id": "node-1"}})
	if !ok {
		t.Fatal("expected a conflict key for HARVEST")
	}

	var order []int
	var mu sync.Mutex
	var wg sync.WaitGroup

	lm.Acquire(key)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lm.Acquire(key)
			mu.Lock()
			order = append(order, i)
			mu.Unlock()
			lm.Release(key)
		}(i)
	}
	time.Sleep(10 * time.Millisecond)
	lm.Release(key) // release the initial holder, letting queued goroutines proceed
	wg.Wait()

	if len(order) != 5 {
		t.Fatalf("expected all 5 waiters to complete, got %d", len(order))
	}
}

func TestOrderByTimestampSortsAscending(t *testing.T) {
	now := time.Unix(1700000000, 0)
	actions := []session.Action{
		{ActionID: "late", Timestamp: now.Add(2 * time.Second)},
		{ActionID: "early", Timestamp: now},
		{ActionID: "mid", Timestamp: now.Add(time.Second)},
	}
	ordered := session.OrderByTimestamp(actions)
	if ordered[0].ActionID != "early" || ordered[1].ActionID != "mid" || ordered[2].ActionID != "late" {
		t.Fatalf("unexpected order: %+v", ordered)
	}
}

func TestLatencyTrackerAverageAndP95(t *testing.T) {
	lt := session.NewLatencyTracker(100)
	for i := 1; i <= 100; i++ {
		lt.Record(time.Duration(i) * time.Millisecond)
	}

	if avg := lt.Average(); avg < 49*time.Millisecond || avg > 51*time.Millisecond {
		t.Fatalf("average = %v, want ~50ms", avg)
	}
	if p95 := lt.P95(); p95 < 94*time.Millisecond || p95 > 97*time.Millisecond {
		t.Fatalf("p95 = %v, want ~95ms", p95)
	}
}
