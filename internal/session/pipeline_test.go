package session_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/talgya/worldcore/internal/session"
)

func TestPipelineSerializesSameResource(t *testing.T) {
	var mu sync.Mutex
	var order []string

	handler := func(a session.Action) error {
		time.Sleep(time.Millisecond)
		mu.Lock()
		order = append(order, a.ActionID)
		mu.Unlock()
		return nil
	}
	hasCharacter := func(string) bool { return true }

	p := session.NewPipeline(handler, hasCharacter, 8)

	var wg sync.WaitGroup
	var done atomic.Int32
	const n = 20
	for i := 0; i < n; i++ {
		wg.Add(1)
		a := session.Action{
			ActionID:   "a" + string(rune('a'+i)),
			PlayerID:   "p1",
			Kind:       session.Harvest,
			Parameters: map[string]any{"resource_node_id": "node_1"},
			Timestamp:  time.Now(),
		}
		go func(a session.Action) {
			defer wg.Done()
			if err := p.Submit(a); err != nil {
				t.Errorf("Submit: %v", err)
				return
			}
			done.Add(1)
		}(a)
	}
	wg.Wait()

	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		n := len(order)
		mu.Unlock()
		if n == 20 || time.Now().After(deadline) {
			break
		}
		time.Sleep(time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(order) != 20 {
		t.Fatalf("expected all 20 actions to run, got %d", len(order))
	}
	if done.Load() != 20 {
		t.Fatalf("expected all 20 submits to succeed, got %d", done.Load())
	}
}

func TestPipelineRejectsInvalidAction(t *testing.T) {
	handler := func(session.Action) error { return nil }
	hasCharacter := func(string) bool { return false }
	p := session.NewPipeline(handler, hasCharacter, 4)

	err := p.Submit(session.Action{
		ActionID:  "bad",
		PlayerID:  "p1",
		Kind:      session.Move,
		Timestamp: time.Now(),
	})
	if err == nil {
		t.Fatal("expected validation error for characterless player issuing a non-chat action")
	}
}

func TestPipelineRecordsLatency(t *testing.T) {
	handler := func(session.Action) error { return nil }
	hasCharacter := func(string) bool { return true }
	p := session.NewPipeline(handler, hasCharacter, 1)

	if err := p.Submit(session.Action{
		ActionID:   "chat1",
		PlayerID:   "p1",
		Kind:       session.Chat,
		Parameters: map[string]any{"message": "hi"},
		Timestamp:  time.Now(),
	}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for p.Latency().Average() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if p.Latency().Average() == 0 {
		t.Fatal("expected a latency sample to be recorded for the completed action")
	}
}
