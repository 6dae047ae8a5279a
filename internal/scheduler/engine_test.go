package scheduler

import (
	"fmt"
	"testing"
	"time"
)

func TestEngineEmitsInTriggerOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(Wake{ID: "later", At: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(Wake{ID: "sooner", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitEvent(t, engine.C(), time.Second)
	second := waitEvent(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(Wake{
			ID: fmt.Sprintf("evt-%d", i),
			At: now,
		}); err != nil {
			t.Fatalf("schedule event: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped events > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesTriggerTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(Wake{ID: "bad"}); err != ErrInvalidWakeTime {
		t.Fatalf("expected ErrInvalidWakeTime, got %v", err)
	}
}

func TestScheduleMovesQueuedWakeWithSameID(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Wake{ID: RecheckWakeID, Reason: ReasonRecheck, At: now.Add(time.Hour)}); err != nil {
		t.Fatalf("schedule far: %v", err)
	}
	if err := engine.Schedule(Wake{ID: RecheckWakeID, Reason: ReasonRecheck, At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule near: %v", err)
	}
	if engine.Pending() != 1 {
		t.Fatalf("expected one pending wake, got %d", engine.Pending())
	}

	got := waitEvent(t, engine.C(), time.Second)
	if got.ID != RecheckWakeID {
		t.Fatalf("unexpected wake: %+v", got)
	}
	select {
	case extra := <-engine.C():
		t.Fatalf("replaced wake fired twice: %+v", extra)
	case <-time.After(80 * time.Millisecond):
	}
	if engine.Pending() != 0 {
		t.Fatalf("expected empty queue, got %d", engine.Pending())
	}
}

func TestCancelSkipsWake(t *testing.T) {
	engine := NewEngine(4)
	engine.Start()
	defer engine.Stop()

	now := time.Now()
	if err := engine.Schedule(Wake{ID: "gone", At: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(Wake{ID: "kept", At: now.Add(40 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if !engine.Cancel("gone") {
		t.Fatal("expected cancel to find the wake")
	}
	if engine.Cancel("gone") {
		t.Fatal("second cancel should find nothing")
	}
	if got := waitEvent(t, engine.C(), time.Second); got.ID != "kept" {
		t.Fatalf("unexpected wake: %+v", got)
	}
}

func TestStopClosesChannel(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if _, ok := <-engine.C(); ok {
		t.Fatal("expected closed channel after stop")
	}
}

func waitEvent(t *testing.T, ch <-chan Wake, timeout time.Duration) Wake {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for wake")
		return Wake{}
	}
}
