package scheduler

import (
	"testing"
	"time"
)

func TestNextMidnightUsesLocalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 02:30 UTC on Jun 2 is still Jun 1 in UTC-5.
	now := time.Date(2025, 6, 2, 2, 30, 0, 0, time.UTC)
	got := NextMidnight(now, loc)
	want := time.Date(2025, 6, 2, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("unexpected midnight: got %s want %s", got, want)
	}

	endOfYear := time.Date(2025, 12, 31, 23, 59, 0, 0, time.UTC)
	if got := NextMidnight(endOfYear, time.UTC); !got.Equal(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected year rollover: %s", got)
	}
}

func TestWakeConstructors(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mid := MidnightWake(now, time.UTC)
	if mid.ID != MidnightWakeID || mid.Reason != ReasonMidnight || !mid.At.Equal(time.Date(2025, 6, 2, 0, 0, 1, 0, time.UTC)) {
		t.Fatalf("unexpected midnight wake: %+v", mid)
	}
	re := RecheckWake(now, 15*time.Minute)
	if re.Reason != ReasonRecheck || !re.At.Equal(now.Add(15*time.Minute)) {
		t.Fatalf("unexpected recheck wake: %+v", re)
	}
}

func TestScheduleReplacesQueuedWake(t *testing.T) {
	engine := NewEngine(4)
	far := time.Now().Add(time.Hour)
	if err := engine.Schedule(Wake{ID: RecheckWakeID, At: far}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(Wake{ID: MidnightWakeID, At: far}); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	if err := engine.Schedule(Wake{ID: RecheckWakeID, At: far.Add(time.Minute)}); err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if engine.Pending() != 2 {
		t.Fatalf("expected 2 pending wakes, got %d", engine.Pending())
	}
	if at, ok := engine.When(RecheckWakeID); !ok || !at.Equal(far.Add(time.Minute)) {
		t.Fatalf("recheck not moved: %s ok=%v", at, ok)
	}
	if engine.Cancel("missing") {
		t.Fatal("expected nothing removed")
	}
}

func TestSuccessorFollowsReason(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	mid := Successor(Wake{ID: MidnightWakeID, Reason: ReasonMidnight}, now, time.UTC, time.Minute)
	if mid.ID != MidnightWakeID || !mid.At.Equal(time.Date(2025, 6, 2, 0, 0, 1, 0, time.UTC)) {
		t.Fatalf("unexpected midnight successor: %+v", mid)
	}
	re := Successor(Wake{ID: RecheckWakeID, Reason: ReasonRecheck}, now, time.UTC, time.Minute)
	if re.ID != RecheckWakeID || !re.At.Equal(now.Add(time.Minute)) {
		t.Fatalf("unexpected recheck successor: %+v", re)
	}
}

func TestScheduleAfterStop(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	engine.Stop()
	if err := engine.Schedule(Wake{ID: "late", At: time.Now()}); err != ErrStopped {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
}
