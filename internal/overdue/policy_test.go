package overdue

import (
	"testing"

	"github.com/sandeepkv93/taskpad/internal/model"
)

const today = model.Date("2025-06-01")

func idsOf(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestSetAndCount(t *testing.T) {
	tasks := []model.Task{
		{ID: "1", Title: "Pay rent", Due: "2025-01-01", Status: model.StatusNotStarted, CreatedAt: 100},
		{ID: "2", Due: "2025-01-01", Status: model.StatusCompleted},
		{ID: "3", Due: "2025-06-01", Status: model.StatusNotStarted},
		{ID: "4", Status: model.StatusBlocked},
		{ID: "5", Due: "2025-05-31", Status: model.StatusBlocked},
	}
	got := idsOf(Set(tasks, today))
	if len(got) != 2 || got[0] != "1" || got[1] != "5" {
		t.Fatalf("unexpected overdue set: %v", got)
	}
	if n := Count(tasks, today); n != 2 {
		t.Fatalf("expected badge count 2, got %d", n)
	}
}

func TestPendingHonoursLedgerAndForce(t *testing.T) {
	tasks := []model.Task{
		{ID: "A", Due: "2025-01-01", Status: model.StatusNotStarted},
		{ID: "B", Due: "2025-02-01", Status: model.StatusInProgress},
	}
	ledger := NewLedger()

	first := Pending(tasks, ledger, today, false)
	if got := idsOf(first); len(got) != 2 {
		t.Fatalf("expected both pending, got %v", got)
	}
	for _, task := range first {
		ledger.Add(task.ID)
	}
	if ids := ledger.IDs(); len(ids) != 2 || ids[0] != "A" || ids[1] != "B" {
		t.Fatalf("unexpected ledger: %v", ids)
	}

	if got := Pending(tasks, ledger, today, false); len(got) != 0 {
		t.Fatalf("expected nothing pending after dispatch, got %v", idsOf(got))
	}
	if got := Pending(tasks, ledger, today, true); len(got) != 2 {
		t.Fatalf("force should return both, got %v", idsOf(got))
	}
}

func TestLedgerIsAppendOnly(t *testing.T) {
	l := NewLedger("x", "x", "", "y")
	if l.Len() != 2 {
		t.Fatalf("expected 2 unique ids, got %d", l.Len())
	}
	if l.Add("x") {
		t.Fatal("re-adding should report false")
	}
	ids := l.IDs()
	ids[0] = "mutated"
	if !l.Has("x") || l.Has("mutated") {
		t.Fatal("IDs must return a copy")
	}
}

func TestNotificationFor(t *testing.T) {
	n := NotificationFor(model.Task{ID: "1", Title: "Pay rent", Due: "2025-01-01"})
	if n.Title != "Task overdue" || n.Body != "Pay rent (due 2025-01-01)" || n.Tag != "overdue-1" || n.TaskID != "1" {
		t.Fatalf("unexpected notification: %+v", n)
	}
}
