package views

import (
	"strings"
	"testing"
)

func TestRenderAppShowsBadgeOnlyWhenOverdue(t *testing.T) {
	out := RenderApp(AppData{Header: "taskpad", Badge: 2, LeftPane: "l", RightPane: "r", StatusLine: "ok"})
	if !strings.Contains(out, "2 overdue") {
		t.Fatalf("expected badge in header: %q", out)
	}
	out = RenderApp(AppData{Header: "taskpad", LeftPane: "l", RightPane: "r"})
	if strings.Contains(out, "overdue") {
		t.Fatalf("badge should be hidden at zero: %q", out)
	}
}

func TestPaneWidth(t *testing.T) {
	if PaneWidth(0) != defaultPaneWidth {
		t.Fatalf("unexpected default width %d", PaneWidth(0))
	}
	if PaneWidth(50) != 36 {
		t.Fatalf("expected minimum width, got %d", PaneWidth(50))
	}
	if PaneWidth(200) != 96 {
		t.Fatalf("unexpected wide width %d", PaneWidth(200))
	}
}

func TestRenderDashboard(t *testing.T) {
	out := RenderDashboard(DashboardData{
		Overdue: 1, Pending: 3, DueToday: 1, Completed: 2,
		ByStatus: []StatusCount{{Name: "NotStarted", Count: 2}, {Name: "Completed", Count: 2}},
	})
	for _, want := range []string{"overdue: 1", "pending: 3", "today: 1", "done: 2", "NotStarted 2", "Completed 2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dashboard missing %q: %q", want, out)
		}
	}
}

func TestRenderTaskDetail(t *testing.T) {
	if out := RenderTaskDetail(TaskDetailData{}); !strings.Contains(out, "(no selection)") {
		t.Fatalf("unexpected empty detail: %q", out)
	}
	out := RenderTaskDetail(TaskDetailData{ID: "1", Title: "Pay rent", Status: "NotStarted", DueLabel: "Overdue: Jan 1, 2025", Overdue: true, Created: "2025-01-01"})
	for _, want := range []string{"Pay rent", "status: NotStarted", "Overdue: Jan 1, 2025", "id 1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q: %q", want, out)
		}
	}
}

func TestRenderFormAndPalette(t *testing.T) {
	out := RenderForm(FormData{Editing: true, TitleView: "T", DetailsView: "D", DueView: "X", Focus: 2, Error: "bad date"})
	if !strings.Contains(out, "edit task:") || !strings.Contains(out, "> due (YYYY-MM-DD):") || !strings.Contains(out, "error: bad date") {
		t.Fatalf("unexpected form: %q", out)
	}
	if RenderCommandPalette(false, "x") != "" {
		t.Fatal("inactive palette should render nothing")
	}
	if RenderCommandPalette(true, "/add x") != "command: /add x" {
		t.Fatalf("unexpected palette: %q", RenderCommandPalette(true, "/add x"))
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if RenderMarkdown("   ", 40) != "" {
		t.Fatal("blank markdown should render empty")
	}
	if out := RenderMarkdown("**bold** text", 40); !strings.Contains(out, "bold") {
		t.Fatalf("expected rendered text, got %q", out)
	}
}
