package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/query"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent due:2025-07-01", TypeAdd},
		{"status selected InProgress", TypeStatus},
		{"/rm 3f2a", TypeDelete},
		{"/delete 3f2a", TypeDelete},
		{"/filter status:Blocked", TypeFilter},
		{"/search rent", TypeSearch},
		{"/import ~/tasks.csv", TypeImport},
		{"/export json", TypeExport},
		{"/clear", TypeClear},
		{"/notify off", TypeNotify},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, err := Parse("/add  pay   rent due:2025-07-01 ")
	if err != nil {
		t.Fatalf("parse add: %v", err)
	}
	if cmd.Add.Title != "pay rent" || cmd.Add.Due != "2025-07-01" {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	cmd, err = Parse("/status abc inprogress")
	if err != nil {
		t.Fatalf("parse status: %v", err)
	}
	if cmd.Status.Target != "abc" || cmd.Status.Status != model.StatusInProgress {
		t.Fatalf("unexpected status args: %+v", cmd.Status)
	}

	cmd, err = Parse("/filter overdue")
	if err != nil {
		t.Fatalf("parse filter: %v", err)
	}
	if cmd.Filter.Filter != query.Overdue() {
		t.Fatalf("unexpected filter: %s", cmd.Filter.Filter)
	}

	cmd, err = Parse("/export CSV")
	if err != nil {
		t.Fatalf("parse export: %v", err)
	}
	if cmd.Export.Format != "csv" || cmd.Export.Path != "tasks.csv" {
		t.Fatalf("unexpected export args: %+v", cmd.Export)
	}

	cmd, err = Parse("/search")
	if err != nil || cmd.Search.Text != "" {
		t.Fatalf("empty search should clear, got %+v %v", cmd.Search, err)
	}

	cmd, err = Parse("/notify")
	if err != nil || !cmd.Notify.Enable {
		t.Fatalf("bare notify should enable, got %+v %v", cmd.Notify, err)
	}
}

func TestParseRejectsBadArguments(t *testing.T) {
	for _, in := range []string{
		"/add due:2025-01-01",
		"/add x due:tomorrow",
		"/status abc",
		"/status abc Done",
		"/filter soon",
		"/filter status:Nope",
		"/import",
		"/export xml",
		"/notify maybe",
		"/rm",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument error, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}

	_, err = Parse("  /  ")
	if !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Title != "write docs" {
				t.Fatalf("unexpected title: %q", a.Title)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("/clear")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
