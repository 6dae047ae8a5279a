package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/config"
	"github.com/sandeepkv93/taskpad/internal/csvcodec"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/tracker"
	"github.com/sandeepkv93/taskpad/internal/update"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envVars = []string{
	"TASKPAD_CONFIG", "TASKPAD_STORE", "TASKPAD_DB_PATH", "TASKPAD_DATA_DIR",
	"TASKPAD_REDIS_ADDR", "TASKPAD_REDIS_PASSWORD", "TASKPAD_REDIS_DB", "TASKPAD_REDIS_PREFIX",
	"TASKPAD_NOTIFICATIONS", "TASKPAD_DESKTOP_NOTIFICATIONS", "TASKPAD_LOG_FILE",
	"TASKPAD_RECHECK_MINUTES", "TASKPAD_SCHEDULER_BUFFER", "TASKPAD_TIMEZONE",
}

type harness struct {
	dir        string
	configPath string
	seq        int
	stdin      string
	ran        tea.Model
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	for _, name := range envVars {
		t.Setenv(name, "")
	}
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Chdir(dir)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	h := &harness{dir: dir, configPath: filepath.Join(dir, "taskpad.yaml")}
	h.writeConfig(t, "file")
	return h
}

func (h *harness) writeConfig(t *testing.T, backend string) {
	t.Helper()
	body := fmt.Sprintf("store:\n  backend: %s\n  data_dir: %s\ntimezone: UTC\n", backend, filepath.Join(h.dir, "data"))
	require.NoError(t, os.WriteFile(h.configPath, []byte(body), 0o644))
}

func (h *harness) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	opts := &rootOptions{
		now: func() time.Time { return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC) },
		newID: func() string {
			h.seq++
			return fmt.Sprintf("task-%d", h.seq)
		},
		runTUI: func(_ context.Context, m tea.Model) error {
			h.ran = m
			return nil
		},
	}
	cmd := newRootCmd(opts, "test")
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(h.stdin))
	cmd.SetArgs(append([]string{"--config", h.configPath}, args...))
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func (h *harness) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := h.run(t, args...)
	require.NoError(t, err, "taskpad %s", strings.Join(args, " "))
	return out
}

func (h *harness) listJSON(t *testing.T, args ...string) []model.Task {
	t.Helper()
	out := h.mustRun(t, append([]string{"list", "--json"}, args...)...)
	var tasks []model.Task
	require.NoError(t, json.Unmarshal([]byte(out), &tasks))
	return tasks
}

func TestAddAndList(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun(t, "add", "Pay", "rent", "--due", "2025-01-01")
	assert.Equal(t, "added task-1 \"Pay rent\"\n", out)
	h.mustRun(t, "add", "Water plants", "--due", "2025-06-01", "--details", "  balcony  ")

	out = h.mustRun(t, "list")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"ID", "STATUS", "DUE", "TITLE"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"task-2", "NotStarted", "2025-06-01", "Water", "plants"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"task-1", "NotStarted", "2025-01-01", "!", "Pay", "rent"}, strings.Fields(lines[2]))

	tasks := h.listJSON(t, "--filter", "today")
	require.Len(t, tasks, 1)
	assert.Equal(t, "Water plants", tasks[0].Title)
	assert.Equal(t, "balcony", tasks[0].Details)

	tasks = h.listJSON(t, "--search", "RENT")
	require.Len(t, tasks, 1)
	assert.Equal(t, "task-1", tasks[0].ID)

	out = h.mustRun(t, "list", "--filter", "done")
	assert.Equal(t, "No tasks.\n", out)

	_, err := h.run(t, "list", "--filter", "someday")
	assert.Error(t, err)
}

func TestAddRejectsInvalidInput(t *testing.T) {
	h := newHarness(t)

	_, err := h.run(t, "add", "   ")
	assert.ErrorIs(t, err, tracker.ErrEmptyTitle)

	_, err = h.run(t, "add", "Taxes", "--due", "2025-02-30")
	assert.ErrorIs(t, err, model.ErrInvalidDate)

	assert.Empty(t, h.listJSON(t))
}

func TestStatusEditAndRemove(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Pay rent", "--due", "2025-01-01", "--details", "landlord")
	h.mustRun(t, "add", "Water plants")

	_, err := h.run(t, "status", "task-", "Completed")
	assert.ErrorIs(t, err, tracker.ErrAmbiguous)
	_, err = h.run(t, "status", "task-1", "Someday")
	assert.ErrorIs(t, err, model.ErrInvalidStatus)

	out := h.mustRun(t, "status", "task-1", "inprogress")
	assert.Equal(t, "task-1 \"Pay rent\" is now InProgress\n", out)

	_, err = h.run(t, "edit", "task-1")
	assert.Error(t, err)
	h.mustRun(t, "edit", "task-1", "--title", "Pay rent early", "--due", "")

	tasks := h.listJSON(t)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Pay rent early", tasks[1].Title)
	assert.Equal(t, "landlord", tasks[1].Details)
	assert.True(t, tasks[1].Due.IsZero())
	assert.Equal(t, model.StatusInProgress, tasks[1].Status)

	out = h.mustRun(t, "rm", "task-2")
	assert.Equal(t, "deleted task-2\n", out)
	_, err = h.run(t, "rm", "task-2")
	assert.ErrorIs(t, err, tracker.ErrNotFound)
	assert.Len(t, h.listJSON(t), 1)
}

func TestClearDoneAndCounts(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Old bill", "--due", "2025-01-01")
	h.mustRun(t, "add", "Today", "--due", "2025-06-01")
	h.mustRun(t, "add", "Done one")
	h.mustRun(t, "status", "task-3", "Completed")

	counts := parseCounts(t, h.mustRun(t, "counts"))
	assert.Equal(t, 1, counts["overdue"])
	assert.Equal(t, 1, counts["due today"])
	assert.Equal(t, 2, counts["pending"])
	assert.Equal(t, 1, counts["completed"])
	assert.Equal(t, 2, counts["NotStarted"])

	out := h.mustRun(t, "clear-done")
	assert.Equal(t, "cleared 1 completed task(s)\n", out)
	assert.Equal(t, 0, parseCounts(t, h.mustRun(t, "counts"))["completed"])
}

func parseCounts(t *testing.T, out string) map[string]int {
	t.Helper()
	counts := map[string]int{}
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		fields := strings.Fields(line)
		require.GreaterOrEqual(t, len(fields), 2, line)
		n, err := strconv.Atoi(fields[len(fields)-1])
		require.NoError(t, err, line)
		counts[strings.Join(fields[:len(fields)-1], " ")] = n
	}
	return counts
}

func TestExportImport(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Pay rent", "--due", "2025-01-01")
	h.mustRun(t, "add", "Water plants", "--details", "ferns, cacti")

	csvOut := h.mustRun(t, "export")
	assert.True(t, strings.HasPrefix(csvOut, strings.Join(csvcodec.Header, ",")+"\n"), csvOut)
	assert.Contains(t, csvOut, `"ferns, cacti"`)

	jsonPath := filepath.Join(h.dir, "tasks.json")
	h.mustRun(t, "export", "--format", "json", "--out", jsonPath)
	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "[\n  {"))

	_, err = h.run(t, "export", "--format", "xml")
	assert.Error(t, err)

	h.mustRun(t, "rm", "task-1", "task-2")
	assert.Empty(t, h.listJSON(t))

	out := h.mustRun(t, "import", jsonPath)
	assert.Equal(t, "imported 2 task(s) as json\n", out)
	tasks := h.listJSON(t)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Water plants", tasks[0].Title)

	h.stdin = csvOut
	out = h.mustRun(t, "import", "-")
	assert.Equal(t, "imported 2 task(s) as csv\n", out)

	h.stdin = `[{"id":`
	_, err = h.run(t, "import", "-")
	assert.ErrorIs(t, err, csvcodec.ErrUnparseable)
	assert.Len(t, h.listJSON(t), 2)

	_, err = h.run(t, "import", filepath.Join(h.dir, "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNotifyUsesPersistedLedger(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Pay rent", "--due", "2025-01-01")
	h.mustRun(t, "add", "Water plants", "--due", "2025-06-01")

	out := h.mustRun(t, "notify")
	assert.Contains(t, out, "Task overdue: Pay rent (due 2025-01-01) [overdue-task-1]")
	assert.Contains(t, out, "sent 1 notification(s), 1 overdue")

	out = h.mustRun(t, "notify")
	assert.Equal(t, "sent 0 notification(s), 1 overdue\n", out)

	out = h.mustRun(t, "notify", "--force")
	assert.Contains(t, out, "[overdue-task-1]")
	assert.Contains(t, out, "sent 1 notification(s)")
}

func TestConfigCommand(t *testing.T) {
	h := newHarness(t)
	t.Setenv("TASKPAD_REDIS_PASSWORD", "hunter2")
	t.Setenv("TASKPAD_RECHECK_MINUTES", "5")

	out := h.mustRun(t, "config")
	assert.Contains(t, out, "backend: file")
	assert.Contains(t, out, "recheck_minutes: 5")
	assert.NotContains(t, out, "hunter2")

	h.writeConfig(t, "mongo")
	_, err := h.run(t, "config")
	assert.ErrorIs(t, err, config.ErrInvalid)
	_, err = h.run(t, "list")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestTUIIsDefault(t *testing.T) {
	h := newHarness(t)
	h.mustRun(t, "add", "Pay rent", "--due", "2025-01-01")

	h.mustRun(t)
	m, ok := h.ran.(update.Model)
	require.True(t, ok, "expected update.Model, got %T", h.ran)
	assert.Equal(t, "task-1", m.SelectedTaskID)
	assert.Contains(t, m.View(), "1 overdue")

	h.ran = nil
	h.mustRun(t, "tui")
	assert.NotNil(t, h.ran)
}
