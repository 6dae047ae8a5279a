package update

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/query"
	"github.com/sandeepkv93/taskpad/internal/scheduler"
	"github.com/sandeepkv93/taskpad/internal/views"
)

func (m Model) today() model.Date {
	return model.Today(m.now(), m.loc)
}

// refresh recomputes the visible rows and keeps the selection on the same
// task when it is still visible.
func (m *Model) refresh() {
	if m.Tracker == nil {
		return
	}
	m.visible = m.Tracker.View(m.Filter, m.Search)
	today := m.today()
	rows := make([]table.Row, 0, len(m.visible))
	cursor := -1
	for i, t := range m.visible {
		rows = append(rows, taskRow(t, today))
		if t.ID == m.SelectedTaskID {
			cursor = i
		}
	}
	m.taskTable.SetRows(rows)
	switch {
	case len(rows) == 0:
		m.SelectedTaskID = ""
	case cursor >= 0:
		m.taskTable.SetCursor(cursor)
	default:
		idx := m.taskTable.Cursor()
		if idx < 0 {
			idx = 0
		}
		if idx >= len(rows) {
			idx = len(rows) - 1
		}
		m.taskTable.SetCursor(idx)
		m.SelectedTaskID = m.visible[idx].ID
	}
	m.syncDetails()
}

func taskRow(t model.Task, today model.Date) table.Row {
	mark := " "
	switch {
	case t.Completed():
		mark = "x"
	case t.IsOverdue(today):
		mark = "!"
	}
	due := ""
	if t.HasDue() {
		due = t.Due.Label(today)
	}
	return table.Row{mark, t.Title, string(t.Status), due}
}

// syncSelection follows the table cursor after navigation keys.
func (m *Model) syncSelection() {
	idx := m.taskTable.Cursor()
	if idx >= 0 && idx < len(m.visible) {
		if m.SelectedTaskID != m.visible[idx].ID {
			m.SelectedTaskID = m.visible[idx].ID
			m.syncDetails()
		}
	}
}

func (m *Model) syncDetails() {
	sel, ok := m.selected()
	if !ok || sel.Details == "" {
		m.detailsViewer.SetContent("")
		return
	}
	m.detailsViewer.SetContent(views.RenderMarkdown(sel.Details, m.detailsViewer.Width))
}

func (m Model) selected() (model.Task, bool) {
	for _, t := range m.visible {
		if t.ID == m.SelectedTaskID {
			return t, true
		}
	}
	return model.Task{}, false
}

// resolveTarget maps "selected" (or ".") to the selected task and anything
// else to a full id or unique id prefix.
func (m Model) resolveTarget(target string) (string, error) {
	target = strings.TrimSpace(target)
	if strings.EqualFold(target, "selected") || target == "." {
		if m.SelectedTaskID == "" {
			return "", fmt.Errorf("no task selected")
		}
		return m.SelectedTaskID, nil
	}
	return m.Tracker.Resolve(target)
}

func (m *Model) cycleFilter(step int) {
	presets := query.Presets()
	idx := 0
	for i, f := range presets {
		if f == m.Filter {
			idx = i
			break
		}
	}
	idx = (idx + step + len(presets)) % len(presets)
	m.Filter = presets[idx]
	m.refresh()
	m.Status = StatusBar{Text: "filter: " + m.Filter.String()}
}

func (m Model) badgeCount() int {
	if m.badge != nil {
		return m.badge.Count()
	}
	if m.Tracker == nil {
		return 0
	}
	return m.Tracker.BadgeCount()
}

func (m Model) windowTitle() string {
	if n := m.badgeCount(); n > 0 {
		return fmt.Sprintf("taskpad (%d)", n)
	}
	return "taskpad"
}

// syncWindowTitle emits a title update whenever the badge value moved.
func (m *Model) syncWindowTitle() tea.Cmd {
	n := m.badgeCount()
	if n == m.titleBadge {
		return nil
	}
	m.titleBadge = n
	return tea.SetWindowTitle(m.windowTitle())
}

func (m *Model) armWakes() {
	if m.Scheduler == nil {
		return
	}
	now := m.now()
	if err := m.Scheduler.Schedule(scheduler.MidnightWake(now, m.loc)); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("scheduler: %v", err), IsError: true}
	}
	if err := m.Scheduler.Schedule(scheduler.RecheckWake(now, m.recheck)); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("scheduler: %v", err), IsError: true}
	}
}

func (m *Model) rearm(w scheduler.Wake) {
	if m.Scheduler == nil {
		return
	}
	next := scheduler.Successor(w, m.now(), m.loc, m.recheck)
	if err := m.Scheduler.Schedule(next); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("scheduler: %v", err), IsError: true}
	}
}

func waitForWakeCmd(ch <-chan scheduler.Wake) tea.Cmd {
	return func() tea.Msg {
		w, ok := <-ch
		if !ok {
			return nil
		}
		return WakeMsg{Wake: w}
	}
}

func (m Model) startupNotifyCmd() tea.Cmd {
	tr, ctx := m.Tracker, m.ctx
	return func() tea.Msg {
		sent, err := tr.Start(ctx)
		return NotifiedMsg{Sent: sent, Err: err}
	}
}

func (m Model) enableNotificationsCmd() tea.Cmd {
	tr, ctx := m.Tracker, m.ctx
	return func() tea.Msg {
		sent, err := tr.EnableNotifications(ctx)
		return NotifiedMsg{Sent: sent, Forced: true, Err: err}
	}
}

func (m Model) recheckCmd() tea.Cmd {
	tr, ctx := m.Tracker, m.ctx
	return func() tea.Msg {
		sent, err := tr.Recheck(ctx)
		return NotifiedMsg{Sent: sent, Err: err}
	}
}

func (m Model) readFileCmd(path string) tea.Cmd {
	read := m.readFile
	return func() tea.Msg {
		raw, err := read(path)
		return ImportFileMsg{Path: path, Text: string(raw), Err: err}
	}
}

func formatCreated(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format("2006-01-02 15:04")
}
