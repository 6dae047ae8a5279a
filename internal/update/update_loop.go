package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/views"
)

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tea.SetWindowTitle(m.windowTitle()), m.startupNotifyCmd()}
	if m.Scheduler != nil {
		cmds = append(cmds, waitForWakeCmd(m.Scheduler.C()))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	if title := next.syncWindowTitle(); title != nil {
		cmd = tea.Batch(cmd, title)
	}
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		pane := views.PaneWidth(typed.Width)
		m.taskTable.SetColumns(taskColumns(pane))
		if h := typed.Height - 14; h > 4 {
			m.taskTable.SetHeight(h)
		}
		m.detailsViewer.Width = pane - 2
		m.syncDetails()
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Form.Active {
			return m.handleFormKey(typed)
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		return m.handleBrowseKey(typed)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	case WakeMsg:
		m.rearm(typed.Wake)
		m.refresh()
		cmds := []tea.Cmd{m.recheckCmd()}
		if m.Scheduler != nil {
			cmds = append(cmds, waitForWakeCmd(m.Scheduler.C()))
		}
		return m, tea.Batch(cmds...)
	case NotifiedMsg:
		m.refresh()
		switch {
		case typed.Err != nil:
			m.LastError = typed.Err
			m.Status = StatusBar{Text: fmt.Sprintf("notifications: %v", typed.Err), IsError: true}
		case typed.Sent > 0:
			m.Status = StatusBar{Text: fmt.Sprintf("notified %d overdue task(s)", typed.Sent)}
		case typed.Forced:
			m.Status = StatusBar{Text: "notifications on, nothing overdue"}
		}
		return m, nil
	case ImportFileMsg:
		if typed.Err != nil {
			m.LastError = typed.Err
			m.Status = StatusBar{Text: fmt.Sprintf("import failed: %v", typed.Err), IsError: true}
			return m, nil
		}
		n, format, err := m.Tracker.Import(m.ctx, typed.Text)
		m.refresh()
		if err != nil {
			m.LastError = err
			m.Status = StatusBar{Text: fmt.Sprintf("import failed, tasks unchanged: %v", err), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("imported %d task(s) from %s (%s)", n, typed.Path, format)}
		return m, nil
	}
	return m, nil
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Palette:
		m.openPalette()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case m.Keys.New:
		m.openForm(nil)
		return m, nil
	case m.Keys.Edit:
		if sel, ok := m.selected(); ok {
			m.openForm(&sel)
		}
		return m, nil
	case m.Keys.Toggle:
		return m.onSelected(func(id string) (string, error) {
			task, err := m.Tracker.ToggleDone(m.ctx, id)
			return fmt.Sprintf("%q is now %s", task.Title, task.Status), err
		}), nil
	case m.Keys.Cycle:
		return m.onSelected(func(id string) (string, error) {
			sel, _ := m.selected()
			task, err := m.Tracker.UpdateStatus(m.ctx, id, sel.Status.Next())
			return fmt.Sprintf("%q is now %s", task.Title, task.Status), err
		}), nil
	case m.Keys.Delete:
		return m.onSelected(func(id string) (string, error) {
			sel, _ := m.selected()
			return fmt.Sprintf("deleted %q", sel.Title), m.Tracker.Delete(m.ctx, id)
		}), nil
	case m.Keys.ClearDone:
		n, err := m.Tracker.ClearCompleted(m.ctx)
		m.refresh()
		m.setResult(fmt.Sprintf("cleared %d completed task(s)", n), err)
		return m, nil
	case m.Keys.Filter:
		m.cycleFilter(1)
		return m, nil
	case m.Keys.FilterBack:
		m.cycleFilter(-1)
		return m, nil
	case m.Keys.Notify:
		m.Status = StatusBar{Text: "enabling notifications"}
		return m, m.enableNotificationsCmd()
	case "esc":
		if m.Search != "" {
			m.Search = ""
			m.refresh()
			m.Status = StatusBar{Text: "search cleared"}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.taskTable, cmd = m.taskTable.Update(msg)
	m.syncSelection()
	return m, cmd
}

// onSelected runs action against the selected task and refreshes the view.
func (m Model) onSelected(action func(id string) (string, error)) Model {
	if m.SelectedTaskID == "" {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return m
	}
	text, err := action(m.SelectedTaskID)
	m.refresh()
	m.setResult(text, err)
	return m
}

func (m *Model) setResult(text string, err error) {
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: text}
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	left := m.renderDashboard() + "\n\n" + m.renderTaskPanel()
	if palette := m.renderCommandPalette(); palette != "" {
		left += "\n" + palette
	}
	right := m.renderDetailPane()
	if m.Form.Active {
		right = m.renderForm()
	}
	right += m.renderHelpIfVisible()

	notifications := "notifications: off"
	if m.Tracker.NotificationsEnabled() {
		notifications = "notifications: on"
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("taskpad | today %s | %s", m.today(), notifications),
		Badge:        m.badgeCount(),
		LeftPane:     left,
		RightPane:    right,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer: fmt.Sprintf("keys: %s new | %s edit | space done | %s status | %s filter | / cmd | %s help | %s quit",
			m.Keys.New, m.Keys.Edit, m.Keys.Cycle, m.Keys.Filter, m.Keys.Help, m.Keys.Quit),
		Width: m.width,
	})
}

var _ tea.Model = Model{}
