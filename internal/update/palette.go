package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/commands"
	"github.com/sandeepkv93/taskpad/internal/tracker"
)

func (m *Model) openPalette() {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	case "tab":
		m.completePalette()
		return m, nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

// completePalette fills in the command name when the typed prefix is unique.
func (m *Model) completePalette() {
	typed := "/" + strings.TrimPrefix(strings.TrimSpace(m.commandInput.Value()), "/")
	if strings.Contains(typed, " ") {
		return
	}
	match := ""
	for _, name := range commands.Names() {
		if strings.HasPrefix(name, typed) {
			if match != "" {
				return
			}
			match = name
		}
	}
	if match != "" {
		m.commandInput.SetValue(strings.TrimPrefix(match, "/") + " ")
		m.commandInput.CursorEnd()
		m.Palette.Input = m.commandInput.Value()
	}
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.Tracker.Create(m.ctx, tracker.Draft{Title: a.Title, Due: a.Due})
			if task.ID != "" {
				m.SelectedTaskID = task.ID
			}
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("added %q", task.Title)}, nil
		},
		Status: func(s commands.StatusArgs) (commands.Result, error) {
			id, err := m.resolveTarget(s.Target)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			task, err := m.Tracker.UpdateStatus(m.ctx, id, s.Status)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%q is now %s", task.Title, task.Status)}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			id, err := m.resolveTarget(d.Target)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			if err := m.Tracker.Delete(m.ctx, id); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "deleted " + id}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			m.Filter = f.Filter
			return commands.Result{Message: "filter: " + f.Filter.String()}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.Search = strings.TrimSpace(s.Text)
			if m.Search == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %q", m.Search)}, nil
		},
		Import: func(i commands.ImportArgs) (commands.Result, error) {
			path := expandHome(i.Path)
			follow = m.readFileCmd(path)
			return commands.Result{Message: "importing " + path}, nil
		},
		Export: func(e commands.ExportArgs) (commands.Result, error) {
			var payload []byte
			if e.Format == "json" {
				out, err := m.Tracker.ExportJSON()
				if err != nil {
					return commands.Result{}, err
				}
				payload = out
			} else {
				payload = []byte(m.Tracker.ExportCSV())
			}
			path := expandHome(e.Path)
			if err := m.writeFile(path, payload); err != nil {
				return commands.Result{}, fmt.Errorf("export: %w", err)
			}
			return commands.Result{Message: fmt.Sprintf("exported %d task(s) to %s", len(m.Tracker.Tasks()), path)}, nil
		},
		Clear: func() (commands.Result, error) {
			n, err := m.Tracker.ClearCompleted(m.ctx)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("cleared %d completed task(s)", n)}, nil
		},
		Notify: func(n commands.NotifyArgs) (commands.Result, error) {
			if !n.Enable {
				m.Tracker.DisableNotifications()
				return commands.Result{Message: "notifications off"}, nil
			}
			follow = m.enableNotificationsCmd()
			return commands.Result{Message: "notifications on"}, nil
		},
	})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}

	m.closePalette()
	m.refresh()
	return m, follow
}
