package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/tracker"
)

func (m *Model) openForm(editing *model.Task) {
	m.Form = FormState{Active: true, Focus: FieldTitle}
	m.titleInput.SetValue("")
	m.detailsArea.SetValue("")
	m.dueInput.SetValue("")
	if editing != nil {
		m.Form.EditingID = editing.ID
		m.titleInput.SetValue(editing.Title)
		m.detailsArea.SetValue(editing.Details)
		m.dueInput.SetValue(editing.Due.String())
	}
	m.focusField()
}

func (m *Model) closeForm() {
	m.Form = FormState{}
	m.titleInput.Blur()
	m.detailsArea.Blur()
	m.dueInput.Blur()
}

func (m *Model) focusField() {
	m.titleInput.Blur()
	m.detailsArea.Blur()
	m.dueInput.Blur()
	switch m.Form.Focus {
	case FieldTitle:
		m.titleInput.Focus()
	case FieldDetails:
		m.detailsArea.Focus()
	case FieldDue:
		m.dueInput.Focus()
	}
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.closeForm()
		m.Status = StatusBar{Text: "edit cancelled"}
		return m, nil
	case "tab":
		m.Form.Focus = (m.Form.Focus + 1) % fieldCount
		m.focusField()
		return m, nil
	case "shift+tab":
		m.Form.Focus = (m.Form.Focus + fieldCount - 1) % fieldCount
		m.focusField()
		return m, nil
	case "ctrl+s":
		return m.submitForm(), nil
	case "enter":
		if m.Form.Focus != FieldDetails {
			return m.submitForm(), nil
		}
	}

	var cmd tea.Cmd
	switch m.Form.Focus {
	case FieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case FieldDetails:
		m.detailsArea, cmd = m.detailsArea.Update(msg)
	case FieldDue:
		m.dueInput, cmd = m.dueInput.Update(msg)
	}
	return m, cmd
}

// submitForm keeps the form open on validation errors so the input is not
// lost. A persistence failure still applies the change and closes the form.
func (m Model) submitForm() Model {
	draft := tracker.Draft{
		Title:   m.titleInput.Value(),
		Details: m.detailsArea.Value(),
		Due:     m.dueInput.Value(),
	}

	var (
		task model.Task
		err  error
		verb = "added"
	)
	if m.Form.EditingID != "" {
		verb = "updated"
		task, err = m.Tracker.Edit(m.ctx, m.Form.EditingID, draft)
	} else {
		task, err = m.Tracker.Create(m.ctx, draft)
	}

	switch {
	case errors.Is(err, tracker.ErrEmptyTitle):
		m.Form.Err = "title is required"
		m.Form.Focus = FieldTitle
		m.focusField()
		return m
	case errors.Is(err, model.ErrInvalidDate):
		m.Form.Err = "due must be a real date as YYYY-MM-DD"
		m.Form.Focus = FieldDue
		m.focusField()
		return m
	case errors.Is(err, tracker.ErrNotFound):
		m.closeForm()
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	m.closeForm()
	if task.ID != "" {
		m.SelectedTaskID = task.ID
	}
	m.refresh()
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: fmt.Sprintf("%s %q but not saved: %v", verb, task.Title, err), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: fmt.Sprintf("%s %q", verb, task.Title)}
	return m
}
