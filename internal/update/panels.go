package update

import (
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/views"
)

func (m Model) renderDashboard() string {
	c := m.Tracker.Counts()
	byStatus := make([]views.StatusCount, 0, len(model.Statuses()))
	for _, s := range model.Statuses() {
		byStatus = append(byStatus, views.StatusCount{Name: string(s), Count: c.ByStatus[s]})
	}
	return views.RenderDashboard(views.DashboardData{
		Overdue:   c.Overdue,
		Pending:   c.Pending,
		DueToday:  c.DueToday,
		Completed: c.Completed,
		ByStatus:  byStatus,
	})
}

func (m Model) renderTaskPanel() string {
	header := views.RenderListHeader(views.ListHeaderData{
		Filter: m.Filter.String(),
		Search: m.Search,
		Shown:  len(m.visible),
		Total:  len(m.Tracker.Tasks()),
	})
	return views.RenderTaskPanel(header, m.taskTable.View(), len(m.visible) == 0)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderDetailPane() string {
	sel, ok := m.selected()
	if !ok {
		return views.RenderTaskDetail(views.TaskDetailData{})
	}
	today := m.today()
	data := views.TaskDetailData{
		ID:          sel.ID,
		Title:       sel.Title,
		Status:      string(sel.Status),
		Overdue:     sel.IsOverdue(today),
		Created:     formatCreated(sel.CreatedAt, m.loc),
		DetailsView: m.detailsViewer.View(),
	}
	if sel.HasDue() {
		data.DueLabel = sel.Due.Label(today)
	}
	if sel.Details == "" {
		data.DetailsView = ""
	}
	return views.RenderTaskDetail(data)
}

func (m Model) renderForm() string {
	return views.RenderForm(views.FormData{
		Editing:     m.Form.EditingID != "",
		TitleView:   m.titleInput.View(),
		DetailsView: m.detailsArea.View(),
		DueView:     m.dueInput.View(),
		Focus:       int(m.Form.Focus),
		Error:       m.Form.Err,
	})
}

func (m Model) renderNotificationsView() string {
	if m.recorder == nil {
		return ""
	}
	recent := m.recorder.Recent()
	if len(recent) == 0 {
		return ""
	}
	n := recent[len(recent)-1]
	return views.RenderNotification(n.Title, n.Body)
}
