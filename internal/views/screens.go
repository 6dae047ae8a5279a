package views

import (
	"fmt"
	"strings"
)

type StatusCount struct {
	Name  string
	Count int
}

type DashboardData struct {
	Overdue   int
	Pending   int
	DueToday  int
	Completed int
	ByStatus  []StatusCount
}

type ListHeaderData struct {
	Filter string
	Search string
	Shown  int
	Total  int
}

type TaskDetailData struct {
	ID          string
	Title       string
	Status      string
	DueLabel    string
	Overdue     bool
	Created     string
	DetailsView string
}

type FormData struct {
	Editing     bool
	TitleView   string
	DetailsView string
	DueView     string
	Focus       int
	Error       string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
}

func RenderDashboard(data DashboardData) string {
	var b strings.Builder
	overdue := fmt.Sprintf("overdue: %d", data.Overdue)
	if data.Overdue > 0 {
		overdue = overdueStyle.Render(overdue)
	}
	b.WriteString(fmt.Sprintf("%s  pending: %d  today: %d  done: %d\n", overdue, data.Pending, data.DueToday, data.Completed))
	parts := make([]string, 0, len(data.ByStatus))
	for _, sc := range data.ByStatus {
		parts = append(parts, fmt.Sprintf("%s %d", sc.Name, sc.Count))
	}
	b.WriteString(mutedStyle.Render(strings.Join(parts, " | ")))
	return b.String()
}

func RenderListHeader(data ListHeaderData) string {
	line := fmt.Sprintf("tasks: %s (%d/%d)", data.Filter, data.Shown, data.Total)
	if data.Search != "" {
		line += fmt.Sprintf(" search: %q", data.Search)
	}
	return line
}

func RenderTaskPanel(header, tableView string, empty bool) string {
	var b strings.Builder
	b.WriteString(header + "\n")
	if empty {
		b.WriteString(mutedStyle.Render("(no tasks match)"))
		return b.String()
	}
	b.WriteString(tableView)
	return b.String()
}

func RenderTaskDetail(data TaskDetailData) string {
	if strings.TrimSpace(data.ID) == "" {
		return "details:\n(no selection)"
	}
	var b strings.Builder
	b.WriteString("details:\n")
	b.WriteString(headerStyle.Render(data.Title) + "\n")
	b.WriteString(fmt.Sprintf("status: %s\n", data.Status))
	if data.DueLabel != "" {
		due := data.DueLabel
		if data.Overdue {
			due = overdueStyle.Render(due)
		}
		b.WriteString(due + "\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("created %s  id %s", data.Created, data.ID)))
	if data.DetailsView != "" {
		b.WriteString("\n\n" + data.DetailsView)
	}
	return b.String()
}

func RenderForm(data FormData) string {
	var b strings.Builder
	if data.Editing {
		b.WriteString("edit task:\n")
	} else {
		b.WriteString("new task:\n")
	}
	fields := []struct {
		label string
		view  string
	}{
		{"title", data.TitleView},
		{"details", data.DetailsView},
		{"due (YYYY-MM-DD)", data.DueView},
	}
	for i, f := range fields {
		cursor := " "
		if i == data.Focus {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %s:\n%s\n", cursor, f.label, f.view))
	}
	b.WriteString(mutedStyle.Render("keys: [tab] next field [ctrl+s] save [esc] cancel"))
	if data.Error != "" {
		b.WriteString("\n" + errorStyle.Render("error: "+data.Error))
	}
	return b.String()
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: %s", inputView)
}

func RenderNotification(title, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", title, body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s\n%s",
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
