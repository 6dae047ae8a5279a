// Package overdue decides which tasks are overdue and which of them still owe
// the user a one-time notification.
//
// The ledger of notified ids is append-only. A task that is resolved and later
// becomes overdue again under the same id is not notified a second time.
package overdue

import (
	"fmt"

	"github.com/sandeepkv93/taskpad/internal/model"
)

// Set returns the overdue tasks in collection order.
func Set(tasks []model.Task, today model.Date) []model.Task {
	out := make([]model.Task, 0)
	for _, t := range tasks {
		if t.IsOverdue(today) {
			out = append(out, t)
		}
	}
	return out
}

// Count is the badge value.
func Count(tasks []model.Task, today model.Date) int {
	n := 0
	for _, t := range tasks {
		if t.IsOverdue(today) {
			n++
		}
	}
	return n
}

// Pending returns overdue tasks missing from the ledger, or every overdue task
// when force is set.
func Pending(tasks []model.Task, ledger *Ledger, today model.Date, force bool) []model.Task {
	overdue := Set(tasks, today)
	if force || ledger == nil {
		return overdue
	}
	out := make([]model.Task, 0, len(overdue))
	for _, t := range overdue {
		if !ledger.Has(t.ID) {
			out = append(out, t)
		}
	}
	return out
}

type Notification struct {
	TaskID string
	Title  string
	Body   string
	Tag    string
}

func NotificationFor(t model.Task) Notification {
	body := t.Title
	if t.HasDue() {
		body = fmt.Sprintf("%s (due %s)", t.Title, t.Due)
	}
	return Notification{
		TaskID: t.ID,
		Title:  "Task overdue",
		Body:   body,
		Tag:    "overdue-" + t.ID,
	}
}
