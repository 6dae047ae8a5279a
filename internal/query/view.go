// Package query derives what the user sees from the task collection: the
// filtered and searched view, and the dashboard counters.
package query

import (
	"strings"

	"github.com/sandeepkv93/taskpad/internal/model"
	"golang.org/x/text/cases"
)

// View filters the collection, then applies a case-insensitive substring search
// over title and details. Source order is preserved.
func View(tasks []model.Task, f Filter, search string, today model.Date) []model.Task {
	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(search))
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if !f.Match(t, today) {
			continue
		}
		if needle != "" && !matchesSearch(fold, t, needle) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesSearch(fold cases.Caser, t model.Task, needle string) bool {
	if strings.Contains(fold.String(t.Title), needle) {
		return true
	}
	return t.Details != "" && strings.Contains(fold.String(t.Details), needle)
}

type Counts struct {
	Overdue   int
	Pending   int
	DueToday  int
	Completed int
	ByStatus  map[model.Status]int
}

// Dashboard counts over the full, unfiltered collection.
func Dashboard(tasks []model.Task, today model.Date) Counts {
	c := Counts{ByStatus: make(map[model.Status]int, len(model.Statuses()))}
	for _, s := range model.Statuses() {
		c.ByStatus[s] = 0
	}
	for _, t := range tasks {
		c.ByStatus[t.Status]++
		if t.Completed() {
			c.Completed++
			continue
		}
		c.Pending++
		if t.Due == today && t.HasDue() {
			c.DueToday++
		}
		if t.IsOverdue(today) {
			c.Overdue++
		}
	}
	return c
}
