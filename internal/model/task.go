package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	ErrInvalidStatus = errors.New("model: invalid task status")
	ErrInvalidDate   = errors.New("model: invalid due date")
)

const (
	MaxTitleLen   = 120
	MaxDetailsLen = 300
)

type Status string

const (
	StatusNotStarted Status = "NotStarted"
	StatusInProgress Status = "InProgress"
	StatusPending    Status = "Pending"
	StatusBlocked    Status = "Blocked"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every status in display order.
func Statuses() []Status {
	return []Status{StatusNotStarted, StatusInProgress, StatusPending, StatusBlocked, StatusCompleted}
}

func (s Status) IsValid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusPending, StatusBlocked, StatusCompleted:
		return true
	default:
		return false
	}
}

// ParseStatus accepts the exact enumeration value, ignoring surrounding space.
func ParseStatus(raw string) (Status, error) {
	s := Status(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// Next cycles through Statuses, wrapping after Completed.
func (s Status) Next() Status {
	all := Statuses()
	for i, item := range all {
		if item == s {
			return all[(i+1)%len(all)]
		}
	}
	return StatusNotStarted
}

type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Details   string `json:"details,omitempty"`
	Due       Date   `json:"due,omitempty"`
	Status    Status `json:"status"`
	CreatedAt int64  `json:"createdAt"`
}

func (t Task) Completed() bool {
	return t.Status == StatusCompleted
}

func (t Task) HasDue() bool {
	return !t.Due.IsZero()
}

// IsOverdue reports a due date strictly before today on a task that is not completed.
func (t Task) IsOverdue(today Date) bool {
	return t.HasDue() && t.Due.Before(today) && !t.Completed()
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	return nil
}

// SortNewestFirst orders tasks by CreatedAt descending, keeping input order on ties.
func SortNewestFirst(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt > tasks[j].CreatedAt
	})
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}

func TruncateTitle(s string) string   { return truncate(s, MaxTitleLen) }
func TruncateDetails(s string) string { return truncate(s, MaxDetailsLen) }
