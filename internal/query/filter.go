package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskpad/internal/model"
)

var ErrUnknownFilter = errors.New("query: unknown filter")

type filterKind uint8

const (
	kindAll filterKind = iota
	kindDueToday
	kindUpcoming
	kindCompleted
	kindOverdue
	kindPending
	kindByStatus
)

// Filter selects a subset of the collection. Construct one with the package
// functions; the zero value is All.
type Filter struct {
	kind   filterKind
	status model.Status
}

func All() Filter      { return Filter{kind: kindAll} }
func DueToday() Filter { return Filter{kind: kindDueToday} }
func Upcoming() Filter { return Filter{kind: kindUpcoming} }
func Done() Filter     { return Filter{kind: kindCompleted} }
func Overdue() Filter  { return Filter{kind: kindOverdue} }
func Pending() Filter  { return Filter{kind: kindPending} }

func ByStatus(s model.Status) (Filter, error) {
	if !s.IsValid() {
		return Filter{}, fmt.Errorf("%w: %q", model.ErrInvalidStatus, s)
	}
	return Filter{kind: kindByStatus, status: s}, nil
}

// Presets are the filters offered as chips, in display order.
func Presets() []Filter {
	return []Filter{All(), DueToday(), Upcoming(), Overdue(), Pending(), Done()}
}

// ParseFilter reads the textual names used by the CLI and the command palette:
// all, today, upcoming, done, overdue, pending, status:<Status>.
func ParseFilter(raw string) (Filter, error) {
	name := strings.TrimSpace(raw)
	switch strings.ToLower(name) {
	case "", "all":
		return All(), nil
	case "today":
		return DueToday(), nil
	case "upcoming":
		return Upcoming(), nil
	case "done", "completed":
		return Done(), nil
	case "overdue":
		return Overdue(), nil
	case "pending":
		return Pending(), nil
	}
	if len(name) > len("status:") && strings.EqualFold(name[:len("status:")], "status:") {
		s, err := model.ParseStatus(name[len("status:"):])
		if err != nil {
			return Filter{}, err
		}
		return ByStatus(s)
	}
	return Filter{}, fmt.Errorf("%w: %q", ErrUnknownFilter, raw)
}

func (f Filter) String() string {
	switch f.kind {
	case kindDueToday:
		return "today"
	case kindUpcoming:
		return "upcoming"
	case kindCompleted:
		return "done"
	case kindOverdue:
		return "overdue"
	case kindPending:
		return "pending"
	case kindByStatus:
		return "status:" + string(f.status)
	default:
		return "all"
	}
}

// Status returns the status a ByStatus filter selects.
func (f Filter) Status() (model.Status, bool) {
	return f.status, f.kind == kindByStatus
}

func (f Filter) Match(t model.Task, today model.Date) bool {
	switch f.kind {
	case kindDueToday:
		return t.HasDue() && t.Due == today && !t.Completed()
	case kindUpcoming:
		return t.HasDue() && t.Due.After(today) && !t.Completed()
	case kindCompleted:
		return t.Completed()
	case kindOverdue:
		return t.IsOverdue(today)
	case kindPending:
		return !t.Completed()
	case kindByStatus:
		return t.Status == f.status
	default:
		return true
	}
}
