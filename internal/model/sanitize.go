package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotRecord marks an element that cannot be coerced into a task at all.
var ErrNotRecord = errors.New("model: element is not a record")

// Record is an untyped task document as produced by encoding/json or the CSV decoder.
type Record = map[string]any

// Recovery lists the fields a record was missing or had to be repaired on.
type Recovery uint8

const (
	RecoveredID Recovery = 1 << iota
	RecoveredStatus
	RecoveredCreatedAt
	TruncatedTitle
	TruncatedDetails
)

func (r Recovery) Has(flag Recovery) bool { return r&flag != 0 }

// Sanitizer coerces untyped records into tasks. Zero value is usable.
type Sanitizer struct {
	Now   func() time.Time
	NewID func() string
}

func (s Sanitizer) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s Sanitizer) newID() string {
	if s.NewID != nil {
		return s.NewID()
	}
	return uuid.NewString()
}

// Document sanitizes a whole decoded document. Anything other than an array
// yields an empty collection.
func (s Sanitizer) Document(doc any) []Task {
	items, ok := doc.([]any)
	if !ok {
		return []Task{}
	}
	return s.Slice(items)
}

// Slice drops non-record elements, coerces the rest and sorts newest first.
func (s Sanitizer) Slice(items []any) []Task {
	out := make([]Task, 0, len(items))
	for _, item := range items {
		task, _, err := s.Record(item)
		if err != nil {
			continue
		}
		out = append(out, task)
	}
	SortNewestFirst(out)
	return out
}

// Record coerces a single element. The returned Recovery reports which fields
// were defaulted or truncated; ErrNotRecord is returned for non-objects.
func (s Sanitizer) Record(v any) (Task, Recovery, error) {
	rec, ok := v.(Record)
	if !ok || rec == nil {
		return Task{}, 0, fmt.Errorf("%w: %T", ErrNotRecord, v)
	}
	var rc Recovery
	var out Task

	if id := rec["id"]; truthy(id) {
		out.ID = stringify(id)
	} else {
		out.ID = s.newID()
		rc |= RecoveredID
	}

	title := ""
	if v := rec["title"]; truthy(v) {
		title = stringify(v)
	}
	out.Title = TruncateTitle(title)
	if out.Title != title {
		rc |= TruncatedTitle
	}

	if v := rec["details"]; truthy(v) {
		details := stringify(v)
		out.Details = TruncateDetails(details)
		if out.Details != details {
			rc |= TruncatedDetails
		}
	}

	if v := rec["due"]; truthy(v) {
		out.Due = Date(stringify(v))
	}

	out.Status = StatusNotStarted
	if raw, isStr := rec["status"].(string); isStr && Status(raw).IsValid() {
		out.Status = Status(raw)
	} else {
		if truthy(rec["done"]) {
			out.Status = StatusCompleted
		}
		rc |= RecoveredStatus
	}

	created := math.NaN()
	if v := rec["createdAt"]; truthy(v) {
		created = toNumber(v)
	}
	if !MillisInRange(created) || created == 0 {
		out.CreatedAt = s.now().UnixMilli()
		rc |= RecoveredCreatedAt
	} else {
		out.CreatedAt = int64(created)
	}
	return out, rc, nil
}

// MillisInRange reports whether f is a finite millisecond count that fits in
// an int64.
func MillisInRange(f float64) bool {
	return !math.IsNaN(f) && math.Abs(f) < 1<<63
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0 && !math.IsNaN(x)
	case json.Number:
		f, err := x.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	case int:
		return x != 0
	case int64:
		return x != 0
	default:
		return true
	}
}

func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		if math.Abs(x) < 1e21 {
			return strconv.FormatFloat(x, 'f', -1, 64)
		}
		return strconv.FormatFloat(x, 'g', -1, 64)
	case json.Number:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return fmt.Sprint(x)
	}
}

func toNumber(v any) float64 {
	switch x := v.(type) {
	case float64:
		return x
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case bool:
		if x {
			return 1
		}
		return 0
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
