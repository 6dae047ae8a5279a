// Package csvcodec converts task collections to and from the export CSV format.
//
// The header is always id,title,details,due,status,createdAt. On decode the
// columns are located by name, so any order is accepted and unknown columns are
// ignored. A legacy "done" column is honoured when status is missing or invalid.
package csvcodec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskpad/internal/model"
)

var ErrUnparseable = errors.New("csvcodec: unparseable import")

var Header = []string{"id", "title", "details", "due", "status", "createdAt"}

type Codec struct {
	Now   func() time.Time
	NewID func() string
}

func (c Codec) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c Codec) newID() string {
	if c.NewID != nil {
		return c.NewID()
	}
	return uuid.NewString()
}

// Encode renders tasks as CSV, rows separated by LF with no trailing newline.
func (c Codec) Encode(tasks []model.Task) string {
	lines := make([]string, 0, len(tasks)+1)
	lines = append(lines, strings.Join(Header, ","))
	for _, t := range tasks {
		row := []string{
			t.ID,
			t.Title,
			t.Details,
			t.Due.String(),
			string(t.Status),
			strconv.FormatInt(t.CreatedAt, 10),
		}
		for i := range row {
			row[i] = escape(normalizeNewlines(row[i]))
		}
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

// normalizeNewlines folds CRLF and lone CR to LF so exported fields survive
// the same folding Decode applies.
func normalizeNewlines(v string) string {
	v = strings.ReplaceAll(v, "\r\n", "\n")
	return strings.ReplaceAll(v, "\r", "\n")
}

func escape(v string) string {
	if strings.ContainsAny(v, ",\"\n\r") {
		return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
	}
	return v
}

// Decode parses CSV text into untyped records ready for the sanitizer.
func (c Codec) Decode(text string) ([]model.Record, error) {
	text = strings.TrimPrefix(text, "\ufeff")
	text = normalizeNewlines(text)

	// Stray quotes inside bare fields are kept literally and an unterminated
	// quoted field runs to the end of the input.
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows := make([][]string, 0)
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnparseable, err)
		}
		if isBlank(rec) {
			continue
		}
		rows = append(rows, rec)
	}
	if len(rows) == 0 {
		return []model.Record{}, nil
	}

	idx := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		idx[strings.TrimSpace(name)] = i
	}
	get := func(cols []string, name string) string {
		i, ok := idx[name]
		if !ok || i >= len(cols) {
			return ""
		}
		return cols[i]
	}

	out := make([]model.Record, 0, len(rows)-1)
	for _, cols := range rows[1:] {
		rec := model.Record{
			"title":     get(cols, "title"),
			"status":    string(c.status(get(cols, "status"), get(cols, "done"))),
			"createdAt": c.createdAt(get(cols, "createdAt")),
		}
		if id := get(cols, "id"); id != "" {
			rec["id"] = id
		} else {
			rec["id"] = c.newID()
		}
		if details := get(cols, "details"); details != "" {
			rec["details"] = details
		}
		if due := get(cols, "due"); due != "" {
			rec["due"] = due
		}
		out = append(out, rec)
	}
	return out, nil
}

// DecodeTasks decodes and sanitizes in one step.
func (c Codec) DecodeTasks(text string) ([]model.Task, error) {
	records, err := c.Decode(text)
	if err != nil {
		return nil, err
	}
	items := make([]any, 0, len(records))
	for _, rec := range records {
		items = append(items, rec)
	}
	return model.Sanitizer{Now: c.Now, NewID: c.NewID}.Slice(items), nil
}

func (c Codec) status(raw, done string) model.Status {
	if s, err := model.ParseStatus(raw); err == nil {
		return s
	}
	switch strings.ToLower(strings.TrimSpace(done)) {
	case "true", "1", "yes":
		return model.StatusCompleted
	default:
		return model.StatusNotStarted
	}
}

func (c Codec) createdAt(raw string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !model.MillisInRange(f) || f <= 0 {
		return c.now().UnixMilli()
	}
	return int64(f)
}

func isBlank(rec []string) bool {
	return len(rec) == 1 && strings.TrimSpace(rec[0]) == ""
}
