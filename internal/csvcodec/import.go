package csvcodec

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskpad/internal/model"
)

type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Detect treats text whose trimmed content opens with "[" as a JSON array and
// anything else as CSV.
func Detect(text string) Format {
	if strings.HasPrefix(strings.TrimSpace(strings.TrimPrefix(text, "\ufeff")), "[") {
		return FormatJSON
	}
	return FormatCSV
}

// Import decodes an import file in either format and sanitizes the result.
// Nothing is returned on error so callers can leave their state untouched.
func (c Codec) Import(text string) ([]model.Task, Format, error) {
	format := Detect(text)
	if format == FormatCSV {
		tasks, err := c.DecodeTasks(text)
		return tasks, format, err
	}
	var items []any
	if err := json.Unmarshal([]byte(strings.TrimPrefix(text, "\ufeff")), &items); err != nil {
		return nil, format, fmt.Errorf("%w: %v", ErrUnparseable, err)
	}
	return model.Sanitizer{Now: c.Now, NewID: c.NewID}.Slice(items), format, nil
}
