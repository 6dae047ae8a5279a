package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/query"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeStatus Type = "status"
	TypeDelete Type = "rm"
	TypeFilter Type = "filter"
	TypeSearch Type = "search"
	TypeImport Type = "import"
	TypeExport Type = "export"
	TypeClear  Type = "clear"
	TypeNotify Type = "notify"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs carries a title and an optional due:YYYY-MM-DD token.
type AddArgs struct {
	Title string
	Due   string
}

// Target is a task id, an unambiguous id prefix, or "selected".
type StatusArgs struct {
	Target string
	Status model.Status
}

type DeleteArgs struct {
	Target string
}

type FilterArgs struct {
	Filter query.Filter
}

type SearchArgs struct {
	Text string
}

type ImportArgs struct {
	Path string
}

type ExportArgs struct {
	Format string
	Path   string
}

type NotifyArgs struct {
	Enable bool
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Status *StatusArgs
	Delete *DeleteArgs
	Filter *FilterArgs
	Search *SearchArgs
	Import *ImportArgs
	Export *ExportArgs
	Notify *NotifyArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeStatus:
		return parseStatus(input, args)
	case TypeDelete, "delete":
		return parseDelete(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSearch:
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Text: strings.Join(args, " ")}}, nil
	case TypeImport:
		return parseImport(input, args)
	case TypeExport:
		return parseExport(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeNotify:
		return parseNotify(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	words := make([]string, 0, len(args))
	due := ""
	for _, arg := range args {
		if strings.HasPrefix(strings.ToLower(arg), "due:") {
			due = strings.TrimSpace(arg[len("due:"):])
			continue
		}
		words = append(words, arg)
	}
	title := strings.TrimSpace(strings.Join(words, " "))
	if title == "" {
		return Command{}, invalid("add requires a title")
	}
	if _, err := model.ParseDate(due); err != nil {
		return Command{}, invalid("due must be YYYY-MM-DD, got %q", due)
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Due: due}}, nil
}

func parseStatus(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("status requires target and status")
	}
	status, ok := lookupStatus(args[1])
	if !ok {
		return Command{}, invalid("unknown status %q", args[1])
	}
	return Command{Type: TypeStatus, Raw: raw, Status: &StatusArgs{Target: args[0], Status: status}}, nil
}

// lookupStatus matches a status name ignoring case, so "inprogress" works in
// the palette even though stored values are exact.
func lookupStatus(name string) (model.Status, bool) {
	for _, s := range model.Statuses() {
		if strings.EqualFold(string(s), name) {
			return s, true
		}
	}
	return "", false
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("rm requires a target")
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{Target: args[0]}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("filter requires one of all, today, upcoming, done, overdue, pending, status:<Status>")
	}
	f, err := query.ParseFilter(args[0])
	if err != nil {
		return Command{}, invalid("%v", err)
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseImport(raw string, args []string) (Command, error) {
	path := strings.TrimSpace(strings.Join(args, " "))
	if path == "" {
		return Command{}, invalid("import requires a file path")
	}
	return Command{Type: TypeImport, Raw: raw, Import: &ImportArgs{Path: path}}, nil
}

func parseExport(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, invalid("export requires a format")
	}
	format := strings.ToLower(args[0])
	if format != "csv" && format != "json" {
		return Command{}, invalid("export format must be csv or json, got %q", args[0])
	}
	path := strings.TrimSpace(strings.Join(args[1:], " "))
	if path == "" {
		path = "tasks." + format
	}
	return Command{Type: TypeExport, Raw: raw, Export: &ExportArgs{Format: format, Path: path}}, nil
}

func parseNotify(raw string, args []string) (Command, error) {
	enable := true
	if len(args) > 0 {
		switch strings.ToLower(args[0]) {
		case "on", "enable", "yes":
		case "off", "disable", "no":
			enable = false
		default:
			return Command{}, invalid("notify takes on or off, got %q", args[0])
		}
	}
	return Command{Type: TypeNotify, Raw: raw, Notify: &NotifyArgs{Enable: enable}}, nil
}
