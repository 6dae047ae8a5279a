package update

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/notify"
	"github.com/sandeepkv93/taskpad/internal/query"
	"github.com/sandeepkv93/taskpad/internal/scheduler"
	"github.com/sandeepkv93/taskpad/internal/tracker"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	New        string
	Edit       string
	Toggle     string
	Cycle      string
	Delete     string
	ClearDone  string
	Filter     string
	FilterBack string
	Notify     string
	Palette    string
	Help       string
	Quit       string
}

type FormField int

const (
	FieldTitle FormField = iota
	FieldDetails
	FieldDue
	fieldCount
)

type FormState struct {
	Active    bool
	EditingID string
	Focus     FormField
	Err       string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Options struct {
	Context   context.Context
	Scheduler *scheduler.Engine
	Recheck   time.Duration
	Badge     *notify.Counter
	Recorder  *notify.Recorder
	Now       func() time.Time
	Location  *time.Location
	ReadFile  func(string) ([]byte, error)
	WriteFile func(string, []byte) error
}

type Model struct {
	Tracker        *tracker.Tracker
	Filter         query.Filter
	Search         string
	SelectedTaskID string
	Form           FormState
	Palette        CommandPaletteState
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Scheduler      *scheduler.Engine

	ctx       context.Context
	recheck   time.Duration
	badge     *notify.Counter
	recorder  *notify.Recorder
	now       func() time.Time
	loc       *time.Location
	readFile  func(string) ([]byte, error)
	writeFile func(string, []byte) error

	width      int
	titleBadge int
	visible    []model.Task

	// Bubble components used for rich TUI controls
	taskTable     table.Model
	titleInput    textinput.Model
	dueInput      textinput.Model
	detailsArea   textarea.Model
	commandInput  textinput.Model
	helpModel     help.Model
	detailsViewer viewport.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type WakeMsg struct {
	Wake scheduler.Wake
}

// NotifiedMsg reports the outcome of a notification pass run off the update
// loop.
type NotifiedMsg struct {
	Sent   int
	Forced bool
	Err    error
}

type ImportFileMsg struct {
	Path string
	Text string
	Err  error
}

func writeFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func NewModel(tr *tracker.Tracker, opts Options) Model {
	m := Model{
		Tracker:   tr,
		Filter:    query.All(),
		Scheduler: opts.Scheduler,
		ctx:       opts.Context,
		recheck:   opts.Recheck,
		badge:     opts.Badge,
		recorder:  opts.Recorder,
		now:       opts.Now,
		loc:       opts.Location,
		readFile:  opts.ReadFile,
		writeFile: opts.WriteFile,
		Keys: GlobalKeyMap{
			New:        "n",
			Edit:       "e",
			Toggle:     " ",
			Cycle:      "s",
			Delete:     "d",
			ClearDone:  "C",
			Filter:     "f",
			FilterBack: "F",
			Notify:     "N",
			Palette:    "/",
			Help:       "?",
			Quit:       "q",
		},
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.loc == nil {
		m.loc = time.Local
	}
	if m.readFile == nil {
		m.readFile = os.ReadFile
	}
	if m.writeFile == nil {
		m.writeFile = writeFile
	}
	if m.recheck <= 0 {
		m.recheck = 15 * time.Minute
	}
	m.initBubbleComponents()
	m.armWakes()
	m.refresh()
	m.titleBadge = m.badgeCount()
	return m
}

func (m *Model) initBubbleComponents() {
	m.taskTable = table.New(
		table.WithColumns(taskColumns(58)),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	m.titleInput = textinput.New()
	m.titleInput.Prompt = "> "
	m.titleInput.CharLimit = model.MaxTitleLen
	m.titleInput.Width = 48
	m.titleInput.Placeholder = "What needs doing?"

	m.detailsArea = textarea.New()
	m.detailsArea.SetWidth(52)
	m.detailsArea.SetHeight(5)
	m.detailsArea.ShowLineNumbers = false
	m.detailsArea.CharLimit = model.MaxDetailsLen
	m.detailsArea.Placeholder = "Details (markdown, optional)"

	m.dueInput = textinput.New()
	m.dueInput.Prompt = "> "
	m.dueInput.CharLimit = len(model.DateLayout)
	m.dueInput.Width = 12
	m.dueInput.Placeholder = model.DateLayout

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.detailsViewer = viewport.New(54, 10)
}

func taskColumns(width int) []table.Column {
	title := width - 2 - 11 - 24 - 8
	if title < 12 {
		title = 12
	}
	return []table.Column{
		{Title: " ", Width: 2},
		{Title: "Title", Width: title},
		{Title: "Status", Width: 11},
		{Title: "Due", Width: 24},
	}
}
