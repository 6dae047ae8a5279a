// Package tracker owns the task collection and the notified ledger. Every
// mutation is persisted immediately and the overdue badge is recomputed on
// every persistence event.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sandeepkv93/taskpad/internal/csvcodec"
	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/overdue"
	"github.com/sandeepkv93/taskpad/internal/query"
)

var (
	ErrEmptyTitle = errors.New("tracker: empty title")
	ErrNotFound   = errors.New("tracker: task not found")
	ErrAmbiguous  = errors.New("tracker: ambiguous id prefix")
)

// Store is the persistence adapter. Loads never fail.
type Store interface {
	LoadTasks(ctx context.Context) []model.Task
	SaveTasks(ctx context.Context, tasks []model.Task) error
	LoadLedger(ctx context.Context) *overdue.Ledger
	SaveLedger(ctx context.Context, ledger *overdue.Ledger) error
}

// Badge is implemented by hosts that can show an overdue count.
type Badge interface {
	SetBadge(n int) error
	ClearBadge() error
}

type Notifier interface {
	Notify(ctx context.Context, n overdue.Notification) error
}

type Options struct {
	Now                  func() time.Time
	Location             *time.Location
	NewID                func() string
	Badge                Badge
	Notifier             Notifier
	NotificationsEnabled bool
}

// Draft carries user input for create and edit. Fields are raw and get
// trimmed and validated by the tracker.
type Draft struct {
	Title   string
	Details string
	Due     string
}

type Tracker struct {
	mu            sync.Mutex
	store         Store
	tasks         []model.Task
	ledger        *overdue.Ledger
	now           func() time.Time
	loc           *time.Location
	newID         func() string
	badge         Badge
	notifier      Notifier
	notifications bool
}

// New loads both slots and informs the badge host of the current overdue
// count.
func New(ctx context.Context, store Store, opts Options) *Tracker {
	t := &Tracker{
		store:         store,
		now:           opts.Now,
		loc:           opts.Location,
		newID:         opts.NewID,
		badge:         opts.Badge,
		notifier:      opts.Notifier,
		notifications: opts.NotificationsEnabled,
	}
	if t.now == nil {
		t.now = time.Now
	}
	if t.loc == nil {
		t.loc = time.Local
	}
	if t.newID == nil {
		t.newID = uuid.NewString
	}
	t.tasks = store.LoadTasks(ctx)
	if t.tasks == nil {
		t.tasks = []model.Task{}
	}
	t.ledger = store.LoadLedger(ctx)
	if t.ledger == nil {
		t.ledger = overdue.NewLedger()
	}
	t.refreshBadgeLocked()
	return t
}

// Start runs the startup notification pass when notifications are enabled.
func (t *Tracker) Start(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.notifications {
		return 0, nil
	}
	return t.notifyLocked(ctx, false)
}

func (t *Tracker) sanitizer() model.Sanitizer {
	return model.Sanitizer{Now: t.now, NewID: t.newID}
}

func (t *Tracker) codec() csvcodec.Codec {
	return csvcodec.Codec{Now: t.now, NewID: t.newID}
}

// Today is the local calendar date in the tracker's timezone.
func (t *Tracker) Today() model.Date {
	return model.Today(t.now(), t.loc)
}

func (t *Tracker) Tasks() []model.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]model.Task(nil), t.tasks...)
}

func (t *Tracker) Get(id string) (model.Task, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.indexLocked(id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return t.tasks[idx], nil
}

// Resolve maps a full id or a unique id prefix to a task id.
func (t *Tracker) Resolve(target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("%w: empty id", ErrNotFound)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	match := ""
	for _, task := range t.tasks {
		if task.ID == target {
			return task.ID, nil
		}
		if strings.HasPrefix(task.ID, target) {
			if match != "" {
				return "", fmt.Errorf("%w: %q", ErrAmbiguous, target)
			}
			match = task.ID
		}
	}
	if match == "" {
		return "", fmt.Errorf("%w: %q", ErrNotFound, target)
	}
	return match, nil
}

func (t *Tracker) View(f query.Filter, search string) []model.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return query.View(t.tasks, f, search, t.Today())
}

func (t *Tracker) Counts() query.Counts {
	t.mu.Lock()
	defer t.mu.Unlock()
	return query.Dashboard(t.tasks, t.Today())
}

func (t *Tracker) Overdue() []model.Task {
	t.mu.Lock()
	defer t.mu.Unlock()
	return overdue.Set(t.tasks, t.Today())
}

func (t *Tracker) BadgeCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return overdue.Count(t.tasks, t.Today())
}

func (t *Tracker) Create(ctx context.Context, d Draft) (model.Task, error) {
	title, details, due, err := normalizeDraft(d)
	if err != nil {
		return model.Task{}, err
	}
	task := model.Task{
		ID:        t.newID(),
		Title:     title,
		Details:   details,
		Due:       due,
		Status:    model.StatusNotStarted,
		CreatedAt: t.now().UnixMilli(),
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.tasks = append([]model.Task{task}, t.tasks...)
	return task, t.persistLocked(ctx)
}

// Edit replaces title, details and due. Blank details or due clear the field.
func (t *Tracker) Edit(ctx context.Context, id string, d Draft) (model.Task, error) {
	title, details, due, err := normalizeDraft(d)
	if err != nil {
		return model.Task{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.indexLocked(id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	t.tasks[idx].Title = title
	t.tasks[idx].Details = details
	t.tasks[idx].Due = due
	return t.tasks[idx], t.persistLocked(ctx)
}

func (t *Tracker) UpdateStatus(ctx context.Context, id string, status model.Status) (model.Task, error) {
	if !status.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.indexLocked(id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	t.tasks[idx].Status = status
	return t.tasks[idx], t.persistLocked(ctx)
}

// ToggleDone flips a task between Completed and NotStarted.
func (t *Tracker) ToggleDone(ctx context.Context, id string) (model.Task, error) {
	current, err := t.Get(id)
	if err != nil {
		return model.Task{}, err
	}
	next := model.StatusCompleted
	if current.Completed() {
		next = model.StatusNotStarted
	}
	return t.UpdateStatus(ctx, id, next)
}

func (t *Tracker) Delete(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	idx := t.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	t.tasks = append(t.tasks[:idx:idx], t.tasks[idx+1:]...)
	return t.persistLocked(ctx)
}

// ClearCompleted removes every completed task and reports how many went.
func (t *Tracker) ClearCompleted(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	kept := make([]model.Task, 0, len(t.tasks))
	for _, task := range t.tasks {
		if !task.Completed() {
			kept = append(kept, task)
		}
	}
	removed := len(t.tasks) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	t.tasks = kept
	return removed, t.persistLocked(ctx)
}

// Import replaces the collection with the decoded contents of text. On a
// decode error the collection is left untouched.
func (t *Tracker) Import(ctx context.Context, text string) (int, csvcodec.Format, error) {
	tasks, format, err := t.codec().Import(text)
	if err != nil {
		return 0, format, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.tasks = tasks
	return len(tasks), format, t.persistLocked(ctx)
}

func (t *Tracker) ExportCSV() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.codec().Encode(t.tasks)
}

// ExportJSON renders the collection in the storage slot shape, indented.
func (t *Tracker) ExportJSON() ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out, err := json.MarshalIndent(t.tasks, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return out, nil
}

func (t *Tracker) NotificationsEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notifications
}

// EnableNotifications turns notifications on and re-notifies every task that
// is overdue right now.
func (t *Tracker) EnableNotifications(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.notifications = true
	return t.notifyLocked(ctx, true)
}

func (t *Tracker) DisableNotifications() {
	t.mu.Lock()
	t.notifications = false
	t.mu.Unlock()
}

// NotifyOverdue dispatches pending overdue notifications and records them in
// the ledger. It is a no-op without a notifier.
func (t *Tracker) NotifyOverdue(ctx context.Context, force bool) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.notifyLocked(ctx, force)
}

// Recheck re-evaluates overdue state after the date may have changed: the
// badge is refreshed and, when enabled, unnotified tasks are notified.
func (t *Tracker) Recheck(ctx context.Context) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.refreshBadgeLocked()
	if !t.notifications {
		return 0, nil
	}
	return t.notifyLocked(ctx, false)
}

// Ledger returns the ids already notified, in insertion order.
func (t *Tracker) Ledger() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.ledger.IDs()
}

func (t *Tracker) notifyLocked(ctx context.Context, force bool) (int, error) {
	if t.notifier == nil {
		return 0, nil
	}
	pending := overdue.Pending(t.tasks, t.ledger, t.Today(), force)
	sent := 0
	for _, task := range pending {
		if err := t.notifier.Notify(ctx, overdue.NotificationFor(task)); err != nil {
			log.Printf("warning: notify task %s: %v", task.ID, err)
			continue
		}
		t.ledger.Add(task.ID)
		sent++
	}
	if sent == 0 {
		return 0, nil
	}
	if err := t.store.SaveLedger(ctx, t.ledger); err != nil {
		return sent, fmt.Errorf("persist ledger: %w", err)
	}
	return sent, nil
}

// persistLocked saves the collection and refreshes the badge. A failed save
// keeps the in-memory change and is reported to the caller.
func (t *Tracker) persistLocked(ctx context.Context) error {
	err := t.store.SaveTasks(ctx, t.tasks)
	t.refreshBadgeLocked()
	if err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

func (t *Tracker) refreshBadgeLocked() {
	if t.badge == nil {
		return
	}
	var err error
	if n := overdue.Count(t.tasks, t.Today()); n > 0 {
		err = t.badge.SetBadge(n)
	} else {
		err = t.badge.ClearBadge()
	}
	if err != nil {
		log.Printf("warning: update badge: %v", err)
	}
}

func (t *Tracker) indexLocked(id string) int {
	for i, task := range t.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func normalizeDraft(d Draft) (string, string, model.Date, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return "", "", "", ErrEmptyTitle
	}
	due, err := model.ParseDate(d.Due)
	if err != nil {
		return "", "", "", err
	}
	return model.TruncateTitle(title), model.TruncateDetails(strings.TrimSpace(d.Details)), due, nil
}
