package notify

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/sandeepkv93/taskpad/internal/overdue"
)

type Notifier interface {
	Notify(ctx context.Context, n overdue.Notification) error
}

// Log writes notifications to a logger. It is the fallback when no desktop
// host is available.
type Log struct {
	Logger *log.Logger
}

func (l Log) Notify(_ context.Context, n overdue.Notification) error {
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf("%s: %s [%s]", n.Title, n.Body, n.Tag)
	return nil
}

// Recorder keeps the most recent notifications for display.
type Recorder struct {
	mu    sync.Mutex
	limit int
	items []overdue.Notification
}

func NewRecorder(limit int) *Recorder {
	if limit <= 0 {
		limit = 1
	}
	return &Recorder{limit: limit}
}

func (r *Recorder) Notify(_ context.Context, n overdue.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
	if len(r.items) > r.limit {
		r.items = r.items[len(r.items)-r.limit:]
	}
	return nil
}

// Recent returns recorded notifications, newest last.
func (r *Recorder) Recent() []overdue.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]overdue.Notification(nil), r.items...)
}

// Fanout delivers to every notifier. It fails only when all of them fail, so
// one broken host does not block the others from being recorded.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, n overdue.Notification) error {
	var errs []error
	for _, target := range f {
		if err := target.Notify(ctx, n); err != nil {
			errs = append(errs, err)
		}
	}
	if len(f) > 0 && len(errs) == len(f) {
		return errors.Join(errs...)
	}
	return nil
}

// Counter is an in-process badge. OnChange, when set, observes every update.
type Counter struct {
	mu       sync.Mutex
	n        int
	OnChange func(int)
}

func (c *Counter) SetBadge(n int) error {
	c.set(n)
	return nil
}

func (c *Counter) ClearBadge() error {
	c.set(0)
	return nil
}

func (c *Counter) set(n int) {
	c.mu.Lock()
	c.n = n
	hook := c.OnChange
	c.mu.Unlock()
	if hook != nil {
		hook(n)
	}
}

func (c *Counter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}
