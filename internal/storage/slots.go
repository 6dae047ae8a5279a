package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/sandeepkv93/taskpad/internal/overdue"
)

const (
	DefaultTasksSlot  = "taskpad:v1:tasks"
	DefaultLedgerSlot = "taskpad:v1:notified"
)

// Slots persists the task collection and the notified ledger, each as a JSON
// document in its own slot. Loads never fail: a missing or corrupt slot reads
// as empty.
type Slots struct {
	store      SlotStore
	sanitizer  model.Sanitizer
	TasksSlot  string
	LedgerSlot string
}

func NewSlots(store SlotStore, sanitizer model.Sanitizer) *Slots {
	return &Slots{
		store:      store,
		sanitizer:  sanitizer,
		TasksSlot:  DefaultTasksSlot,
		LedgerSlot: DefaultLedgerSlot,
	}
}

func (s *Slots) LoadTasks(ctx context.Context) []model.Task {
	raw, ok := s.read(ctx, s.TasksSlot)
	if !ok {
		return []model.Task{}
	}
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		log.Printf("warning: discarding unreadable task slot %s: %v", s.TasksSlot, err)
		return []model.Task{}
	}
	return s.sanitizer.Document(doc)
}

func (s *Slots) SaveTasks(ctx context.Context, tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	payload, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.store.Put(ctx, s.TasksSlot, string(payload)); err != nil {
		return fmt.Errorf("write slot %s: %w", s.TasksSlot, err)
	}
	return nil
}

func (s *Slots) LoadLedger(ctx context.Context) *overdue.Ledger {
	raw, ok := s.read(ctx, s.LedgerSlot)
	if !ok {
		return overdue.NewLedger()
	}
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		log.Printf("warning: discarding unreadable ledger slot %s: %v", s.LedgerSlot, err)
		return overdue.NewLedger()
	}
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if id, isStr := item.(string); isStr {
			ids = append(ids, id)
		}
	}
	return overdue.NewLedger(ids...)
}

func (s *Slots) SaveLedger(ctx context.Context, ledger *overdue.Ledger) error {
	ids := []string{}
	if ledger != nil {
		ids = ledger.IDs()
	}
	payload, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := s.store.Put(ctx, s.LedgerSlot, string(payload)); err != nil {
		return fmt.Errorf("write slot %s: %w", s.LedgerSlot, err)
	}
	return nil
}

func (s *Slots) read(ctx context.Context, name string) (string, bool) {
	raw, err := s.store.Get(ctx, name)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("warning: read slot %s: %v", name, err)
		}
		return "", false
	}
	return raw, true
}
