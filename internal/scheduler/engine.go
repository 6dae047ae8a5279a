// Package scheduler wakes the application when overdue state may have changed.
// The engine holds at most one pending wake per id; scheduling an id that is
// already queued moves it. Due wakes go out on a buffered channel, and when
// the consumer falls behind they are dropped and counted rather than blocking.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrInvalidWakeTime = errors.New("scheduler: invalid wake time")
	ErrStopped         = errors.New("scheduler: engine stopped")
)

type Reason string

const (
	ReasonMidnight Reason = "midnight"
	ReasonRecheck  Reason = "recheck"
)

type Wake struct {
	ID     string
	Reason Reason
	At     time.Time
}

// entry is a queued wake; pos tracks its heap slot so it can be moved in place.
type entry struct {
	wake Wake
	pos  int
}

type wakeQueue []*entry

func (q wakeQueue) Len() int { return len(q) }

func (q wakeQueue) Less(i, j int) bool {
	if q[i].wake.At.Equal(q[j].wake.At) {
		return q[i].wake.ID < q[j].wake.ID
	}
	return q[i].wake.At.Before(q[j].wake.At)
}

func (q wakeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].pos = i
	q[j].pos = j
}

func (q *wakeQueue) Push(x any) {
	en := x.(*entry)
	en.pos = len(*q)
	*q = append(*q, en)
}

func (q *wakeQueue) Pop() any {
	old := *q
	en := old[len(old)-1]
	old[len(old)-1] = nil
	*q = old[:len(old)-1]
	en.pos = -1
	return en
}

type runState int

const (
	idle runState = iota
	running
	stopped
)

type Engine struct {
	mu    sync.Mutex
	queue wakeQueue
	byID  map[string]*entry
	state runState
	now   func() time.Time

	out  chan Wake
	kick chan struct{}
	quit chan struct{}
	done chan struct{}

	dropped atomic.Uint64
}

func NewEngine(bufferSize int) *Engine {
	return &Engine{
		byID: make(map[string]*entry),
		now:  time.Now,
		out:  make(chan Wake, max(bufferSize, 1)),
		kick: make(chan struct{}, 1),
		quit: make(chan struct{}),
		done: make(chan struct{}),
	}
}

// C is closed once the engine stops.
func (e *Engine) C() <-chan Wake {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != idle {
		return
	}
	e.state = running
	go e.run()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if e.state != running {
		e.state = stopped
		e.mu.Unlock()
		return
	}
	e.state = stopped
	close(e.quit)
	e.mu.Unlock()
	<-e.done
}

// Schedule queues w, replacing any pending wake with the same id.
func (e *Engine) Schedule(w Wake) error {
	if w.At.IsZero() {
		return ErrInvalidWakeTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == stopped {
		return ErrStopped
	}
	if en, ok := e.byID[w.ID]; ok {
		en.wake = w
		heap.Fix(&e.queue, en.pos)
	} else {
		en := &entry{wake: w}
		heap.Push(&e.queue, en)
		e.byID[w.ID] = en
	}
	e.poke()
	return nil
}

// Cancel drops the pending wake with the given id, if any.
func (e *Engine) Cancel(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	en, ok := e.byID[id]
	if !ok {
		return false
	}
	heap.Remove(&e.queue, en.pos)
	delete(e.byID, id)
	e.poke()
	return true
}

// When reports the time the wake with the given id is due.
func (e *Engine) When(id string) (time.Time, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if en, ok := e.byID[id]; ok {
		return en.wake.At, true
	}
	return time.Time{}, false
}

func (e *Engine) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}

func (e *Engine) Dropped() uint64 {
	return e.dropped.Load()
}

func (e *Engine) run() {
	defer close(e.done)
	defer close(e.out)

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for {
		e.arm(timer)
		select {
		case <-e.quit:
			return
		case <-e.kick:
		case <-timer.C:
			for _, w := range e.takeDue() {
				select {
				case e.out <- w:
				default:
					e.dropped.Add(1)
				}
			}
		}
	}
}

// arm points timer at the earliest pending wake, or parks it when the queue
// is empty. Reset and Stop discard any stale fire.
func (e *Engine) arm(timer *time.Timer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		timer.Stop()
		return
	}
	timer.Reset(max(e.queue[0].wake.At.Sub(e.now()), 0))
}

func (e *Engine) takeDue() []Wake {
	e.mu.Lock()
	defer e.mu.Unlock()
	now := e.now()
	var due []Wake
	for len(e.queue) > 0 && !e.queue[0].wake.At.After(now) {
		en := heap.Pop(&e.queue).(*entry)
		delete(e.byID, en.wake.ID)
		due = append(due, en.wake)
	}
	return due
}

func (e *Engine) poke() {
	select {
	case e.kick <- struct{}{}:
	default:
	}
}
