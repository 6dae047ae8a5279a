package overdue

// Ledger is the set of task ids already notified as overdue. It remembers
// insertion order so the persisted array is stable.
type Ledger struct {
	seen  map[string]struct{}
	order []string
}

func NewLedger(ids ...string) *Ledger {
	l := &Ledger{seen: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		l.Add(id)
	}
	return l
}

func (l *Ledger) Has(id string) bool {
	_, ok := l.seen[id]
	return ok
}

// Add records id and reports whether it was new.
func (l *Ledger) Add(id string) bool {
	if id == "" || l.Has(id) {
		return false
	}
	if l.seen == nil {
		l.seen = make(map[string]struct{})
	}
	l.seen[id] = struct{}{}
	l.order = append(l.order, id)
	return true
}

func (l *Ledger) Len() int { return len(l.order) }

func (l *Ledger) IDs() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}
