package ledger

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrNegativeIndex = errors.New("checkbox index must be non-negative")

// Entry is the latest recorded state of one checkbox ordinal.
type Entry struct {
	CheckboxIndex int  `json:"checkbox_index"`
	NewChecked    bool `json:"new_checked"`
}

// Ledger accumulates checkbox modifications keyed by ordinal index. A later
// record for the same index overwrites the earlier one; entries are never
// pruned, even when a checkbox returns to its original state.
type Ledger struct {
	mu      sync.RWMutex
	entries map[int]bool
}

func New() *Ledger {
	return &Ledger{entries: make(map[int]bool)}
}

// FromSnapshot builds a ledger from an index -> state mapping.
func FromSnapshot(snapshot map[int]bool) (*Ledger, error) {
	l := New()
	for index, checked := range snapshot {
		if err := l.Record(index, checked); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (l *Ledger) Record(index int, checked bool) error {
	if index < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeIndex, index)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[index] = checked
	return nil
}

func (l *Ledger) Get(index int) (bool, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	checked, ok := l.entries[index]
	return checked, ok
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Entries lists the modifications ordered by index.
func (l *Ledger) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Entry, 0, len(l.entries))
	for index, checked := range l.entries {
		out = append(out, Entry{CheckboxIndex: index, NewChecked: checked})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CheckboxIndex < out[j].CheckboxIndex
	})
	return out
}

// Snapshot returns a copy of the index -> state mapping used for replay.
func (l *Ledger) Snapshot() map[int]bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make(map[int]bool, len(l.entries))
	for index, checked := range l.entries {
		out[index] = checked
	}
	return out
}

func (l *Ledger) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make(map[int]bool)
}
