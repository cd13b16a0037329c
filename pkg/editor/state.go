package editor

import (
	"fmt"
	"sync"
)

// MetaAddToHistory set to false keeps a transaction out of the undo history.
const MetaAddToHistory = "addToHistory"

// State is an immutable snapshot of the editing surface.
type State struct {
	Doc *Element
}

func NewState(doc *Element) State {
	if doc == nil {
		doc = NewDoc()
	}
	return State{Doc: doc}
}

// Tr starts a transaction on top of the state's document.
func (s State) Tr() *Transaction {
	return &Transaction{before: s.Doc, doc: s.Doc}
}

// Apply returns the state produced by tr. The transaction must have been
// started from this state.
func (s State) Apply(tr *Transaction) (State, error) {
	if tr.before != s.Doc {
		return s, fmt.Errorf("transaction was not started from the current state")
	}
	return State{Doc: tr.doc}, nil
}

// ChangeListener is notified synchronously after every dispatched transaction.
type ChangeListener func(state State, tr *Transaction)

// View owns the live state of one editing surface. Transactions are the only
// way to mutate it; every dispatch is one undo step.
type View struct {
	mu        sync.Mutex
	state     State
	listeners []ChangeListener
	history   []*Transaction
}

func NewView(state State) *View {
	return &View{state: state}
}

func (v *View) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// OnChange registers a listener and calls it once with the current state so
// derived views (decorations) start in sync.
func (v *View) OnChange(listener ChangeListener) {
	v.mu.Lock()
	v.listeners = append(v.listeners, listener)
	state := v.state
	v.mu.Unlock()
	listener(state, nil)
}

// Dispatch applies tr to the current state, records it for undo and notifies
// the listeners before returning.
func (v *View) Dispatch(tr *Transaction) error {
	v.mu.Lock()
	next, err := v.state.Apply(tr)
	if err != nil {
		v.mu.Unlock()
		return err
	}
	v.state = next
	if add, ok := tr.Meta(MetaAddToHistory); !ok || add != false {
		if tr.DocChanged() {
			v.history = append(v.history, tr)
		}
	}
	listeners := append([]ChangeListener(nil), v.listeners...)
	v.mu.Unlock()

	for _, l := range listeners {
		l(next, tr)
	}
	return nil
}

// Undo reverts the most recent history entry as a single transaction.
func (v *View) Undo() error {
	v.mu.Lock()
	if len(v.history) == 0 {
		v.mu.Unlock()
		return ErrNoHistory
	}
	last := v.history[len(v.history)-1]
	v.history = v.history[:len(v.history)-1]
	base := v.state.Doc
	v.mu.Unlock()

	undo, err := last.invert(base)
	if err != nil {
		return err
	}
	undo.SetMeta(MetaAddToHistory, false)
	return v.Dispatch(undo)
}

// HistoryDepth is the number of undoable transactions.
func (v *View) HistoryDepth() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.history)
}

// Reset replaces the document and clears the history.
func (v *View) Reset(doc *Element) {
	v.mu.Lock()
	before := v.state.Doc
	v.state = NewState(doc)
	v.history = nil
	state := v.state
	listeners := append([]ChangeListener(nil), v.listeners...)
	v.mu.Unlock()

	tr := &Transaction{before: before, doc: state.Doc}
	for _, l := range listeners {
		l(state, tr)
	}
}
