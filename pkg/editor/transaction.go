package editor

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRange = errors.New("replace range must lie inside a single text node")
	ErrNoHistory    = errors.New("nothing to undo")
)

// ReplaceStep replaces the characters in [From, To) with Text. The range must
// be contained in one text leaf, so a step never changes the tree shape.
type ReplaceStep struct {
	From int
	To   int
	Text string
}

// Apply returns the new document and the step that reverts this one.
func (s ReplaceStep) Apply(doc *Element) (*Element, ReplaceStep, error) {
	if s.From < 0 || s.To < s.From {
		return nil, ReplaceStep{}, fmt.Errorf("%w: [%d,%d)", ErrInvalidRange, s.From, s.To)
	}
	next, removed, ok := replaceIn(doc, 0, s)
	if !ok {
		return nil, ReplaceStep{}, fmt.Errorf("%w: [%d,%d)", ErrInvalidRange, s.From, s.To)
	}
	inverse := ReplaceStep{From: s.From, To: s.From + runeLen(s.Text), Text: removed}
	return next, inverse, nil
}

// replaceIn rebuilds only the path from el down to the affected text leaf.
func replaceIn(el *Element, contentStart int, s ReplaceStep) (*Element, string, bool) {
	pos := contentStart
	for i, child := range el.Children {
		size := child.Size()
		switch n := child.(type) {
		case *Text:
			if s.From >= pos && s.To <= pos+size {
				runes := []rune(n.Text)
				removed := string(runes[s.From-pos : s.To-pos])
				updated := *n
				updated.Text = string(runes[:s.From-pos]) + s.Text + string(runes[s.To-pos:])
				cp := copyElement(el)
				cp.Children[i] = &updated
				return cp, removed, true
			}
		case *Element:
			if s.From > pos && s.To < pos+size {
				inner, removed, ok := replaceIn(n, pos+1, s)
				if ok {
					cp := copyElement(el)
					cp.Children[i] = inner
					return cp, removed, true
				}
			}
		}
		pos += size
	}
	return nil, "", false
}

// Transaction groups steps that are applied and undone as one unit.
type Transaction struct {
	before   *Element
	doc      *Element
	steps    []ReplaceStep
	inverses []ReplaceStep
	meta     map[string]interface{}
}

// ReplaceText appends a step to the transaction and applies it to the
// pending document immediately.
func (tr *Transaction) ReplaceText(from, to int, text string) error {
	next, inverse, err := ReplaceStep{From: from, To: to, Text: text}.Apply(tr.doc)
	if err != nil {
		return err
	}
	tr.doc = next
	tr.steps = append(tr.steps, ReplaceStep{From: from, To: to, Text: text})
	tr.inverses = append(tr.inverses, inverse)
	return nil
}

// Doc is the document with all steps so far applied.
func (tr *Transaction) Doc() *Element {
	return tr.doc
}

// Before is the document the transaction was started from.
func (tr *Transaction) Before() *Element {
	return tr.before
}

func (tr *Transaction) Steps() []ReplaceStep {
	return tr.steps
}

// DocChanged reports whether at least one step was applied.
func (tr *Transaction) DocChanged() bool {
	return len(tr.steps) > 0
}

func (tr *Transaction) SetMeta(key string, value interface{}) *Transaction {
	if tr.meta == nil {
		tr.meta = make(map[string]interface{})
	}
	tr.meta[key] = value
	return tr
}

func (tr *Transaction) Meta(key string) (interface{}, bool) {
	v, ok := tr.meta[key]
	return v, ok
}

// invert builds the transaction that reverts tr on top of base.
func (tr *Transaction) invert(base *Element) (*Transaction, error) {
	undo := &Transaction{before: base, doc: base}
	for i := len(tr.inverses) - 1; i >= 0; i-- {
		inv := tr.inverses[i]
		if err := undo.ReplaceText(inv.From, inv.To, inv.Text); err != nil {
			return nil, err
		}
	}
	return undo, nil
}
