package checkbox

import (
	"sync"

	"docedit-be/pkg/editor"
)

// ToggleHandler receives every applied toggle, synchronously with the edit.
type ToggleHandler func(Toggle)

// Option configures a Controller.
type Option func(*Controller)

// WithMaxDistance overrides DefaultMaxDistance.
func WithMaxDistance(d int) Option {
	return func(c *Controller) {
		c.maxDistance = d
	}
}

// WithToggleHandler registers a handler at construction time.
func WithToggleHandler(h ToggleHandler) Option {
	return func(c *Controller) {
		c.handlers = append(c.handlers, h)
	}
}

// Controller wraps an editing surface and turns clicks into checkbox toggles.
// Every interaction runs under one lock, so the Nth click always observes the
// document produced by the (N-1)th toggle.
type Controller struct {
	mu          sync.Mutex
	view        *editor.View
	maxDistance int
	handlers    []ToggleHandler
}

func NewController(view *editor.View, opts ...Option) *Controller {
	c := &Controller{view: view, maxDistance: DefaultMaxDistance}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnToggle registers a handler for subsequent toggles.
func (c *Controller) OnToggle(h ToggleHandler) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.handlers = append(c.handlers, h)
}

func (c *Controller) View() *editor.View {
	return c.view
}

func (c *Controller) MaxDistance() int {
	return c.maxDistance
}

// Click resolves pos with the configured tolerance.
func (c *Controller) Click(pos int) (Toggle, bool) {
	return c.ClickWithin(pos, c.maxDistance)
}

// ClickWithin resolves pos to a checkbox, flips it and notifies the handlers.
// A click that resolves to nothing, or whose target no longer holds a glyph,
// changes nothing and emits nothing.
func (c *Controller) ClickWithin(pos, maxDistance int) (Toggle, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	state := c.view.State()
	resolved, ok := Resolve(state.Doc, pos, maxDistance)
	if !ok {
		return Toggle{}, false
	}
	tr, toggle, ok := BuildToggle(state, resolved)
	if !ok {
		return Toggle{}, false
	}
	if err := c.view.Dispatch(tr); err != nil {
		return Toggle{}, false
	}
	for _, h := range c.handlers {
		h(toggle)
	}
	return toggle, true
}

// Edit runs an ordinary edit through the same lock as clicks.
func (c *Controller) Edit(build func(tr *editor.Transaction) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	tr := c.view.State().Tr()
	if err := build(tr); err != nil {
		return err
	}
	return c.view.Dispatch(tr)
}

// Reset replaces the document, e.g. when the session goes back to the original.
func (c *Controller) Reset(doc *editor.Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.view.Reset(doc)
}
