// Package ui is the boundary between page controllers and whatever renders
// the page. Controllers read inputs and write display state through a
// Surface; events reach them through a Dispatcher.
package ui

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownEvent is returned when no handler is bound to an event name.
var ErrUnknownEvent = errors.New("unknown event")

// Surface is the presentation layer a controller reads from and writes to.
type Surface interface {
	// Field returns the current value of an input.
	Field(id string) string
	// SetField replaces the value of an input.
	SetField(id, value string)
	// SetText replaces the displayed text of an element.
	SetText(id, value string)
	// SetWidth sets a percentage-width indicator.
	SetWidth(id string, percent int)
	// SetVisible shows or hides an element.
	SetVisible(id string, visible bool)
}

// Handler reacts to one event against a surface.
type Handler func(s Surface) error

// Dispatcher maps event names to handlers.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

// On binds handler to event, replacing any earlier binding.
// PRE: event is non-empty; handler is non-nil
func (d *Dispatcher) On(event string, handler Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[event] = handler
}

// Fire runs the handler bound to event.
// PRE: none
// POST: returns ErrUnknownEvent (wrapped) if nothing is bound
func (d *Dispatcher) Fire(event string, s Surface) error {
	d.mu.RLock()
	h, ok := d.handlers[event]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, event)
	}
	return h(s)
}

// Events returns the bound event names, sorted.
func (d *Dispatcher) Events() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// State is an in-memory Surface. Page sessions keep one per page view.
type State struct {
	Fields  map[string]string
	Texts   map[string]string
	Widths  map[string]int
	Visible map[string]bool
}

// Compile-time check that *State satisfies Surface.
var _ Surface = (*State)(nil)

// NewState returns an empty state.
func NewState() *State {
	return &State{
		Fields:  make(map[string]string),
		Texts:   make(map[string]string),
		Widths:  make(map[string]int),
		Visible: make(map[string]bool),
	}
}

// Field implements Surface.
func (s *State) Field(id string) string { return s.Fields[id] }

// SetField implements Surface.
func (s *State) SetField(id, value string) { s.Fields[id] = value }

// SetText implements Surface.
func (s *State) SetText(id, value string) { s.Texts[id] = value }

// SetWidth implements Surface.
func (s *State) SetWidth(id string, percent int) { s.Widths[id] = percent }

// SetVisible implements Surface.
func (s *State) SetVisible(id string, visible bool) { s.Visible[id] = visible }

// Text returns the displayed text of an element.
func (s *State) Text(id string) string { return s.Texts[id] }

// Width returns the width of an indicator.
func (s *State) Width(id string) int { return s.Widths[id] }

// IsVisible reports whether an element is shown.
func (s *State) IsVisible(id string) bool { return s.Visible[id] }
