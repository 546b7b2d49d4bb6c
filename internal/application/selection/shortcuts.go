package selection

import (
	"strings"
	"sync"
)

type Action int

const (
	ActionNone Action = iota
	ActionSelectAll
	ActionClear
	ActionDelete
)

// KeyEvent is a key press as seen by the component that owns the selection.
type KeyEvent struct {
	Key  string
	Ctrl bool
	// Meta is the Cmd key on macOS.
	Meta bool
	// FocusEditable is set while a text input has focus.
	FocusEditable bool
}

// Resolve maps a key press to a selection action. Nothing fires while a text input has focus.
func Resolve(e KeyEvent) Action {
	if e.FocusEditable {
		return ActionNone
	}

	switch strings.ToLower(e.Key) {
	case "a":
		if e.Ctrl || e.Meta {
			return ActionSelectAll
		}
	case "esc", "escape":
		return ActionClear
	case "delete":
		return ActionDelete
	}

	return ActionNone
}

// Bus fans key events out to the current subscribers.
type Bus struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func(KeyEvent) bool
}

func NewBus() *Bus {
	return &Bus{handlers: map[int]func(KeyEvent) bool{}}
}

// Subscription is released with Close; Close is safe to call more than once.
type Subscription struct {
	once   sync.Once
	cancel func()
}

func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}

func (b *Bus) Subscribe(h func(KeyEvent) bool) *Subscription {
	b.mu.Lock()
	id := b.next
	b.next++
	b.handlers[id] = h
	b.mu.Unlock()

	return &Subscription{cancel: func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}}
}

// Dispatch reports whether any subscriber handled e.
func (b *Bus) Dispatch(e KeyEvent) bool {
	b.mu.Lock()
	handlers := make([]func(KeyEvent) bool, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()

	handled := false
	for _, h := range handlers {
		if h(e) {
			handled = true
		}
	}

	return handled
}

// Bind wires the shortcut contract onto set for as long as the subscription is open.
// onDelete receives the current selection and is expected to confirm before deleting.
func Bind(bus *Bus, set *Set, onDelete func(ids []string)) *Subscription {
	return bus.Subscribe(func(e KeyEvent) bool {
		switch Resolve(e) {
		case ActionSelectAll:
			set.SelectAll()
		case ActionClear:
			set.Clear()
		case ActionDelete:
			if set.Len() == 0 || onDelete == nil {
				return false
			}
			onDelete(set.Selected())
		default:
			return false
		}

		return true
	})
}
