package glhost

type EventType int

const (
	EventResize EventType = iota
	EventPointerMove
	EventPointerLeave
	EventVisibility
)

type Event struct {
	Type     EventType
	X, Y     float64 // cursor position for pointer events
	Fraction float64 // visible fraction for EventVisibility
}

type EventHandler func(Event)

type subscription struct {
	id int
	fn EventHandler
}

// EventBus fans the window's single glfw callback per kind out to any number
// of listeners. It is used only from the main thread.
type EventBus struct {
	handlers map[EventType][]subscription
	next     int
}

func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[EventType][]subscription),
	}
}

// Subscribe registers fn for events of type t and returns its unregister
// func. Unregistering twice is harmless.
func (eb *EventBus) Subscribe(t EventType, fn EventHandler) func() {
	eb.next++
	id := eb.next
	eb.handlers[t] = append(eb.handlers[t], subscription{id: id, fn: fn})
	return func() {
		subs := eb.handlers[t]
		for i, s := range subs {
			if s.id == id {
				eb.handlers[t] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Emit calls every handler subscribed when Emit started. Handlers removed
// during the emit are skipped.
func (eb *EventBus) Emit(e Event) {
	subs := eb.handlers[e.Type]
	for _, s := range subs {
		if eb.subscribed(e.Type, s.id) {
			s.fn(e)
		}
	}
}

// Len reports the number of live handlers of every type.
func (eb *EventBus) Len() int {
	n := 0
	for _, subs := range eb.handlers {
		n += len(subs)
	}
	return n
}

func (eb *EventBus) subscribed(t EventType, id int) bool {
	for _, s := range eb.handlers[t] {
		if s.id == id {
			return true
		}
	}
	return false
}
