package dom

import "golang.org/x/net/html"

// EventClick is the only event type the collection protocol relies on, but
// dispatch works for any type name.
const EventClick = "click"

// Listener handles a dispatched event.
type Listener func(*Event)

// Event carries dispatch state through the bubbling path.
type Event struct {
	Type          string
	Target        *Element
	CurrentTarget *Element

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault marks the default action (form submission, navigation) as
// suppressed. Dispatch still continues.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from reaching further ancestors once the
// current element's listeners have run.
func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

type listenerEntry struct {
	id        uint64
	eventType string
	fn        Listener
}

// AddEventListener subscribes fn to events of the given type reaching this
// element, either as target or while bubbling. The returned function removes
// the subscription.
func (e *Element) AddEventListener(eventType string, fn Listener) func() {
	if fn == nil {
		return func() {}
	}
	d := e.doc
	d.nextID++
	id := d.nextID
	d.listeners[e.node] = append(d.listeners[e.node], listenerEntry{
		id:        id,
		eventType: eventType,
		fn:        fn,
	})
	return func() {
		entries := d.listeners[e.node]
		for idx, entry := range entries {
			if entry.id == id {
				d.listeners[e.node] = append(entries[:idx:idx], entries[idx+1:]...)
				return
			}
		}
	}
}

// Click dispatches a click event targeted at the element.
func (e *Element) Click() *Event {
	return e.doc.Dispatch(e, EventClick)
}

// Dispatch delivers an event to target and then to each ancestor element in
// turn. The bubbling path and each element's listener list are captured
// before listeners run, so listeners may detach nodes without affecting the
// current dispatch.
func (d *Document) Dispatch(target *Element, eventType string) *Event {
	ev := &Event{Type: eventType, Target: target}
	if target == nil {
		return ev
	}

	var path []*html.Node
	for n := target.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode {
			path = append(path, n)
		}
	}

	for _, node := range path {
		entries := append([]listenerEntry(nil), d.listeners[node]...)
		if len(entries) == 0 {
			continue
		}
		ev.CurrentTarget = d.wrap(node)
		for _, entry := range entries {
			if entry.eventType != eventType {
				continue
			}
			entry.fn(ev)
		}
		if ev.propagationStopped {
			break
		}
	}
	ev.CurrentTarget = nil
	return ev
}
