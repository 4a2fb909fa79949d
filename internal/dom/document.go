// Package dom is a small headless document model: elements with class
// lists, attributes, inline styles and focus, plus click/input/keydown
// events that bubble from the target to the document. It stands in for a
// browser document so presentation code can run in a terminal or a test.
package dom

import "slices"

// Document owns a tree rooted at <html> with <head> and <body>.
type Document struct {
	root   *Element
	head   *Element
	body   *Element
	active *Element

	listeners map[EventType][]Handler
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	d := &Document{}
	d.root = d.CreateElement("html")
	d.head = d.root.AppendChild(d.CreateElement("head"))
	d.body = d.root.AppendChild(d.CreateElement("body"))
	return d
}

// CreateElement makes a detached element owned by d.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{doc: d, tag: tag}
}

// Root returns the <html> element.
func (d *Document) Root() *Element { return d.root }

// Head returns the <head> element.
func (d *Document) Head() *Element { return d.head }

// Body returns the <body> element.
func (d *Document) Body() *Element { return d.body }

// GetElementByID returns the first attached element with the given id, or
// nil.
func (d *Document) GetElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	var found *Element
	d.root.walk(func(n *Element) bool {
		if n.id == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// QueryAll returns attached elements carrying class, in document order.
func (d *Document) QueryAll(class string) []*Element {
	return d.root.QueryAll(class)
}

// Query returns the first attached element carrying class, or nil.
func (d *Document) Query(class string) *Element {
	return d.root.Query(class)
}

// AddEventListener registers a document-level handler. Document handlers run
// after every element on the bubbling path.
func (d *Document) AddEventListener(t EventType, h Handler) {
	if d.listeners == nil {
		d.listeners = make(map[EventType][]Handler)
	}
	d.listeners[t] = append(d.listeners[t], h)
}

// ActiveElement returns the focused element, or <body> when nothing is
// focused or the focused element has been detached.
func (d *Document) ActiveElement() *Element {
	if d.active == nil || !d.root.Contains(d.active) {
		return d.body
	}
	return d.active
}

// Dispatch delivers ev to target and bubbles it up to the document. A nil
// target means the body.
func (d *Document) Dispatch(target *Element, ev *Event) {
	if target == nil {
		target = d.body
	}
	ev.Target = target

	for n := target; n != nil; n = n.parent {
		n.fire(ev)
		if ev.stopped {
			return
		}
	}

	handlers := slices.Clone(d.listeners[ev.Type])
	ev.CurrentTarget = nil
	for _, h := range handlers {
		h(ev)
	}
}

// KeyDown dispatches a keydown for key at the active element.
func (d *Document) KeyDown(key string) *Event {
	ev := &Event{Type: EventKeyDown, Key: key}
	d.Dispatch(d.ActiveElement(), ev)
	return ev
}
