package dom

import (
	"slices"
	"strings"
)

// Element is a node in a headless document.
type Element struct {
	doc      *Document
	tag      string
	id       string
	classes  []string
	attrs    map[string]string
	style    map[string]string
	text     string
	inner    string // raw markup, used for inline SVG icons
	value    string // form value for inputs
	parent   *Element
	children []*Element

	listeners map[EventType][]Handler
}

// Tag returns the upper-case tag name, matching the browser's tagName.
func (e *Element) Tag() string {
	return strings.ToUpper(e.tag)
}

// ID returns the element id.
func (e *Element) ID() string {
	return e.id
}

// SetID sets the element id.
func (e *Element) SetID(id string) *Element {
	e.id = id
	return e
}

// Classes returns a copy of the class list in insertion order.
func (e *Element) Classes() []string {
	return slices.Clone(e.classes)
}

// ClassName returns the class list joined by spaces.
func (e *Element) ClassName() string {
	return strings.Join(e.classes, " ")
}

// SetClassName replaces the whole class list. Duplicates are dropped.
func (e *Element) SetClassName(name string) *Element {
	e.classes = e.classes[:0]
	e.AddClass(strings.Fields(name)...)
	return e
}

// HasClass reports whether the class list contains name.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// AddClass appends classes that are not already present.
func (e *Element) AddClass(names ...string) *Element {
	for _, n := range names {
		if n != "" && !e.HasClass(n) {
			e.classes = append(e.classes, n)
		}
	}
	return e
}

// RemoveClass removes the given classes.
func (e *Element) RemoveClass(names ...string) *Element {
	e.classes = slices.DeleteFunc(e.classes, func(c string) bool {
		return slices.Contains(names, c)
	})
	return e
}

// SetClass adds name when on is true and removes it otherwise.
func (e *Element) SetClass(name string, on bool) *Element {
	if on {
		return e.AddClass(name)
	}
	return e.RemoveClass(name)
}

// SetAttr sets an attribute. id, class and style have dedicated setters and
// are routed to them.
func (e *Element) SetAttr(key, value string) *Element {
	switch key {
	case "id":
		return e.SetID(value)
	case "class":
		return e.SetClassName(value)
	case "style":
		e.style = nil
		for _, decl := range strings.Split(value, ";") {
			prop, val, ok := strings.Cut(decl, ":")
			if ok {
				e.SetStyle(strings.TrimSpace(prop), strings.TrimSpace(val))
			}
		}
		return e
	}
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[key] = value
	return e
}

// Attr returns an attribute value.
func (e *Element) Attr(key string) (string, bool) {
	v, ok := e.attrs[key]
	return v, ok
}

// RemoveAttr deletes an attribute.
func (e *Element) RemoveAttr(key string) *Element {
	delete(e.attrs, key)
	return e
}

// SetData sets a data-* attribute.
func (e *Element) SetData(key, value string) *Element {
	return e.SetAttr("data-"+key, value)
}

// Data returns a data-* attribute, or "" when unset.
func (e *Element) Data(key string) string {
	return e.attrs["data-"+key]
}

// SetStyle sets an inline style property. An empty value removes it.
func (e *Element) SetStyle(prop, value string) *Element {
	if value == "" {
		delete(e.style, prop)
		return e
	}
	if e.style == nil {
		e.style = make(map[string]string)
	}
	e.style[prop] = value
	return e
}

// Style returns an inline style property, or "" when unset.
func (e *Element) Style(prop string) string {
	return e.style[prop]
}

// SetText replaces the element's content with a text node.
func (e *Element) SetText(text string) *Element {
	e.detachChildren()
	e.inner = ""
	e.text = text
	return e
}

// TextContent returns the concatenated text of the element and its
// descendants.
func (e *Element) TextContent() string {
	var b strings.Builder
	e.writeText(&b)
	return b.String()
}

func (e *Element) writeText(b *strings.Builder) {
	b.WriteString(e.text)
	for _, c := range e.children {
		c.writeText(b)
	}
}

// SetInnerHTML replaces the element's content with raw markup. The markup
// is opaque to queries; it is only carried through to Render.
func (e *Element) SetInnerHTML(markup string) *Element {
	e.detachChildren()
	e.text = ""
	e.inner = markup
	return e
}

// InnerHTML returns raw markup set by SetInnerHTML.
func (e *Element) InnerHTML() string {
	return e.inner
}

// Value returns the form value.
func (e *Element) Value() string {
	return e.value
}

// SetValue sets the form value.
func (e *Element) SetValue(v string) *Element {
	e.value = v
	return e
}

// Parent returns the parent element, or nil for detached and root elements.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns a copy of the child list.
func (e *Element) Children() []*Element {
	return slices.Clone(e.children)
}

// AppendChild moves child under e and returns child.
func (e *Element) AppendChild(child *Element) *Element {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
	return child
}

// Append adds children and returns e, for building trees inline.
func (e *Element) Append(children ...*Element) *Element {
	for _, c := range children {
		e.AppendChild(c)
	}
	return e
}

// ReplaceChildren removes all children and appends the given ones.
func (e *Element) ReplaceChildren(children ...*Element) *Element {
	e.detachChildren()
	e.text = ""
	e.inner = ""
	return e.Append(children...)
}

func (e *Element) removeChild(child *Element) {
	e.children = slices.DeleteFunc(e.children, func(c *Element) bool { return c == child })
	child.parent = nil
}

func (e *Element) detachChildren() {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// QueryAll returns descendants carrying class, in document order.
func (e *Element) QueryAll(class string) []*Element {
	var out []*Element
	e.walk(func(n *Element) bool {
		if n != e && n.HasClass(class) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// Query returns the first descendant carrying class, or nil.
func (e *Element) Query(class string) *Element {
	var found *Element
	e.walk(func(n *Element) bool {
		if n != e && n.HasClass(class) {
			found = n
			return false
		}
		return true
	})
	return found
}

// walk visits e and its descendants depth-first until fn returns false.
func (e *Element) walk(fn func(*Element) bool) bool {
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !c.walk(fn) {
			return false
		}
	}
	return true
}

// AddEventListener registers h for events of type t targeted at e or
// bubbling through it.
func (e *Element) AddEventListener(t EventType, h Handler) {
	if e.listeners == nil {
		e.listeners = make(map[EventType][]Handler)
	}
	e.listeners[t] = append(e.listeners[t], h)
}

// Focus makes e the document's active element.
func (e *Element) Focus() {
	if e.doc != nil {
		e.doc.active = e
	}
}

// Blur clears focus if e holds it.
func (e *Element) Blur() {
	if e.doc != nil && e.doc.active == e {
		e.doc.active = nil
	}
}

// Focused reports whether e is the active element.
func (e *Element) Focused() bool {
	return e.doc != nil && e.doc.active == e
}

// Click dispatches a click event at e.
func (e *Element) Click() *Event {
	ev := &Event{Type: EventClick}
	e.Dispatch(ev)
	return ev
}

// Dispatch sends ev to e, bubbling to its ancestors and then the document.
func (e *Element) Dispatch(ev *Event) {
	if e.doc != nil {
		e.doc.Dispatch(e, ev)
		return
	}
	ev.Target = e
	for n := e; n != nil && !ev.stopped; n = n.parent {
		n.fire(ev)
	}
}

func (e *Element) fire(ev *Event) {
	handlers := slices.Clone(e.listeners[ev.Type])
	ev.CurrentTarget = e
	for _, h := range handlers {
		h(ev)
	}
}
