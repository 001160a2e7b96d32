package dom

import (
	"maps"
	"slices"
)

// NodeID identifies an attached node within its Surface.
// The zero value means the node is not attached.
type NodeID uint32

// Element is a server-side node of the client DOM.
type Element struct {
	tag   string
	text  string
	attrs map[string]string
	props map[string]any

	children []*Element
	virtual  []*Element
	parent   *Element
	// isVirtual reports whether this element sits in its parent's virtual list.
	isVirtual bool

	id       NodeID
	surface  *Surface
	disabled bool

	listeners       map[string][]*eventListener
	attachListeners []*attachListener
	pendingAttach   []func(*Surface)
}

type eventListener struct {
	fn      func(*Event)
	removed bool
}

type attachListener struct {
	fn      func(*Surface)
	removed bool
}

// Registration removes a previously added listener.
type Registration func()

// Remove removes the listener. Calling Remove more than once is a no-op.
func (r Registration) Remove() {
	if r != nil {
		r()
	}
}

// NewElement creates a detached element with the given tag name.
func NewElement(tag string) *Element {
	return &Element{
		tag:   tag,
		attrs: make(map[string]string),
		props: make(map[string]any),
	}
}

// Tag returns the element's tag name.
func (e *Element) Tag() string { return e.tag }

// Text returns the element's own text content.
func (e *Element) Text() string { return e.text }

// SetText sets the element's own text content. Children are kept.
func (e *Element) SetText(text string) {
	if e.text == text {
		return
	}
	e.text = text
	e.markDirty()
}

// Attribute returns the value of the named attribute.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// SetAttribute sets an attribute rendered in the element's markup.
func (e *Element) SetAttribute(name, value string) {
	if old, ok := e.attrs[name]; ok && old == value {
		return
	}
	e.attrs[name] = value
	e.markDirty()
}

// RemoveAttribute removes the named attribute.
func (e *Element) RemoveAttribute(name string) {
	if _, ok := e.attrs[name]; !ok {
		return
	}
	delete(e.attrs, name)
	e.markDirty()
}

// Property returns the value of the named client property.
func (e *Element) Property(name string) (any, bool) {
	v, ok := e.props[name]
	return v, ok
}

// SetProperty sets a property on the client-side element object.
// Properties are not rendered as markup.
func (e *Element) SetProperty(name string, value any) {
	e.props[name] = value
	e.markDirty()
}

// RemoveProperty removes the named property.
func (e *Element) RemoveProperty(name string) {
	if _, ok := e.props[name]; !ok {
		return
	}
	delete(e.props, name)
	e.markDirty()
}

// Children returns a copy of the element's real children.
func (e *Element) Children() []*Element { return slices.Clone(e.children) }

// ChildCount returns the number of real children.
func (e *Element) ChildCount() int { return len(e.children) }

// VirtualChildren returns a copy of the element's virtual children.
func (e *Element) VirtualChildren() []*Element { return slices.Clone(e.virtual) }

// Parent returns the parent element, or nil for a detached root.
// For virtual children this is the element they are attached to.
func (e *Element) Parent() *Element { return e.parent }

// IsVirtual reports whether the element is a virtual child of its parent.
func (e *Element) IsVirtual() bool { return e.isVirtual }

// NodeID returns the id assigned by the surface, or 0 when detached.
func (e *Element) NodeID() NodeID { return e.id }

// Surface returns the surface the element is attached to, or nil.
func (e *Element) Surface() *Surface { return e.surface }

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// IsAttached reports whether the element is part of a surface.
func (e *Element) IsAttached() bool { return e.surface != nil }

// AppendChild appends child as the last real child.
// A child that already has a parent is moved.
func (e *Element) AppendChild(child *Element) {
	e.adopt(len(e.children), child, false)
}

// InsertChild inserts child at index among the real children.
func (e *Element) InsertChild(index int, child *Element) error {
	if index < 0 || index > len(e.children) {
		return ErrIndexOutOfRange
	}
	if child.parent == e && !child.isVirtual && slices.Index(e.children, child) < index {
		index--
	}
	e.adopt(index, child, false)
	return nil
}

// RemoveChild removes a real child.
func (e *Element) RemoveChild(child *Element) error {
	if child == nil || child.parent != e || child.isVirtual {
		return ErrNotChild
	}
	e.release(child)
	return nil
}

// RemoveAllChildren removes every real child.
func (e *Element) RemoveAllChildren() {
	for _, child := range slices.Clone(e.children) {
		e.release(child)
	}
}

// AppendVirtualChild attaches child as a virtual child. Virtual children are
// synchronized with the client but not rendered in place.
func (e *Element) AppendVirtualChild(child *Element) {
	e.adopt(len(e.virtual), child, true)
}

// RemoveVirtualChild removes a virtual child.
func (e *Element) RemoveVirtualChild(child *Element) error {
	if child == nil || child.parent != e || !child.isVirtual {
		return ErrNotChild
	}
	e.release(child)
	return nil
}

// RunWhenAttached runs fn once the element is attached to a surface.
// If the element is already attached fn runs immediately. fn runs at most once.
func (e *Element) RunWhenAttached(fn func(*Surface)) {
	if e.surface != nil {
		fn(e.surface)
		return
	}
	e.pendingAttach = append(e.pendingAttach, fn)
}

// AddAttachListener registers fn to run every time the element becomes
// attached. It does not run for an attachment that already happened.
func (e *Element) AddAttachListener(fn func(*Surface)) Registration {
	l := &attachListener{fn: fn}
	e.attachListeners = append(e.attachListeners, l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		e.attachListeners = slices.DeleteFunc(e.attachListeners, func(x *attachListener) bool { return x == l })
	}
}

// AddEventListener registers fn for client events of the given type.
func (e *Element) AddEventListener(eventType string, fn func(*Event)) Registration {
	if e.listeners == nil {
		e.listeners = make(map[string][]*eventListener)
	}
	l := &eventListener{fn: fn}
	e.listeners[eventType] = append(e.listeners[eventType], l)
	return func() {
		if l.removed {
			return
		}
		l.removed = true
		e.listeners[eventType] = slices.DeleteFunc(e.listeners[eventType], func(x *eventListener) bool { return x == l })
	}
}

// HasListener reports whether any listener is registered for eventType.
func (e *Element) HasListener(eventType string) bool {
	return len(e.listeners[eventType]) > 0
}

// SetEnabled enables or disables the element. A disabled element and its
// descendants do not receive client events.
func (e *Element) SetEnabled(enabled bool) {
	e.disabled = !enabled
	if enabled {
		e.RemoveAttribute("disabled")
	} else {
		e.SetAttribute("disabled", "")
	}
}

// IsEnabled reports the element's own enabled flag.
func (e *Element) IsEnabled() bool { return !e.disabled }

// IsEnabledInTree reports whether the element and all its ancestors are enabled.
func (e *Element) IsEnabledInTree() bool {
	for n := e; n != nil; n = n.parent {
		if n.disabled {
			return false
		}
	}
	return true
}

// State returns a snapshot of the element for the client.
func (e *Element) State() NodeState {
	st := NodeState{
		ID:    e.id,
		Tag:   e.tag,
		Text:  e.text,
		Attrs: maps.Clone(e.attrs),
		Props: maps.Clone(e.props),
	}
	for _, c := range e.children {
		st.Children = append(st.Children, c.id)
	}
	for _, c := range e.virtual {
		st.Virtual = append(st.Virtual, c.id)
	}
	return st
}

func (e *Element) dispatch(ev *Event) {
	for _, l := range slices.Clone(e.listeners[ev.Type]) {
		if !l.removed {
			l.fn(ev)
		}
	}
}

func (e *Element) markDirty() {
	if e.surface != nil {
		e.surface.markDirty(e)
	}
}

// adopt links child under e, moving it from its previous parent and
// attaching or detaching it to match e's surface.
func (e *Element) adopt(index int, child *Element, virtual bool) {
	if child == nil {
		panic("dom: nil child")
	}
	if child.Contains(e) {
		panic(ErrCycle)
	}

	if old := child.parent; old != nil {
		old.unlink(child)
	}
	child.parent = e
	child.isVirtual = virtual
	if virtual {
		e.virtual = slices.Insert(e.virtual, index, child)
	} else {
		e.children = slices.Insert(e.children, index, child)
	}
	e.markDirty()

	if child.surface != nil && child.surface != e.surface {
		child.surface.detach(child)
	}
	if e.surface != nil && child.surface == nil {
		e.surface.attach(child)
	}
}

// release unlinks child from e and detaches it from any surface.
func (e *Element) release(child *Element) {
	e.unlink(child)
	child.parent = nil
	child.isVirtual = false
	if child.surface != nil {
		child.surface.detach(child)
	}
}

func (e *Element) unlink(child *Element) {
	if child.isVirtual {
		e.virtual = slices.DeleteFunc(e.virtual, func(x *Element) bool { return x == child })
	} else {
		e.children = slices.DeleteFunc(e.children, func(x *Element) bool { return x == child })
	}
	e.markDirty()
}

// walk visits e and its subtree in pre-order: real children before virtual ones.
func (e *Element) walk(fn func(*Element)) {
	fn(e)
	for _, c := range e.children {
		c.walk(fn)
	}
	for _, c := range e.virtual {
		c.walk(fn)
	}
}
