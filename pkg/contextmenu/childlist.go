package contextmenu

import (
	"fmt"
	"iter"
	"slices"

	"github.com/vango-go/contextmenu/pkg/dom"
)

// childList is the ordered child list shared by ContextMenu and SubMenu.
// Components are identified by their element. Every successful mutation
// syncs container and then runs notify.
type childList struct {
	children  []Component
	container *dom.Element
	notify    func()
}

// check rejects components that cannot be placed in l's container: nil
// components, the container's own ancestors, and children of another list.
func (l *childList) check(op string, c Component) error {
	if isNil(c) {
		return fmt.Errorf("%s: %w", op, ErrNilComponent)
	}
	el := c.Element()
	if el.Contains(l.container) {
		return fmt.Errorf("%s %T: %w", op, c, dom.ErrCycle)
	}
	if p := el.Parent(); p != nil && p != l.container && isContainer(p) {
		return fmt.Errorf("%s %T: %w", op, c, ErrInOtherList)
	}
	return nil
}

func (l *childList) changed() {
	syncContainer(l.container, l.children)
	l.notify()
}

func (l *childList) indexOf(list []Component, c Component) int {
	el := c.Element()
	return slices.IndexFunc(list, func(x Component) bool { return x.Element() == el })
}

func (l *childList) add(components []Component) error {
	for _, c := range components {
		if err := l.check("add", c); err != nil {
			return err
		}
	}
	if len(components) == 0 {
		return nil
	}
	l.children = append(l.children, components...)
	l.changed()
	return nil
}

// remove validates every argument before removing any of them, so a failed
// call leaves the list unchanged.
func (l *childList) remove(components []Component) error {
	remaining := slices.Clone(l.children)
	for _, c := range components {
		if isNil(c) {
			return fmt.Errorf("remove: %w", ErrNilComponent)
		}
		i := l.indexOf(remaining, c)
		if i < 0 {
			return fmt.Errorf("remove %T: %w", c, ErrNotChild)
		}
		remaining = slices.Delete(remaining, i, i+1)
	}
	if len(components) == 0 {
		return nil
	}
	l.children = remaining
	l.changed()
	return nil
}

func (l *childList) removeAll() {
	l.children = nil
	l.changed()
}

func (l *childList) insert(index int, c Component) error {
	if isNil(c) {
		return fmt.Errorf("add at index: %w", ErrNilComponent)
	}
	if index < 0 {
		return ErrNegativeIndex
	}
	if index > len(l.children) {
		return fmt.Errorf("index %d, length %d: %w", index, len(l.children), ErrIndexOutOfRange)
	}
	if err := l.check("add at index", c); err != nil {
		return err
	}
	l.children = slices.Insert(l.children, index, c)
	l.changed()
	return nil
}

// all returns a sequence over a snapshot of the list taken now.
func (l *childList) all() iter.Seq[Component] {
	snapshot := slices.Clone(l.children)
	return func(yield func(Component) bool) {
		for _, c := range snapshot {
			if !yield(c) {
				return
			}
		}
	}
}

func (l *childList) items() []*MenuItem {
	var out []*MenuItem
	for _, c := range l.children {
		if item, ok := c.(*MenuItem); ok {
			out = append(out, item)
		}
	}
	return out
}

// syncContainer makes container's real children match children, in order.
// Elements already in place keep their node ids.
func syncContainer(container *dom.Element, children []Component) {
	want := make([]*dom.Element, 0, len(children))
	keep := make(map[*dom.Element]bool, len(children))
	for _, c := range children {
		el := c.Element()
		if keep[el] {
			continue
		}
		keep[el] = true
		want = append(want, el)
	}

	for _, el := range container.Children() {
		if !keep[el] {
			_ = container.RemoveChild(el)
		}
	}
	for i, el := range want {
		current := container.Children()
		if i < len(current) && current[i] == el {
			continue
		}
		_ = container.InsertChild(i, el)
	}
}

// isContainer reports whether el is the child container of a menu or item.
func isContainer(el *dom.Element) bool {
	host := el.Parent()
	return el.IsVirtual() && host != nil && (host.Tag() == MenuTag || host.Tag() == ItemTag)
}

// newContainer attaches a container div to host as a virtual child. Its node
// id is published to host once per attachment, before the next response.
func newContainer(host *dom.Element) *dom.Element {
	container := dom.NewElement("div")
	host.AppendVirtualChild(container)
	publish := func(s *dom.Surface) {
		s.BeforeClientResponse(host, func() {
			host.SetProperty(ContainerNodeIDProperty, container.NodeID())
		})
	}
	host.AddAttachListener(publish)
	if s := host.Surface(); s != nil {
		publish(s)
	}
	return container
}
