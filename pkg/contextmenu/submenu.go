package contextmenu

import (
	"iter"

	"github.com/vango-go/contextmenu/pkg/dom"
)

// SubMenu is the ordered list of children nested under a MenuItem.
type SubMenu struct {
	parent *MenuItem
	list   childList
}

func newSubMenu(parent *MenuItem, container *dom.Element) *SubMenu {
	s := &SubMenu{parent: parent}
	s.list.container = container
	s.list.notify = func() { parent.menu.UpdateChildren() }
	return s
}

// ParentMenuItem returns the item this submenu belongs to.
func (s *SubMenu) ParentMenuItem() *MenuItem { return s.parent }

// AddItem creates an item with the given text, appends it and returns it.
// onClick may be nil.
func (s *SubMenu) AddItem(text string, onClick func(*ClickEvent)) *MenuItem {
	item := newMenuItem(s.parent.menu)
	item.SetText(text)
	if onClick != nil {
		item.AddClickListener(onClick)
	}
	_ = s.list.add([]Component{item})
	return item
}

// AddComponentItem creates an item containing c, appends it and returns it.
func (s *SubMenu) AddComponentItem(c Component, onClick func(*ClickEvent)) (*MenuItem, error) {
	if isNil(c) {
		return nil, ErrNilComponent
	}
	item := newMenuItem(s.parent.menu)
	if err := item.Add(c); err != nil {
		return nil, err
	}
	if onClick != nil {
		item.AddClickListener(onClick)
	}
	_ = s.list.add([]Component{item})
	return item, nil
}

// Add appends components in order. No component is added if any is nil,
// contains this submenu, or is still a child of another menu list.
func (s *SubMenu) Add(components ...Component) error { return s.list.add(components) }

// Remove removes the given components. If any of them is nil or not a child,
// nothing is removed.
func (s *SubMenu) Remove(components ...Component) error { return s.list.remove(components) }

// RemoveAll clears the submenu.
func (s *SubMenu) RemoveAll() { s.list.removeAll() }

// AddComponentAtIndex inserts c at the 0-based index, which must be in [0, len].
func (s *SubMenu) AddComponentAtIndex(index int, c Component) error {
	return s.list.insert(index, c)
}

// Children returns the children as of the time of the call.
func (s *SubMenu) Children() iter.Seq[Component] { return s.list.all() }

// Items returns the MenuItem children in order.
func (s *SubMenu) Items() []*MenuItem { return s.list.items() }

// Len returns the number of children.
func (s *SubMenu) Len() int { return len(s.list.children) }
