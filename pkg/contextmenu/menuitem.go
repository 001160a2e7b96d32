package contextmenu

import (
	"fmt"

	"github.com/vango-go/contextmenu/pkg/dom"
)

// MenuItem is one selectable row of a context menu. It may host a SubMenu.
type MenuItem struct {
	el   *dom.Element
	menu *ContextMenu

	// container and subMenu are created together on the first SubMenu call.
	container *dom.Element
	subMenu   *SubMenu
}

var _ Component = (*MenuItem)(nil)

func newMenuItem(menu *ContextMenu) *MenuItem {
	if menu == nil {
		panic("contextmenu: menu item needs an owning menu")
	}
	return &MenuItem{
		el:   dom.NewElement(ItemTag),
		menu: menu,
	}
}

// Element implements Component.
func (m *MenuItem) Element() *dom.Element {
	if m == nil {
		return nil
	}
	return m.el
}

// Menu returns the context menu this item belongs to.
func (m *MenuItem) Menu() *ContextMenu { return m.menu }

// Text returns the item's label.
func (m *MenuItem) Text() string { return m.el.Text() }

// SetText sets the item's label.
func (m *MenuItem) SetText(text string) { m.el.SetText(text) }

// IsEnabled reports whether the item accepts clicks.
func (m *MenuItem) IsEnabled() bool { return m.el.IsEnabled() }

// SetEnabled enables or disables the item. Disabled items receive no clicks.
func (m *MenuItem) SetEnabled(enabled bool) { m.el.SetEnabled(enabled) }

// Add appends content components inside the item itself, e.g. a checkbox.
// Nothing is added if any component is nil, contains the item, or is a
// child of a menu list.
func (m *MenuItem) Add(components ...Component) error {
	for _, c := range components {
		if isNil(c) {
			return fmt.Errorf("add content: %w", ErrNilComponent)
		}
		el := c.Element()
		if el.Contains(m.el) {
			return fmt.Errorf("add content %T: %w", c, dom.ErrCycle)
		}
		if p := el.Parent(); p != nil && isContainer(p) {
			return fmt.Errorf("add content %T: %w", c, ErrInOtherList)
		}
	}
	for _, c := range components {
		m.el.AppendChild(c.Element())
	}
	return nil
}

// AddClickListener registers fn for clicks on this item.
func (m *MenuItem) AddClickListener(fn func(*ClickEvent)) dom.Registration {
	return m.el.AddEventListener(ClickEventType, func(e *dom.Event) {
		fn(newClickEvent(m, e))
	})
}

// Click fires a server-side click on the item. It is ignored when the item
// or any item above it is disabled, as for clicks from the client.
func (m *MenuItem) Click() {
	if !m.el.IsEnabledInTree() {
		return
	}
	dom.Fire(m.el, ClickEventType, nil)
}

// SubMenu returns the item's submenu, creating it and its container element
// on first use.
func (m *MenuItem) SubMenu() *SubMenu {
	if m.subMenu == nil {
		m.container = newContainer(m.el)
		m.subMenu = newSubMenu(m, m.container)
	}
	return m.subMenu
}

// HasSubMenu reports whether SubMenu has been called on this item.
func (m *MenuItem) HasSubMenu() bool { return m.subMenu != nil }

// AddItem adds a new item with the given text to this item's submenu.
// onClick may be nil.
func (m *MenuItem) AddItem(text string, onClick func(*ClickEvent)) *MenuItem {
	return m.SubMenu().AddItem(text, onClick)
}

// AddComponentItem adds a new item wrapping c to this item's submenu.
func (m *MenuItem) AddComponentItem(c Component, onClick func(*ClickEvent)) (*MenuItem, error) {
	return m.SubMenu().AddComponentItem(c, onClick)
}
