package contextmenu

import (
	"iter"

	"github.com/vango-go/contextmenu/pkg/dom"
)

// Element tags.
const (
	MenuTag = "vaadin-context-menu"
	ItemTag = "vaadin-item"
)

// Client event types.
const (
	ClickEventType         = "click"
	BeforeOpenEventType    = "vaadin-context-menu-before-open"
	OpenedChangedEventType = "opened-changed"
)

// Client properties written by the menu.
const (
	ContainerNodeIDProperty = "_containerNodeId"
	TargetNodeIDProperty    = "_targetNodeId"
	ItemsProperty           = "items"
	OpenOnProperty          = "openOn"
	OpenedProperty          = "opened"
)

const (
	openOnContextMenu = "vaadin-contextmenu"
	openOnClick       = "click"
)

// ItemNode is one entry of the items tree the client widget renders.
type ItemNode struct {
	Node     dom.NodeID `json:"node"`
	Children []ItemNode `json:"children,omitempty"`
}

// OpenedChangeEvent reports a change of the menu's opened state.
type OpenedChangeEvent struct {
	Menu       *ContextMenu
	Opened     bool
	FromClient bool
}

// Option configures a ContextMenu.
type Option func(*ContextMenu)

// WithTarget sets the component the menu opens on.
func WithTarget(target Component) Option {
	return func(m *ContextMenu) { m.SetTarget(target) }
}

// WithOpenOnClick makes the menu open on left click instead of right click.
func WithOpenOnClick(enabled bool) Option {
	return func(m *ContextMenu) { m.SetOpenOnClick(enabled) }
}

// WithID sets the menu element's id attribute.
func WithID(id string) Option {
	return func(m *ContextMenu) { m.el.SetAttribute("id", id) }
}

// ContextMenu is the root of a menu tree.
type ContextMenu struct {
	el        *dom.Element
	container *dom.Element
	list      childList

	target           Component
	targetListener   dom.Registration
	targetAttach     dom.Registration
	lastTargetNodeID dom.NodeID

	openOnClick    bool
	opened         bool
	publishPending bool
}

var _ Component = (*ContextMenu)(nil)

// New creates an empty context menu.
func New(opts ...Option) *ContextMenu {
	m := &ContextMenu{el: dom.NewElement(MenuTag)}
	m.container = newContainer(m.el)
	m.list.container = m.container
	m.list.notify = m.UpdateChildren
	m.el.SetProperty(OpenOnProperty, openOnContextMenu)

	m.el.AddEventListener(OpenedChangedEventType, func(e *dom.Event) {
		m.opened = e.Bool("opened")
	})
	m.el.AddAttachListener(func(s *dom.Surface) {
		m.publishPending = false
		m.schedulePublish()
		if m.target != nil && m.target.Element().IsAttached() {
			m.publishTarget(s)
		}
	})

	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Element implements Component.
func (m *ContextMenu) Element() *dom.Element { return m.el }

// AddItem creates an item with the given text, appends it and returns it.
// onClick may be nil.
func (m *ContextMenu) AddItem(text string, onClick func(*ClickEvent)) *MenuItem {
	item := newMenuItem(m)
	item.SetText(text)
	if onClick != nil {
		item.AddClickListener(onClick)
	}
	_ = m.list.add([]Component{item})
	return item
}

// AddComponentItem creates an item containing c, appends it and returns it.
func (m *ContextMenu) AddComponentItem(c Component, onClick func(*ClickEvent)) (*MenuItem, error) {
	if isNil(c) {
		return nil, ErrNilComponent
	}
	item := newMenuItem(m)
	if err := item.Add(c); err != nil {
		return nil, err
	}
	if onClick != nil {
		item.AddClickListener(onClick)
	}
	_ = m.list.add([]Component{item})
	return item, nil
}

// Add appends components to the top level of the menu. It fails without
// adding anything like SubMenu.Add.
func (m *ContextMenu) Add(components ...Component) error { return m.list.add(components) }

// Remove removes top-level components. If any of them is nil or not a
// child, nothing is removed.
func (m *ContextMenu) Remove(components ...Component) error { return m.list.remove(components) }

// RemoveAll clears the top level of the menu.
func (m *ContextMenu) RemoveAll() { m.list.removeAll() }

// AddComponentAtIndex inserts c at the 0-based index, which must be in [0, len].
func (m *ContextMenu) AddComponentAtIndex(index int, c Component) error {
	return m.list.insert(index, c)
}

// Children returns the top-level children as of the time of the call.
func (m *ContextMenu) Children() iter.Seq[Component] { return m.list.all() }

// Items returns the top-level MenuItems in order.
func (m *ContextMenu) Items() []*MenuItem { return m.list.items() }

// Target returns the component the menu is attached to, or nil.
func (m *ContextMenu) Target() Component { return m.target }

// SetTarget attaches the menu to target. A nil target detaches it.
func (m *ContextMenu) SetTarget(target Component) {
	m.targetListener.Remove()
	m.targetAttach.Remove()
	m.targetListener, m.targetAttach = nil, nil
	m.lastTargetNodeID = 0

	if isNil(target) {
		m.target = nil
		m.el.RemoveProperty(TargetNodeIDProperty)
		return
	}
	m.target = target

	tel := target.Element()
	m.targetListener = tel.AddEventListener(BeforeOpenEventType, func(e *dom.Event) {
		m.lastTargetNodeID = dom.NodeID(e.Int("targetNodeId"))
	})
	m.targetAttach = tel.AddAttachListener(m.publishTarget)
	if s := tel.Surface(); s != nil {
		m.publishTarget(s)
	}
}

func (m *ContextMenu) publishTarget(s *dom.Surface) {
	target := m.target
	s.BeforeClientResponse(m.el, func() {
		if m.target != target {
			return
		}
		m.el.SetProperty(TargetNodeIDProperty, target.Element().NodeID())
	})
}

// TargetChildElement returns the element inside the target that was under
// the pointer when the menu last opened, or nil.
func (m *ContextMenu) TargetChildElement() *dom.Element {
	if m.target == nil || m.lastTargetNodeID == 0 {
		return nil
	}
	tel := m.target.Element()
	s := tel.Surface()
	if s == nil {
		return nil
	}
	el, ok := s.NodeByID(m.lastTargetNodeID)
	if !ok {
		return nil
	}
	for n := el; n != nil; n = n.Parent() {
		if n == tel {
			return el
		}
	}
	return nil
}

// SetOpenOnClick makes the menu open on left click when enabled, and on the
// context-menu gesture otherwise.
func (m *ContextMenu) SetOpenOnClick(enabled bool) {
	m.openOnClick = enabled
	if enabled {
		m.el.SetProperty(OpenOnProperty, openOnClick)
	} else {
		m.el.SetProperty(OpenOnProperty, openOnContextMenu)
	}
}

// IsOpenOnClick reports whether the menu opens on left click.
func (m *ContextMenu) IsOpenOnClick() bool { return m.openOnClick }

// IsOpened reports the last known opened state.
func (m *ContextMenu) IsOpened() bool { return m.opened }

// Close closes the menu if it is open.
func (m *ContextMenu) Close() {
	if !m.opened {
		return
	}
	m.el.SetProperty(OpenedProperty, false)
	dom.Fire(m.el, OpenedChangedEventType, map[string]any{"opened": false})
}

// AddOpenedChangeListener registers fn for changes of the opened state.
func (m *ContextMenu) AddOpenedChangeListener(fn func(OpenedChangeEvent)) dom.Registration {
	return m.el.AddEventListener(OpenedChangedEventType, func(e *dom.Event) {
		fn(OpenedChangeEvent{Menu: m, Opened: e.Bool("opened"), FromClient: e.FromClient})
	})
}

// UpdateChildren moves child elements into their containers and schedules
// the items tree for the next client response. Redundant calls are cheap.
func (m *ContextMenu) UpdateChildren() {
	syncContainer(m.container, m.list.children)
	seen := make(map[*MenuItem]bool)
	var walk func(items []*MenuItem)
	walk = func(items []*MenuItem) {
		for _, item := range items {
			if seen[item] || item.subMenu == nil {
				continue
			}
			seen[item] = true
			syncContainer(item.container, item.subMenu.list.children)
			walk(item.subMenu.list.items())
		}
	}
	walk(m.list.items())
	m.schedulePublish()
}

func (m *ContextMenu) schedulePublish() {
	s := m.el.Surface()
	if s == nil || m.publishPending {
		return
	}
	m.publishPending = true
	s.BeforeClientResponse(m.el, func() {
		m.publishPending = false
		m.el.SetProperty(ItemsProperty, m.ItemTree())
	})
}

// ItemTree returns the nested node ids of the menu's children. Nodes of
// detached children are 0.
func (m *ContextMenu) ItemTree() []ItemNode {
	return buildItemTree(m.list.children, make(map[*MenuItem]bool))
}

func buildItemTree(children []Component, seen map[*MenuItem]bool) []ItemNode {
	out := make([]ItemNode, 0, len(children))
	for _, c := range children {
		n := ItemNode{Node: c.Element().NodeID()}
		if item, ok := c.(*MenuItem); ok && item.subMenu != nil && !seen[item] {
			seen[item] = true
			n.Children = buildItemTree(item.subMenu.list.children, seen)
		}
		out = append(out, n)
	}
	return out
}
