// Package demo builds the context menu demo views.
package demo

import (
	"fmt"
	"slices"

	"github.com/vango-go/contextmenu/pkg/contextmenu"
	"github.com/vango-go/contextmenu/pkg/dom"
)

// Views maps view names to mount functions.
var Views = map[string]func(*dom.Surface){
	"basic":      Basic,
	"components": WithComponents,
	"all":        All,
}

// Names returns the view names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Views))
	for name := range Views {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns the view called name.
func Lookup(name string) (func(*dom.Surface), error) {
	v, ok := Views[name]
	if !ok {
		return nil, fmt.Errorf("demo: unknown view %q (have %v)", name, Names())
	}
	return v, nil
}

// All mounts every demo on s.
func All(s *dom.Surface) {
	Basic(s)
	WithComponents(s)
}

// Basic mounts the basic demo on s.
func Basic(s *dom.Surface) { NewBasic().Mount(s) }

// WithComponents mounts the components demo on s.
func WithComponents(s *dom.Surface) { NewWithComponents().Mount(s) }

// BasicDemo is a menu with a nested submenu, a disabled item and buttons
// that change the menu at runtime.
type BasicDemo struct {
	Menu    *contextmenu.ContextMenu
	Target  *contextmenu.Plain
	Message *contextmenu.Plain

	First    *contextmenu.MenuItem
	Bar      *contextmenu.MenuItem
	Baz      *contextmenu.MenuItem
	Second   *contextmenu.MenuItem
	Disabled *contextmenu.MenuItem

	AddAtIndex *contextmenu.Button
	Append     *contextmenu.Button
	Clear      *contextmenu.Button

	card *dom.Element
}

// NewBasic builds the basic demo.
func NewBasic() *BasicDemo {
	d := &BasicDemo{
		Target:  newTarget(),
		Message: contextmenu.Label("-"),
	}
	d.Menu = contextmenu.New(contextmenu.WithTarget(d.Target), contextmenu.WithID("basic-context-menu"))
	d.Target.Element().SetAttribute("id", "basic-context-menu-target")

	d.First = d.Menu.AddItem("First menu item", d.say("Clicked on the first item"))
	d.First.SubMenu().Add(contextmenu.Label("foo"))
	d.Bar = d.First.AddItem("bar", d.say("bar"))
	d.Baz = d.Bar.AddItem("baz", d.say("baz"))

	d.Second = d.Menu.AddItem("Second menu item", d.say("Clicked on the second item"))

	d.Disabled = d.Menu.AddItem("Disabled menu item", d.say("This cannot happen"))
	d.Disabled.SetEnabled(false)

	d.AddAtIndex = contextmenu.NewButton("add component at index 1", func() {
		_ = d.Menu.AddComponentAtIndex(1, contextmenu.Label("foo"))
	})
	d.Append = contextmenu.NewButton("add component", func() {
		_ = d.Menu.Add(contextmenu.Label("foo"))
	})
	d.Clear = contextmenu.NewButton("clear sub-menu", func() {
		d.First.SubMenu().RemoveAll()
	})

	d.card = card("Basic ContextMenu", d.Target, d.AddAtIndex, d.Append, d.Clear, d.Message, d.Menu)
	return d
}

// Mount appends the demo card to the root of s.
func (d *BasicDemo) Mount(s *dom.Surface) { s.Root().AppendChild(d.card) }

func (d *BasicDemo) say(text string) func(*contextmenu.ClickEvent) {
	return func(*contextmenu.ClickEvent) { d.Message.Element().SetText(text) }
}

// ComponentsDemo is a menu whose items and overlay contain components.
type ComponentsDemo struct {
	Menu         *contextmenu.ContextMenu
	Target       *contextmenu.Plain
	Message      *contextmenu.Plain
	Heading      *contextmenu.MenuItem
	Checkbox     *contextmenu.Checkbox
	CheckboxItem *contextmenu.MenuItem

	card *dom.Element
}

// NewWithComponents builds the components demo.
func NewWithComponents() *ComponentsDemo {
	d := &ComponentsDemo{
		Target:   newTarget(),
		Message:  contextmenu.Label("-"),
		Checkbox: contextmenu.NewCheckbox("Checkbox"),
	}
	d.Menu = contextmenu.New(contextmenu.WithTarget(d.Target), contextmenu.WithID("context-menu-with-components"))
	d.Target.Element().SetAttribute("id", "context-menu-with-components-target")
	d.Message.Element().SetAttribute("id", "context-menu-with-components-message")

	d.Heading, _ = d.Menu.AddComponentItem(contextmenu.Heading(5, "First menu item"), func(*contextmenu.ClickEvent) {
		d.Message.Element().SetText("Clicked on the first item")
	})
	d.CheckboxItem, _ = d.Menu.AddComponentItem(d.Checkbox, func(*contextmenu.ClickEvent) {
		d.Message.Element().SetText(fmt.Sprintf("Clicked on checkbox with value: %t", d.Checkbox.Checked()))
	})
	_ = d.Menu.Add(contextmenu.Separator(), contextmenu.Label("This is not a menu item"))

	d.card = card("ContextMenu With Components", d.Target, d.Message, d.Menu)
	return d
}

// Mount appends the demo card to the root of s.
func (d *ComponentsDemo) Mount(s *dom.Surface) { s.Root().AppendChild(d.card) }

// newTarget returns the component the demo menus open on.
func newTarget() *contextmenu.Plain {
	div := dom.NewElement("div")
	div.SetAttribute("style", "border: 1px solid black; text-align: center")
	div.AppendChild(contextmenu.Heading(2, "Right click this component").Element())
	p := dom.NewElement("p")
	p.SetText("(or long touch on mobile)")
	div.AppendChild(p)
	return contextmenu.Wrap(div)
}

func card(title string, components ...contextmenu.Component) *dom.Element {
	el := dom.NewElement("section")
	el.SetAttribute("class", "card")
	el.AppendChild(contextmenu.Heading(3, title).Element())
	for _, c := range components {
		el.AppendChild(c.Element())
	}
	return el
}
