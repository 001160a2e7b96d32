package contextmenu

import (
	"fmt"
	"reflect"

	"github.com/vango-go/contextmenu/pkg/dom"
)

// Component is anything backed by a single root element.
type Component interface {
	Element() *dom.Element
}

// TemplateBinding is a component whose content is stamped on the client from
// a template. Its inner nodes have no server-side elements.
type TemplateBinding interface {
	Component
	TemplateID() string
}

// isNil reports whether c is nil or a typed nil pointer.
func isNil(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Plain wraps an element that has no behavior of its own.
type Plain struct {
	el *dom.Element
}

// Wrap returns a component for an existing element.
func Wrap(el *dom.Element) *Plain { return &Plain{el: el} }

// Element implements Component.
func (p *Plain) Element() *dom.Element { return p.el }

// Label returns a <label> with the given text.
func Label(text string) *Plain {
	el := dom.NewElement("label")
	el.SetText(text)
	return Wrap(el)
}

// Heading returns an <hN> element. Levels outside 1..6 are clamped.
func Heading(level int, text string) *Plain {
	level = min(max(level, 1), 6)
	el := dom.NewElement(fmt.Sprintf("h%d", level))
	el.SetText(text)
	return Wrap(el)
}

// Separator returns an <hr>.
func Separator() *Plain {
	return Wrap(dom.NewElement("hr"))
}

// Button is a native <button> that runs a server callback on click.
type Button struct {
	el *dom.Element
}

// NewButton creates a button. onClick may be nil.
func NewButton(text string, onClick func()) *Button {
	el := dom.NewElement("button")
	el.SetText(text)
	if onClick != nil {
		el.AddEventListener("click", func(*dom.Event) { onClick() })
	}
	return &Button{el: el}
}

// Element implements Component.
func (b *Button) Element() *dom.Element { return b.el }

// Checkbox is a <vaadin-checkbox> whose checked state is synced from the client.
type Checkbox struct {
	el      *dom.Element
	checked bool
}

// NewCheckbox creates an unchecked checkbox with the given label.
func NewCheckbox(label string) *Checkbox {
	cb := &Checkbox{el: dom.NewElement("vaadin-checkbox")}
	cb.el.SetText(label)
	cb.el.SetProperty("checked", false)
	cb.el.AddEventListener("checked-changed", func(e *dom.Event) {
		cb.checked = e.Bool("value")
		cb.el.SetProperty("checked", cb.checked)
	})
	return cb
}

// Element implements Component.
func (c *Checkbox) Element() *dom.Element { return c.el }

// Checked reports the last known checked state.
func (c *Checkbox) Checked() bool { return c.checked }

// SetChecked sets the checked state and pushes it to the client.
func (c *Checkbox) SetChecked(checked bool) {
	c.checked = checked
	c.el.SetProperty("checked", checked)
}

// Template is a component rendered from a client-side template.
type Template struct {
	el         *dom.Element
	templateID string
}

var _ TemplateBinding = (*Template)(nil)

// NewTemplate creates a template-bound component with the given tag.
func NewTemplate(tag, templateID string) *Template {
	el := dom.NewElement(tag)
	el.SetAttribute("data-template", templateID)
	return &Template{el: el, templateID: templateID}
}

// Element implements Component.
func (t *Template) Element() *dom.Element { return t.el }

// TemplateID implements TemplateBinding.
func (t *Template) TemplateID() string { return t.templateID }
