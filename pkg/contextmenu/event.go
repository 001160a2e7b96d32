package contextmenu

import "github.com/vango-go/contextmenu/pkg/dom"

// ClickEvent is delivered to MenuItem click listeners.
type ClickEvent struct {
	// Source is the clicked item.
	Source *MenuItem

	// FromClient is false for clicks fired with MenuItem.Click.
	FromClient bool

	ClientX, ClientY int
	ScreenX, ScreenY int
	Button           int
	ClickCount       int

	AltKey, CtrlKey, MetaKey, ShiftKey bool

	targetChild *dom.Element
	targetErr   error
}

func newClickEvent(item *MenuItem, e *dom.Event) *ClickEvent {
	ev := &ClickEvent{
		Source:     item,
		FromClient: e.FromClient,
		ClientX:    e.Int("clientX"),
		ClientY:    e.Int("clientY"),
		ScreenX:    e.Int("screenX"),
		ScreenY:    e.Int("screenY"),
		Button:     e.Int("button"),
		ClickCount: e.Int("detail"),
		AltKey:     e.Bool("altKey"),
		CtrlKey:    e.Bool("ctrlKey"),
		MetaKey:    e.Bool("metaKey"),
		ShiftKey:   e.Bool("shiftKey"),
	}
	ev.targetChild, ev.targetErr = resolveTargetChild(item.menu)
	return ev
}

func resolveTargetChild(menu *ContextMenu) (*dom.Element, error) {
	if _, ok := menu.Target().(TemplateBinding); ok {
		return nil, ErrUnsupportedTarget
	}
	return menu.TargetChildElement(), nil
}

// TargetChild returns the element of the menu target under the pointer when
// the menu was opened, or nil when unknown. It fails with
// ErrUnsupportedTarget when the target is a TemplateBinding.
func (e *ClickEvent) TargetChild() (*dom.Element, error) {
	return e.targetChild, e.targetErr
}
