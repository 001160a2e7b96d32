package contextmenu

import "errors"

var (
	// ErrNilComponent is returned when a nil component is passed to a child list.
	ErrNilComponent = errors.New("contextmenu: component cannot be nil")

	// ErrNotChild is returned when removing a component that is not in the child list.
	ErrNotChild = errors.New("contextmenu: component is not a child of this menu")

	// ErrInOtherList is returned when adding a component that is still a child
	// of another menu or submenu. Remove it there first.
	ErrInOtherList = errors.New("contextmenu: component belongs to another menu list")

	// ErrNegativeIndex is returned by AddComponentAtIndex for index < 0.
	ErrNegativeIndex = errors.New("contextmenu: cannot add a component with a negative index")

	// ErrIndexOutOfRange is returned by AddComponentAtIndex for an index past the end.
	ErrIndexOutOfRange = errors.New("contextmenu: index out of range")

	// ErrUnsupportedTarget is returned when resolving the target child of a
	// menu whose target is a template binding.
	ErrUnsupportedTarget = errors.New("contextmenu: target child resolution is not supported for template targets")
)
