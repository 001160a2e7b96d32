package dom

import "errors"

var (
	// ErrNotChild is returned when removing an element that is not a child of the receiver.
	ErrNotChild = errors.New("dom: element is not a child")

	// ErrIndexOutOfRange is returned by InsertChild for an index outside [0, ChildCount()].
	ErrIndexOutOfRange = errors.New("dom: child index out of range")

	// ErrNodeNotFound is returned when no attached node has the requested id.
	ErrNodeNotFound = errors.New("dom: node not found")

	// ErrDisabled is returned when an event targets a disabled node.
	ErrDisabled = errors.New("dom: node is disabled")

	// ErrCycle is returned when an element would become its own ancestor.
	ErrCycle = errors.New("dom: element cannot contain itself")
)
