package dom

import "strconv"

// Event is a client event delivered to an element's listeners.
type Event struct {
	// Type is the DOM event name, e.g. "click".
	Type string

	// Source is the element the event was dispatched to.
	Source *Element

	// Detail holds the event payload sent by the client.
	Detail map[string]any

	// FromClient is false for events fired from server code.
	FromClient bool
}

// Fire delivers a server-originated event to el's listeners, bypassing the
// enabled check.
func Fire(el *Element, eventType string, detail map[string]any) {
	el.dispatch(&Event{Type: eventType, Source: el, Detail: detail})
}

// Has reports whether the detail contains key.
func (e *Event) Has(key string) bool {
	_, ok := e.Detail[key]
	return ok
}

// String returns a detail value as a string.
func (e *Event) String(key string) string {
	v, _ := e.Detail[key].(string)
	return v
}

// Int returns a detail value as an int. JSON numbers decode as float64 and
// are truncated; numeric strings are parsed. Anything else is 0.
func (e *Event) Int(key string) int {
	switch v := e.Detail[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint32:
		return int(v)
	case float64:
		return int(v)
	case string:
		n, _ := strconv.Atoi(v)
		return n
	default:
		return 0
	}
}

// Bool returns a detail value as a bool.
func (e *Event) Bool(key string) bool {
	switch v := e.Detail[key].(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}
