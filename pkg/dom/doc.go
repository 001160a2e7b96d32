// Package dom provides the server-maintained element tree that components
// render into.
//
// An Element is a server-side mirror of one client DOM node. Elements form a
// tree through real children, which the client renders in place, and virtual
// children, which the client receives but does not render where they sit in
// the tree. Virtual children carry data or host content that a client widget
// pulls in by node id.
//
// # Surfaces
//
// A Surface is the display surface a tree becomes part of when it is shown to
// a user. Appending an element under Surface.Root attaches the whole subtree:
// every node receives a NodeID and attach callbacks run afterwards, so a
// callback can read the ids of its node's children and virtual children.
//
//	s := dom.NewSurface()
//	item := dom.NewElement("vaadin-item")
//	item.RunWhenAttached(func(s *dom.Surface) {
//	    s.BeforeClientResponse(item, func() {
//	        item.SetProperty("ready", true)
//	    })
//	})
//	s.Root().AppendChild(item)
//	changes := s.Flush()
//
// # Client responses
//
// Mutations on attached elements mark them dirty. Flush first drains the
// before-client-response queue, then reports every dirty node as a NodeState
// together with the ids removed since the previous flush. The caller sends
// the result to the client.
//
// # Events
//
// Surface.Dispatch delivers a client event to the listeners of a node.
// Events for disabled nodes, or nodes inside a disabled subtree, are dropped
// with ErrDisabled.
//
// # Thread Safety
//
// A Surface and its elements belong to one session and are not safe for
// concurrent use. The session's event loop serializes access.
package dom
