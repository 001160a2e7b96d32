package dom

import (
	"maps"
	"slices"
)

// Surface is a display surface: the attached tree of one session.
type Surface struct {
	root   *Element
	nextID NodeID
	nodes  map[NodeID]*Element

	queue   []pendingResponse
	dirty   map[NodeID]*Element
	removed []NodeID
}

type pendingResponse struct {
	owner *Element
	fn    func()
}

// NodeState is the client-facing snapshot of one node.
type NodeState struct {
	ID       NodeID            `json:"id"`
	Tag      string            `json:"tag"`
	Text     string            `json:"text,omitempty"`
	Attrs    map[string]string `json:"attrs,omitempty"`
	Props    map[string]any    `json:"props,omitempty"`
	Children []NodeID          `json:"children,omitempty"`
	Virtual  []NodeID          `json:"virtual,omitempty"`
}

// Changes is the result of one Flush.
type Changes struct {
	// Nodes holds every node changed since the previous flush, by ascending id.
	Nodes []NodeState
	// Removed holds the ids of nodes detached since the previous flush.
	Removed []NodeID
}

// Empty reports whether there is nothing to send.
func (c Changes) Empty() bool {
	return len(c.Nodes) == 0 && len(c.Removed) == 0
}

// NewSurface creates a surface with an attached body element as its root.
func NewSurface() *Surface {
	s := &Surface{
		nodes: make(map[NodeID]*Element),
		dirty: make(map[NodeID]*Element),
	}
	s.root = NewElement("body")
	s.attach(s.root)
	return s
}

// Root returns the surface's root element. Elements appended under it become attached.
func (s *Surface) Root() *Element { return s.root }

// NodeByID returns the attached node with the given id.
func (s *Surface) NodeByID(id NodeID) (*Element, bool) {
	el, ok := s.nodes[id]
	return el, ok
}

// NodeCount returns the number of attached nodes, including the root.
func (s *Surface) NodeCount() int { return len(s.nodes) }

// BeforeClientResponse queues fn to run during the next Flush, before the
// changes are collected. fn is skipped if owner is no longer attached to s
// when the queue is drained. A nil owner always runs.
func (s *Surface) BeforeClientResponse(owner *Element, fn func()) {
	s.queue = append(s.queue, pendingResponse{owner: owner, fn: fn})
}

// PendingResponses returns the number of queued before-client-response callbacks.
func (s *Surface) PendingResponses() int { return len(s.queue) }

// Flush runs the queued before-client-response callbacks, including ones
// queued while flushing, and returns the accumulated changes.
func (s *Surface) Flush() Changes {
	for len(s.queue) > 0 {
		batch := s.queue
		s.queue = nil
		for _, p := range batch {
			if p.owner == nil || p.owner.surface == s {
				p.fn()
			}
		}
	}

	var out Changes
	ids := slices.Sorted(maps.Keys(s.dirty))
	for _, id := range ids {
		out.Nodes = append(out.Nodes, s.dirty[id].State())
	}
	out.Removed = s.removed
	s.removed = nil
	clear(s.dirty)
	return out
}

// Snapshot returns the state of every attached node by ascending id.
// It does not run queued callbacks or clear dirty state.
func (s *Surface) Snapshot() []NodeState {
	ids := slices.Sorted(maps.Keys(s.nodes))
	out := make([]NodeState, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.nodes[id].State())
	}
	return out
}

// Dispatch delivers a client event of the given type to node id.
func (s *Surface) Dispatch(id NodeID, eventType string, detail map[string]any) error {
	el, ok := s.nodes[id]
	if !ok {
		return ErrNodeNotFound
	}
	if !el.IsEnabledInTree() {
		return ErrDisabled
	}
	el.dispatch(&Event{Type: eventType, Source: el, Detail: detail, FromClient: true})
	return nil
}

func (s *Surface) markDirty(e *Element) {
	s.dirty[e.id] = e
}

// attach assigns ids to the whole subtree, then runs attach callbacks in
// pre-order.
func (s *Surface) attach(el *Element) {
	var attached []*Element
	el.walk(func(n *Element) {
		if n.surface == s {
			return
		}
		s.nextID++
		n.id = s.nextID
		n.surface = s
		s.nodes[n.id] = n
		s.dirty[n.id] = n
		attached = append(attached, n)
	})

	for _, n := range attached {
		if n.surface != s {
			continue
		}
		pending := n.pendingAttach
		n.pendingAttach = nil
		for _, fn := range pending {
			fn(s)
		}
		for _, l := range slices.Clone(n.attachListeners) {
			if !l.removed {
				l.fn(s)
			}
		}
	}
}

func (s *Surface) detach(el *Element) {
	el.walk(func(n *Element) {
		if n.surface != s {
			return
		}
		delete(s.nodes, n.id)
		delete(s.dirty, n.id)
		s.removed = append(s.removed, n.id)
		n.id = 0
		n.surface = nil
	})
}
