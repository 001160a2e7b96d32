package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vango-go/contextmenu/pkg/dom"
)

// Kind discriminates frames on the wire.
type Kind string

const (
	KindEvent Kind = "event" // Client → Server event
	KindSync  Kind = "sync"  // Server → Client node changes
	KindError Kind = "error" // Server → Client failure
)

// ErrorCode identifies why an event could not be handled.
type ErrorCode string

const (
	CodeInvalidFrame ErrorCode = "invalid_frame"  // Malformed or unexpected frame
	CodeNodeNotFound ErrorCode = "node_not_found" // Event addressed to an unknown node
	CodeDisabled     ErrorCode = "disabled"       // Event addressed to a disabled node
	CodeHandlerError ErrorCode = "handler_error"  // A listener failed or panicked
)

var (
	// ErrInvalidFrame is returned when a frame is not valid JSON or misses required fields.
	ErrInvalidFrame = errors.New("protocol: invalid frame")

	// ErrUnexpectedKind is returned when a frame has a different kind than requested.
	ErrUnexpectedKind = errors.New("protocol: unexpected frame kind")
)

// Envelope is decoded first to learn a frame's kind.
type Envelope struct {
	Kind Kind `json:"kind"`
}

// EventFrame is a client event addressed to one node.
type EventFrame struct {
	Kind   Kind           `json:"kind"`
	Seq    uint64         `json:"seq"`
	Node   dom.NodeID     `json:"node"`
	Type   string         `json:"type"`
	Detail map[string]any `json:"detail,omitempty"`
}

// SyncFrame carries the node changes produced by one event.
type SyncFrame struct {
	Kind    Kind            `json:"kind"`
	Seq     uint64          `json:"seq"`
	Nodes   []dom.NodeState `json:"nodes"`
	Removed []dom.NodeID    `json:"removed,omitempty"`
}

// ErrorFrame reports that the event with Seq was not handled.
type ErrorFrame struct {
	Kind    Kind      `json:"kind"`
	Seq     uint64    `json:"seq"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// NewSyncFrame builds the sync frame answering seq from a surface flush.
func NewSyncFrame(seq uint64, changes dom.Changes) *SyncFrame {
	nodes := changes.Nodes
	if nodes == nil {
		nodes = []dom.NodeState{}
	}
	return &SyncFrame{Kind: KindSync, Seq: seq, Nodes: nodes, Removed: changes.Removed}
}

// PeekKind returns the kind of an encoded frame.
func PeekKind(data []byte) (Kind, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	if env.Kind == "" {
		return "", fmt.Errorf("%w: missing kind", ErrInvalidFrame)
	}
	return env.Kind, nil
}

// DecodeEvent decodes a client event frame. The frame must be of kind
// "event" and name a node and an event type.
func DecodeEvent(data []byte) (*EventFrame, error) {
	var f EventFrame
	if err := decode(data, KindEvent, &f); err != nil {
		return nil, err
	}
	if f.Node == 0 {
		return nil, fmt.Errorf("%w: missing node", ErrInvalidFrame)
	}
	if f.Type == "" {
		return nil, fmt.Errorf("%w: missing type", ErrInvalidFrame)
	}
	return &f, nil
}

// DecodeSync decodes a server sync frame.
func DecodeSync(data []byte) (*SyncFrame, error) {
	var f SyncFrame
	if err := decode(data, KindSync, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// DecodeError decodes a server error frame.
func DecodeError(data []byte) (*ErrorFrame, error) {
	var f ErrorFrame
	if err := decode(data, KindError, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// EncodeEvent encodes a client event frame.
func EncodeEvent(f *EventFrame) ([]byte, error) {
	f.Kind = KindEvent
	return json.Marshal(f)
}

// EncodeSync encodes a sync frame.
func EncodeSync(f *SyncFrame) ([]byte, error) {
	f.Kind = KindSync
	if f.Nodes == nil {
		f.Nodes = []dom.NodeState{}
	}
	return json.Marshal(f)
}

// EncodeError encodes an error frame.
func EncodeError(f *ErrorFrame) ([]byte, error) {
	f.Kind = KindError
	return json.Marshal(f)
}

func decode(data []byte, want Kind, v any) error {
	kind, err := PeekKind(data)
	if err != nil {
		return err
	}
	if kind != want {
		return fmt.Errorf("%w: got %q, want %q", ErrUnexpectedKind, kind, want)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidFrame, err)
	}
	return nil
}
