package protocol

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-go/contextmenu/pkg/dom"
)

func TestDecodeEvent(t *testing.T) {
	f, err := DecodeEvent([]byte(`{"kind":"event","seq":7,"node":12,"type":"click","detail":{"clientX":4,"shiftKey":true}}`))
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}
	if f.Seq != 7 || f.Node != 12 || f.Type != "click" {
		t.Errorf("frame = %+v, want seq=7 node=12 type=click", f)
	}
	if f.Detail["clientX"] != float64(4) || f.Detail["shiftKey"] != true {
		t.Errorf("Detail = %v", f.Detail)
	}
}

func TestDecodeEventErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"not json", `{"kind":`, ErrInvalidFrame},
		{"missing kind", `{"seq":1,"node":2,"type":"click"}`, ErrInvalidFrame},
		{"wrong kind", `{"kind":"sync","seq":1}`, ErrUnexpectedKind},
		{"missing node", `{"kind":"event","type":"click"}`, ErrInvalidFrame},
		{"missing type", `{"kind":"event","node":3}`, ErrInvalidFrame},
		{"bad node", `{"kind":"event","node":"three","type":"click"}`, ErrInvalidFrame},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEvent([]byte(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeEvent() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeSync(t *testing.T) {
	data, err := EncodeSync(&SyncFrame{Seq: 3})
	if err != nil {
		t.Fatalf("EncodeSync() error = %v", err)
	}
	if got := string(data); got != `{"kind":"sync","seq":3,"nodes":[]}` {
		t.Errorf("EncodeSync() = %s", got)
	}

	s := dom.NewSurface()
	item := dom.NewElement("vaadin-item")
	item.SetText("Open")
	s.Root().AppendChild(item)
	s.Root().RemoveChild(item)
	s.Root().AppendChild(item)

	frame := NewSyncFrame(9, s.Flush())
	data, err = EncodeSync(frame)
	if err != nil {
		t.Fatalf("EncodeSync() error = %v", err)
	}
	back, err := DecodeSync(data)
	if err != nil {
		t.Fatalf("DecodeSync() error = %v", err)
	}
	if back.Seq != 9 || len(back.Nodes) != len(frame.Nodes) {
		t.Errorf("DecodeSync() = %+v, want %d nodes", back, len(frame.Nodes))
	}
}

func TestEncodeError(t *testing.T) {
	data, err := EncodeError(&ErrorFrame{Seq: 2, Code: CodeDisabled, Message: "dom: node disabled"})
	if err != nil {
		t.Fatalf("EncodeError() error = %v", err)
	}
	kind, err := PeekKind(data)
	if err != nil || kind != KindError {
		t.Fatalf("PeekKind() = %q, %v, want error", kind, err)
	}
	back, err := DecodeError(data)
	if err != nil {
		t.Fatalf("DecodeError() error = %v", err)
	}
	if back.Seq != 2 || back.Code != CodeDisabled {
		t.Errorf("DecodeError() = %+v", back)
	}
	if _, err := DecodeSync(data); !errors.Is(err, ErrUnexpectedKind) {
		t.Errorf("DecodeSync(error frame) error = %v, want ErrUnexpectedKind", err)
	}
}

func TestEncodeEventRoundTrip(t *testing.T) {
	data, err := EncodeEvent(&EventFrame{Seq: 1, Node: 5, Type: "opened-changed", Detail: map[string]any{"opened": true}})
	if err != nil {
		t.Fatalf("EncodeEvent() error = %v", err)
	}
	if !strings.Contains(string(data), `"kind":"event"`) {
		t.Errorf("EncodeEvent() = %s, want kind event", data)
	}
	f, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent() error = %v", err)
	}
	if f.Detail["opened"] != true {
		t.Errorf("Detail = %v", f.Detail)
	}
}

func TestSyncFrameNodeState(t *testing.T) {
	data := []byte(`{"kind":"sync","seq":0,"nodes":[{"id":2,"tag":"vaadin-item","props":{"_containerNodeId":4},"virtual":[4]}]}`)
	f, err := DecodeSync(data)
	if err != nil {
		t.Fatalf("DecodeSync() error = %v", err)
	}
	n := f.Nodes[0]
	if n.ID != 2 || n.Tag != "vaadin-item" || len(n.Virtual) != 1 || n.Virtual[0] != 4 {
		t.Errorf("node = %+v", n)
	}
}
