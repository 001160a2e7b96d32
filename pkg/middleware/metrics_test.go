package middleware

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/vango-go/contextmenu/pkg/contextmenu"
	"github.com/vango-go/contextmenu/pkg/dom"
	"github.com/vango-go/contextmenu/pkg/protocol"
	"github.com/vango-go/contextmenu/pkg/server"
)

func metricHistogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	if m.Histogram == nil {
		t.Fatal("expected histogram metric to have Histogram field")
	}
	return m.GetHistogram().GetSampleCount()
}

// newMenuSession returns a session over a menu with one working and one
// disabled item, and the node ids of both.
func newMenuSession(t *testing.T, mw ...server.Middleware) (*server.Session, dom.NodeID, dom.NodeID) {
	t.Helper()
	var ok, off *contextmenu.MenuItem
	view := func(s *dom.Surface) {
		menu := contextmenu.New()
		ok = menu.AddItem("ok", func(*contextmenu.ClickEvent) {})
		off = menu.AddItem("off", nil)
		off.SetEnabled(false)
		s.Root().AppendChild(menu.Element())
	}
	sess := server.NewSession(view, nil, nil, mw...)
	t.Cleanup(sess.Close)
	sess.InitialSync()
	return sess, ok.Element().NodeID(), off.Element().NodeID()
}

func TestMetricsMiddleware(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg))
	sess, ok, off := newMenuSession(t, m.Middleware())

	ctx := context.Background()
	if _, err := sess.HandleEvent(ctx, &protocol.EventFrame{Node: ok, Type: "click"}); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if _, err := sess.HandleEvent(ctx, &protocol.EventFrame{Node: off, Type: "click"}); err == nil {
		t.Fatal("HandleEvent(disabled) should fail")
	}

	if got := testutil.ToFloat64(m.eventsTotal.WithLabelValues("click", "success")); got != 1 {
		t.Errorf("events_total{success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.eventsTotal.WithLabelValues("click", "error")); got != 1 {
		t.Errorf("events_total{error} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.eventErrors.WithLabelValues("click", string(protocol.CodeDisabled))); got != 1 {
		t.Errorf("event_errors_total{disabled} = %v, want 1", got)
	}
	if got := metricHistogramCount(t, m.eventDuration.WithLabelValues("click")); got != 2 {
		t.Errorf("event_duration_seconds count = %d, want 2", got)
	}
	if got := testutil.ToFloat64(m.syncNodes); got != 0 {
		t.Errorf("sync_nodes_total = %v, want 0 for a click that changes nothing", got)
	}
}

func TestMetricsSyncNodes(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	var label *contextmenu.Plain
	var item *contextmenu.MenuItem
	view := func(s *dom.Surface) {
		label = contextmenu.Label("-")
		menu := contextmenu.New()
		item = menu.AddItem("set", func(*contextmenu.ClickEvent) { label.Element().SetText("set") })
		s.Root().AppendChild(label.Element())
		s.Root().AppendChild(menu.Element())
	}
	sess := server.NewSession(view, nil, nil, m.Middleware())
	t.Cleanup(sess.Close)
	sess.InitialSync()

	if _, err := sess.HandleEvent(context.Background(), &protocol.EventFrame{Node: item.Element().NodeID(), Type: "click"}); err != nil {
		t.Fatal(err)
	}
	if got := testutil.ToFloat64(m.syncNodes); got != 1 {
		t.Errorf("sync_nodes_total = %v, want 1", got)
	}
}

func TestMetricsSessionObserver(t *testing.T) {
	m := NewMetrics(WithRegistry(prometheus.NewRegistry()))
	sm := server.NewSessionManager(0, m)
	a := server.NewSession(nil, nil, nil)
	b := server.NewSession(nil, nil, nil)
	_ = sm.Add(a)
	_ = sm.Add(b)
	sm.Remove(a.ID)

	if got := testutil.ToFloat64(m.activeSessions); got != 1 {
		t.Errorf("active_sessions = %v, want 1", got)
	}
}

func TestMetricsOptions(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(
		WithRegistry(reg),
		WithNamespace("menus"),
		WithSubsystem("demo"),
		WithConstLabels(prometheus.Labels{"app": "test"}),
		WithBuckets([]float64{0.1, 1}),
	)
	m.SessionStarted(nil)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "menus_demo_active_sessions" {
			found = true
			if lp := f.GetMetric()[0].GetLabel(); len(lp) != 1 || lp[0].GetValue() != "test" {
				t.Errorf("labels = %v, want app=test", lp)
			}
		}
	}
	if !found {
		t.Error("menus_demo_active_sessions not registered")
	}
}
