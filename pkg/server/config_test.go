package server

import (
	"errors"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.Address != ":8080" {
		t.Errorf("Address = %q, want :8080", c.Address)
	}
	if c.ReadTimeout != 60*time.Second || c.WriteTimeout != 10*time.Second {
		t.Errorf("timeouts = %s/%s, want 60s/10s", c.ReadTimeout, c.WriteTimeout)
	}
	if c.MaxMessageSize != 64*1024 {
		t.Errorf("MaxMessageSize = %d, want 65536", c.MaxMessageSize)
	}
	if c.MetricsPath != "/metrics" {
		t.Errorf("MetricsPath = %q, want /metrics", c.MetricsPath)
	}
	if c.CheckOrigin == nil {
		t.Error("CheckOrigin should default to SameOriginCheck")
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfigClone(t *testing.T) {
	var nilConfig *Config
	if nilConfig.Clone() != nil {
		t.Error("nil Clone() should be nil")
	}

	c := DefaultConfig().WithAddress(":9000")
	clone := c.Clone()
	clone.Address = ":1"
	if c.Address != ":9000" {
		t.Errorf("Address = %q, clone should not alias", c.Address)
	}
}

func TestConfigWithDefaults(t *testing.T) {
	c := (&Config{Address: ":1234", MaxSessions: 2}).withDefaults()
	if c.Address != ":1234" || c.MaxSessions != 2 {
		t.Errorf("set fields overwritten: %+v", c)
	}
	if c.ReadBufferSize != 4096 || c.HeartbeatInterval != 30*time.Second || c.Title == "" {
		t.Errorf("unset fields not filled: %+v", c)
	}

	var nilConfig *Config
	if got := nilConfig.withDefaults(); got.Address != ":8080" {
		t.Errorf("nil withDefaults() Address = %q", got.Address)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"negative sessions", func(c *Config) { c.MaxSessions = -1 }},
		{"negative message size", func(c *Config) { c.MaxMessageSize = -1 }},
		{"heartbeat too slow", func(c *Config) { c.HeartbeatInterval = c.ReadTimeout }},
		{"relative metrics path", func(c *Config) { c.MetricsPath = "metrics" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.modify(c)
			if err := c.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestSameOriginCheck(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		want   bool
	}{
		{"no origin", "", true},
		{"same host", "http://example.com", true},
		{"other host", "http://evil.com", false},
		{"other port", "http://example.com:8081", false},
		{"bad url", "://", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "http://example.com/ws", nil)
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			if got := SameOriginCheck(r); got != tt.want {
				t.Errorf("SameOriginCheck(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}
