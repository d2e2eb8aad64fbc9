package core

import (
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TEST_PRESENT", "value")
	if got := GetEnvOrDefault("TEST_PRESENT", "fallback"); got != "value" {
		t.Errorf("got %q, want value", got)
	}
	if got := GetEnvOrDefault("TEST_ABSENT_XYZ", "fallback"); got != "fallback" {
		t.Errorf("got %q, want fallback", got)
	}
}

func TestParseIntEnv(t *testing.T) {
	t.Setenv("TEST_INT", "42")
	t.Setenv("TEST_BAD_INT", "forty-two")

	if got := ParseIntEnv("TEST_INT", 7); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
	if got := ParseIntEnv("TEST_BAD_INT", 7); got != 7 {
		t.Errorf("unparseable value should fall back, got %d", got)
	}
	if got := ParseIntEnv("TEST_UNSET_INT", 7); got != 7 {
		t.Errorf("unset value should fall back, got %d", got)
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"true", true}, {"TRUE", true}, {"1", true}, {"yes", true}, {"on", true},
		{"false", false}, {"0", false}, {"no", false}, {"off", false},
		{"maybe", true}, // falls back to the default
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tt.value)
			if got := ParseBoolEnv("TEST_BOOL", true); got != tt.want {
				t.Errorf("ParseBoolEnv(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseDurationEnv(t *testing.T) {
	t.Setenv("TEST_DUR", "1500ms")
	t.Setenv("TEST_DUR_SECS", "5")
	t.Setenv("TEST_DUR_BAD", "soon")

	if got := ParseDurationEnv("TEST_DUR", time.Second); got != 1500*time.Millisecond {
		t.Errorf("got %v, want 1.5s", got)
	}
	if got := ParseDurationEnv("TEST_DUR_SECS", time.Second); got != 5*time.Second {
		t.Errorf("bare integer should parse as seconds, got %v", got)
	}
	if got := ParseDurationEnv("TEST_DUR_BAD", time.Second); got != time.Second {
		t.Errorf("unparseable value should fall back, got %v", got)
	}
}
