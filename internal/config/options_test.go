package config

import (
	"testing"
	"time"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.TimeoutEnabled() {
		t.Error("expected timeout enabled by default")
	}
	if opts.Timeout() != time.Second {
		t.Errorf("expected 1s timeout, got %v", opts.Timeout())
	}
	if opts.TestMode() {
		t.Error("expected test mode off by default")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("MODALKEY_TIMEOUTLEN", "250")
	t.Setenv("MODALKEY_NOTIMEOUT", "true")

	opts := FromEnv()
	if opts.Timeout() != 250*time.Millisecond {
		t.Errorf("expected 250ms timeout, got %v", opts.Timeout())
	}
	if opts.TimeoutEnabled() {
		t.Error("expected timeout disabled")
	}
}

func TestFromEnvIgnoresGarbage(t *testing.T) {
	t.Setenv("MODALKEY_TIMEOUTLEN", "soon")
	t.Setenv("MODALKEY_NOTIMEOUT", "maybe")

	opts := FromEnv()
	if opts.Timeout() != time.Second {
		t.Errorf("expected default timeout kept, got %v", opts.Timeout())
	}
	if !opts.TimeoutEnabled() {
		t.Error("expected default timeout setting kept")
	}
}
