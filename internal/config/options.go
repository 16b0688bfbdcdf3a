// Package config exposes the engine's option surface: whether the mapping
// disambiguation timeout applies, its duration, and whether the host runs
// in non-interactive test mode (which suppresses the timeout entirely).
package config

import (
	"os"
	"strconv"
	"time"
)

// Options is the engine's read-only view of host configuration.
type Options interface {
	// TimeoutEnabled reports whether an unfinished mapping prefix should
	// be abandoned after Timeout elapses.
	TimeoutEnabled() bool

	// Timeout is the disambiguation delay.
	Timeout() time.Duration

	// TestMode reports non-interactive execution; the mapping timer is
	// never armed in test mode.
	TestMode() bool
}

// Static is a fixed Options value.
type Static struct {
	Timeoutlen time.Duration
	NoTimeout  bool
	Test       bool
}

// DefaultOptions returns the Vim defaults: timeout on, 1000ms.
func DefaultOptions() Static {
	return Static{Timeoutlen: time.Second}
}

// FromEnv returns DefaultOptions overlaid with any MODALKEY_TIMEOUTLEN
// (milliseconds) and MODALKEY_NOTIMEOUT settings from the environment.
// Unparseable values are ignored.
func FromEnv() Static {
	s := DefaultOptions()
	if v := os.Getenv("MODALKEY_TIMEOUTLEN"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			s.Timeoutlen = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("MODALKEY_NOTIMEOUT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			s.NoTimeout = b
		}
	}
	return s
}

// TimeoutEnabled implements Options.
func (s Static) TimeoutEnabled() bool { return !s.NoTimeout }

// Timeout implements Options.
func (s Static) Timeout() time.Duration { return s.Timeoutlen }

// TestMode implements Options.
func (s Static) TestMode() bool { return s.Test }
