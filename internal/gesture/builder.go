package gesture

import (
	"errors"
	"time"
)

// ErrNoListener is returned by Build when no listener was provided.
var ErrNoListener = errors.New("gesture: listener is required")

// Default detection settings.
const (
	DefaultBlinkThreshold   = 0.5
	DefaultJawOpenThreshold = 0.4
	DefaultSmileThreshold   = 0.6
	DefaultCooldown         = time.Second
)

// Config holds validated detection settings for one session.
// It is immutable once a Machine has been built from it.
type Config struct {
	BlinkThreshold   float64
	JawOpenThreshold float64
	SmileThreshold   float64
	Cooldown         time.Duration
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		BlinkThreshold:   DefaultBlinkThreshold,
		JawOpenThreshold: DefaultJawOpenThreshold,
		SmileThreshold:   DefaultSmileThreshold,
		Cooldown:         DefaultCooldown,
	}
}

// threshold returns the configured threshold for the given gesture kind.
func (c Config) threshold(kind Kind) float64 {
	switch kind {
	case Blink:
		return c.BlinkThreshold
	case JawOpen:
		return c.JawOpenThreshold
	case Smile:
		return c.SmileThreshold
	default:
		return 1.0
	}
}

// Builder accumulates detection settings and produces a ready-to-use Machine.
// Thresholds are clamped into [0, 1] and the cooldown to non-negative at
// set-time rather than rejected. A listener is required; Build fails
// without one.
type Builder struct {
	cfg      Config
	listener Listener
}

// NewBuilder creates a Builder preloaded with default settings.
func NewBuilder() *Builder {
	return &Builder{cfg: DefaultConfig()}
}

// BlinkThreshold sets the blink confidence threshold, clamped into [0, 1].
func (b *Builder) BlinkThreshold(v float64) *Builder {
	b.cfg.BlinkThreshold = clamp01(v)
	return b
}

// JawOpenThreshold sets the jaw-open confidence threshold, clamped into [0, 1].
func (b *Builder) JawOpenThreshold(v float64) *Builder {
	b.cfg.JawOpenThreshold = clamp01(v)
	return b
}

// SmileThreshold sets the smile confidence threshold, clamped into [0, 1].
func (b *Builder) SmileThreshold(v float64) *Builder {
	b.cfg.SmileThreshold = clamp01(v)
	return b
}

// Cooldown sets the minimum time between detected events for one gesture
// kind. Negative durations are clamped to zero.
func (b *Builder) Cooldown(d time.Duration) *Builder {
	if d < 0 {
		d = 0
	}
	b.cfg.Cooldown = d
	return b
}

// Listener sets the event listener. Required.
func (b *Builder) Listener(l Listener) *Builder {
	b.listener = l
	return b
}

// Build validates the accumulated settings and returns a Machine wired to
// the listener. Returns ErrNoListener if no listener was set.
func (b *Builder) Build() (*Machine, error) {
	if b.listener == nil {
		return nil, ErrNoListener
	}
	return newMachine(b.cfg, b.listener), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
