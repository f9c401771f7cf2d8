package gesture

import (
	"testing"
	"time"
)

func TestDebouncer_ShouldFire(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("first firing is always eligible", func(t *testing.T) {
		d := NewDebouncer(500 * time.Millisecond)

		if !d.ShouldFire(Blink, base) {
			t.Error("expected first firing to be eligible")
		}
	})

	t.Run("suppressed inside cooldown", func(t *testing.T) {
		d := NewDebouncer(500 * time.Millisecond)
		d.ShouldFire(Blink, base)

		if d.ShouldFire(Blink, base.Add(300*time.Millisecond)) {
			t.Error("firing 300ms after previous should be suppressed")
		}
	})

	t.Run("eligible exactly at cooldown", func(t *testing.T) {
		d := NewDebouncer(500 * time.Millisecond)
		d.ShouldFire(Blink, base)

		if !d.ShouldFire(Blink, base.Add(500*time.Millisecond)) {
			t.Error("firing exactly at cooldown should be eligible")
		}
	})

	t.Run("suppression does not consume the window", func(t *testing.T) {
		d := NewDebouncer(500 * time.Millisecond)
		d.ShouldFire(Blink, base)

		// Suppressed attempts must not push back the next eligible time.
		d.ShouldFire(Blink, base.Add(400*time.Millisecond))
		if !d.ShouldFire(Blink, base.Add(600*time.Millisecond)) {
			t.Error("expected eligibility 600ms after the last successful firing")
		}
	})

	t.Run("kinds are tracked independently", func(t *testing.T) {
		d := NewDebouncer(500 * time.Millisecond)
		d.ShouldFire(Blink, base)

		if !d.ShouldFire(Smile, base.Add(10*time.Millisecond)) {
			t.Error("blink cooldown must not suppress smile")
		}
		if !d.ShouldFire(JawOpen, base.Add(20*time.Millisecond)) {
			t.Error("blink cooldown must not suppress jaw open")
		}
	})

	t.Run("zero cooldown never suppresses", func(t *testing.T) {
		d := NewDebouncer(0)

		for i := 0; i < 3; i++ {
			if !d.ShouldFire(Blink, base) {
				t.Fatal("zero cooldown should always fire")
			}
		}
	})
}

func TestDebouncer_Reset(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	d := NewDebouncer(time.Minute)
	d.ShouldFire(Blink, base)

	d.Reset()

	if !d.ShouldFire(Blink, base.Add(time.Millisecond)) {
		t.Error("expected blink to be eligible again after reset")
	}
}
