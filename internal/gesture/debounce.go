package gesture

import "time"

// Debouncer suppresses repeat detected-event firings for each gesture kind.
// Cooldowns are tracked independently per kind in a fixed-size table; a
// suppressed blink has no effect on a smile's eligibility.
type Debouncer struct {
	cooldown  time.Duration
	lastFired [numKinds]time.Time
	fired     [numKinds]bool
}

// NewDebouncer creates a Debouncer with the given cooldown.
func NewDebouncer(cooldown time.Duration) *Debouncer {
	return &Debouncer{cooldown: cooldown}
}

// ShouldFire reports whether a detected event for the kind may fire at the
// given time, and records the firing when it may. The kind is eligible if it
// has never fired or the cooldown has fully elapsed since its last firing.
// A false result leaves the table untouched.
func (d *Debouncer) ShouldFire(kind Kind, now time.Time) bool {
	if d.fired[kind] && now.Sub(d.lastFired[kind]) < d.cooldown {
		return false
	}
	d.fired[kind] = true
	d.lastFired[kind] = now
	return true
}

// Reset clears all firing history, making every kind immediately eligible.
func (d *Debouncer) Reset() {
	d.fired = [numKinds]bool{}
	d.lastFired = [numKinds]time.Time{}
}
