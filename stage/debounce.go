package stage

import "time"

// Debouncer collapses a burst of signals into one firing after Delay of
// quiet. It is driven by frame deltas rather than timers, so it runs on the
// update loop and needs no locking.
type Debouncer struct {
	Delay time.Duration

	remaining time.Duration
	armed     bool
}

// NewDebouncer returns a debouncer that fires delay after the last signal.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{Delay: delay}
}

// Signal cancels any pending firing and re-arms the full delay.
func (d *Debouncer) Signal() {
	d.remaining = d.Delay
	d.armed = true
}

// Poll advances the clock by dt and reports whether the quiet interval just
// elapsed. It returns true at most once per armed period.
func (d *Debouncer) Poll(dt time.Duration) bool {
	if !d.armed {
		return false
	}
	d.remaining -= dt
	if d.remaining > 0 {
		return false
	}
	d.armed = false
	return true
}

// Pending reports whether a firing is scheduled.
func (d *Debouncer) Pending() bool { return d.armed }

// Cancel drops a pending firing.
func (d *Debouncer) Cancel() { d.armed = false }
