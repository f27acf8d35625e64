package stage

import (
	"testing"
	"time"
)

func TestDebouncerFiresOnceAfterQuiet(t *testing.T) {
	d := NewDebouncer(300 * time.Millisecond)
	if d.Poll(time.Second) {
		t.Fatal("fired without a signal")
	}
	d.Signal()
	if d.Poll(299 * time.Millisecond) {
		t.Fatal("fired early")
	}
	if !d.Poll(time.Millisecond) {
		t.Fatal("did not fire at the delay")
	}
	if d.Poll(time.Second) || d.Pending() {
		t.Fatal("fired twice")
	}
}

func TestDebouncerSignalResets(t *testing.T) {
	d := NewDebouncer(300 * time.Millisecond)
	d.Signal()
	d.Poll(250 * time.Millisecond)
	d.Signal()
	if d.Poll(250 * time.Millisecond) {
		t.Fatal("signal did not restart the interval")
	}
	if !d.Poll(50 * time.Millisecond) {
		t.Fatal("did not fire after the restarted interval")
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(time.Millisecond)
	d.Signal()
	d.Cancel()
	if d.Poll(time.Second) {
		t.Fatal("cancelled debouncer fired")
	}
}

func TestDebouncerZeroDelay(t *testing.T) {
	d := NewDebouncer(0)
	d.Signal()
	if !d.Poll(0) {
		t.Fatal("zero delay should fire on the next poll")
	}
}
