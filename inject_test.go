package bloom

import "testing"

func TestInjectClickTakesTwoSteps(t *testing.T) {
	s := NewScene()
	box := hitBox("box", 40, 40)
	clicks := 0
	box.OnClick = func(ClickContext) { clicks++ }
	s.Root().AddChild(box)

	s.InjectClick(40, 40)
	if len(s.injectQueue) != 2 {
		t.Fatalf("queue = %d, want 2", len(s.injectQueue))
	}
	if !s.Step(1.0 / 60) {
		t.Error("press not consumed")
	}
	if clicks != 0 {
		t.Error("click fired on press")
	}
	if !s.Step(1.0 / 60) {
		t.Error("release not consumed")
	}
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if s.Step(1.0 / 60) {
		t.Error("empty queue reported a consumed event")
	}
}

func TestInjectPressReleaseSeparately(t *testing.T) {
	s := NewScene()
	box := hitBox("box", 40, 40)
	clicks := 0
	box.OnClick = func(ClickContext) { clicks++ }
	s.Root().AddChild(box)

	s.InjectPress(40, 40)
	s.Step(1.0 / 60)
	s.Step(1.0 / 60)
	s.InjectRelease(45, 45)
	s.Step(1.0 / 60)
	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
}

func TestInjectConfirm(t *testing.T) {
	s := NewScene()
	store := &recordingStore{}
	s.SetEntityStore(store)
	confirms := 0
	s.OnConfirm = func() { confirms++ }

	s.InjectConfirm()
	s.InjectConfirm()
	s.Step(1.0 / 60)
	if confirms != 1 {
		t.Errorf("confirms = %d, want 1 per step", confirms)
	}
	if len(store.events) != 1 || store.events[0].Type != EventConfirm {
		t.Errorf("events = %v", store.types())
	}
	s.Step(1.0 / 60)
	if confirms != 1 {
		t.Errorf("confirm repeated on the next step")
	}
}

func TestStepRunsOnUpdate(t *testing.T) {
	s := NewScene()
	n := NewContainer("n")
	var total float64
	n.OnUpdate = func(dt float64) { total += dt }
	s.Root().AddChild(n)
	s.Step(0.25)
	s.Step(0.25)
	assertNear(t, "total", total, 0.5)
}
