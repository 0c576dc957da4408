package core

import "testing"

func TestInputFrame(t *testing.T) {
	var f InputFrame
	if f.Has(ActionJump) {
		t.Fatal("zero frame should hold nothing")
	}
	f.Set(ActionJump)
	f.Set(ActionLeft)
	c := f.Clone()
	f.Clear()
	if f.Has(ActionJump) {
		t.Error("Clear should release every action")
	}
	if !c.Has(ActionJump) || !c.Has(ActionLeft) {
		t.Error("Clone should be independent of the source frame")
	}
}

func TestActionString(t *testing.T) {
	if ActionConfirm.String() != "Confirm" {
		t.Errorf("got %q", ActionConfirm.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("got %q", Action(99).String())
	}
}

func TestHeldInputWindow(t *testing.T) {
	h := NewHeldInput(3)
	h.Press(ActionRight, 10)

	for tick := uint64(10); tick < 13; tick++ {
		if !h.Frame(tick).Has(ActionRight) {
			t.Errorf("tick %d: right should still be held", tick)
		}
	}
	if h.Frame(13).Has(ActionRight) {
		t.Error("tick 13: right should have expired")
	}

	h.Press(ActionJump, 20)
	h.Press(ActionJump, 22)
	if !h.Frame(24).Has(ActionJump) {
		t.Error("repeat press should extend the hold window")
	}
}

func TestHeldInputOppositeCancels(t *testing.T) {
	h := NewHeldInput(10)
	h.Press(ActionLeft, 1)
	h.Press(ActionJump, 1)
	h.Press(ActionRight, 2)

	f := h.Frame(2)
	if f.Has(ActionLeft) {
		t.Error("pressing right should release left")
	}
	if !f.Has(ActionRight) || !f.Has(ActionJump) {
		t.Errorf("unexpected frame %v", f.Actions)
	}

	h.Release(ActionJump)
	if h.Frame(3).Has(ActionJump) {
		t.Error("Release should drop the action")
	}
	h.Reset()
	if len(h.Frame(3).Actions) != 0 {
		t.Error("Reset should release everything")
	}
}
