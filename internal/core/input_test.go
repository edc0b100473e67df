package core

import "testing"

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()

	f.Set(ActionLaunch)
	f.Click(4, 7)

	if !f.Has(ActionLaunch) {
		t.Error("Has(ActionLaunch) should be true after Set")
	}
	if f.Has(ActionLeft) {
		t.Error("Has(ActionLeft) should be false")
	}
	if len(f.Clicks) != 1 || f.Clicks[0] != (Point{X: 4, Y: 7}) {
		t.Errorf("Clicks = %v, expected [{4 7}]", f.Clicks)
	}

	f.Clear()

	if f.Has(ActionLaunch) || len(f.Clicks) != 0 {
		t.Error("frame should be empty after Clear")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionQuit) {
		t.Error("zero frame should have no actions")
	}
	f.Set(ActionQuit)
	if !f.Has(ActionQuit) {
		t.Error("Set should allocate the action map")
	}
}

func TestActionString(t *testing.T) {
	if ActionAimLeft.String() != "AimLeft" {
		t.Errorf("ActionAimLeft.String() = %q", ActionAimLeft.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q", Action(99).String())
	}
}
