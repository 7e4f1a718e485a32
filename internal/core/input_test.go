package core

import "testing"

func TestInputFrameSetHasClear(t *testing.T) {
	var f InputFrame
	f.Set(ActionLeft)
	if !f.Has(ActionLeft) || f.Has(ActionRight) {
		t.Fatalf("frame = %v, expected only Left", f.Actions)
	}

	kept := f
	f.Clear()
	if f.Has(ActionLeft) {
		t.Error("Clear left Left set")
	}
	if !kept.Has(ActionLeft) {
		t.Error("Clear changed a frame handed out before it")
	}

	f.Set(ActionPause)
	if kept.Has(ActionPause) {
		t.Error("actions of the next tick leaked into an earlier frame")
	}
}
