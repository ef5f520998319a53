package board

import "testing"

func TestSimPin_EdgeFilter(t *testing.T) {
	p := NewSimPin(true)

	fired := 0
	if err := p.SetIRQ(EdgeFalling, func() { fired++ }); err != nil {
		t.Fatalf("SetIRQ: %v", err)
	}

	p.Trigger(false) // falling: fires
	p.Trigger(false) // no transition: silent
	p.Trigger(true)  // rising: filtered
	p.Trigger(false) // falling: fires

	if fired != 2 {
		t.Fatalf("handler fired %d times, want 2", fired)
	}
	if p.Get() {
		t.Fatal("level should read low")
	}

	if err := p.ClearIRQ(); err != nil {
		t.Fatalf("ClearIRQ: %v", err)
	}
	p.Trigger(true)
	if fired != 2 {
		t.Fatal("handler fired after ClearIRQ")
	}
}

func TestSimPin_BothEdges(t *testing.T) {
	p := NewSimPin(false)
	fired := 0
	_ = p.SetIRQ(EdgeBoth, func() { fired++ })

	p.Trigger(true)
	p.Trigger(false)
	if fired != 2 {
		t.Fatalf("handler fired %d times, want 2", fired)
	}
}

func TestSimOut(t *testing.T) {
	p := NewSimOut(false)
	p.Set(true)
	if !p.Get() {
		t.Fatal("Set(true) not observed")
	}
	p.Toggle()
	if p.Get() {
		t.Fatal("Toggle did not invert")
	}
}
