package button

import (
	"context"
	"testing"
	"time"

	"buttoncode-go/board"
	"buttoncode-go/event"
	"buttoncode-go/registry"
)

type cooked struct {
	line  uint8
	sig   event.Signal
	param uint32
}

type recorder struct{ ch chan cooked }

func newRecorder() *recorder { return &recorder{ch: make(chan cooked, 32)} }

func (r *recorder) OnButtonEvent(line uint8, sig event.Signal, param uint32) {
	r.ch <- cooked{line: line, sig: sig, param: param}
}

func (r *recorder) expect(t *testing.T, want event.Signal) cooked {
	t.Helper()
	select {
	case got := <-r.ch:
		if got.sig != want {
			t.Fatalf("got %v, want %v", got.sig, want)
		}
		return got
	case <-time.After(2 * time.Second):
		t.Fatalf("timeout waiting for %v", want)
		return cooked{}
	}
}

func (r *recorder) expectNone(t *testing.T, d time.Duration) {
	t.Helper()
	select {
	case got := <-r.ch:
		t.Fatalf("unexpected event %v(param=%d)", got.sig, got.param)
	case <-time.After(d):
	}
}

// fastCfg keeps the wall-clock tests comfortably inside their margins.
func fastCfg() Config {
	return Config{
		Line:        13,
		Debounce:    5 * time.Millisecond,
		LongPress:   400 * time.Millisecond,
		DoubleClick: 150 * time.Millisecond,
		Poll:        5 * time.Millisecond,
	}
}

func newTestButton(t *testing.T, cfg Config) (*board.SimPin, *recorder, *Classifier) {
	t.Helper()
	pin := board.NewSimPin(true) // active-low line resting high
	rec := newRecorder()
	cfg.Pin = pin
	cfg.ActiveLow = true
	cfg.Handler = rec
	c := New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	c.Start(ctx)
	if err := pin.SetIRQ(board.EdgeBoth, func() { c.OnISR() }); err != nil {
		t.Fatalf("SetIRQ: %v", err)
	}
	return pin, rec, c
}

func TestClassifier_SingleClick(t *testing.T) {
	pin, rec, _ := newTestButton(t, fastCfg())

	pin.Trigger(false) // press
	time.Sleep(30 * time.Millisecond)
	pin.Trigger(true) // release

	rec.expect(t, event.SigButtonPressed)
	rel := rec.expect(t, event.SigButtonReleased)
	if rel.param >= 400 {
		t.Fatalf("held=%d, want under the long-press threshold", rel.param)
	}
	got := rec.expect(t, event.SigButtonSingleClick)
	if got.line != 13 {
		t.Fatalf("line=%d, want 13", got.line)
	}
	if got.param != 0 {
		t.Fatalf("single click param=%d, want 0", got.param)
	}
	rec.expectNone(t, 100*time.Millisecond)
}

func TestClassifier_DoubleClick(t *testing.T) {
	pin, rec, _ := newTestButton(t, fastCfg())

	pin.Trigger(false)
	time.Sleep(30 * time.Millisecond)
	pin.Trigger(true)
	time.Sleep(40 * time.Millisecond) // second press well inside the window
	pin.Trigger(false)
	time.Sleep(30 * time.Millisecond)
	pin.Trigger(true)

	rec.expect(t, event.SigButtonPressed)
	rec.expect(t, event.SigButtonReleased)
	rec.expect(t, event.SigButtonPressed)
	dbl := rec.expect(t, event.SigButtonDoubleClick)
	if dbl.param != 0 {
		t.Fatalf("double click param=%d, want 0", dbl.param)
	}
	// A single click must never follow a double click.
	rec.expectNone(t, 250*time.Millisecond)
}

func TestClassifier_LongPress(t *testing.T) {
	pin, rec, _ := newTestButton(t, fastCfg())

	pin.Trigger(false)
	time.Sleep(450 * time.Millisecond)
	pin.Trigger(true)

	rec.expect(t, event.SigButtonPressed)
	rel := rec.expect(t, event.SigButtonReleased)
	if rel.param < 400 {
		t.Fatalf("held=%d, want >= long-press threshold", rel.param)
	}
	lp := rec.expect(t, event.SigButtonLongPress)
	if lp.param != rel.param {
		t.Fatalf("long press param=%d, released param=%d; want equal", lp.param, rel.param)
	}
	// No double-click window after a long press.
	rec.expectNone(t, 250*time.Millisecond)
}

func TestClassifier_GlitchRejected(t *testing.T) {
	pin, rec, _ := newTestButton(t, fastCfg())

	// Two edges that settle back to released before the debounce
	// delay expires: pure contact noise.
	pin.Trigger(false)
	time.Sleep(time.Millisecond)
	pin.Trigger(true)

	rec.expectNone(t, 100*time.Millisecond)
}

func TestClassifier_BounceOnPressEmitsOnce(t *testing.T) {
	pin, rec, _ := newTestButton(t, fastCfg())

	// Three raw edges from one bouncy press that settles pressed.
	pin.Trigger(false)
	time.Sleep(time.Millisecond)
	pin.Trigger(true)
	time.Sleep(time.Millisecond)
	pin.Trigger(false)

	rec.expect(t, event.SigButtonPressed)
	time.Sleep(30 * time.Millisecond)
	pin.Trigger(true)

	rec.expect(t, event.SigButtonReleased)
	rec.expect(t, event.SigButtonSingleClick)
	rec.expectNone(t, 100*time.Millisecond)
}

func TestClassifier_InboxBound(t *testing.T) {
	pin := board.NewSimPin(true)
	rec := newRecorder()
	cfg := fastCfg()
	cfg.Pin = pin
	cfg.ActiveLow = true
	cfg.Handler = rec
	cfg.Depth = 2
	c := New(cfg) // consumer never started

	for i := 0; i < 5; i++ {
		c.OnISR()
	}
	if c.Drops() != 3 {
		t.Fatalf("Drops() = %d, want 3", c.Drops())
	}
}

// End-to-end at the default 20/1000/300ms profile, driven through the
// line registry the way the shared interrupt entry point does it.
func TestClassifier_DefaultProfileScenario(t *testing.T) {
	pin := board.NewSimPin(true)
	rec := newRecorder()
	c := New(Config{Line: 5, Pin: pin, ActiveLow: true, Handler: rec})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	c.Start(ctx)

	reg := registry.New()
	reg.Register(5, c)
	if err := pin.SetIRQ(board.EdgeBoth, func() { reg.Dispatch(5) }); err != nil {
		t.Fatalf("SetIRQ: %v", err)
	}

	start := time.Now()
	pin.Trigger(false) // t=0: press
	time.Sleep(50 * time.Millisecond)
	pin.Trigger(true) // t=50ms: release

	rec.expect(t, event.SigButtonPressed)
	rel := rec.expect(t, event.SigButtonReleased)
	if rel.param < 20 || rel.param > 200 {
		t.Fatalf("held=%dms, want around 50ms", rel.param)
	}

	rec.expect(t, event.SigButtonSingleClick)
	if since := time.Since(start); since < 300*time.Millisecond {
		t.Fatalf("single click after %v, want at least the 300ms window", since)
	}
}
