// button/button.go
package button

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"buttoncode-go/ao"
	"buttoncode-go/board"
	"buttoncode-go/event"
	"buttoncode-go/x/mathx"
	"buttoncode-go/x/timex"
)

// Handler receives every cooked event for a button, tagged with the
// line it originated on. Implementations decide what to do: toggle an
// LED, post into another inbox, publish on the bus.
type Handler interface {
	OnButtonEvent(line uint8, sig event.Signal, param uint32)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(line uint8, sig event.Signal, param uint32)

func (f HandlerFunc) OnButtonEvent(line uint8, sig event.Signal, param uint32) {
	f(line, sig, param)
}

// Classifier state, advanced only on the classifier's own goroutine.
type state uint8

const (
	stIdle       state = iota
	stPressed1         // first press, finger down
	stWaitSecond       // first release, waiting for a second press
	stPressed2         // second press, finger down
)

// Defaults mirror the source hardware profile.
const (
	DefaultDebounce    = 20 * time.Millisecond
	DefaultLongPress   = 1000 * time.Millisecond
	DefaultDoubleClick = 300 * time.Millisecond
	DefaultPoll        = 10 * time.Millisecond
)

// Config is per-instance and immutable after New. Precondition for
// correct classification (documented, not enforced): Debounce must be
// shorter than both DoubleClick and LongPress.
type Config struct {
	Line      uint8          // hardware line identity, reported to the Handler
	Pin       board.InputPin // settled-level sample source
	ActiveLow bool           // line reads low while the button is down

	Debounce    time.Duration // settle delay applied per raw edge
	LongPress   time.Duration // held at least this long => long press
	DoubleClick time.Duration // second press must start within this window
	Poll        time.Duration // wait-window poll granularity

	Depth   int         // inbox capacity
	Clock   clock.Clock // nil => wall clock
	Handler Handler     // sink for cooked events; nil discards them
}

// Classifier turns raw electrical edges into press/release/click/
// double-click/long-press events. It is an active object: the inbox
// serializes raw edges, and the single consumer goroutine may block in
// the debounce delay and the double-click window without stalling
// anything else.
type Classifier struct {
	cfg Config
	clk clock.Clock
	ao  *ao.Object[event.Event]

	st           state
	pressTicks   uint32
	releaseTicks uint32
}

func New(cfg Config) *Classifier {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.LongPress <= 0 {
		cfg.LongPress = DefaultLongPress
	}
	if cfg.DoubleClick <= 0 {
		cfg.DoubleClick = DefaultDoubleClick
	}
	if cfg.Poll <= 0 {
		cfg.Poll = DefaultPoll
	}
	if cfg.Clock == nil {
		cfg.Clock = clock.New()
	}
	return &Classifier{
		cfg: cfg,
		clk: cfg.Clock,
		ao:  ao.New[event.Event](ao.Config{Name: "button", Depth: cfg.Depth}),
	}
}

// Start launches the classifier's consumer goroutine. Call exactly
// once, before the line's interrupt is enabled.
func (c *Classifier) Start(ctx context.Context) {
	c.ao.Start(ctx, c.handleEvent)
}

// OnISR is the interrupt entry point: enqueue one raw edge, nothing
// else. Never blocks; reports false when the inbox was full and the
// edge was dropped.
func (c *Classifier) OnISR() bool {
	return c.ao.PostFromISR(event.Event{Signal: event.SigRawEdge})
}

// Post delivers an event from task context.
func (c *Classifier) Post(ev event.Event) bool { return c.ao.Post(ev) }

// Drops reports how many raw edges were discarded at the inbox.
func (c *Classifier) Drops() uint32 { return c.ao.Drops() }

// Line returns the configured hardware line identity.
func (c *Classifier) Line() uint8 { return c.cfg.Line }

func (c *Classifier) isPressed() bool {
	if c.cfg.ActiveLow {
		return !c.cfg.Pin.Get()
	}
	return c.cfg.Pin.Get()
}

func (c *Classifier) now() uint32 { return timex.Ticks(c.clk.Now()) }

func (c *Classifier) notify(sig event.Signal, param uint32) {
	if c.cfg.Handler != nil {
		c.cfg.Handler.OnButtonEvent(c.cfg.Line, sig, param)
	}
}

// handleEvent runs the debounce plus one state-machine step. Blocking
// here is safe: each classifier owns its goroutine, so one button's
// wait never stalls another button or the rest of the system.
func (c *Classifier) handleEvent(e event.Event) {
	if e.Signal != event.SigRawEdge {
		return
	}

	c.clk.Sleep(c.cfg.Debounce)
	pressed := c.isPressed()

	switch c.st {
	case stIdle:
		if pressed {
			c.pressTicks = c.now()
			c.st = stPressed1
			c.notify(event.SigButtonPressed, 0)
		}

	case stPressed1:
		if !pressed {
			held := timex.Diff(c.now(), c.pressTicks)
			c.notify(event.SigButtonReleased, held)
			if held >= timex.MsToTicks(c.cfg.LongPress) {
				// A long press never opens a double-click window.
				c.notify(event.SigButtonLongPress, held)
				c.st = stIdle
			} else {
				c.releaseTicks = c.now()
				c.st = stWaitSecond
				c.waitSecond()
			}
		}

	case stPressed2:
		if !pressed {
			c.notify(event.SigButtonDoubleClick, 0)
			c.st = stIdle
		}
	}
	// A settled level that does not match the expected transition is
	// contact noise: no event, no state change.
}

// waitSecond blocks inside dispatch until the double-click window
// closes or a second press lands. The sleep step is clamped to the
// remaining window so the deadline is honoured exactly regardless of
// the poll granularity.
func (c *Classifier) waitSecond() {
	deadline := c.releaseTicks + timex.MsToTicks(c.cfg.DoubleClick)
	for {
		remaining := timex.Until(deadline, c.now())
		if remaining == 0 {
			c.notify(event.SigButtonSingleClick, 0)
			c.st = stIdle
			return
		}
		step := mathx.Min(timex.MsToTicks(c.cfg.Poll), remaining)
		c.clk.Sleep(time.Duration(step) * time.Millisecond)

		if c.isPressed() {
			c.clk.Sleep(c.cfg.Debounce)
			if c.isPressed() {
				c.notify(event.SigButtonPressed, 0)
				c.st = stPressed2
				return
			}
		}
	}
}
