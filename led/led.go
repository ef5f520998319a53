// led/led.go
package led

import (
	"context"
	"sync/atomic"

	"buttoncode-go/ao"
	"buttoncode-go/board"
	"buttoncode-go/event"
)

// Config is per-instance and immutable after New.
type Config struct {
	Pin        board.OutputPin
	ActiveHigh bool // true: logical on drives the pin high
	Name       string
	Depth      int // inbox capacity
}

// LED is an active object holding one output line and a logical state.
// It reacts to SigLedOn/SigLedOff/SigLedToggle and ignores everything
// else; all pin access happens on its consumer goroutine.
type LED struct {
	cfg Config
	ao  *ao.Object[event.Event]
	on  atomic.Bool
}

func New(cfg Config) *LED {
	if cfg.Name == "" {
		cfg.Name = "led"
	}
	return &LED{
		cfg: cfg,
		ao:  ao.New[event.Event](ao.Config{Name: cfg.Name, Depth: cfg.Depth}),
	}
}

// Start launches the consumer goroutine. Call exactly once.
func (l *LED) Start(ctx context.Context) {
	l.ao.Start(ctx, l.handleEvent)
}

// Post enqueues a command from task context; false means dropped.
func (l *LED) Post(ev event.Event) bool { return l.ao.Post(ev) }

// PostFromISR enqueues from interrupt context; never blocks.
func (l *LED) PostFromISR(ev event.Event) bool { return l.ao.PostFromISR(ev) }

// On reports the logical state (independent of polarity).
func (l *LED) On() bool { return l.on.Load() }

// Drops reports commands discarded at the inbox.
func (l *LED) Drops() uint32 { return l.ao.Drops() }

func (l *LED) handleEvent(e event.Event) {
	switch e.Signal {
	case event.SigLedOn:
		l.set(true)
	case event.SigLedOff:
		l.set(false)
	case event.SigLedToggle:
		l.set(!l.on.Load())
	}
}

func (l *LED) set(on bool) {
	l.on.Store(on)
	if l.cfg.ActiveHigh {
		l.cfg.Pin.Set(on)
	} else {
		l.cfg.Pin.Set(!on)
	}
}
