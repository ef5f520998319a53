// board/board_linux.go
//go:build linux && !(rp2040 || rp2350)

package board

import (
	"sync"

	"github.com/warthog618/go-gpiocdev"

	"buttoncode-go/errcode"
)

// GPIOLine adapts one Linux gpiochip input line to IRQPin. Kernel edge
// events invoke the registered handler on the gpiocdev event
// goroutine, which stands in for interrupt context here: the handler
// must only enqueue.
type GPIOLine struct {
	chip   string
	offset int

	mu   sync.Mutex
	line *gpiocdev.Line
}

// NewGPIOLine requests offset on chip (e.g. "gpiochip0") as a
// pulled-up input.
func NewGPIOLine(chip string, offset int) (*GPIOLine, error) {
	ln, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsInput, gpiocdev.WithPullUp)
	if err != nil {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "board.NewGPIOLine", Err: err}
	}
	return &GPIOLine{chip: chip, offset: offset, line: ln}, nil
}

func (l *GPIOLine) Get() bool {
	l.mu.Lock()
	ln := l.line
	l.mu.Unlock()
	if ln == nil {
		return false
	}
	v, err := ln.Value()
	return err == nil && v != 0
}

// SetIRQ re-requests the line with kernel edge detection attached.
func (l *GPIOLine) SetIRQ(edge Edge, handler func()) error {
	opts := []gpiocdev.LineReqOption{
		gpiocdev.AsInput,
		gpiocdev.WithPullUp,
		gpiocdev.WithEventHandler(func(gpiocdev.LineEvent) { handler() }),
	}
	switch edge {
	case EdgeRising:
		opts = append(opts, gpiocdev.WithRisingEdge)
	case EdgeFalling:
		opts = append(opts, gpiocdev.WithFallingEdge)
	case EdgeBoth:
		opts = append(opts, gpiocdev.WithBothEdges)
	default:
		return nil
	}
	return l.rerequest(opts)
}

// ClearIRQ drops edge detection, leaving a plain input request.
func (l *GPIOLine) ClearIRQ() error {
	return l.rerequest([]gpiocdev.LineReqOption{gpiocdev.AsInput, gpiocdev.WithPullUp})
}

func (l *GPIOLine) rerequest(opts []gpiocdev.LineReqOption) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.line != nil {
		_ = l.line.Close()
		l.line = nil
	}
	ln, err := gpiocdev.RequestLine(l.chip, l.offset, opts...)
	if err != nil {
		return &errcode.E{C: errcode.UnknownPin, Op: "board.GPIOLine", Err: err}
	}
	l.line = ln
	return nil
}

func (l *GPIOLine) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.line == nil {
		return nil
	}
	err := l.line.Close()
	l.line = nil
	return err
}

var _ IRQPin = (*GPIOLine)(nil)

// GPIOOut drives one Linux gpiochip output line.
type GPIOOut struct {
	mu    sync.Mutex
	line  *gpiocdev.Line
	level bool
}

func NewGPIOOut(chip string, offset int, initial bool) (*GPIOOut, error) {
	v := 0
	if initial {
		v = 1
	}
	ln, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(v))
	if err != nil {
		return nil, &errcode.E{C: errcode.UnknownPin, Op: "board.NewGPIOOut", Err: err}
	}
	return &GPIOOut{line: ln, level: initial}, nil
}

func (l *GPIOOut) Set(level bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
	v := 0
	if level {
		v = 1
	}
	_ = l.line.SetValue(v)
}

func (l *GPIOOut) Get() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *GPIOOut) Toggle() {
	l.mu.Lock()
	lv := !l.level
	l.mu.Unlock()
	l.Set(lv)
}

func (l *GPIOOut) Close() error { return l.line.Close() }

var _ OutputPin = (*GPIOOut)(nil)
