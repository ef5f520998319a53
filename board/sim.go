// board/sim.go
package board

import "sync"

// SimPin is an in-memory input line. Trigger drives the level and
// raises the interrupt handler the way real hardware would, which
// makes it the pin of choice for host demos and package tests.
type SimPin struct {
	mu      sync.Mutex
	level   bool
	edge    Edge
	handler func()
}

// NewSimPin returns a simulated input resting at initial.
func NewSimPin(initial bool) *SimPin {
	return &SimPin{level: initial}
}

func (p *SimPin) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *SimPin) SetIRQ(edge Edge, handler func()) error {
	p.mu.Lock()
	p.edge = edge
	p.handler = handler
	p.mu.Unlock()
	return nil
}

func (p *SimPin) ClearIRQ() error {
	p.mu.Lock()
	p.edge = EdgeNone
	p.handler = nil
	p.mu.Unlock()
	return nil
}

// Trigger drives the line to level and fires the handler if the
// transition matches the configured edge. The handler runs on the
// caller's goroutine, outside the pin lock, as an ISR would.
func (p *SimPin) Trigger(level bool) {
	p.mu.Lock()
	prev := p.level
	p.level = level
	h := p.handler
	edge := p.edge
	p.mu.Unlock()

	if h == nil || prev == level {
		return
	}
	rising := !prev && level
	switch edge {
	case EdgeBoth:
	case EdgeRising:
		if !rising {
			return
		}
	case EdgeFalling:
		if rising {
			return
		}
	default:
		return
	}
	h()
}

var _ IRQPin = (*SimPin)(nil)

// SimOut is an in-memory output line.
type SimOut struct {
	mu    sync.Mutex
	level bool
}

func NewSimOut(initial bool) *SimOut {
	return &SimOut{level: initial}
}

func (p *SimOut) Set(level bool) {
	p.mu.Lock()
	p.level = level
	p.mu.Unlock()
}

func (p *SimOut) Get() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *SimOut) Toggle() {
	p.mu.Lock()
	p.level = !p.level
	p.mu.Unlock()
}

var _ OutputPin = (*SimOut)(nil)
