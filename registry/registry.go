// registry/registry.go
package registry

import "sync"

// MaxLines is the number of addressable hardware lines (the EXTI bank
// of the source hardware exposes 16).
const MaxLines = 16

// Receiver is the owning side of a hardware line: it accepts the raw
// edge notification from interrupt context. OnISR must only enqueue.
type Receiver interface {
	OnISR() bool
}

// Registry maps a small line number to its owning receiver so a shared
// interrupt entry point can resolve ownership in O(1). Populate at
// init; lookups are read-mostly thereafter. Instance-owned on purpose:
// no package-global slot array.
type Registry struct {
	mu    sync.RWMutex
	slots [MaxLines]Receiver
}

func New() *Registry { return &Registry{} }

// Register stores r as the owner of line. Last registration wins;
// out-of-range lines are ignored.
func (g *Registry) Register(line uint8, r Receiver) {
	if line >= MaxLines {
		return
	}
	g.mu.Lock()
	g.slots[line] = r
	g.mu.Unlock()
}

// Find returns the owner of line, or false for an unregistered or
// out-of-range line. Callers treat a miss as a no-op, never a fault:
// spurious interrupts on unmapped lines are possible.
func (g *Registry) Find(line uint8) (Receiver, bool) {
	if line >= MaxLines {
		return nil, false
	}
	g.mu.RLock()
	r := g.slots[line]
	g.mu.RUnlock()
	return r, r != nil
}

// Dispatch forwards a hardware edge on line to its owner. Reports
// whether an owner existed and accepted the event.
func (g *Registry) Dispatch(line uint8) bool {
	r, ok := g.Find(line)
	if !ok {
		return false
	}
	return r.OnISR()
}
