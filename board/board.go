// Package board holds the narrow pin contracts the event pipeline
// consumes, plus their simulated, Linux gpiochip and rp2 bindings.
// Register-level setup stays behind these interfaces.
package board

// Edge selects which transitions raise an interrupt.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
	EdgeBoth
)

// InputPin is a single-sample synchronous read of a logical pin.
type InputPin interface {
	Get() bool
}

// OutputPin drives a logical pin.
type OutputPin interface {
	Set(level bool)
	Get() bool
	Toggle()
}

// IRQPin is an input that can raise an edge interrupt. The handler
// runs in interrupt (or kernel event callback) context: a fast read
// plus a non-blocking enqueue, nothing else.
type IRQPin interface {
	InputPin
	SetIRQ(edge Edge, handler func()) error
	ClearIRQ() error
}
