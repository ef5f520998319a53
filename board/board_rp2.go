// board/board_rp2.go
//go:build rp2040 || rp2350

package board

import "machine"

// MachineIn adapts a TinyGo machine.Pin input (pull-up) to IRQPin.
type MachineIn struct {
	pin machine.Pin
}

func NewMachineIn(p machine.Pin) *MachineIn {
	p.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &MachineIn{pin: p}
}

func (m *MachineIn) Get() bool { return m.pin.Get() }

func (m *MachineIn) SetIRQ(edge Edge, handler func()) error {
	var ch machine.PinChange
	switch edge {
	case EdgeRising:
		ch = machine.PinRising
	case EdgeFalling:
		ch = machine.PinFalling
	case EdgeBoth:
		ch = machine.PinToggle
	default:
		return nil
	}
	return m.pin.SetInterrupt(ch, func(machine.Pin) { handler() })
}

func (m *MachineIn) ClearIRQ() error {
	return m.pin.SetInterrupt(0, nil)
}

var _ IRQPin = (*MachineIn)(nil)

// MachineOut adapts a machine.Pin output.
type MachineOut struct {
	pin machine.Pin
}

func NewMachineOut(p machine.Pin, initial bool) *MachineOut {
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	p.Set(initial)
	return &MachineOut{pin: p}
}

func (m *MachineOut) Set(level bool) { m.pin.Set(level) }
func (m *MachineOut) Get() bool      { return m.pin.Get() }
func (m *MachineOut) Toggle()        { m.pin.Set(!m.pin.Get()) }

var _ OutputPin = (*MachineOut)(nil)
