// event/event.go
package event

// Signal identifies an event kind. The set is closed: dispatch code
// switches on it and ignores signals it does not handle.
type Signal uint8

const (
	SigNone Signal = iota
	SigRawEdge // electrical transition, not yet debounced

	SigButtonPressed     // raw press (immediate, always fires)
	SigButtonReleased    // raw release (immediate, always fires)
	SigButtonSingleClick // confirmed single click (delayed by window)
	SigButtonDoubleClick // two clicks within window
	SigButtonLongPress   // held >= long-press threshold

	SigLedOn
	SigLedOff
	SigLedToggle
)

var sigNames = [...]string{
	"none",
	"raw_edge",
	"pressed",
	"released",
	"single_click",
	"double_click",
	"long_press",
	"led_on",
	"led_off",
	"led_toggle",
}

func (s Signal) String() string {
	if int(s) < len(sigNames) {
		return sigNames[s]
	}
	return "unknown"
}

// Event is the unit carried through active-object inboxes. Param is
// the held duration in millisecond ticks for SigButtonReleased and
// SigButtonLongPress, zero for everything else. Plain value, copied
// through queues.
type Event struct {
	Signal Signal
	Param  uint32
}
