package timex

import (
	"testing"
	"time"
)

func TestDiff_Wraparound(t *testing.T) {
	// Press just before the counter wraps, release just after.
	press := uint32(0xFFFFFFF0)
	release := uint32(0x00000040) // 0x50 ticks later, across the wrap
	if got := Diff(release, press); got != 0x50 {
		t.Fatalf("Diff across wrap = %d, want %d", got, 0x50)
	}
	if got := Diff(100, 40); got != 60 {
		t.Fatalf("Diff = %d, want 60", got)
	}
}

func TestUntil(t *testing.T) {
	if got := Until(300, 100); got != 200 {
		t.Fatalf("Until = %d, want 200", got)
	}
	// Deadline already passed.
	if got := Until(100, 300); got != 0 {
		t.Fatalf("Until past deadline = %d, want 0", got)
	}
	// Deadline exactly now.
	if got := Until(100, 100); got != 0 {
		t.Fatalf("Until at deadline = %d, want 0", got)
	}
	// Deadline across the wrap.
	if got := Until(0x10, 0xFFFFFFF0); got != 0x20 {
		t.Fatalf("Until across wrap = %d, want %d", got, 0x20)
	}
}

func TestMsToTicks(t *testing.T) {
	if got := MsToTicks(1500 * time.Millisecond); got != 1500 {
		t.Fatalf("MsToTicks = %d, want 1500", got)
	}
}
