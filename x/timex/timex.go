package timex

import "time"

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// Ticks converts a time to a 32-bit millisecond tick count. The
// counter wraps roughly every 49.7 days; arithmetic on tick values
// must go through Diff/Until so a wrap stays harmless.
func Ticks(t time.Time) uint32 { return uint32(t.UnixMilli()) }

// MsToTicks converts a duration to millisecond ticks.
func MsToTicks(d time.Duration) uint32 { return uint32(d / time.Millisecond) }

// Diff returns a-b in ticks. Unsigned subtraction is modular, so the
// result is correct across a counter wrap as long as the real distance
// stays under half the counter range.
func Diff(a, b uint32) uint32 { return a - b }

// Until returns the ticks remaining from now until deadline, zero if
// the deadline has passed. A modular distance at or above half the
// range is treated as already elapsed.
func Until(deadline, now uint32) uint32 {
	d := deadline - now
	if d == 0 || d >= 1<<31 {
		return 0
	}
	return d
}
