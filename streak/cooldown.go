// Package streak implements the daily check-in cooldown: a strict minimum
// interval between repeated "register today's progress" actions.
package streak

import (
	"fmt"
	"time"
)

// DefaultWindow is the minimum spacing between two check-ins.
const DefaultWindow = 24 * time.Hour

// CanTrigger reports whether the action is permitted: no previous trigger,
// or at least window elapsed since the last one. Pure function.
func CanTrigger(now time.Time, last *time.Time, window time.Duration) bool {
	if last == nil || last.IsZero() {
		return true
	}
	return now.Sub(*last) >= window
}

// Remaining returns how long until the action unlocks, zero when it is
// already available.
func Remaining(now time.Time, last *time.Time, window time.Duration) time.Duration {
	if last == nil || last.IsZero() {
		return 0
	}
	rem := window - now.Sub(*last)
	if rem < 0 {
		return 0
	}
	return rem
}

// FormatRemaining renders a duration as the countdown label shown on the
// disabled button, e.g. "23h 59m". Minutes are truncated the same way the
// client timer truncates them.
func FormatRemaining(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	h := int(d / time.Hour)
	m := int(d%time.Hour) / int(time.Minute)
	return fmt.Sprintf("%dh %dm", h, m)
}
