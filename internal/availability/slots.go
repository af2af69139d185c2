package availability

import (
	"fmt"
	"strconv"
	"strings"
)

// GenerateSlots produces the ordered slot labels covering [startTime, endTime)
// in back-to-back increments of durationMinutes. Labels look like
// "09:00–09:45" (24-hour, zero-padded, en-dash). A trailing slot that would
// overrun endTime is dropped. Degenerate input (non-positive duration,
// end <= start, unparseable times) yields no slots rather than an error.
func GenerateSlots(startTime, endTime string, durationMinutes int) []string {
	if durationMinutes <= 0 {
		return nil
	}

	startMin, ok := parseClock(startTime)
	if !ok {
		return nil
	}
	endMin, ok := parseClock(endTime)
	if !ok {
		return nil
	}
	if endMin <= startMin {
		return nil
	}

	var slots []string
	for m := startMin; m+durationMinutes <= endMin; m += durationMinutes {
		slots = append(slots, fmt.Sprintf("%s–%s", formatClock(m), formatClock(m+durationMinutes)))
	}
	return slots
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, bool) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
