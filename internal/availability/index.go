package availability

import (
	"strings"
	"time"
)

// DateKeyLayout is the date part of a committed preferred-time value.
const DateKeyLayout = "02.01.2006"

// DateKey formats a date as the "DD.MM.YYYY" key used by the booked index.
func DateKey(t time.Time) string {
	return t.Format(DateKeyLayout)
}

// FormatCommitted builds the canonical preferred-time value for a chosen
// date and slot label: "DD.MM.YYYY HH:MM–HH:MM".
func FormatCommitted(date time.Time, slot string) string {
	return DateKey(date) + " " + slot
}

// ParseCommitted splits a committed value back into its date key and slot
// label. Values with fewer than two whitespace-separated tokens are rejected.
func ParseCommitted(value string) (dateKey, slot string, ok bool) {
	parts := strings.Fields(value)
	if len(parts) < 2 {
		return "", "", false
	}
	return parts[0], strings.Join(parts[1:], " "), true
}

// BuildBookedIndex maps "DD.MM.YYYY" date keys to the slot labels booked on
// that date. Input values are raw preferred-time strings; malformed entries
// are skipped. Duplicates are preserved: a slot booked twice occupies one
// slot but counts twice toward occupancy.
func BuildBookedIndex(preferredTimes []string) map[string][]string {
	index := make(map[string][]string)
	for _, value := range preferredTimes {
		dateKey, slot, ok := ParseCommitted(value)
		if !ok {
			continue
		}
		index[dateKey] = append(index[dateKey], slot)
	}
	return index
}
