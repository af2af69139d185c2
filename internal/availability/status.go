package availability

import (
	"sort"
	"time"

	"logoped/internal/models"
)

// DayStatus classifies a calendar day for the booking calendar.
type DayStatus string

const (
	StatusFree    DayStatus = "free"
	StatusPartial DayStatus = "partial"
	StatusFull    DayStatus = "full"
	StatusOff     DayStatus = "off"
	StatusPast    DayStatus = "past"
)

// Selectable reports whether a day with this status accepts new bookings.
func (s DayStatus) Selectable() bool {
	return s == StatusFree || s == StatusPartial
}

// DefaultHorizonDays is how far ahead booking is permitted.
const DefaultHorizonDays = 31

// Schedule is the weekly working-hours configuration keyed by weekday
// (0 = Sunday .. 6 = Saturday, the stored numbering).
type Schedule map[int]models.ScheduleRule

// NewSchedule builds a Schedule from rows in any arrival order. At most one
// rule per weekday is expected; a later duplicate replaces the earlier one.
func NewSchedule(rules []models.ScheduleRule) Schedule {
	s := make(Schedule, len(rules))
	for _, r := range rules {
		if r.Weekday < 0 || r.Weekday > 6 {
			continue
		}
		s[r.Weekday] = r
	}
	return s
}

// RuleFor returns the rule for a weekday, if configured.
func (s Schedule) RuleFor(weekday int) (models.ScheduleRule, bool) {
	r, ok := s[weekday]
	return r, ok
}

// Ordered returns the configured rules sorted by weekday.
func (s Schedule) Ordered() []models.ScheduleRule {
	rules := make([]models.ScheduleRule, 0, len(s))
	for _, r := range s {
		rules = append(rules, r)
	}
	sort.Slice(rules, func(i, j int) bool { return rules[i].Weekday < rules[j].Weekday })
	return rules
}

// ClassifyDay resolves the status of a calendar date. Precedence: past, then
// off (beyond horizon, no rule, or non-working weekday), then occupancy.
// A fully elapsed day reports past even when every slot is booked.
func ClassifyDay(date, now time.Time, sched Schedule, booked map[string][]string, horizonDays int) DayStatus {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}

	startToday := startOfDay(now)
	if date.Before(startToday) && !sameDay(date, now) {
		return StatusPast
	}
	if date.After(now.AddDate(0, 0, horizonDays)) {
		return StatusOff
	}

	rule, ok := sched.RuleFor(int(date.Weekday()))
	if !ok || !rule.IsWorkingDay {
		return StatusOff
	}

	total := len(GenerateSlots(rule.StartTime, rule.EndTime, rule.SlotDurationMinutes))
	bookedCount := len(booked[DateKey(date)])

	if bookedCount == 0 {
		return StatusFree
	}
	if bookedCount >= total {
		return StatusFull
	}
	return StatusPartial
}

// AvailableSlots returns the slots of a working day that are not yet booked
// for the given date: generated slots minus the booked labels. Booked labels
// that match no generated slot are ignored.
func AvailableSlots(rule models.ScheduleRule, bookedForDate []string) []string {
	all := GenerateSlots(rule.StartTime, rule.EndTime, rule.SlotDurationMinutes)
	if len(bookedForDate) == 0 {
		return all
	}

	taken := make(map[string]bool, len(bookedForDate))
	for _, slot := range bookedForDate {
		taken[slot] = true
	}

	available := make([]string, 0, len(all))
	for _, slot := range all {
		if !taken[slot] {
			available = append(available, slot)
		}
	}
	return available
}

// SelectableDate implements the simple picker rules: not before today,
// within the horizon, and on a configured working weekday. Occupancy is not
// considered; this must stay in step with ClassifyDay's horizon handling.
func SelectableDate(date, now time.Time, sched Schedule, horizonDays int) bool {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if date.Before(startOfDay(now)) {
		return false
	}
	if date.After(now.AddDate(0, 0, horizonDays)) {
		return false
	}
	rule, ok := sched.RuleFor(int(date.Weekday()))
	return ok && rule.IsWorkingDay
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
