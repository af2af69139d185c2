package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthStatuses(t *testing.T) {
	sched := testSchedule()
	days := MonthStatuses(2025, time.March, testNow, sched, nil, DefaultHorizonDays)
	require.Len(t, days, 31)

	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, "2025-03-01", days[0].Date)
	assert.Equal(t, "01.03.2025", days[0].DateKey)
	assert.Equal(t, StatusPast, days[0].Status)

	// Today (Wed 12th) and the next working days are free and selectable.
	assert.Equal(t, StatusFree, days[11].Status)
	assert.True(t, days[11].Selectable)

	// Saturday 15th is off and not selectable.
	assert.Equal(t, StatusOff, days[14].Status)
	assert.False(t, days[14].Selectable)
}

func TestFirstDayOffset(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2025, time.March, 5},     // 2025-03-01 is a Saturday
		{2025, time.June, 6},      // 2025-06-01 is a Sunday
		{2025, time.September, 0}, // 2025-09-01 is a Monday
		{2025, time.July, 1},      // 2025-07-01 is a Tuesday
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FirstDayOffset(tt.year, tt.month, time.UTC), "%d-%s", tt.year, tt.month)
	}
}
