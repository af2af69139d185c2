package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBookedIndex(t *testing.T) {
	index := BuildBookedIndex([]string{
		"15.03.2025 09:00–09:45",
		"15.03.2025 09:45–10:30",
		"16.03.2025 10:30–11:15",
		"not-a-date",
		"",
		"15.03.2025 09:00–09:45", // duplicate booking of the same slot
	})

	require.Len(t, index, 2)
	assert.Equal(t, []string{"09:00–09:45", "09:45–10:30", "09:00–09:45"}, index["15.03.2025"])
	assert.Equal(t, []string{"10:30–11:15"}, index["16.03.2025"])
}

func TestBuildBookedIndexMalformedOnly(t *testing.T) {
	index := BuildBookedIndex([]string{"not-a-date", "   ", "single"})
	assert.Empty(t, index)
}

func TestCommittedValueRoundTrip(t *testing.T) {
	date := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
	slot := "09:00–09:45"

	value := FormatCommitted(date, slot)
	assert.Equal(t, "15.03.2025 09:00–09:45", value)

	dateKey, gotSlot, ok := ParseCommitted(value)
	require.True(t, ok)
	assert.Equal(t, DateKey(date), dateKey)
	assert.Equal(t, slot, gotSlot)

	// A committed value indexes back to the same (date, slot) pair.
	index := BuildBookedIndex([]string{value})
	assert.Equal(t, []string{slot}, index[dateKey])
}

func TestParseCommittedRejectsPartialValues(t *testing.T) {
	for _, value := range []string{"", "15.03.2025", "  \t "} {
		_, _, ok := ParseCommitted(value)
		assert.False(t, ok, "value %q", value)
	}
}

func TestDateKeyZeroPadded(t *testing.T) {
	date := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "02.01.2025", DateKey(date))
}
