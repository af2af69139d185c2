package availability

import (
	"reflect"
	"strings"
	"testing"
)

func TestGenerateSlots(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		end      string
		duration int
		want     []string
	}{
		{
			name:     "even partition",
			start:    "10:00",
			end:      "12:00",
			duration: 30,
			want:     []string{"10:00–10:30", "10:30–11:00", "11:00–11:30", "11:30–12:00"},
		},
		{
			name:     "trailing partial slot dropped",
			start:    "09:00",
			end:      "11:00",
			duration: 45,
			want:     []string{"09:00–09:45", "09:45–10:30"},
		},
		{
			name:     "single slot exactly fills the window",
			start:    "09:00",
			end:      "09:45",
			duration: 45,
			want:     []string{"09:00–09:45"},
		},
		{
			name:     "window shorter than one slot",
			start:    "09:00",
			end:      "09:30",
			duration: 45,
			want:     nil,
		},
		{
			name:     "zero duration",
			start:    "09:00",
			end:      "18:00",
			duration: 0,
			want:     nil,
		},
		{
			name:     "negative duration",
			start:    "09:00",
			end:      "18:00",
			duration: -15,
			want:     nil,
		},
		{
			name:     "inverted range",
			start:    "18:00",
			end:      "09:00",
			duration: 30,
			want:     nil,
		},
		{
			name:     "equal start and end",
			start:    "09:00",
			end:      "09:00",
			duration: 30,
			want:     nil,
		},
		{
			name:     "malformed start time",
			start:    "nine",
			end:      "18:00",
			duration: 30,
			want:     nil,
		},
		{
			name:     "non-round minutes",
			start:    "09:15",
			end:      "10:50",
			duration: 45,
			want:     []string{"09:15–10:00", "10:00–10:45"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateSlots(tt.start, tt.end, tt.duration)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GenerateSlots(%s, %s, %d) = %v, want %v", tt.start, tt.end, tt.duration, got, tt.want)
			}
		})
	}
}

func TestGenerateSlotsContiguous(t *testing.T) {
	slots := GenerateSlots("08:00", "20:00", 45)
	if len(slots) == 0 {
		t.Fatal("expected slots")
	}

	prevEnd := ""
	for i, slot := range slots {
		parts := strings.Split(slot, "–")
		if len(parts) != 2 {
			t.Fatalf("slot %q is not a range", slot)
		}
		start, end := parts[0], parts[1]
		if i > 0 && start != prevEnd {
			t.Errorf("slot %d starts at %s, previous ended at %s", i, start, prevEnd)
		}
		sMin, ok := parseClock(start)
		if !ok {
			t.Fatalf("unparseable start %q", start)
		}
		eMin, ok := parseClock(end)
		if !ok {
			t.Fatalf("unparseable end %q", end)
		}
		if eMin-sMin != 45 {
			t.Errorf("slot %q spans %d minutes, want 45", slot, eMin-sMin)
		}
		prevEnd = end
	}

	last := slots[len(slots)-1]
	lastEnd, _ := parseClock(strings.Split(last, "–")[1])
	dayEnd, _ := parseClock("20:00")
	if lastEnd > dayEnd {
		t.Errorf("last slot %q overruns day end", last)
	}
}

func TestGenerateSlotsDeterministic(t *testing.T) {
	first := GenerateSlots("09:00", "18:00", 45)
	for i := 0; i < 10; i++ {
		if got := GenerateSlots("09:00", "18:00", 45); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d differs: %v vs %v", i, got, first)
		}
	}
}
