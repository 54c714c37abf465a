package attendance

import (
	"testing"
	"time"

	"ems/backend/internal/entity"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{"empty day to check-in", "", entity.AttendanceCheckIn, true},
		{"empty day to absent", "", entity.AttendanceAbsent, true},
		{"empty day to check-out", "", entity.AttendanceCheckOut, false},
		{"check-in to check-out", entity.AttendanceCheckIn, entity.AttendanceCheckOut, true},
		{"check-in to absent", entity.AttendanceCheckIn, entity.AttendanceAbsent, false},
		{"second check-in", entity.AttendanceCheckIn, entity.AttendanceCheckIn, false},
		{"second check-out", entity.AttendanceCheckOut, entity.AttendanceCheckOut, false},
		{"check-out reopened", entity.AttendanceCheckOut, entity.AttendanceCheckIn, false},
		{"absent to check-in", entity.AttendanceAbsent, entity.AttendanceCheckIn, false},
		{"absent to check-out", entity.AttendanceAbsent, entity.AttendanceCheckOut, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Fatalf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestHoursWorked(t *testing.T) {
	day := func(hour, min int) time.Time {
		return time.Date(2024, time.April, 5, hour, min, 0, 0, time.UTC)
	}

	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     float64
	}{
		{"standard day", day(9, 0), day(17, 15), 8.25},
		{"half day", day(9, 0), day(13, 0), 4},
		{"short stint", day(9, 0), day(9, 10), 0.17},
		{"zero duration", day(9, 0), day(9, 0), 0},
		{"rounds to two decimals", day(9, 0), day(16, 20), 7.33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HoursWorked(tt.checkIn, tt.checkOut)
			if got != tt.want {
				t.Fatalf("HoursWorked(%v, %v) = %v, want %v", tt.checkIn, tt.checkOut, got, tt.want)
			}
		})
	}
}

func TestWorkStatsKey(t *testing.T) {
	if got, want := workStatsKey(7, 2024, 4), "workstats:7:2024:04"; got != want {
		t.Fatalf("workStatsKey = %q, want %q", got, want)
	}
	if got, want := workStatsKey(12, 2023, 11), "workstats:12:2023:11"; got != want {
		t.Fatalf("workStatsKey = %q, want %q", got, want)
	}
}
