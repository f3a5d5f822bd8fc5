package scheduler

import "testing"

func TestValidDate(t *testing.T) {
	valid := []string{"2024-06-01", "2024-12-31", "1999-01-01"}
	for _, value := range valid {
		if !ValidDate(value) {
			t.Fatalf("expected %q to be valid", value)
		}
	}

	invalid := []string{"", "2024-6-1", "2024/06/01", "2024-13-01", "2024-00-10", "2024-01-32", "2024-01-00", "24-01-01", "2024-01-0a"}
	for _, value := range invalid {
		if ValidDate(value) {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestValidTimeOfDay(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, value := range valid {
		if !ValidTimeOfDay(value) {
			t.Fatalf("expected %q to be valid", value)
		}
	}

	invalid := []string{"", "9:30", "24:00", "12:60", "12-30", "12:3a", "120:30"}
	for _, value := range invalid {
		if ValidTimeOfDay(value) {
			t.Fatalf("expected %q to be rejected", value)
		}
	}
}

func TestDurationMinutes(t *testing.T) {
	cases := []struct {
		start, end string
		want       int
	}{
		{"10:00", "11:00", 60},
		{"10:00", "10:30", 30},
		{"09:15", "12:45", 210},
		{"00:00", "23:59", 1439},
	}
	for _, tc := range cases {
		if got := DurationMinutes(tc.start, tc.end); got != tc.want {
			t.Fatalf("DurationMinutes(%s, %s) = %d, want %d", tc.start, tc.end, got, tc.want)
		}
	}
}
