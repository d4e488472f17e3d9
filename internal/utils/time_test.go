package utils

import (
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: "", wantErr: false},
		{name: "Local returns local", timezone: "Local", wantErr: false},
		{name: "valid timezone UTC", timezone: "UTC", wantErr: false},
		{name: "valid timezone Africa/Lagos", timezone: "Africa/Lagos", wantErr: false},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Errorf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && loc == nil {
				t.Errorf("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		a, b    string
		want    int
		wantErr bool
	}{
		{a: "2024-01-01", b: "2024-01-02", want: 1},
		{a: "2024-01-03", b: "2024-01-01", want: -2},
		{a: "2024-02-28", b: "2024-03-01", want: 2},
		{a: "2024-03-30", b: "2024-03-31", want: 1},
		{a: "2024-01-01", b: "2024-01-01", want: 0},
		{a: "bad", b: "2024-01-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.a+"->"+tt.b, func(t *testing.T) {
			got, err := DaysBetween(tt.a, tt.b)
			if (err != nil) != tt.wantErr {
				t.Fatalf("DaysBetween() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-12-31", 1)
	if err != nil {
		t.Fatalf("AddDays() error = %v", err)
	}
	if got != "2025-01-01" {
		t.Errorf("AddDays() = %q, want 2025-01-01", got)
	}
}

func TestManualClock(t *testing.T) {
	start := time.Date(2024, 6, 1, 23, 30, 0, 0, time.UTC)
	clock := NewManualClock(start)
	if Today(clock) != "2024-06-01" {
		t.Errorf("Today() = %q, want 2024-06-01", Today(clock))
	}
	clock.Advance(time.Hour)
	if Today(clock) != "2024-06-02" {
		t.Errorf("Today() after advance = %q, want 2024-06-02", Today(clock))
	}
}

func TestSystemClockLocation(t *testing.T) {
	loc, err := time.LoadLocation("Africa/Lagos")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	now := SystemClock{Location: loc}.Now()
	if now.Location().String() != "Africa/Lagos" {
		t.Errorf("location = %s, want Africa/Lagos", now.Location())
	}
}
