package model

import (
	"testing"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		clock   string
		minutes int
		wantErr bool
	}{
		{name: "整点", clock: "09:00", minutes: 540},
		{name: "带分钟", clock: "17:30", minutes: 1050},
		{name: "零点", clock: "00:00", minutes: 0},
		{name: "无效格式", clock: "9am", wantErr: true},
		{name: "空字符串", clock: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.clock)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseClock(%q) expected error", tt.clock)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseClock(%q) error: %v", tt.clock, err)
			}
			if got != tt.minutes {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.clock, got, tt.minutes)
			}
		})
	}
}

func TestDurationHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{name: "普通班次", start: "09:00", end: "17:00", want: 8.0},
		{name: "半小时粒度", start: "09:30", end: "14:00", want: 4.5},
		{name: "跨午夜班次", start: "22:00", end: "06:00", want: 8.0},
		{name: "夜班到凌晨", start: "23:00", end: "01:30", want: 2.5},
		{name: "起止相同", start: "08:00", end: "08:00", want: 0.0},
		{name: "无效起点", start: "bad", end: "08:00", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DurationHours(tt.start, tt.end)
			if got != tt.want {
				t.Errorf("DurationHours(%q, %q) = %f, want %f", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestIsOvertimeShift(t *testing.T) {
	if IsOvertimeShift(8.0) {
		t.Error("8 hours should not be overtime")
	}
	if !IsOvertimeShift(8.5) {
		t.Error("8.5 hours should be overtime")
	}
}

func TestWeekdayName(t *testing.T) {
	// 2026-09-01 是周二
	if got := WeekdayName("2026-09-01"); got != "tuesday" {
		t.Errorf("WeekdayName = %q, want tuesday", got)
	}
	if got := WeekdayName("2026-09-06"); got != "sunday" {
		t.Errorf("WeekdayName = %q, want sunday", got)
	}
	if got := WeekdayName("bad-date"); got != "" {
		t.Errorf("WeekdayName of invalid date = %q, want empty", got)
	}
}

func TestWeekStartEnd(t *testing.T) {
	tests := []struct {
		name  string
		date  string
		start string
		end   string
	}{
		{name: "周中", date: "2026-09-02", start: "2026-08-31", end: "2026-09-06"},
		{name: "周一本身", date: "2026-08-31", start: "2026-08-31", end: "2026-09-06"},
		{name: "周日", date: "2026-09-06", start: "2026-08-31", end: "2026-09-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.date); got != tt.start {
				t.Errorf("WeekStart(%q) = %q, want %q", tt.date, got, tt.start)
			}
			if got := WeekEnd(tt.date); got != tt.end {
				t.Errorf("WeekEnd(%q) = %q, want %q", tt.date, got, tt.end)
			}
		})
	}
}

func TestPreviousNextDate(t *testing.T) {
	if got := PreviousDate("2026-09-01"); got != "2026-08-31" {
		t.Errorf("PreviousDate = %q, want 2026-08-31", got)
	}
	if got := NextDate("2026-08-31"); got != "2026-09-01" {
		t.Errorf("NextDate = %q, want 2026-09-01", got)
	}
	// 跨月跨年
	if got := NextDate("2026-12-31"); got != "2027-01-01" {
		t.Errorf("NextDate across year = %q, want 2027-01-01", got)
	}
}

func TestCombineDateTime(t *testing.T) {
	ts, err := CombineDateTime("2026-09-01", "08:30")
	if err != nil {
		t.Fatalf("CombineDateTime error: %v", err)
	}
	if ts.Hour() != 8 || ts.Minute() != 30 {
		t.Errorf("CombineDateTime = %v, want 08:30", ts)
	}

	if _, err := CombineDateTime("2026-09-01", "bad"); err == nil {
		t.Error("CombineDateTime with invalid clock should fail")
	}
}
