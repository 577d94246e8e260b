package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/icicle-admin/internal/timecalc"
)

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h 0m"},
		{61, "1h 1m"},
		{90, "1h 30m"},
		{82504, "1375h 4m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatMinutes(tt.minutes)
		if got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := timecalc.ParseDate("2023-05-02")
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	want := time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("ParseDate = %v, want %v", got, want)
	}

	if _, err := timecalc.ParseDate("02.05.2023"); err == nil {
		t.Error("expected error for non-ISO date, got nil")
	}
}

func TestFormatDateKeepsLocalDay(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	// 01:30 on May 2nd in UTC+10 is still May 1st in UTC.
	d := time.Date(2023, 5, 2, 1, 30, 0, 0, loc)
	if got := timecalc.FormatDate(d); got != "2023-05-02" {
		t.Errorf("FormatDate = %q, want %q", got, "2023-05-02")
	}
}

func TestCalendarDay(t *testing.T) {
	loc := time.FixedZone("UTC-7", -7*3600)
	d := time.Date(2023, 5, 2, 23, 59, 0, 0, loc)
	got := timecalc.CalendarDay(d)
	want := time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CalendarDay = %v, want %v", got, want)
	}
}
