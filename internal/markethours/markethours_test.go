package markethours

import (
	"testing"
	"time"
)

func TestIsRestDay(t *testing.T) {
	// 2025-06-02 is a Monday.
	monday := time.Date(2025, 6, 2, 12, 0, 0, 0, Dhaka)

	cases := []struct {
		day  time.Time
		rest bool
	}{
		{monday, false},                   // Monday
		{monday.AddDate(0, 0, 1), false},  // Tuesday
		{monday.AddDate(0, 0, 2), false},  // Wednesday
		{monday.AddDate(0, 0, 3), false},  // Thursday
		{monday.AddDate(0, 0, 4), true},   // Friday
		{monday.AddDate(0, 0, 5), true},   // Saturday
		{monday.AddDate(0, 0, 6), true},   // Sunday
	}
	for _, c := range cases {
		if got := IsRestDay(c.day); got != c.rest {
			t.Errorf("%s: IsRestDay=%v, want %v", c.day.Weekday(), got, c.rest)
		}
		if got := IsTradingDay(c.day); got == c.rest {
			t.Errorf("%s: IsTradingDay=%v, want %v", c.day.Weekday(), got, !c.rest)
		}
	}
}

func TestRestDayRespectsZoneConversion(t *testing.T) {
	// 23:00 UTC Thursday is already 05:00 Friday in Dhaka.
	utcThursday := time.Date(2025, 6, 5, 23, 0, 0, 0, time.UTC)
	if !IsRestDay(utcThursday) {
		t.Error("late Thursday UTC should be Friday in Dhaka and therefore a rest day")
	}
}

func TestIsResetDay(t *testing.T) {
	first := time.Date(2025, 7, 1, 10, 10, 0, 0, Dhaka)
	if !IsResetDay(first) {
		t.Error("1st of month should be a reset day")
	}
	if IsResetDay(first.AddDate(0, 0, 1)) {
		t.Error("2nd of month should not be a reset day")
	}
}

func TestSignalID(t *testing.T) {
	ts := time.Date(2025, 6, 2, 15, 4, 0, 0, Dhaka)
	if got := SignalID("EUR/USD", ts); got != "EURUSD|1h|06021504" {
		t.Errorf("SignalID = %q", got)
	}
}
