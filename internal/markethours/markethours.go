package markethours

import (
	"fmt"
	"time"
)

// Dhaka is the Bangladesh Standard Time location (UTC+6).
var Dhaka = time.FixedZone("BST", 6*3600)

// Session window announced in the morning message. The scan scheduler itself
// gates by weekday only; the intraday window is informational.
const (
	SessionOpenHour  = 10
	SessionCloseHour = 22
)

// IsRestDay returns true on Friday, Saturday and Sunday (Dhaka time) —
// no scanning and no signal generation on those days.
func IsRestDay(t time.Time) bool {
	switch t.In(Dhaka).Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	}
	return false
}

// IsTradingDay returns true Monday through Thursday (Dhaka time).
func IsTradingDay(t time.Time) bool {
	return !IsRestDay(t)
}

// IsResetDay returns true on the first day of the month (Dhaka time).
func IsResetDay(t time.Time) bool {
	return t.In(Dhaka).Day() == 1
}

// Stamp renders t as "2006-01-02 15:04" in Dhaka time.
func Stamp(t time.Time) string {
	return t.In(Dhaka).Format("2006-01-02 15:04")
}

// MonthStamp renders t as "January 2006" in Dhaka time.
func MonthStamp(t time.Time) string {
	return t.In(Dhaka).Format("January 2006")
}

// SignalID builds the short identifier attached to a published signal,
// e.g. "EURUSD|1h|01021504".
func SignalID(pair string, t time.Time) string {
	compact := ""
	for _, r := range pair {
		if r != '/' {
			compact += string(r)
		}
	}
	return fmt.Sprintf("%s|1h|%s", compact, t.In(Dhaka).Format("01021504"))
}
