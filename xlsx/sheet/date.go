package sheet

import (
	"math"
	"time"
)

var (
	epoch1900 = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
	epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)
)

const msPerDay = 24 * 60 * 60 * 1000

// ToTime converts a serial date to UTC, rounding to the millisecond.
//
// In the 1900 system serial 1 is 1900-01-01 and serial 60 is the nonexistent
// 1900-02-29, which is reported as 1900-02-28.
func ToTime(serial float64, date1904 bool) time.Time {
	epoch := epoch1900
	if date1904 {
		epoch = epoch1904
	} else if serial < 60 {
		serial++
	}
	days := math.Floor(serial)
	ms := math.Round((serial - days) * msPerDay)
	return epoch.AddDate(0, 0, int(days)).Add(time.Duration(ms) * time.Millisecond)
}

// FromTime converts t to a serial date. The wall clock of t is used as is;
// convert to the intended location first.
func FromTime(t time.Time, date1904 bool) float64 {
	epoch := epoch1900
	if date1904 {
		epoch = epoch1904
	}
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	days := float64((day.Unix() - epoch.Unix()) / 86400)

	h, mi, s := t.Clock()
	ms := float64((h*3600+mi*60+s)*1000) + float64(t.Nanosecond()/int(time.Millisecond))
	serial := days + ms/msPerDay
	if !date1904 && serial < 61 {
		serial--
	}
	return serial
}
