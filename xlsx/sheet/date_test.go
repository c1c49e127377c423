package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestToTime(t *testing.T) {
	tests := []struct {
		serial   float64
		date1904 bool
		want     time.Time
	}{
		{1, false, time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)},
		{59, false, time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC)},
		{60, false, time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC)},
		{61, false, time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC)},
		{44927, false, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
		{44927.75, false, time.Date(2023, 1, 1, 18, 0, 0, 0, time.UTC)},
		{0, true, time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)},
		{1.5, true, time.Date(1904, 1, 2, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		assert.True(t, tt.want.Equal(ToTime(tt.serial, tt.date1904)), "serial %v (1904=%v) = %v", tt.serial, tt.date1904, ToTime(tt.serial, tt.date1904))
	}
}

func TestToTime_RoundsToMillisecond(t *testing.T) {
	// One second past midnight, carrying float noise.
	got := ToTime(44927+1.0/86400+1e-12, false)
	assert.Equal(t, 0, got.Nanosecond())
	assert.Equal(t, 1, got.Second())
}

func TestFromTime(t *testing.T) {
	assert.Equal(t, 1.0, FromTime(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), false))
	assert.Equal(t, 59.0, FromTime(time.Date(1900, 2, 28, 0, 0, 0, 0, time.UTC), false))
	assert.Equal(t, 61.0, FromTime(time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC), false))
	assert.Equal(t, 44927.25, FromTime(time.Date(2023, 1, 1, 6, 0, 0, 0, time.UTC), false))
	assert.Equal(t, 1.0, FromTime(time.Date(1904, 1, 2, 0, 0, 0, 0, time.UTC), true))
}

func TestDateRoundTrip(t *testing.T) {
	for _, date1904 := range []bool{false, true} {
		start := time.Date(1950, 6, 15, 13, 45, 30, 0, time.UTC)
		for d := range 400 {
			tm := start.AddDate(0, 0, d*37)
			assert.True(t, tm.Equal(ToTime(FromTime(tm, date1904), date1904)), "%v 1904=%v", tm, date1904)
		}
	}
}
