package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatHMS(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00:00"},
		{time.Second, "00:00:01"},
		{time.Hour + 2*time.Minute + 3*time.Second, "01:02:03"},
		{25 * time.Hour, "25:00:00"}, // no 24h wraparound
		{-time.Minute, "00:00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatHMS(tt.d))
	}
}

func TestParseHMS(t *testing.T) {
	d, err := ParseHMS("01:30:15")
	require.NoError(t, err)
	assert.Equal(t, time.Hour+30*time.Minute+15*time.Second, d)

	d, err = ParseHMS("30:00:00")
	require.NoError(t, err)
	assert.Equal(t, 30*time.Hour, d)

	for _, bad := range []string{"", "abc", "1:72:00", "1:00:99", "-1:00:00"} {
		_, err := ParseHMS(bad)
		assert.Error(t, err, "input %q", bad)
	}
}

func TestHMSRejectsOutOfRangeComponents(t *testing.T) {
	d, err := HMS(23, 59, 59)
	require.NoError(t, err)
	assert.Equal(t, MaxClockDuration, d)

	for _, bad := range [][3]int{{24, 0, 0}, {-1, 0, 0}, {0, 60, 0}, {0, -1, 0}, {0, 0, 60}, {0, 0, -1}} {
		_, err := HMS(bad[0], bad[1], bad[2])
		assert.Error(t, err, "components %v", bad)
	}
}

func TestDayBounds(t *testing.T) {
	at := time.Date(2024, 1, 5, 13, 37, 42, 999, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), StartOfDay(at))
	assert.Equal(t, time.Date(2024, 1, 5, 23, 59, 59, 0, time.UTC), EndOfDay(at))
}
