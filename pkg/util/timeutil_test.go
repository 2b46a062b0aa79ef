package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatDateUsesUTCCalendarDay(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	local := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))
	require.Equal(t, "2024-03-10", FormatDate(local))
}

func TestParseDate(t *testing.T) {
	ts, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	require.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), ts)

	_, err = ParseDate("2024/02/29")
	require.Error(t, err)
}
