package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookwell/bookwell-api/apperr"
)

func TestTimeToMinutes(t *testing.T) {
	cases := map[string]int{
		"00:00": 0,
		"00:01": 1,
		"09:00": 540,
		"13:45": 825,
		"23:59": 1439,
	}
	for input, want := range cases {
		got, err := TimeToMinutes(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestTimeToMinutesRejectsMalformedInput(t *testing.T) {
	for _, input := range []string{"", "9:00", "24:00", "12:60", "12-30", "12:3", "ab:cd", "12:345"} {
		_, err := TimeToMinutes(input)
		require.Error(t, err, input)
		assert.True(t, apperr.Is(err, apperr.KindValidation), input)
	}
}

func TestMinutesToTimeZeroPads(t *testing.T) {
	assert.Equal(t, "00:00", MinutesToTime(0))
	assert.Equal(t, "09:05", MinutesToTime(545))
	assert.Equal(t, "16:30", MinutesToTime(990))
	assert.Equal(t, "23:59", MinutesToTime(1439))
}

func TestTimeRoundTrip(t *testing.T) {
	for hour := 0; hour < 24; hour++ {
		for _, minute := range []int{0, 1, 15, 30, 59} {
			original := MinutesToTime(hour*60 + minute)
			minutes, err := TimeToMinutes(original)
			require.NoError(t, err)
			assert.Equal(t, original, MinutesToTime(minutes))
		}
	}
}
