package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		raw  string
		want TimeOfDay
	}{
		{"08:30:00", TimeOfDay{8, 30, 0}},
		{"00:00:00", TimeOfDay{0, 0, 0}},
		{"23:59:59", TimeOfDay{23, 59, 59}},
		{"24:00:00", TimeOfDay{0, 0, 0}},
		{"25:10:00", TimeOfDay{1, 10, 0}},
		{"26:45:30", TimeOfDay{2, 45, 30}},
		{"5:07:09", TimeOfDay{5, 7, 9}},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTimeOfDayFoldsAllLateHours(t *testing.T) {
	for h := 24; h <= 47; h++ {
		raw := fmt.Sprintf("%02d:15:00", h)
		got, err := ParseTimeOfDay(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, h-24, got.Hour, raw)
	}
}

func TestParseTimeOfDayMalformed(t *testing.T) {
	for _, raw := range []string{"", "08:30", "08:30:00:00", "ab:cd:ef", "08:3x:00", "08-30-00"} {
		t.Run(raw, func(t *testing.T) {
			_, err := ParseTimeOfDay(raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedTime)
			assert.Contains(t, err.Error(), raw)
		})
	}
}

func TestTimeOfDayCompare(t *testing.T) {
	a := TimeOfDay{8, 30, 0}
	b := TimeOfDay{8, 30, 1}

	assert.Negative(t, a.Compare(b))
	assert.Positive(t, b.Compare(a))
	assert.Zero(t, a.Compare(a))
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "08:05:09", TimeOfDay{8, 5, 9}.String())
	assert.Equal(t, "00:00:00", TimeOfDay{}.String())
}

func TestTimeOfDayFrom(t *testing.T) {
	instant := time.Date(2026, 3, 2, 14, 45, 10, 0, time.UTC)
	assert.Equal(t, TimeOfDay{14, 45, 10}, TimeOfDayFrom(instant))
}
