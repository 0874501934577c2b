package schedule

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedTime reports a departure time string that does not follow
// the HH:MM:SS convention. Feed times are reference data, so a malformed
// value is a data error the caller must surface, never skip.
var ErrMalformedTime = errors.New("malformed departure time")

// TimeOfDay is a clock time within a single service day.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// TimeOfDayFrom extracts the clock time of a wall-clock instant.
func TimeOfDayFrom(t time.Time) TimeOfDay {
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
}

// ParseTimeOfDay parses an HH:MM:SS feed time. Hours of 24 and above
// mark post-midnight service and are folded back onto the clock, so
// "25:10:00" parses as 01:10:00. The fold is idempotent: a value already
// below 24 is returned unchanged.
func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTime, raw)
	}

	fields := make([]int, 3)
	for i, part := range parts {
		val, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrMalformedTime, raw)
		}
		fields[i] = val
	}

	hour := fields[0]
	if hour >= 24 {
		hour -= 24
	}
	return TimeOfDay{Hour: hour, Minute: fields[1], Second: fields[2]}, nil
}

// Seconds returns the time as seconds since midnight.
func (t TimeOfDay) Seconds() int {
	return t.Hour*3600 + t.Minute*60 + t.Second
}

// Compare orders two times within the same day. It returns a negative
// value when t is earlier than other, zero when equal, positive when later.
func (t TimeOfDay) Compare(other TimeOfDay) int {
	return t.Seconds() - other.Seconds()
}

// String formats the time as HH:MM:SS.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second)
}
