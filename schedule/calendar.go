package schedule

import (
	"time"

	"github.com/fgc-tools/fgc-departures/gtfs"
)

// ActiveServices returns the set of service identifiers running on the
// given date. The exception table is authoritative: a service runs on a
// date if and only if a row matches it, with no recurrence rules. A date
// with no matching rows yields an empty set, which downstream reads as
// "no service today", not as an error.
func ActiveServices(dates []*gtfs.CalendarDate, day time.Time) map[string]bool {
	y, m, d := day.Date()

	active := map[string]bool{}
	for _, cd := range dates {
		cy, cm, cdDay := cd.Date.Date()
		if cy == y && cm == m && cdDay == d {
			active[cd.ServiceID] = true
		}
	}
	return active
}
