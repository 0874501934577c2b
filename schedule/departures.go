package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/fgc-tools/fgc-departures/gtfs"
)

// Query selects upcoming departures from a station.
type Query struct {
	// StopID identifies the station.
	StopID string
	// Date is the service day being queried.
	Date time.Time
	// Now is the lower bound of the window. Departures at exactly Now
	// are excluded; the train is already leaving.
	Now TimeOfDay
	// Window is how far ahead to look.
	Window time.Duration
	// Via narrows the listing to a single platform.
	Via ViaFilter
}

// Departure is one upcoming train at the queried station.
type Departure struct {
	// Time is the normalized clock time of departure.
	Time TimeOfDay
	// TripID identifies the scheduled run.
	TripID string
	// LineID is the route identifier shown as the line, or "Desconegut"
	// when the trip's route is missing from the feed.
	LineID string
	// Destination is the trip headsign.
	Destination string
	// Via is the derived platform.
	Via Via
}

const unknownLabel = "Desconegut"

// UpcomingDepartures lists the trains leaving the queried station within
// the window, ordered by departure time. Timetable rows for trips that
// are not running on the queried date are dropped. Rows whose trip is
// absent from the trips table are dropped too, since without the trip
// there is no service to check. A trip whose route is missing keeps its
// row with the line and platform degraded to unknown.
//
// When the window extends past midnight, it is truncated at 23:59:59.
// Post-midnight departures belong to the next service day's query.
func UpcomingDepartures(idx *gtfs.Index, q Query) ([]Departure, error) {
	active := ActiveServices(idx.CalendarDates(), q.Date)

	windowEnd := WindowEnd(q.Now, q.Window)

	var departures []Departure
	for _, st := range idx.StopTimesAt(q.StopID) {
		trip := idx.TripByID(st.TripID)
		if trip == nil || !active[trip.ServiceID] {
			continue
		}

		depTime, err := ParseTimeOfDay(st.DepartureTime)
		if err != nil {
			return nil, fmt.Errorf("trip %s at stop %s: %w", st.TripID, st.StopID, err)
		}
		if depTime.Compare(q.Now) <= 0 || depTime.Compare(windowEnd) > 0 {
			continue
		}

		lineID := unknownLabel
		via := ViaUnknown
		if route := idx.RouteByID(trip.RouteID); route != nil {
			lineID = route.ID
			via = ClassifyVia(route.LongName, trip.Headsign)
		}
		if !q.Via.Matches(via) {
			continue
		}

		departures = append(departures, Departure{
			Time:        depTime,
			TripID:      trip.ID,
			LineID:      lineID,
			Destination: trip.Headsign,
			Via:         via,
		})
	}

	// Stable so that equal times keep their timetable order.
	sort.SliceStable(departures, func(i, j int) bool {
		return departures[i].Compare(departures[j]) < 0
	})
	return departures, nil
}

// Compare orders departures by time.
func (d Departure) Compare(other Departure) int {
	return d.Time.Compare(other.Time)
}

// WindowEnd returns the inclusive upper bound of a departure window,
// truncated at the last second of the day when it would cross midnight.
func WindowEnd(now TimeOfDay, window time.Duration) TimeOfDay {
	endSec := now.Seconds() + int(window/time.Second)
	if endSec >= 24*3600 {
		return TimeOfDay{Hour: 23, Minute: 59, Second: 59}
	}
	return TimeOfDay{
		Hour:   endSec / 3600,
		Minute: (endSec % 3600) / 60,
		Second: endSec % 60,
	}
}
