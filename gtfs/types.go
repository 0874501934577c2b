package gtfs

import (
	"strconv"
	"strings"
	"time"
)

// DateFormat is the GTFS calendar date convention.
const DateFormat = "20060102"

// Date is a GTFS calendar date parsed from CSV.
type Date struct {
	time.Time
}

// MarshalCSV marshals the value back into the feed's YYYYMMDD format.
func (d *Date) MarshalCSV() (string, error) {
	return d.Format(DateFormat), nil
}

// UnmarshalCSV parses a YYYYMMDD field.
func (d *Date) UnmarshalCSV(csv string) (err error) {
	d.Time, err = time.Parse(DateFormat, strings.TrimSpace(csv))
	return err
}

// OptionalInt is an integer CSV field that distinguishes an empty cell
// from an explicit zero.
type OptionalInt struct {
	Value int
	Valid bool
}

// MarshalCSV marshals the value into a string, or an empty cell when unset.
func (i *OptionalInt) MarshalCSV() (string, error) {
	if !i.Valid {
		return "", nil
	}
	return strconv.Itoa(i.Value), nil
}

// UnmarshalCSV parses an integer field, leaving the value unset when empty.
func (i *OptionalInt) UnmarshalCSV(csv string) error {
	csv = strings.TrimSpace(csv)
	if len(csv) < 1 {
		*i = OptionalInt{}
		return nil
	}

	val, err := strconv.ParseInt(csv, 10, 32)
	if err != nil {
		return err
	}

	*i = OptionalInt{Value: int(val), Valid: true}
	return nil
}

// Stop is a station in the network. Immutable reference data.
type Stop struct {
	ID   string  `csv:"stop_id"`
	Name string  `csv:"stop_name"`
	Lat  float64 `csv:"stop_lat"`
	Lon  float64 `csv:"stop_lon"`
}

// Route is a named line. The long name conventionally reads
// "<origin> - <destination>"; when the separator is absent the route has
// no derivable directional semantics.
type Route struct {
	ID       string `csv:"route_id"`
	LongName string `csv:"route_long_name"`
}

// Trip is a single scheduled run of a route. The headsign is the displayed
// destination text and may differ from the route's nominal destination.
// Composite trip IDs may embed a service segment before a '|' delimiter;
// ServiceID is the authoritative field regardless.
type Trip struct {
	ID        string `csv:"trip_id"`
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	Headsign  string `csv:"trip_headsign"`
}

// StopTime records a trip visiting a stop. DepartureTime is the raw feed
// string and may carry an hour of 24 or more for post-midnight service.
type StopTime struct {
	TripID        string `csv:"trip_id"`
	StopID        string `csv:"stop_id"`
	DepartureTime string `csv:"departure_time"`
}

// CalendarDate marks a service identifier as running on a date. The table
// is an exception list: a service runs on a date if and only if a row
// matches, with no day-of-week recurrence.
type CalendarDate struct {
	ServiceID string `csv:"service_id"`
	Date      Date   `csv:"date"`
}

// StopAccess carries the accessibility attributes of a station.
type StopAccess struct {
	StopID             string      `csv:"stop_id"`
	WheelchairBoarding OptionalInt `csv:"wheelchair_boarding"`
	WC                 OptionalInt `csv:"wc"`
}
