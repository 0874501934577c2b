package gtfs

import (
	"math"
	"sort"

	"go.uber.org/zap"
)

const earthRadiusKM = 6371.0

// Index exposes the loaded schedule tables through key-based lookups.
// It is built once from a Dataset and never mutated afterwards, so it may
// be shared freely across concurrent readers.
type Index struct {
	stopsByID       map[string]*Stop
	stopsByName     map[string]*Stop
	routesByID      map[string]*Route
	tripsByID       map[string]*Trip
	stopTimesByStop map[string][]*StopTime
	stopTimesByTrip map[string][]*StopTime
	accessByStop    map[string]*StopAccess

	stops         []*Stop
	trips         []*Trip
	calendarDates []*CalendarDate
}

// NewIndex builds the lookup structures for the supplied dataset.
// Rows referencing identifiers that do not exist elsewhere in the feed are
// kept (the query-time joins drop them), but logged for feed hygiene.
func NewIndex(logger *zap.Logger, ds *Dataset) *Index {
	idx := &Index{
		stopsByID:       make(map[string]*Stop, len(ds.Stops)),
		stopsByName:     make(map[string]*Stop, len(ds.Stops)),
		routesByID:      make(map[string]*Route, len(ds.Routes)),
		tripsByID:       make(map[string]*Trip, len(ds.Trips)),
		stopTimesByStop: map[string][]*StopTime{},
		stopTimesByTrip: map[string][]*StopTime{},
		accessByStop:    make(map[string]*StopAccess, len(ds.Access)),

		trips:         ds.Trips,
		calendarDates: ds.CalendarDates,
	}

	for _, s := range ds.Stops {
		idx.stopsByID[s.ID] = s
		idx.stopsByName[s.Name] = s
	}
	for _, r := range ds.Routes {
		idx.routesByID[r.ID] = r
	}
	for _, t := range ds.Trips {
		if _, ok := idx.routesByID[t.RouteID]; !ok {
			logger.Info("trip references missing route",
				zap.String("trip_id", t.ID),
				zap.String("route_id", t.RouteID),
			)
		}
		idx.tripsByID[t.ID] = t
	}
	for _, st := range ds.StopTimes {
		if _, ok := idx.tripsByID[st.TripID]; !ok {
			logger.Info("stop time references missing trip",
				zap.String("trip_id", st.TripID),
				zap.String("stop_id", st.StopID),
			)
		}
		// Feed order within each stop is preserved; it is the tie-breaker
		// for departures with identical times.
		idx.stopTimesByStop[st.StopID] = append(idx.stopTimesByStop[st.StopID], st)
		idx.stopTimesByTrip[st.TripID] = append(idx.stopTimesByTrip[st.TripID], st)
	}
	for _, a := range ds.Access {
		idx.accessByStop[a.StopID] = a
	}

	// Within a trip, raw departure strings grow monotonically (that is the
	// point of the over-24 hour convention), so zero-padded lexical order
	// is visit order.
	for _, sts := range idx.stopTimesByTrip {
		sort.SliceStable(sts, func(i, j int) bool {
			return sts[i].DepartureTime < sts[j].DepartureTime
		})
	}

	idx.stops = make([]*Stop, len(ds.Stops))
	copy(idx.stops, ds.Stops)
	sort.Slice(idx.stops, func(i, j int) bool {
		return idx.stops[i].Name < idx.stops[j].Name
	})

	return idx
}

// StopByID returns the stop with the given identifier, or nil.
func (idx *Index) StopByID(id string) *Stop {
	return idx.stopsByID[id]
}

// StopByName returns the stop with the given display name, or nil.
// This backs the list-based station picker.
func (idx *Index) StopByName(name string) *Stop {
	return idx.stopsByName[name]
}

// Stops returns every stop, ordered by display name.
func (idx *Index) Stops() []*Stop {
	return idx.stops
}

// RouteByID returns the route with the given identifier, or nil.
func (idx *Index) RouteByID(id string) *Route {
	return idx.routesByID[id]
}

// TripByID returns the trip with the given identifier, or nil.
func (idx *Index) TripByID(id string) *Trip {
	return idx.tripsByID[id]
}

// Trips returns every trip in feed order.
func (idx *Index) Trips() []*Trip {
	return idx.trips
}

// CalendarDates returns the service exception list in feed order.
func (idx *Index) CalendarDates() []*CalendarDate {
	return idx.calendarDates
}

// StopTimesAt returns the stop times at the given stop in feed order.
// An unknown stop yields an empty slice, not an error: station existence
// is validated by the station picker, not here.
func (idx *Index) StopTimesAt(stopID string) []*StopTime {
	return idx.stopTimesByStop[stopID]
}

// StopsAfter returns the stop identifiers a trip still has to visit after
// the given stop. An unknown trip or stop yields nil.
func (idx *Index) StopsAfter(tripID, stopID string) []string {
	sts := idx.stopTimesByTrip[tripID]
	for i, st := range sts {
		if st.StopID == stopID {
			ids := make([]string, 0, len(sts)-i-1)
			for _, next := range sts[i+1:] {
				ids = append(ids, next.StopID)
			}
			return ids
		}
	}
	return nil
}

// AccessFor returns the accessibility attributes for a stop, or nil when
// the accessibility table has no row for it.
func (idx *Index) AccessFor(stopID string) *StopAccess {
	return idx.accessByStop[stopID]
}

// NearestStop returns the stop closest to the given coordinates and the
// distance to it in kilometers. Returns nil when no stops are loaded.
func (idx *Index) NearestStop(lat, lon float64) (*Stop, float64) {
	var nearest *Stop
	best := math.MaxFloat64
	for _, s := range idx.stops {
		if d := HaversineKM(lat, lon, s.Lat, s.Lon); d < best {
			nearest = s
			best = d
		}
	}
	if nearest == nil {
		return nil, 0
	}
	return nearest, best
}

// HaversineKM returns the great-circle distance between two coordinates
// in kilometers.
func HaversineKM(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180
	dLon := (lon2 - lon1) * math.Pi / 180
	rLat1 := lat1 * math.Pi / 180
	rLat2 := lat2 * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKM * c
}
