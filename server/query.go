package server

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fgc-tools/fgc-departures/schedule"
)

type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// parseDepartureQuery validates the departure listing parameters.
// The station may be given by stop ID or by display name; date and time
// default to the server clock.
func (s *Server) parseDepartureQuery(params url.Values) (schedule.Query, error) {
	now := s.now()

	q := schedule.Query{
		Date:   now,
		Now:    schedule.TimeOfDayFrom(now),
		Window: s.defaultWindow,
	}

	switch {
	case params.Get("stop") != "":
		stopID := strings.TrimSpace(params.Get("stop"))
		if s.idx.StopByID(stopID) == nil {
			return q, &QueryError{Msg: "No such stop: " + stopID + "."}
		}
		q.StopID = stopID
	case params.Get("station") != "":
		name := strings.TrimSpace(params.Get("station"))
		stop := s.idx.StopByName(name)
		if stop == nil {
			return q, &QueryError{Msg: "No such station: " + name + "."}
		}
		q.StopID = stop.ID
	default:
		return q, &QueryError{Msg: "You must provide a stop or a station."}
	}

	if raw := params.Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return q, &QueryError{Msg: "Date must be formatted as YYYY-MM-DD."}
		}
		q.Date = date
	}

	if raw := params.Get("at"); raw != "" {
		at, err := schedule.ParseTimeOfDay(raw)
		if err != nil {
			return q, &QueryError{Msg: "Time must be formatted as HH:MM:SS."}
		}
		q.Now = at
	}

	if raw := params.Get("window"); raw != "" {
		minutes, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || minutes <= 0 {
			return q, &QueryError{Msg: "Window must be a positive number of minutes."}
		}
		window := time.Duration(minutes) * time.Minute
		if window > s.maxWindow {
			return q, &QueryError{Msg: "Window must be at most " + strconv.Itoa(int(s.maxWindow/time.Minute)) + " minutes."}
		}
		q.Window = window
	}

	via, err := schedule.ParseViaFilter(params.Get("via"))
	if err != nil {
		return q, &QueryError{Msg: "Via must be 1, 2 or all."}
	}
	q.Via = via

	return q, nil
}

func parseCoordinates(params url.Values) (lat, lon float64, err error) {
	lat, err = strconv.ParseFloat(params.Get("lat"), 64)
	if err != nil || lat < -90 || lat > 90 {
		return 0, 0, &QueryError{Msg: "lat must be a latitude in decimal degrees."}
	}
	lon, err = strconv.ParseFloat(params.Get("lon"), 64)
	if err != nil || lon < -180 || lon > 180 {
		return 0, 0, &QueryError{Msg: "lon must be a longitude in decimal degrees."}
	}
	return lat, lon, nil
}
