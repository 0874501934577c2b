package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/fgc-tools/fgc-departures/comments"
	"github.com/fgc-tools/fgc-departures/schedule"
)

type healthResponse struct {
	Status           string `json:"status"`
	Stations         int    `json:"stations"`
	RealtimeSnapshot int64  `json:"realtime_snapshot_epoch"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:   "ok",
		Stations: len(s.idx.Stops()),
	}
	if s.feed != nil {
		if _, updatedAt := s.feed.Trains(); !updatedAt.IsZero() {
			resp.RealtimeSnapshot = updatedAt.Unix()
		}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	stops := s.idx.Stops()
	out := make([]stationResponse, 0, len(stops))
	for _, stop := range stops {
		out = append(out, stationResponse{
			StopID: stop.ID,
			Name:   stop.Name,
			Lat:    stop.Lat,
			Lon:    stop.Lon,
		})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleNearestStation(w http.ResponseWriter, r *http.Request) {
	lat, lon, err := parseCoordinates(r.URL.Query())
	if err != nil {
		s.writeError(w, err)
		return
	}

	stop, dist := s.idx.NearestStop(lat, lon)
	if stop == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "no stations loaded"})
		return
	}
	s.writeJSON(w, http.StatusOK, nearestStationResponse{
		stationResponse: stationResponse{
			StopID: stop.ID,
			Name:   stop.Name,
			Lat:    stop.Lat,
			Lon:    stop.Lon,
		},
		DistanceKM: dist,
	})
}

func (s *Server) handleAccess(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	stopID := ps.ByName("stopID")
	stop := s.idx.StopByID(stopID)
	if stop == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "No such stop: " + stopID + "."})
		return
	}

	resp := accessResponse{
		StopID:     stop.ID,
		Station:    stop.Name,
		Wheelchair: noInfoLabel,
		WC:         noInfoLabel,
	}
	if access := s.idx.AccessFor(stopID); access != nil {
		resp.Wheelchair = wheelchairLabel(access.WheelchairBoarding)
		resp.WC = wcLabel(access.WC)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDepartures(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	q, err := s.parseDepartureQuery(r.URL.Query())
	if err != nil {
		s.collector.DepartureQueries.WithLabelValues("error").Inc()
		s.writeError(w, err)
		return
	}

	deps, err := schedule.UpcomingDepartures(s.idx, q)
	if err != nil {
		s.collector.DepartureQueries.WithLabelValues("error").Inc()
		s.writeError(w, err)
		return
	}

	resp := departuresResponse{
		Station:    s.idx.StopByID(q.StopID).Name,
		StopID:     q.StopID,
		Date:       q.Date.Format("2006-01-02"),
		From:       q.Now.String(),
		To:         q.Now.String(),
		Departures: make([]departureResponse, 0, len(deps)),
	}
	resp.To = schedule.WindowEnd(q.Now, q.Window).String()

	for _, d := range deps {
		dr := departureResponse{
			Time:        d.Time.String(),
			TripID:      d.TripID,
			Line:        d.LineID,
			Destination: d.Destination,
			Via:         d.Via.String(),
		}
		if s.feed != nil {
			if train := s.feed.TrainByTrip(d.TripID); train != nil {
				onTime, delay := train.OnTime, train.DelaySeconds
				dr.OnTime = &onTime
				dr.DelaySeconds = &delay
				dr.UnitID = train.UnitID
			}
		}
		resp.Departures = append(resp.Departures, dr)
	}

	result := "ok"
	if len(resp.Departures) == 0 {
		result = "empty"
	}
	s.collector.DepartureQueries.WithLabelValues(result).Inc()
	s.collector.QueryDuration.Observe(time.Since(started).Seconds())

	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleVehicles(w http.ResponseWriter, r *http.Request) {
	if s.feed == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "realtime feed not configured"})
		return
	}
	trains, updatedAt := s.feed.Trains()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"updated_at_epoch": updatedAt.Unix(),
		"trains":           trains,
	})
}

func (s *Server) handleVehicle(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if s.feed == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "realtime feed not configured"})
		return
	}
	tripID := ps.ByName("tripID")
	train := s.feed.TrainByTrip(tripID)
	if train == nil {
		s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "No such tracked trip: " + tripID + "."})
		return
	}
	s.writeJSON(w, http.StatusOK, train)
}

func (s *Server) handleGetComments(w http.ResponseWriter, r *http.Request) {
	line := strings.TrimSpace(r.URL.Query().Get("line"))
	station := strings.TrimSpace(r.URL.Query().Get("station"))
	if line == "" || station == "" {
		s.writeError(w, &QueryError{Msg: "You must provide a line and a station."})
		return
	}
	got := s.store.ForStation(line, station)
	if got == nil {
		got = []comments.Comment{}
	}
	s.writeJSON(w, http.StatusOK, got)
}

type postCommentRequest struct {
	Line    string `json:"line"`
	Station string `json:"station"`
	Text    string `json:"comment"`
}

func (s *Server) handlePostComment(w http.ResponseWriter, r *http.Request) {
	var req postCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, &QueryError{Msg: "Body must be a JSON comment."})
		return
	}
	req.Line = strings.TrimSpace(req.Line)
	req.Station = strings.TrimSpace(req.Station)
	req.Text = strings.TrimSpace(req.Text)
	if req.Line == "" || req.Station == "" || req.Text == "" {
		s.writeError(w, &QueryError{Msg: "A comment needs a line, a station and a text."})
		return
	}

	c, err := s.store.Add(req.Line, req.Station, req.Text)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.collector.CommentsPosted.Inc()
	s.writeJSON(w, http.StatusCreated, c)
}
