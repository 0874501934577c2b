package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/fgc-tools/fgc-departures/gtfs"
	"github.com/fgc-tools/fgc-departures/schedule"
)

type stationResponse struct {
	StopID string  `json:"stop_id"`
	Name   string  `json:"name"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
}

type nearestStationResponse struct {
	stationResponse
	DistanceKM float64 `json:"distance_km"`
}

type departureResponse struct {
	Time        string `json:"time"`
	TripID      string `json:"trip_id"`
	Line        string `json:"line"`
	Destination string `json:"destination"`
	Via         string `json:"via"`

	// Live state, present only when the train is in the realtime snapshot.
	OnTime       *bool  `json:"on_time,omitempty"`
	DelaySeconds *int32 `json:"delay_seconds,omitempty"`
	UnitID       string `json:"unit_id,omitempty"`
}

type departuresResponse struct {
	Station    string              `json:"station"`
	StopID     string              `json:"stop_id"`
	Date       string              `json:"date"`
	From       string              `json:"from"`
	To         string              `json:"to"`
	Departures []departureResponse `json:"departures"`
}

type accessResponse struct {
	StopID     string `json:"stop_id"`
	Station    string `json:"station"`
	Wheelchair string `json:"wheelchair"`
	WC         string `json:"wc"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Accessibility display labels, matching the wording riders already know.
const noInfoLabel = "Sense informació"

var wheelchairLabels = map[int]string{
	1: "Viable",
	0: "No garantit",
}

var wcLabels = map[int]string{
	3:  "Disponible i net :)",
	2:  "Disponible",
	1:  "Només sota demanda",
	0:  "No",
	-1: noInfoLabel,
}

func wheelchairLabel(v gtfs.OptionalInt) string {
	if !v.Valid {
		return noInfoLabel
	}
	if label, ok := wheelchairLabels[v.Value]; ok {
		return label
	}
	return noInfoLabel
}

func wcLabel(v gtfs.OptionalInt) string {
	if !v.Valid {
		return noInfoLabel
	}
	if label, ok := wcLabels[v.Value]; ok {
		return label
	}
	return noInfoLabel
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var qe *QueryError
	if errors.As(err, &qe) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: qe.Msg})
		return
	}
	if errors.Is(err, schedule.ErrMalformedTime) {
		s.logger.Error("corrupt schedule data", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "corrupt schedule data"})
		return
	}
	s.logger.Error("request failed", zap.Error(err))
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}
