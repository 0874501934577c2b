package realtime

import (
	"context"
	"sort"
	"sync"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"go.uber.org/zap"

	"github.com/fgc-tools/fgc-departures/gtfs"
	"github.com/fgc-tools/fgc-departures/metrics"
)

// onTimeThreshold is the largest delay still displayed as running on time.
const onTimeThreshold = 60 * time.Second

// Train is the live state of one tracked run.
type Train struct {
	TripID        string   `json:"trip_id"`
	LineID        string   `json:"line_id,omitempty"`
	Destination   string   `json:"destination,omitempty"`
	CurrentStopID string   `json:"current_stop_id,omitempty"`
	NextStopIDs   []string `json:"next_stop_ids,omitempty"`
	DelaySeconds  int32    `json:"delay_seconds"`
	OnTime        bool     `json:"on_time"`
	UnitID        string   `json:"unit_id,omitempty"`
	// CarOccupancy holds the occupancy percentage of each carriage, front
	// to back, when the operator reports it.
	CarOccupancy []int `json:"car_occupancy,omitempty"`
}

// Feed holds the latest realtime snapshot and refreshes it on an interval.
type Feed struct {
	client              *Client
	tripUpdatesURL      string
	vehiclePositionsURL string
	interval            time.Duration
	logger              *zap.Logger
	collector           *metrics.Collector

	mu        sync.RWMutex
	trains    map[string]*Train
	updatedAt time.Time
}

// NewFeed creates a feed tracker. Either URL may be empty, leaving that
// side of the snapshot unpopulated.
func NewFeed(client *Client, tripUpdatesURL, vehiclePositionsURL string, interval time.Duration, logger *zap.Logger, collector *metrics.Collector) *Feed {
	return &Feed{
		client:              client,
		tripUpdatesURL:      tripUpdatesURL,
		vehiclePositionsURL: vehiclePositionsURL,
		interval:            interval,
		logger:              logger,
		collector:           collector,
		trains:              map[string]*Train{},
	}
}

// Run refreshes the snapshot on the configured interval until the
// context is canceled. One refresh runs immediately on start.
func (f *Feed) Run(ctx context.Context, idx *gtfs.Index) {
	f.refresh(ctx, idx)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.refresh(ctx, idx)
		}
	}
}

func (f *Feed) refresh(ctx context.Context, idx *gtfs.Index) {
	f.collector.FeedRefreshes.Inc()
	if err := f.Refresh(ctx, idx); err != nil {
		f.collector.FeedRefreshErrs.Inc()
		f.logger.Warn("realtime refresh failed, keeping previous snapshot",
			zap.Error(err),
		)
	}
}

// Refresh fetches both feeds and replaces the snapshot. On error the
// previous snapshot is left untouched.
func (f *Feed) Refresh(ctx context.Context, idx *gtfs.Index) error {
	tu, err := f.client.Fetch(ctx, f.tripUpdatesURL)
	if err != nil {
		return err
	}
	vp, err := f.client.Fetch(ctx, f.vehiclePositionsURL)
	if err != nil {
		return err
	}

	trains := buildTrains(tu, vp, idx)

	f.mu.Lock()
	f.trains = trains
	f.updatedAt = time.Now()
	f.mu.Unlock()

	f.collector.TrainsTracked.Set(float64(len(trains)))
	return nil
}

// Trains returns the tracked trains ordered by trip identifier, plus the
// time of the snapshot they belong to.
func (f *Feed) Trains() ([]*Train, time.Time) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]*Train, 0, len(f.trains))
	for _, t := range f.trains {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TripID < out[j].TripID })
	return out, f.updatedAt
}

// TrainByTrip returns the tracked train for a trip, or nil when the trip
// is not in the current snapshot.
func (f *Feed) TrainByTrip(tripID string) *Train {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.trains[tripID]
}

func buildTrains(tu, vp *gtfsrtpb.FeedMessage, idx *gtfs.Index) map[string]*Train {
	trains := map[string]*Train{}

	get := func(tripID string) *Train {
		t, ok := trains[tripID]
		if !ok {
			t = &Train{TripID: tripID, OnTime: true}
			if trip := idx.TripByID(tripID); trip != nil {
				t.LineID = trip.RouteID
				t.Destination = trip.Headsign
			}
			trains[tripID] = t
		}
		return t
	}

	if tu != nil {
		for _, e := range tu.Entity {
			upd := e.TripUpdate
			if upd == nil || upd.Trip == nil || upd.Trip.TripId == nil {
				continue
			}
			t := get(*upd.Trip.TripId)
			if upd.Trip.RouteId != nil {
				t.LineID = *upd.Trip.RouteId
			}

			delay := upd.GetDelay()
			for _, stu := range upd.StopTimeUpdate {
				if stu.StopId != nil {
					t.NextStopIDs = append(t.NextStopIDs, *stu.StopId)
				}
				// Fall back to the first per-stop delay when the feed
				// carries no trip-level one.
				if delay == 0 {
					if d := stu.GetDeparture().GetDelay(); d != 0 {
						delay = d
					} else if d := stu.GetArrival().GetDelay(); d != 0 {
						delay = d
					}
				}
			}
			t.DelaySeconds = delay
			t.OnTime = time.Duration(delay)*time.Second <= onTimeThreshold
		}
	}

	if vp != nil {
		for _, e := range vp.Entity {
			pos := e.Vehicle
			if pos == nil || pos.Trip == nil || pos.Trip.TripId == nil {
				continue
			}
			t := get(*pos.Trip.TripId)
			if pos.StopId != nil {
				t.CurrentStopID = *pos.StopId
			}
			if v := pos.Vehicle; v != nil {
				if v.Label != nil && *v.Label != "" {
					t.UnitID = *v.Label
				} else if v.Id != nil {
					t.UnitID = *v.Id
				}
			}
			for _, car := range pos.MultiCarriageDetails {
				if car.OccupancyPercentage != nil {
					t.CarOccupancy = append(t.CarOccupancy, int(*car.OccupancyPercentage))
				}
			}
			// The snapshot position supersedes the schedule's remaining
			// stops when the static trip is known.
			if t.CurrentStopID != "" && len(t.NextStopIDs) == 0 {
				t.NextStopIDs = idx.StopsAfter(t.TripID, t.CurrentStopID)
			}
		}
	}

	return trains
}
