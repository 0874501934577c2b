package gtfs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeFeedFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func writeTestFeed(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	writeFeedFile(t, dir, "stops.txt",
		"stop_id,stop_name,stop_lat,stop_lon\n"+
			"PC,Pl. Catalunya,41.3870,2.1701\n"+
			"PR,Provença,41.3937,2.1621\n"+
			"GR,Gràcia,41.3990,2.1550\n")
	writeFeedFile(t, dir, "routes.txt",
		"route_id,route_long_name\n"+
			"S1,Barcelona - Terrassa\n"+
			"S2,Barcelona - Sabadell\n"+
			"L7,Línia 7\n")
	writeFeedFile(t, dir, "trips.txt",
		"trip_id,route_id,service_id,trip_headsign\n"+
			"T1,S1,WD,Terrassa\n"+
			"T2,S2,WD,Sabadell\n"+
			"T3,S1,WE,Barcelona\n")
	writeFeedFile(t, dir, "stop_times.txt",
		"trip_id,stop_id,departure_time\n"+
			"T1,PC,08:10:00\n"+
			"T1,PR,08:14:00\n"+
			"T1,GR,08:17:00\n"+
			"T2,PC,08:30:00\n"+
			"T3,GR,25:10:00\n")
	writeFeedFile(t, dir, "calendar_dates.txt",
		"service_id,date\n"+
			"WD,20260302\n"+
			"WE,20260307\n")
	return dir
}

func TestDatasetLoadFromDir(t *testing.T) {
	dir := writeTestFeed(t)
	writeFeedFile(t, dir, "agency.txt", "agency_id,agency_name\nFGC,FGC\n")

	ds := NewDataset(zap.NewNop())
	require.NoError(t, ds.LoadFromDir(dir))

	assert.Len(t, ds.Stops, 3)
	assert.Len(t, ds.Routes, 3)
	assert.Len(t, ds.Trips, 3)
	assert.Len(t, ds.StopTimes, 5)
	require.Len(t, ds.CalendarDates, 2)

	assert.Equal(t, "Pl. Catalunya", ds.Stops[0].Name)
	assert.InDelta(t, 41.3870, ds.Stops[0].Lat, 1e-9)
	assert.Equal(t, "WD", ds.CalendarDates[0].ServiceID)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), ds.CalendarDates[0].Date.Time)

	// Post-midnight departures stay raw.
	assert.Equal(t, "25:10:00", ds.StopTimes[4].DepartureTime)
}

func TestDatasetLoadFromDirMissing(t *testing.T) {
	ds := NewDataset(zap.NewNop())
	assert.Error(t, ds.LoadFromDir(filepath.Join(t.TempDir(), "nope")))
}

func TestDatasetLoadFromDirCorrupt(t *testing.T) {
	dir := writeTestFeed(t)
	writeFeedFile(t, dir, "calendar_dates.txt", "service_id,date\nWD,not-a-date\n")

	ds := NewDataset(zap.NewNop())
	err := ds.LoadFromDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "calendar_dates.txt")
}

func TestDatasetLoadAccess(t *testing.T) {
	dir := t.TempDir()
	writeFeedFile(t, dir, "access.csv",
		"stop_id,wheelchair_boarding,wc\n"+
			"PC,1,3\n"+
			"PR,0,\n"+
			"GR,,-1\n")

	ds := NewDataset(zap.NewNop())
	require.NoError(t, ds.LoadAccess(filepath.Join(dir, "access.csv")))
	require.Len(t, ds.Access, 3)

	assert.Equal(t, OptionalInt{Value: 1, Valid: true}, ds.Access[0].WheelchairBoarding)
	assert.Equal(t, OptionalInt{Value: 3, Valid: true}, ds.Access[0].WC)
	assert.False(t, ds.Access[1].WC.Valid)
	assert.False(t, ds.Access[2].WheelchairBoarding.Valid)
	assert.Equal(t, OptionalInt{Value: -1, Valid: true}, ds.Access[2].WC)
}

func TestDatasetLoadAccessMissingFile(t *testing.T) {
	ds := NewDataset(zap.NewNop())
	require.NoError(t, ds.LoadAccess(filepath.Join(t.TempDir(), "access.csv")))
	assert.Empty(t, ds.Access)
}
