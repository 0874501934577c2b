package gtfs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func buildTestIndex(t *testing.T) *Index {
	t.Helper()
	ds := NewDataset(zap.NewNop())
	require.NoError(t, ds.LoadFromDir(writeTestFeed(t)))
	ds.Access = []*StopAccess{
		{StopID: "PC", WheelchairBoarding: OptionalInt{Value: 1, Valid: true}},
	}
	return NewIndex(zap.NewNop(), ds)
}

func TestIndexLookups(t *testing.T) {
	idx := buildTestIndex(t)

	require.NotNil(t, idx.StopByID("PC"))
	assert.Equal(t, "Pl. Catalunya", idx.StopByID("PC").Name)
	assert.Nil(t, idx.StopByID("XX"))

	require.NotNil(t, idx.StopByName("Provença"))
	assert.Equal(t, "PR", idx.StopByName("Provença").ID)

	require.NotNil(t, idx.RouteByID("S1"))
	assert.Equal(t, "Barcelona - Terrassa", idx.RouteByID("S1").LongName)
	assert.Nil(t, idx.RouteByID("S9"))

	require.NotNil(t, idx.TripByID("T1"))
	assert.Equal(t, "Terrassa", idx.TripByID("T1").Headsign)

	require.NotNil(t, idx.AccessFor("PC"))
	assert.Nil(t, idx.AccessFor("PR"))
}

func TestIndexStopsSortedByName(t *testing.T) {
	idx := buildTestIndex(t)

	stops := idx.Stops()
	require.Len(t, stops, 3)
	assert.Equal(t, "Gràcia", stops[0].Name)
	assert.Equal(t, "Pl. Catalunya", stops[1].Name)
	assert.Equal(t, "Provença", stops[2].Name)
}

func TestIndexStopTimesAt(t *testing.T) {
	idx := buildTestIndex(t)

	sts := idx.StopTimesAt("PC")
	require.Len(t, sts, 2)
	assert.Equal(t, "T1", sts[0].TripID)
	assert.Equal(t, "T2", sts[1].TripID)

	assert.Empty(t, idx.StopTimesAt("XX"))
}

func TestIndexStopsAfter(t *testing.T) {
	idx := buildTestIndex(t)

	assert.Equal(t, []string{"PR", "GR"}, idx.StopsAfter("T1", "PC"))
	assert.Empty(t, idx.StopsAfter("T1", "GR"))
	assert.Nil(t, idx.StopsAfter("T1", "XX"))
	assert.Nil(t, idx.StopsAfter("T9", "PC"))
}

func TestIndexNearestStop(t *testing.T) {
	idx := buildTestIndex(t)

	stop, dist := idx.NearestStop(41.3940, 2.1620)
	require.NotNil(t, stop)
	assert.Equal(t, "PR", stop.ID)
	assert.Less(t, dist, 0.1)

	empty := NewIndex(zap.NewNop(), &Dataset{})
	stop, _ = empty.NearestStop(41.0, 2.0)
	assert.Nil(t, stop)
}

func TestHaversineKM(t *testing.T) {
	// Pl. Catalunya to Sabadell is roughly 20 km.
	d := HaversineKM(41.3870, 2.1701, 41.5463, 2.1086)
	assert.InDelta(t, 18.5, d, 1.0)

	assert.Zero(t, HaversineKM(41.0, 2.0, 41.0, 2.0))
}
