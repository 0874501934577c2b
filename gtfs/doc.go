/*
Package gtfs loads and indexes the static schedule feed.

The feed is a directory of delimited text files in the GTFS convention
(stops.txt, stop_times.txt, trips.txt, calendar_dates.txt, routes.txt),
optionally accompanied by a station accessibility table (access.csv).
Column names are a hard external contract: a renamed column silently
breaks the joins downstream, so the record types here carry explicit
csv tags for every consumed column.

Load once, then build an Index:

	ds := gtfs.NewDataset(logger)
	if err := ds.LoadFromDir("data/gtfs"); err != nil {
	    logger.Fatal("loading feed", zap.Error(err))
	}
	idx := gtfs.NewIndex(logger, ds)

The Index is immutable after construction and safe to share across
concurrent readers. Nothing in this package mutates the tables after
load; queries elsewhere treat the Index as a snapshot.

Departure times are kept as raw strings. GTFS allows hour values of 24
and above for service running past midnight, and normalizing them is the
schedule package's concern, not the loader's.
*/
package gtfs
