/*
Package realtime tracks the live position of trains from the operator's
GTFS-Realtime feeds. Trip updates contribute delays and remaining stops,
vehicle positions contribute the current stop, the unit identifier and
per-carriage occupancy.

A Feed keeps the latest parsed snapshot behind a lock and refreshes it
on an interval. A refresh that fails leaves the previous snapshot in
place; stale data beats no data for a display that refreshes every few
seconds.
*/
package realtime
