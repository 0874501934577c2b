/*
Package schedule answers the question "which trains leave this station in
the next N minutes". It owns the timetable semantics layered on top of
the raw feed tables: departure time normalization, per-date service
resolution, the departure window filter, and the platform (via)
classification derived from route names and headsigns.

All operations here are pure functions over an immutable gtfs.Index plus
query parameters, so they are trivially safe for concurrent use.
*/
package schedule
