/*
Package server exposes the departure board over HTTP.

Endpoints under /api serve JSON: station listings, nearest-station
lookup, accessibility details, upcoming departures, live train state and
station comments. Prometheus metrics are scraped from /metrics. Query
parameter validation failures come back as 400s with a plain error
message; unexpected failures as 500s.
*/
package server
