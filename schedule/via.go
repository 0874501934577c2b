package schedule

import (
	"fmt"
	"strings"
)

// viaSeparator splits a route long name into origin and destination.
// Only the first occurrence counts; destinations may themselves contain
// the separator text.
const viaSeparator = " - "

// Via identifies the platform a departure is expected to leave from.
// On this network trains heading toward the route's nominal destination
// use platform 1 and trains heading back use platform 2.
type Via int

const (
	// ViaUnknown marks departures whose platform cannot be derived,
	// either because the route name carries no direction or because the
	// trip's route is missing from the feed.
	ViaUnknown Via = iota
	// Via1 marks departures toward the route's nominal destination.
	Via1
	// Via2 marks departures away from the route's nominal destination.
	Via2
)

// String returns the display label for the platform.
func (v Via) String() string {
	switch v {
	case Via1:
		return "1"
	case Via2:
		return "2"
	default:
		return "Desconegut"
	}
}

// ClassifyVia derives the platform from a route long name and a trip
// headsign. The long name conventionally reads "<origin> - <destination>";
// a headsign matching the destination exactly is platform 1, anything
// else is platform 2. A name without the separator yields ViaUnknown.
func ClassifyVia(routeLongName, headsign string) Via {
	_, destination, found := strings.Cut(routeLongName, viaSeparator)
	if !found {
		return ViaUnknown
	}
	if headsign == destination {
		return Via1
	}
	return Via2
}

// ViaFilter narrows a departure listing to a single platform.
type ViaFilter int

const (
	// ViaAll keeps every departure, unknown platforms included.
	ViaAll ViaFilter = iota
	// Via1Only keeps platform 1 departures.
	Via1Only
	// Via2Only keeps platform 2 departures.
	Via2Only
)

// ParseViaFilter maps the user-facing filter values onto a ViaFilter.
func ParseViaFilter(s string) (ViaFilter, error) {
	switch s {
	case "", "all":
		return ViaAll, nil
	case "1":
		return Via1Only, nil
	case "2":
		return Via2Only, nil
	}
	return ViaAll, fmt.Errorf("invalid via filter %q", s)
}

// Matches reports whether a departure on the given platform passes the
// filter. Unknown platforms only survive the unfiltered listing.
func (f ViaFilter) Matches(v Via) bool {
	switch f {
	case Via1Only:
		return v == Via1
	case Via2Only:
		return v == Via2
	}
	return true
}
