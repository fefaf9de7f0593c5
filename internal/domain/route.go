package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coordinate is a geographic point. Routing-boundary payloads carry
// (lon, lat) order per the provider convention; everything past
// internal/geometry is normalized to this (lat, lon)-accessed struct and
// display-tier consumers never need to know the wire order.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Step is a provider turn-by-turn instruction, scoped to a waypoint range
// of the decoded polyline.
type Step struct {
	WaypointStartIndex int
	WaypointEndIndex   int
	Instruction        string
	DistanceMeters     float64
	DurationSeconds    float64
}

// Segment is a contiguous routing-provider partition of the route between
// two anchor points (current->pickup, pickup->dropoff).
type Segment struct {
	DistanceMiles decimal.Decimal
	DurationHours decimal.Decimal
	Steps         []Step
}

// RouteInput is the routing collaborator's output, already decoded into the
// shapes internal/geometry and internal/hos operate on.
type RouteInput struct {
	Segments []Segment
	// Waypoints is the full decoded polyline in (lat, lon) order.
	Waypoints []Coordinate
	// AnchorCoordinates is [current, pickup, dropoff] in (lat, lon) order.
	AnchorCoordinates [3]Coordinate
}

// TripInput is the caller-supplied trip request. DepartureTime carries the
// trip's local zone in its *time.Location; every HH:MM string and day key
// downstream is derived by converting to that zone at the grid step, never
// at input or output.
type TripInput struct {
	DepartureTime     time.Time
	CurrentCycleHours decimal.Decimal
	CurrentLabel      string
	PickupLabel       string
	DropoffLabel      string
}
