package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event type headers carried alongside the topic.
const (
	EventTypeTripPlanRequested = "trip.plan_requested"
	EventTypeTripPlanned       = "trip.planned"
	EventTypeTripPlanFailed    = "trip.plan_failed"
)

// TripPlannedPayload is the data body of a trip.planned event.
type TripPlannedPayload struct {
	TripID             string    `json:"trip_id"`
	LegCount           int       `json:"leg_count"`
	DayCount           int       `json:"day_count"`
	TotalDistanceMiles string    `json:"total_distance_miles"`
	TotalDurationHours string    `json:"total_duration_hours"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
}

// TripPlanFailedPayload is the data body of a trip.plan_failed event.
type TripPlanFailedPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RouteStepPayload is one provider turn-by-turn item on the wire.
type RouteStepPayload struct {
	DistanceMeters  float64 `json:"distance"`
	DurationSeconds float64 `json:"duration"`
	WayPoints       [2]int  `json:"way_points"`
	Instruction     string  `json:"instruction"`
}

// RouteSegmentPayload is one provider route partition on the wire:
// distance in miles, duration in seconds.
type RouteSegmentPayload struct {
	DistanceMiles   decimal.Decimal    `json:"distance"`
	DurationSeconds decimal.Decimal    `json:"duration"`
	Steps           []RouteStepPayload `json:"steps"`
}

// RoutePayload is the routing collaborator's response on the wire. Geometry
// is the decoded polyline in provider (lon, lat) order; encoded_polyline may
// be carried instead.
type RoutePayload struct {
	DistanceMiles   decimal.Decimal       `json:"distance_miles"`
	DurationHours   decimal.Decimal       `json:"duration_hours"`
	Segments        []RouteSegmentPayload `json:"segments"`
	Geometry        [][2]float64          `json:"geometry"`
	EncodedPolyline string                `json:"encoded_polyline,omitempty"`
}

// TripPlanRequestedPayload is the data body of a trip.plan_requested event:
// everything the planner needs for one trip, route already fetched by the
// requesting side.
type TripPlanRequestedPayload struct {
	CurrentLabel     string  `json:"current_label"`
	CurrentLatitude  float64 `json:"current_latitude"`
	CurrentLongitude float64 `json:"current_longitude"`
	PickupLabel      string  `json:"pickup_label"`
	PickupLatitude   float64 `json:"pickup_latitude"`
	PickupLongitude  float64 `json:"pickup_longitude"`
	DropoffLabel     string  `json:"dropoff_label"`
	DropoffLatitude  float64 `json:"dropoff_latitude"`
	DropoffLongitude float64 `json:"dropoff_longitude"`

	DepartureTime     time.Time       `json:"departure_time"`
	CurrentCycleHours decimal.Decimal `json:"current_cycle_hours"`

	Route RoutePayload `json:"route"`
}
