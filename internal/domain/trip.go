package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trip is the persistence-facing record of a planned trip, keyed the way
// dispatch-service keys every entity: a uuid.UUID primary key plus plain
// columns, loaded/saved by internal/repository.
type Trip struct {
	ID                uuid.UUID       `db:"id"`
	CurrentLabel      string          `db:"current_label"`
	CurrentLatitude   float64         `db:"current_latitude"`
	CurrentLongitude  float64         `db:"current_longitude"`
	PickupLabel       string          `db:"pickup_label"`
	PickupLatitude    float64         `db:"pickup_latitude"`
	PickupLongitude   float64         `db:"pickup_longitude"`
	DropoffLabel      string          `db:"dropoff_label"`
	DropoffLatitude   float64         `db:"dropoff_latitude"`
	DropoffLongitude  float64         `db:"dropoff_longitude"`
	CurrentCycleHours decimal.Decimal `db:"current_cycle_hours"`
	DepartureTime     time.Time       `db:"departure_time"`
	PlannedDistanceMi decimal.Decimal `db:"planned_distance_miles"`
	PlannedDurationH  decimal.Decimal `db:"planned_duration_hours"`
	PlannedAt         time.Time       `db:"planned_at"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// LegRecord is the persisted projection of a planner Leg: the same fields,
// keyed to a Trip and given a stable identity and ordering column.
type LegRecord struct {
	ID             uuid.UUID       `db:"id"`
	TripID         uuid.UUID       `db:"trip_id"`
	LegOrder       int             `db:"leg_order"`
	Kind           LegKind         `db:"kind"`
	DistanceMiles  decimal.Decimal `db:"distance_miles"`
	DurationHours  decimal.Decimal `db:"duration_hours"`
	StartLabel     string          `db:"start_label"`
	StartLatitude  float64         `db:"start_latitude"`
	StartLongitude float64         `db:"start_longitude"`
	EndLabel       string          `db:"end_label"`
	EndLatitude    float64         `db:"end_latitude"`
	EndLongitude   float64         `db:"end_longitude"`
	DepartureTime  time.Time       `db:"departure_time"`
	ArrivalTime    time.Time       `db:"arrival_time"`
	Notes          string          `db:"notes"`
	SegmentIndex   *int            `db:"segment_index"`
	CreatedAt      time.Time       `db:"created_at"`
}

// ToLeg reconstructs the planner-facing Leg from its persisted form. The
// polyline slice and turn-by-turn steps are not stored per leg, so the
// reconstruction carries everything the daily-log rebuild needs but not the
// drive geometry.
func (r *LegRecord) ToLeg() Leg {
	return Leg{
		Order:         r.LegOrder,
		Kind:          r.Kind,
		DistanceMiles: r.DistanceMiles,
		DurationHours: r.DurationHours,
		StartCoord:    Coordinate{Lat: r.StartLatitude, Lon: r.StartLongitude},
		EndCoord:      Coordinate{Lat: r.EndLatitude, Lon: r.EndLongitude},
		DepartureTime: r.DepartureTime,
		ArrivalTime:   r.ArrivalTime,
		Notes:         r.Notes,
		SegmentIndex:  r.SegmentIndex,
		StartLabel:    r.StartLabel,
		EndLabel:      r.EndLabel,
	}
}

// ToRecord projects a computed Leg into its persisted form.
func (l *Leg) ToRecord(id, tripID uuid.UUID) LegRecord {
	return LegRecord{
		ID:             id,
		TripID:         tripID,
		LegOrder:       l.Order,
		Kind:           l.Kind,
		DistanceMiles:  l.DistanceMiles,
		DurationHours:  l.DurationHours,
		StartLabel:     l.StartLabel,
		StartLatitude:  l.StartCoord.Lat,
		StartLongitude: l.StartCoord.Lon,
		EndLabel:       l.EndLabel,
		EndLatitude:    l.EndCoord.Lat,
		EndLongitude:   l.EndCoord.Lon,
		DepartureTime:  l.DepartureTime,
		ArrivalTime:    l.ArrivalTime,
		Notes:          l.Notes,
		SegmentIndex:   l.SegmentIndex,
	}
}
