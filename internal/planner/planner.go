// Package planner wires the planning pipeline into a single Plan call:
// geometry index -> HOS chunker -> timeline assigner -> label resolver ->
// daily log builder. It is pure computation over typed inputs; routing
// happens before it is invoked and persistence happens after.
package planner

import (
	"github.com/shopspring/decimal"

	"github.com/draymaster/services/trip-planner/internal/dailylog"
	"github.com/draymaster/services/trip-planner/internal/domain"
	"github.com/draymaster/services/trip-planner/internal/geometry"
	"github.com/draymaster/services/trip-planner/internal/hos"
	"github.com/draymaster/services/trip-planner/internal/labels"
	"github.com/draymaster/services/trip-planner/internal/platform/apperrors"
	"github.com/draymaster/services/trip-planner/internal/timeline"
)

// Result is the full output of planning one trip.
type Result struct {
	Legs      []domain.Leg
	DailyLogs []domain.DailyLog

	TotalDistanceMiles decimal.Decimal
	TotalDurationHours decimal.Decimal

	FromLocation string
	ToLocation   string
}

// Plan computes the HOS-compliant leg sequence and daily duty logs for one
// trip. It holds no state across calls; concurrent calls for independent
// trips need no synchronization.
func Plan(route domain.RouteInput, trip domain.TripInput, limits hos.Limits) (*Result, error) {
	if trip.CurrentCycleHours.GreaterThan(limits.CycleLimitHours) {
		return nil, apperrors.CycleExceededError(trip.CurrentCycleHours.String())
	}

	idx, err := geometry.Build(route.Waypoints)
	if err != nil {
		return nil, err
	}

	legs, err := hos.Chunk(route, idx, trip.CurrentCycleHours, limits)
	if err != nil {
		return nil, err
	}

	legs = timeline.Assign(legs, trip.DepartureTime)
	legs = labels.Resolve(legs, trip.CurrentLabel, trip.DropoffLabel)

	from, to := labels.TripFromTo(legs)
	logs := dailylog.Build(legs, from, to)

	totalMiles := decimal.Zero
	totalHours := decimal.Zero
	for _, leg := range legs {
		totalMiles = totalMiles.Add(leg.DistanceMiles)
		totalHours = totalHours.Add(leg.DurationHours)
	}

	return &Result{
		Legs:               legs,
		DailyLogs:          logs,
		TotalDistanceMiles: totalMiles,
		TotalDurationHours: totalHours,
		FromLocation:       from,
		ToLocation:         to,
	}, nil
}

// RebuildDailyLogs recomputes the daily logs from an already-planned leg
// sequence. Daily logs are derived values; rebuilding is idempotent.
func RebuildDailyLogs(legs []domain.Leg) []domain.DailyLog {
	from, to := labels.TripFromTo(legs)
	return dailylog.Build(legs, from, to)
}
