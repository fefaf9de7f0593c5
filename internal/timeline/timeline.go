// Package timeline attaches wall-clock departure/arrival timestamps to an
// ordered leg list, starting from the trip's departure time.
package timeline

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/draymaster/services/trip-planner/internal/domain"
)

var secondsPerHour = decimal.NewFromInt(3600)

// Assign walks legs in order, setting DepartureTime/ArrivalTime on each.
// departure_0 = start; arrival_i = departure_i + duration_i;
// departure_{i+1} = arrival_i. Duration hours convert to a time.Duration via
// whole seconds (duration_hours * 3600), so arrival_i = departure_i +
// duration_i holds exactly in seconds, without floating drift.
func Assign(legs []domain.Leg, start time.Time) []domain.Leg {
	current := start
	out := make([]domain.Leg, len(legs))
	for i, leg := range legs {
		leg.DepartureTime = current
		seconds, _ := leg.DurationHours.Mul(secondsPerHour).Round(0).Float64()
		current = current.Add(time.Duration(seconds) * time.Second)
		leg.ArrivalTime = current
		out[i] = leg
	}
	return out
}
