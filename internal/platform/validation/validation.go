package validation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/draymaster/services/trip-planner/internal/platform/apperrors"
)

// CoordinateValidator validates latitude and longitude pairs.
type CoordinateValidator struct{}

func NewCoordinateValidator() *CoordinateValidator {
	return &CoordinateValidator{}
}

func (v *CoordinateValidator) ValidateLatitude(lat float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("latitude must be between -90 and 90, got %f", lat)
	}
	return nil
}

func (v *CoordinateValidator) ValidateLongitude(lon float64) error {
	if lon < -180 || lon > 180 {
		return fmt.Errorf("longitude must be between -180 and 180, got %f", lon)
	}
	return nil
}

func (v *CoordinateValidator) ValidateCoordinates(lat, lon float64) error {
	if err := v.ValidateLatitude(lat); err != nil {
		return err
	}
	if err := v.ValidateLongitude(lon); err != nil {
		return err
	}
	return nil
}

// Waypoint is the minimal shape the validator needs from a route waypoint;
// internal/domain.Coordinate satisfies it.
type Waypoint struct {
	Lat float64
	Lon float64
}

// Segment is the minimal shape the validator needs from a route segment.
type Segment struct {
	DistanceMiles float64
	DurationHours float64
	StartWaypoint int
	EndWaypoint   int
}

// TripInputValidator validates a trip-planning request before it reaches
// the core (internal/geometry, internal/hos): coordinate ranges, cycle-hour
// bounds, and segment/geometry consistency. It never mutates its input —
// a failing check returns the matching apperrors.AppError so the caller can
// branch on .Code the same way a repository caller branches on NOT_FOUND.
type TripInputValidator struct {
	coords     *CoordinateValidator
	cycleLimit decimal.Decimal
}

func NewTripInputValidator(cycleLimitHours decimal.Decimal) *TripInputValidator {
	return &TripInputValidator{
		coords:     NewCoordinateValidator(),
		cycleLimit: cycleLimitHours,
	}
}

// ValidateWaypoints checks that every waypoint is a well-formed coordinate.
// An empty list passes here; internal/geometry rejects it with
// apperrors.EmptyGeometryError.
func (v *TripInputValidator) ValidateWaypoints(waypoints []Waypoint) error {
	for i, wp := range waypoints {
		if err := v.coords.ValidateCoordinates(wp.Lat, wp.Lon); err != nil {
			return apperrors.ValidationError(err.Error(), fmt.Sprintf("waypoints[%d]", i), wp)
		}
	}
	return nil
}

// ValidateCycleHours enforces 0 <= current_cycle_hours <= cycleLimit.
func (v *TripInputValidator) ValidateCycleHours(currentCycleHours decimal.Decimal) error {
	if currentCycleHours.IsNegative() {
		return apperrors.ValidationError(
			"current_cycle_hours cannot be negative",
			"current_cycle_hours", currentCycleHours.String(),
		)
	}
	if currentCycleHours.GreaterThan(v.cycleLimit) {
		return apperrors.CycleExceededError(currentCycleHours.String())
	}
	return nil
}

// ValidateSegments checks each segment has a well-formed waypoint range and
// that any segment with positive distance also has positive duration —
// a segment with zero or negative duration but nonzero distance leaves its
// driving speed undefined and must be rejected before the chunker runs.
func (v *TripInputValidator) ValidateSegments(segments []Segment, waypointCount int) error {
	for i, seg := range segments {
		if seg.StartWaypoint < 0 || seg.EndWaypoint >= waypointCount || seg.StartWaypoint > seg.EndWaypoint {
			return apperrors.InconsistentSegmentsError(
				fmt.Sprintf("segment %d references waypoints [%d,%d] outside range [0,%d)", i, seg.StartWaypoint, seg.EndWaypoint, waypointCount),
			)
		}
		if seg.DistanceMiles > 0 && seg.DurationHours <= 0 {
			return apperrors.NonPositiveDurationError(i)
		}
	}
	return nil
}
