package hos

import (
	"github.com/shopspring/decimal"

	"github.com/draymaster/services/trip-planner/internal/domain"
	"github.com/draymaster/services/trip-planner/internal/geometry"
	"github.com/draymaster/services/trip-planner/internal/platform/apperrors"
)

// fixed notes strings. External log consumers depend on these exact
// substrings ("30-minute", "10-hour", "34-hour", "1000 miles", "pickup",
// "dropoff"); Kind is always the primary classification, the notes exist
// only for that contract.
const (
	noteBreak30 = "30-minute required HOS break"
	noteRest10  = "required 10-hour rest break"
	noteReset34 = "34-hour off-duty reset to restart 70-hour cycle"
	noteFuel    = "fuel stop required every 1000 miles"
	notePickup  = "1-hour stop for pickup"
	noteDropoff = "1-hour stop for dropoff"
)

// Chunk consumes route segments and produces an ordered leg list, inserting
// HOS events at the correct mileage per the FMCSA rules in limits. It
// consults idx for start/end coordinates of each chunk and event.
func Chunk(route domain.RouteInput, idx *geometry.Index, startCycleHours decimal.Decimal, limits Limits) ([]domain.Leg, error) {
	if len(route.Segments) == 0 && len(route.Waypoints) > 0 {
		return nil, apperrors.InconsistentSegmentsError("segments empty while geometry non-empty")
	}
	for i, seg := range route.Segments {
		if seg.DistanceMiles.IsPositive() && !seg.DurationHours.IsPositive() {
			return nil, apperrors.NonPositiveDurationError(i)
		}
	}

	c := &chunkerState{
		idx:      idx,
		limits:   limits,
		state:    NewState(startCycleHours),
		progress: decimal.Zero,
	}

	for i, seg := range route.Segments {
		c.runSegment(i, seg)
		if i == 0 && !c.pickupInserted {
			c.addEventLeg(domain.LegKindPickup, limits.PickupDropoffHours, notePickup, false)
			c.pickupInserted = true
		}
	}

	c.addEventLeg(domain.LegKindDropoff, limits.PickupDropoffHours, noteDropoff, false)

	if err := c.verifyTotalDistance(route.Segments); err != nil {
		return nil, err
	}

	return c.legs, nil
}

type chunkerState struct {
	idx      *geometry.Index
	limits   Limits
	state    *State
	legs     []domain.Leg
	progress decimal.Decimal

	pickupInserted bool
}

// runSegment drives one route segment to completion, possibly emitting
// several drive legs and any interleaved HOS events.
func (c *chunkerState) runSegment(segIndex int, seg domain.Segment) {
	var speedRatio decimal.Decimal
	if seg.DistanceMiles.IsPositive() {
		speedRatio = seg.DurationHours.Div(seg.DistanceMiles)
	} else {
		speedRatio = decimal.Zero
	}

	distLeft := seg.DistanceMiles

	for distLeft.IsPositive() {
		// 1. Mandatory 30-minute break after 8 hours driving since the last break.
		if c.state.DriveHoursSinceBreak.GreaterThanOrEqual(c.limits.BreakAfterHours) {
			c.addEventLeg(domain.LegKindBreak30, c.limits.MinBreakHours, noteBreak30, true)
		}

		// 2. 34-hour cycle reset once the rolling 70-hour cycle is exhausted;
		// re-evaluate from step 1 before consuming any of this iteration's chunk.
		if c.state.CycleHours.GreaterThanOrEqual(c.limits.CycleLimitHours) {
			c.addEventLeg(domain.LegKindReset34, c.limits.CycleResetHours, noteReset34, true)
			continue
		}

		// 3. 10-hour rest once the daily drive or duty-since-rest limit is hit.
		if c.state.DriveHoursDaily.GreaterThanOrEqual(c.limits.MaxDriveHours) ||
			c.state.DutyHoursSinceRest.GreaterThanOrEqual(c.limits.MaxDutyHours) {
			c.addEventLeg(domain.LegKindRest10, c.limits.RestBreakHours, noteRest10, true)
		}

		// 4. Fuel stop once 1000 miles have accumulated since the last one.
		if c.state.MilesSinceFuel.GreaterThanOrEqual(c.limits.FuelIntervalMiles) {
			c.addEventLeg(domain.LegKindFuel, c.limits.FuelStopHours, noteFuel, false)
		}

		// 5. The next drive chunk is bounded by the tightest of four headrooms.
		var chunkMiles, chunkHours decimal.Decimal
		if speedRatio.IsZero() {
			chunkMiles = distLeft
			chunkHours = decimal.Zero
		} else {
			milesToFuel := c.limits.FuelIntervalMiles.Sub(c.state.MilesSinceFuel)
			hoursToDailyDrive := c.limits.MaxDriveHours.Sub(c.state.DriveHoursDaily)
			hoursToBreak := c.limits.BreakAfterHours.Sub(c.state.DriveHoursSinceBreak)
			milesToDailyDrive := hoursToDailyDrive.Div(speedRatio)
			milesToBreak := hoursToBreak.Div(speedRatio)
			chunkMiles = decimal.Min(distLeft, milesToFuel, milesToDailyDrive, milesToBreak)
			chunkHours = chunkMiles.Mul(speedRatio)
			// speedRatio is a rounded quotient, so when an hour headroom binds
			// take its hours exactly; miles*ratio would land a hair off the limit.
			switch {
			case chunkMiles.Equal(milesToBreak):
				chunkHours = hoursToBreak
			case chunkMiles.Equal(milesToDailyDrive):
				chunkHours = hoursToDailyDrive
			}
		}

		// 6/7. Emit the drive leg and advance.
		c.addDriveLeg(segIndex, chunkMiles, chunkHours, seg.Steps)
		distLeft = distLeft.Sub(chunkMiles)

		// 8. Tight-boundary fuel stop: the chunk above may have landed exactly
		// on the 1000-mile mark.
		if c.state.MilesSinceFuel.GreaterThanOrEqual(c.limits.FuelIntervalMiles) {
			c.addEventLeg(domain.LegKindFuel, c.limits.FuelStopHours, noteFuel, false)
		}
	}
}

// addEventLeg appends a zero-distance event leg at the current progress
// point, applying its counter effects. rest10 is suppressed if the
// immediately preceding leg is already rest10 (idempotent rest); reset34
// is never suppressed since it is a distinct kind from rest10.
func (c *chunkerState) addEventLeg(kind domain.LegKind, duration decimal.Decimal, note string, isRest bool) {
	if isRest && kind == domain.LegKindRest10 && len(c.legs) > 0 {
		last := c.legs[len(c.legs)-1]
		if last.Kind == domain.LegKindRest10 {
			return
		}
	}

	coord := c.idx.PointAt(progressFloat(c.progress))

	leg := domain.Leg{
		Order:         len(c.legs),
		Kind:          kind,
		DistanceMiles: decimal.Zero,
		DurationHours: duration,
		StartCoord:    coord,
		EndCoord:      coord,
		Notes:         note,
	}
	c.legs = append(c.legs, leg)

	switch kind {
	case domain.LegKindRest10:
		c.state.ApplyRest10(c.limits)
	case domain.LegKindReset34:
		c.state.ApplyReset34()
	case domain.LegKindBreak30:
		c.state.ApplyBreak30(c.limits)
	case domain.LegKindFuel:
		c.state.ApplyFuel(c.limits)
	case domain.LegKindPickup, domain.LegKindDropoff:
		c.state.ApplyPickupDropoff(c.limits)
	}
}

// addDriveLeg appends a drive chunk, slicing the geometry index for its
// polyline and restoring the subset of the segment's turn-by-turn steps
// that fall within its waypoint range.
func (c *chunkerState) addDriveLeg(segIndex int, chunkMiles, chunkHours decimal.Decimal, segSteps []domain.Step) {
	from := progressFloat(c.progress)
	to := progressFloat(c.progress.Add(chunkMiles))

	startCoord := c.idx.PointAt(from)
	endCoord := c.idx.PointAt(to)
	slice := c.idx.Slice(from, to)
	wpStart, wpEnd := c.idx.WaypointIndexRange(from, to)

	seg := segIndex
	leg := domain.Leg{
		Order:         len(c.legs),
		Kind:          domain.LegKindDrive,
		DistanceMiles: chunkMiles,
		DurationHours: chunkHours,
		StartCoord:    startCoord,
		EndCoord:      endCoord,
		PolylineSlice: slice,
		SegmentIndex:  &seg,
		Steps:         stepsInWaypointRange(segSteps, wpStart, wpEnd),
	}
	c.legs = append(c.legs, leg)
	c.progress = c.progress.Add(chunkMiles)
	c.state.ApplyDrive(chunkMiles, chunkHours)
}

// verifyTotalDistance checks that cumulative drive distance across all
// drive legs equals the route's total distance (the sum of segment
// distances) within 0.01 mile.
func (c *chunkerState) verifyTotalDistance(segments []domain.Segment) error {
	sum := decimal.Zero
	for _, leg := range c.legs {
		if leg.Kind == domain.LegKindDrive {
			sum = sum.Add(leg.DistanceMiles)
		}
	}

	total := decimal.Zero
	for _, seg := range segments {
		total = total.Add(seg.DistanceMiles)
	}

	tolerance := decimal.NewFromFloat(0.01)
	if sum.Sub(total).Abs().GreaterThan(tolerance) {
		return apperrors.InconsistentSegmentsError("cumulative drive distance does not match route total distance")
	}
	return nil
}

func progressFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
