package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LegKind tags the variant of a Leg. Every per-kind derivation (duty status,
// counter effects, display label) switches on this instead of inspecting
// Notes; Notes stays around only because external log consumers still key
// off its substrings.
type LegKind string

const (
	LegKindDrive   LegKind = "drive"
	LegKindRest10  LegKind = "rest10"
	LegKindReset34 LegKind = "reset34"
	LegKindBreak30 LegKind = "break30"
	LegKindFuel    LegKind = "fuel"
	LegKindPickup  LegKind = "pickup"
	LegKindDropoff LegKind = "dropoff"
)

// DutyStatus is one of the four rows on a driver duty log.
type DutyStatus string

const (
	DutyStatusOffDuty      DutyStatus = "off_duty"
	DutyStatusSleeperBerth DutyStatus = "sleeper_berth"
	DutyStatusDriving      DutyStatus = "driving"
	DutyStatusOnDuty       DutyStatus = "on_duty"
)

// StatusPriority orders duty statuses for grid-fill resolution: lower wins,
// i.e. a cell already holding a lower-priority-number status is never
// overwritten by a higher one.
var StatusPriority = map[DutyStatus]int{
	DutyStatusSleeperBerth: 1,
	DutyStatusOffDuty:      2,
	DutyStatusDriving:      3,
	DutyStatusOnDuty:       4,
}

// DutyStatusForKind is the fixed kind -> duty-status mapping. reset34 maps
// to off_duty: 34-hour restarts are off-duty time under the regulation,
// not sleeper berth.
func DutyStatusForKind(kind LegKind) DutyStatus {
	switch kind {
	case LegKindDrive:
		return DutyStatusDriving
	case LegKindPickup, LegKindDropoff, LegKindFuel:
		return DutyStatusOnDuty
	case LegKindBreak30:
		return DutyStatusOffDuty
	case LegKindRest10:
		return DutyStatusSleeperBerth
	case LegKindReset34:
		return DutyStatusOffDuty
	default:
		return DutyStatusOffDuty
	}
}

// IsEvent reports whether kind is a zero-distance event leg rather than a
// drive leg.
func (k LegKind) IsEvent() bool {
	return k != LegKindDrive
}

// Leg is the core output entity: a maximal continuous interval of a single
// activity in the trip plan.
type Leg struct {
	Order         int
	Kind          LegKind
	DistanceMiles decimal.Decimal
	DurationHours decimal.Decimal
	StartCoord    Coordinate
	EndCoord      Coordinate
	// PolylineSlice is populated for drive legs only.
	PolylineSlice []Coordinate
	DepartureTime time.Time
	ArrivalTime   time.Time
	// Notes carries the fixed substrings ("30-minute", "10-hour", "34-hour",
	// "1000 miles", "pickup", "dropoff") external log consumers key off;
	// classification itself always switches on Kind.
	Notes string
	// SegmentIndex is set for drive legs only: which original route segment
	// this chunk was sliced from.
	SegmentIndex *int
	// Steps holds the subset of the originating segment's turn-by-turn
	// steps whose waypoint range falls within this leg's mileage range.
	// Populated for drive legs only.
	Steps []Step

	StartLabel string
	EndLabel   string
}

// DutyStatus derives this leg's duty-status row from its Kind.
func (l *Leg) DutyStatus() DutyStatus {
	return DutyStatusForKind(l.Kind)
}
