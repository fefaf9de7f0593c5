package hos

import "github.com/shopspring/decimal"

// State is the five running HOS counters, passed explicitly to the
// transition methods below so the chunker stays a plain loop over an
// explicit object instead of a nest of captured variables.
type State struct {
	CycleHours           decimal.Decimal
	DriveHoursDaily      decimal.Decimal
	DutyHoursSinceRest   decimal.Decimal
	DriveHoursSinceBreak decimal.Decimal
	MilesSinceFuel       decimal.Decimal
}

// NewState seeds a State with the trip's starting cycle hours; every other
// counter begins at zero.
func NewState(startCycleHours decimal.Decimal) *State {
	return &State{
		CycleHours: startCycleHours,
	}
}

// ApplyDrive advances the state after a drive chunk of deltaMiles over
// deltaHours.
func (s *State) ApplyDrive(deltaMiles, deltaHours decimal.Decimal) {
	s.CycleHours = s.CycleHours.Add(deltaHours)
	s.DriveHoursDaily = s.DriveHoursDaily.Add(deltaHours)
	s.DutyHoursSinceRest = s.DutyHoursSinceRest.Add(deltaHours)
	s.DriveHoursSinceBreak = s.DriveHoursSinceBreak.Add(deltaHours)
	s.MilesSinceFuel = s.MilesSinceFuel.Add(deltaMiles)
}

// ApplyRest10 applies a 10-hour rest break: cycle hours accrue the rest
// duration, and the daily/break counters all reset.
func (s *State) ApplyRest10(limits Limits) {
	s.CycleHours = s.CycleHours.Add(limits.RestBreakHours)
	s.DriveHoursDaily = decimal.Zero
	s.DutyHoursSinceRest = decimal.Zero
	s.DriveHoursSinceBreak = decimal.Zero
}

// ApplyReset34 applies a 34-hour cycle reset: every counter zeroes.
func (s *State) ApplyReset34() {
	s.CycleHours = decimal.Zero
	s.DriveHoursDaily = decimal.Zero
	s.DutyHoursSinceRest = decimal.Zero
	s.DriveHoursSinceBreak = decimal.Zero
	s.MilesSinceFuel = decimal.Zero
}

// ApplyBreak30 applies the 30-minute mandatory break.
func (s *State) ApplyBreak30(limits Limits) {
	s.CycleHours = s.CycleHours.Add(limits.MinBreakHours)
	s.DutyHoursSinceRest = s.DutyHoursSinceRest.Add(limits.MinBreakHours)
	s.DriveHoursSinceBreak = decimal.Zero
}

// ApplyFuel applies a fuel stop.
func (s *State) ApplyFuel(limits Limits) {
	s.CycleHours = s.CycleHours.Add(limits.FuelStopHours)
	s.DutyHoursSinceRest = s.DutyHoursSinceRest.Add(limits.FuelStopHours)
	s.MilesSinceFuel = decimal.Zero
}

// ApplyPickupDropoff applies a 1-hour pickup or dropoff stop.
func (s *State) ApplyPickupDropoff(limits Limits) {
	s.CycleHours = s.CycleHours.Add(limits.PickupDropoffHours)
	s.DutyHoursSinceRest = s.DutyHoursSinceRest.Add(limits.PickupDropoffHours)
}
