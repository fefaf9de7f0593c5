// Package hos tracks Hours-of-Service counters and chunks a route's
// segments into HOS-compliant legs. All regulatory comparisons use
// decimal.Decimal, never float64: drift in a comparison like
// drive_hours_since_break >= 8 is not acceptable.
package hos

import "github.com/shopspring/decimal"

// Limits holds the FMCSA 395 constants the chunker and state transitions
// enforce. Carried as a value rather than package-level constants so a
// caller can externalize them (internal/platform/config.PlannerConfig)
// without touching this package.
type Limits struct {
	MaxDriveHours      decimal.Decimal
	MaxDutyHours       decimal.Decimal
	BreakAfterHours    decimal.Decimal
	CycleLimitHours    decimal.Decimal
	RestBreakHours     decimal.Decimal
	CycleResetHours    decimal.Decimal
	MinBreakHours      decimal.Decimal
	FuelIntervalMiles  decimal.Decimal
	FuelStopHours      decimal.Decimal
	PickupDropoffHours decimal.Decimal
}

// DefaultLimits returns the hard FMCSA 395 limits:
// 11h drive, 14h duty, 8h break trigger, 70h cycle, 10h rest, 34h reset,
// 0.5h minimum break, 1000mi fuel interval, 0.25h fuel stop, 1h pickup/dropoff.
func DefaultLimits() Limits {
	return Limits{
		MaxDriveHours:      decimal.NewFromInt(11),
		MaxDutyHours:       decimal.NewFromInt(14),
		BreakAfterHours:    decimal.NewFromInt(8),
		CycleLimitHours:    decimal.NewFromInt(70),
		RestBreakHours:     decimal.NewFromInt(10),
		CycleResetHours:    decimal.NewFromInt(34),
		MinBreakHours:      decimal.NewFromFloat(0.5),
		FuelIntervalMiles:  decimal.NewFromInt(1000),
		FuelStopHours:      decimal.NewFromFloat(0.25),
		PickupDropoffHours: decimal.NewFromInt(1),
	}
}
