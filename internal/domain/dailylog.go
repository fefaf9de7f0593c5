package domain

import "github.com/shopspring/decimal"

// Period is a contiguous run of a single duty status within a day, with
// HH:MM boundaries already quantized to the 15-minute grid.
type Period struct {
	Status DutyStatus
	Start  string // "HH:MM"
	End    string // "HH:MM"
}

// DailyLog is one calendar day's duty-status record, derived from the legs
// that overlap that day. from_location/to_location are deliberately the
// trip-wide endpoints, not this day's own first/last leg endpoints,
// matching driver-log-sheet convention.
type DailyLog struct {
	Date         string // "YYYY-MM-DD", local to the trip's departure timezone
	MonthName    string
	Day          int
	Year         int
	FromLocation string
	ToLocation   string
	Periods      []Period

	TotalMiles decimal.Decimal
	TotalHours decimal.Decimal

	OffDutyTotal      decimal.Decimal
	SleeperBerthTotal decimal.Decimal
	DrivingTotal      decimal.Decimal
	OnDutyTotal       decimal.Decimal
}
