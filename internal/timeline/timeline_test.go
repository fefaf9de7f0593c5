package timeline

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/draymaster/services/trip-planner/internal/domain"
)

func TestAssign(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, loc)

	legs := []domain.Leg{
		{Order: 0, Kind: domain.LegKindDrive, DurationHours: decimal.RequireFromString("2")},
		{Order: 1, Kind: domain.LegKindPickup, DurationHours: decimal.RequireFromString("1")},
		{Order: 2, Kind: domain.LegKindBreak30, DurationHours: decimal.RequireFromString("0.5")},
		{Order: 3, Kind: domain.LegKindDrive, DurationHours: decimal.RequireFromString("2.25")},
	}

	out := Assign(legs, start)

	if !out[0].DepartureTime.Equal(start) {
		t.Errorf("first departure = %v, want %v", out[0].DepartureTime, start)
	}

	current := start
	for i, leg := range out {
		if !leg.DepartureTime.Equal(current) {
			t.Errorf("leg %d departure = %v, want %v", i, leg.DepartureTime, current)
		}
		seconds, _ := leg.DurationHours.Mul(decimal.NewFromInt(3600)).Round(0).Float64()
		current = current.Add(time.Duration(seconds) * time.Second)
		if !leg.ArrivalTime.Equal(current) {
			t.Errorf("leg %d arrival = %v, want %v", i, leg.ArrivalTime, current)
		}
	}

	want := time.Date(2025, 3, 10, 13, 45, 0, 0, loc)
	if !out[3].ArrivalTime.Equal(want) {
		t.Errorf("final arrival = %v, want %v", out[3].ArrivalTime, want)
	}

	// Timestamps stay in the trip's zone for downstream local-day math.
	if out[3].ArrivalTime.Location() != loc {
		t.Errorf("arrival location = %v, want %v", out[3].ArrivalTime.Location(), loc)
	}
}

func TestAssignMonotone(t *testing.T) {
	start := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC)
	legs := []domain.Leg{
		{DurationHours: decimal.RequireFromString("8")},
		{DurationHours: decimal.RequireFromString("0.5")},
		{DurationHours: decimal.RequireFromString("10")},
		{DurationHours: decimal.RequireFromString("3")},
	}

	out := Assign(legs, start)
	for i := 1; i < len(out); i++ {
		if !out[i].DepartureTime.Equal(out[i-1].ArrivalTime) {
			t.Errorf("leg %d departure != leg %d arrival", i, i-1)
		}
		if !out[i].ArrivalTime.After(out[i].DepartureTime) {
			t.Errorf("leg %d arrival not after departure", i)
		}
	}
}
