package hos

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/draymaster/services/trip-planner/internal/domain"
	"github.com/draymaster/services/trip-planner/internal/geometry"
	"github.com/draymaster/services/trip-planner/internal/platform/apperrors"
)

// testIndex builds a straight-line geometry index long enough to cover
// totalMiles, one waypoint per degree of latitude.
func testIndex(t *testing.T, totalMiles float64) *geometry.Index {
	t.Helper()
	n := int(totalMiles/69) + 2
	wps := make([]domain.Coordinate, n)
	for i := range wps {
		wps[i] = domain.Coordinate{Lat: float64(i), Lon: 0}
	}
	idx, err := geometry.Build(wps)
	if err != nil {
		t.Fatalf("failed to build geometry index: %v", err)
	}
	return idx
}

func seg(miles, hours string) domain.Segment {
	return domain.Segment{
		DistanceMiles: dec(miles),
		DurationHours: dec(hours),
	}
}

func route(segments ...domain.Segment) domain.RouteInput {
	total := 0.0
	for _, s := range segments {
		f, _ := s.DistanceMiles.Float64()
		total += f
	}
	n := int(total/69) + 2
	wps := make([]domain.Coordinate, n)
	for i := range wps {
		wps[i] = domain.Coordinate{Lat: float64(i), Lon: 0}
	}
	return domain.RouteInput{Segments: segments, Waypoints: wps}
}

func chunk(t *testing.T, segments []domain.Segment, startCycle string) []domain.Leg {
	t.Helper()
	r := domain.RouteInput{Segments: segments}
	total := 0.0
	for _, s := range segments {
		f, _ := s.DistanceMiles.Float64()
		total += f
	}
	idx := testIndex(t, total)
	legs, err := Chunk(r, idx, dec(startCycle), DefaultLimits())
	if err != nil {
		t.Fatalf("Chunk failed: %v", err)
	}
	return legs
}

func kinds(legs []domain.Leg) []domain.LegKind {
	out := make([]domain.LegKind, len(legs))
	for i, leg := range legs {
		out[i] = leg.Kind
	}
	return out
}

func assertKinds(t *testing.T, legs []domain.Leg, want []domain.LegKind) {
	t.Helper()
	got := kinds(legs)
	if len(got) != len(want) {
		t.Fatalf("leg kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("leg kinds = %v, want %v", got, want)
		}
	}
}

func TestShortTripNoEvents(t *testing.T) {
	legs := chunk(t, []domain.Segment{seg("100", "2")}, "0")

	assertKinds(t, legs, []domain.LegKind{
		domain.LegKindDrive, domain.LegKindPickup, domain.LegKindDropoff,
	})

	drive := legs[0]
	if !drive.DistanceMiles.Equal(dec("100")) || !drive.DurationHours.Equal(dec("2")) {
		t.Errorf("drive leg = %s mi / %s h, want 100 / 2", drive.DistanceMiles, drive.DurationHours)
	}
	for _, leg := range legs[1:] {
		if !leg.DistanceMiles.IsZero() {
			t.Errorf("%s leg has nonzero distance %s", leg.Kind, leg.DistanceMiles)
		}
		if !leg.DurationHours.Equal(dec("1")) {
			t.Errorf("%s leg duration = %s, want 1", leg.Kind, leg.DurationHours)
		}
	}
}

func TestBreakAtEightHours(t *testing.T) {
	legs := chunk(t, []domain.Segment{seg("400", "8"), seg("100", "2")}, "0")

	assertKinds(t, legs, []domain.LegKind{
		domain.LegKindDrive,   // 400 mi / 8 h, hits the break trigger exactly
		domain.LegKindPickup,  // first segment done
		domain.LegKindBreak30, // required before any further driving
		domain.LegKindDrive,   // 100 mi / 2 h
		domain.LegKindDropoff,
	})

	if !legs[0].DistanceMiles.Equal(dec("400")) {
		t.Errorf("first drive = %s mi, want 400", legs[0].DistanceMiles)
	}
	if !legs[3].DistanceMiles.Equal(dec("100")) {
		t.Errorf("second drive = %s mi, want 100", legs[3].DistanceMiles)
	}
}

func TestRestAtDailyDriveLimit(t *testing.T) {
	legs := chunk(t, []domain.Segment{seg("550", "11"), seg("50", "1")}, "0")

	assertKinds(t, legs, []domain.LegKind{
		domain.LegKindDrive,   // 400 mi / 8 h to the break horizon
		domain.LegKindBreak30, //
		domain.LegKindDrive,   // 150 mi / 3 h to the 11-hour drive limit
		domain.LegKindPickup,  //
		domain.LegKindRest10,  // daily drive exhausted
		domain.LegKindDrive,   // 50 mi / 1 h
		domain.LegKindDropoff,
	})

	if !legs[0].DistanceMiles.Equal(dec("400")) {
		t.Errorf("first drive = %s mi, want 400", legs[0].DistanceMiles)
	}
	if !legs[2].DistanceMiles.Equal(dec("150")) {
		t.Errorf("second drive = %s mi, want 150", legs[2].DistanceMiles)
	}
	if !legs[5].DistanceMiles.Equal(dec("50")) {
		t.Errorf("final drive = %s mi, want 50", legs[5].DistanceMiles)
	}
}

func TestFuelAtThousandMiles(t *testing.T) {
	legs := chunk(t, []domain.Segment{seg("1200", "20")}, "0")

	var fuelIdx []int
	for i, leg := range legs {
		if leg.Kind == domain.LegKindFuel {
			fuelIdx = append(fuelIdx, i)
		}
	}
	if len(fuelIdx) != 1 {
		t.Fatalf("expected exactly 1 fuel stop, got %d (kinds %v)", len(fuelIdx), kinds(legs))
	}

	// Drive distance accumulated before the fuel stop is exactly 1000 miles.
	sum := decimal.Zero
	for _, leg := range legs[:fuelIdx[0]] {
		sum = sum.Add(leg.DistanceMiles)
	}
	if !sum.Equal(dec("1000")) {
		t.Errorf("miles before fuel stop = %s, want 1000", sum)
	}

	// Drive chunks bracket the stop: drive legs on both sides.
	if legs[fuelIdx[0]-1].Kind != domain.LegKindDrive {
		t.Errorf("leg before fuel stop is %s, want drive", legs[fuelIdx[0]-1].Kind)
	}
	after := legs[fuelIdx[0]+1:]
	foundDrive := false
	for _, leg := range after {
		if leg.Kind == domain.LegKindDrive {
			foundDrive = true
			break
		}
	}
	if !foundDrive {
		t.Error("expected a drive leg after the fuel stop")
	}
}

func TestCycleReset(t *testing.T) {
	legs := chunk(t, []domain.Segment{seg("500", "10")}, "65")

	assertKinds(t, legs, []domain.LegKind{
		domain.LegKindDrive,   // 400 mi / 8 h, cycle passes 70 at the iteration boundary
		domain.LegKindBreak30, //
		domain.LegKindReset34, // cycle exhausted, everything zeroes
		domain.LegKindDrive,   // remaining 100 mi / 2 h
		domain.LegKindPickup,
		domain.LegKindDropoff,
	})

	sum := decimal.Zero
	for _, leg := range legs {
		sum = sum.Add(leg.DistanceMiles)
	}
	if !sum.Equal(dec("500")) {
		t.Errorf("total driven = %s mi, want 500", sum)
	}
}

func TestDriveDistanceMatchesRouteTotal(t *testing.T) {
	cases := [][]domain.Segment{
		{seg("100", "2")},
		{seg("400", "8"), seg("100", "2")},
		{seg("550", "11"), seg("50", "1")},
		{seg("1200", "20")},
		{seg("2500", "42"), seg("300", "6")},
	}

	for _, segments := range cases {
		legs := chunk(t, segments, "0")

		total := decimal.Zero
		for _, s := range segments {
			total = total.Add(s.DistanceMiles)
		}
		sum := decimal.Zero
		for _, leg := range legs {
			if leg.Kind == domain.LegKindDrive {
				sum = sum.Add(leg.DistanceMiles)
			}
		}
		if sum.Sub(total).Abs().GreaterThan(dec("0.01")) {
			t.Errorf("drive distance %s != route total %s", sum, total)
		}
	}
}

func TestCountersNeverExceedLimitsAtLegBoundaries(t *testing.T) {
	limits := DefaultLimits()
	legs := chunk(t, []domain.Segment{seg("2500", "42"), seg("300", "6")}, "0")

	state := NewState(decimal.Zero)
	for i, leg := range legs {
		switch leg.Kind {
		case domain.LegKindDrive:
			state.ApplyDrive(leg.DistanceMiles, leg.DurationHours)
		case domain.LegKindRest10:
			state.ApplyRest10(limits)
		case domain.LegKindReset34:
			state.ApplyReset34()
		case domain.LegKindBreak30:
			state.ApplyBreak30(limits)
		case domain.LegKindFuel:
			state.ApplyFuel(limits)
		case domain.LegKindPickup, domain.LegKindDropoff:
			state.ApplyPickupDropoff(limits)
		}

		if state.DriveHoursDaily.GreaterThan(limits.MaxDriveHours) {
			t.Fatalf("leg %d (%s): daily drive hours %s exceed %s", i, leg.Kind, state.DriveHoursDaily, limits.MaxDriveHours)
		}
		if state.DriveHoursSinceBreak.GreaterThan(limits.BreakAfterHours) {
			t.Fatalf("leg %d (%s): drive hours since break %s exceed %s", i, leg.Kind, state.DriveHoursSinceBreak, limits.BreakAfterHours)
		}
		if state.MilesSinceFuel.GreaterThan(limits.FuelIntervalMiles) {
			t.Fatalf("leg %d (%s): miles since fuel %s exceed %s", i, leg.Kind, state.MilesSinceFuel, limits.FuelIntervalMiles)
		}
	}
}

func TestNoAdjacentRestLegs(t *testing.T) {
	legs := chunk(t, []domain.Segment{seg("2500", "42"), seg("300", "6")}, "0")
	for i := 1; i < len(legs); i++ {
		if legs[i].Kind == domain.LegKindRest10 && legs[i-1].Kind == domain.LegKindRest10 {
			t.Fatalf("adjacent rest10 legs at %d and %d", i-1, i)
		}
	}
}

func TestLegOrderContiguous(t *testing.T) {
	legs := chunk(t, []domain.Segment{seg("1200", "20"), seg("100", "2")}, "0")
	for i, leg := range legs {
		if leg.Order != i {
			t.Fatalf("leg %d has order %d", i, leg.Order)
		}
	}
}

func TestZeroDistanceSegmentPassesThrough(t *testing.T) {
	legs := chunk(t, []domain.Segment{seg("0", "0"), seg("100", "2")}, "0")

	// A zero-distance segment contributes no drive legs but still marks the
	// first-segment boundary for the pickup stop.
	assertKinds(t, legs, []domain.LegKind{
		domain.LegKindPickup, domain.LegKindDrive, domain.LegKindDropoff,
	})
}

func TestNonPositiveDuration(t *testing.T) {
	r := route(seg("100", "0"))
	idx := testIndex(t, 100)
	_, err := Chunk(r, idx, decimal.Zero, DefaultLimits())
	if err == nil {
		t.Fatal("expected error for positive distance with zero duration")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != "NON_POSITIVE_DURATION" {
		t.Fatalf("expected NON_POSITIVE_DURATION, got %v", err)
	}
}

func TestEmptySegmentsWithGeometry(t *testing.T) {
	idx := testIndex(t, 100)
	r := domain.RouteInput{Waypoints: []domain.Coordinate{{Lat: 0, Lon: 0}, {Lat: 1, Lon: 0}}}
	_, err := Chunk(r, idx, decimal.Zero, DefaultLimits())
	if err == nil {
		t.Fatal("expected error for empty segments with non-empty geometry")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != "INCONSISTENT_SEGMENTS" {
		t.Fatalf("expected INCONSISTENT_SEGMENTS, got %v", err)
	}
}

func TestEventLegsCarryNoDistance(t *testing.T) {
	legs := chunk(t, []domain.Segment{seg("1200", "20"), seg("100", "2")}, "0")
	for i, leg := range legs {
		if leg.Kind.IsEvent() {
			if !leg.DistanceMiles.IsZero() {
				t.Errorf("leg %d (%s) has distance %s, want 0", i, leg.Kind, leg.DistanceMiles)
			}
			if leg.SegmentIndex != nil {
				t.Errorf("leg %d (%s) has a segment index", i, leg.Kind)
			}
		} else {
			if !leg.DistanceMiles.IsPositive() {
				t.Errorf("drive leg %d has non-positive distance %s", i, leg.DistanceMiles)
			}
			if leg.SegmentIndex == nil {
				t.Errorf("drive leg %d missing segment index", i)
			}
		}
	}
}

func TestNotesContractSubstrings(t *testing.T) {
	legs := chunk(t, []domain.Segment{seg("2500", "42"), seg("300", "6")}, "65")

	want := map[domain.LegKind]string{
		domain.LegKindBreak30: "30-minute",
		domain.LegKindRest10:  "10-hour",
		domain.LegKindReset34: "34-hour",
		domain.LegKindFuel:    "1000 miles",
		domain.LegKindPickup:  "pickup",
		domain.LegKindDropoff: "dropoff",
	}

	seen := map[domain.LegKind]bool{}
	for _, leg := range legs {
		if sub, ok := want[leg.Kind]; ok {
			seen[leg.Kind] = true
			if !strings.Contains(leg.Notes, sub) {
				t.Errorf("%s notes %q missing %q", leg.Kind, leg.Notes, sub)
			}
		}
	}
	for kind := range want {
		if !seen[kind] {
			t.Errorf("route produced no %s leg to check", kind)
		}
	}
}
