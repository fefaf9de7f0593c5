package dailylog

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/draymaster/services/trip-planner/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// leg builds a timestamped leg spanning [start, start+hours).
func leg(kind domain.LegKind, start time.Time, hours, miles string) domain.Leg {
	h := dec(hours)
	seconds, _ := h.Mul(decimal.NewFromInt(3600)).Round(0).Float64()
	return domain.Leg{
		Kind:          kind,
		DistanceMiles: dec(miles),
		DurationHours: h,
		DepartureTime: start,
		ArrivalTime:   start.Add(time.Duration(seconds) * time.Second),
	}
}

func findPeriods(log domain.DailyLog, status domain.DutyStatus) []domain.Period {
	var out []domain.Period
	for _, p := range log.Periods {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out
}

func TestSingleDayLog(t *testing.T) {
	loc, _ := time.LoadLocation("America/Chicago")
	start := time.Date(2025, 3, 10, 8, 0, 0, 0, loc)

	legs := []domain.Leg{
		leg(domain.LegKindDrive, start, "2", "100"),
		leg(domain.LegKindPickup, start.Add(2*time.Hour), "1", "0"),
		leg(domain.LegKindDrive, start.Add(3*time.Hour), "2", "100"),
	}

	logs := Build(legs, "Chicago, IL", "Dallas, TX")
	if len(logs) != 1 {
		t.Fatalf("expected 1 daily log, got %d", len(logs))
	}

	log := logs[0]
	if log.Date != "2025-03-10" {
		t.Errorf("date = %s, want 2025-03-10", log.Date)
	}
	if log.MonthName != "March" || log.Day != 10 || log.Year != 2025 {
		t.Errorf("date parts = %s %d %d", log.MonthName, log.Day, log.Year)
	}
	if log.FromLocation != "Chicago, IL" || log.ToLocation != "Dallas, TX" {
		t.Errorf("locations = %q -> %q", log.FromLocation, log.ToLocation)
	}

	// off 00:00-08:00, driving 08:00-10:00, on_duty 10:00-11:00,
	// driving 11:00-13:00, off 13:00-24:00
	want := []domain.Period{
		{Status: domain.DutyStatusOffDuty, Start: "00:00", End: "08:00"},
		{Status: domain.DutyStatusDriving, Start: "08:00", End: "10:00"},
		{Status: domain.DutyStatusOnDuty, Start: "10:00", End: "11:00"},
		{Status: domain.DutyStatusDriving, Start: "11:00", End: "13:00"},
		{Status: domain.DutyStatusOffDuty, Start: "13:00", End: "24:00"},
	}
	if len(log.Periods) != len(want) {
		t.Fatalf("periods = %+v, want %+v", log.Periods, want)
	}
	for i, p := range want {
		if log.Periods[i] != p {
			t.Errorf("period %d = %+v, want %+v", i, log.Periods[i], p)
		}
	}

	if !log.DrivingTotal.Equal(dec("4")) {
		t.Errorf("driving total = %s, want 4", log.DrivingTotal)
	}
	if !log.OnDutyTotal.Equal(dec("1")) {
		t.Errorf("on duty total = %s, want 1", log.OnDutyTotal)
	}
	if !log.OffDutyTotal.Equal(dec("19")) {
		t.Errorf("off duty total = %s, want 19", log.OffDutyTotal)
	}
	if !log.TotalHours.Equal(dec("24")) {
		t.Errorf("total hours = %s, want 24", log.TotalHours)
	}
	if !log.TotalMiles.Equal(dec("200")) {
		t.Errorf("total miles = %s, want 200", log.TotalMiles)
	}
}

func TestMultiDayClamping(t *testing.T) {
	loc, _ := time.LoadLocation("America/Chicago")
	// 02:00 day A departure, 10:00 day B arrival.
	start := time.Date(2025, 3, 10, 2, 0, 0, 0, loc)

	legs := []domain.Leg{
		leg(domain.LegKindDrive, start, "10", "500"),                   // 02:00 - 12:00 A
		leg(domain.LegKindRest10, start.Add(10*time.Hour), "10", "0"),  // 12:00 - 22:00 A
		leg(domain.LegKindDrive, start.Add(20*time.Hour), "12", "600"), // 22:00 A - 10:00 B
	}

	logs := Build(legs, "A", "B")
	if len(logs) != 2 {
		t.Fatalf("expected 2 daily logs, got %d", len(logs))
	}

	dayA, dayB := logs[0], logs[1]
	if dayA.Date != "2025-03-10" || dayB.Date != "2025-03-11" {
		t.Fatalf("dates = %s, %s", dayA.Date, dayB.Date)
	}

	// Day A runs to the day terminus after quantization.
	lastA := dayA.Periods[len(dayA.Periods)-1]
	if lastA.End != "24:00" {
		t.Errorf("day A last period ends %s, want 24:00", lastA.End)
	}
	if lastA.Status != domain.DutyStatusDriving {
		t.Errorf("day A last period status = %s, want driving", lastA.Status)
	}

	// Day B starts driving at 00:00, real arrival at 10:00, padded off_duty after.
	if dayB.Periods[0].Status != domain.DutyStatusDriving || dayB.Periods[0].Start != "00:00" {
		t.Errorf("day B first period = %+v, want driving from 00:00", dayB.Periods[0])
	}
	if dayB.Periods[0].End != "10:00" {
		t.Errorf("day B driving ends %s, want 10:00", dayB.Periods[0].End)
	}
	lastB := dayB.Periods[len(dayB.Periods)-1]
	if lastB.Status != domain.DutyStatusOffDuty || lastB.End != "24:00" {
		t.Errorf("day B last period = %+v, want off_duty to 24:00", lastB)
	}

	sleeperA := findPeriods(dayA, domain.DutyStatusSleeperBerth)
	if len(sleeperA) != 1 || sleeperA[0].Start != "12:00" || sleeperA[0].End != "22:00" {
		t.Errorf("day A sleeper periods = %+v, want one 12:00-22:00", sleeperA)
	}
}

func TestPeriodsCoverDayAndTotalsAgree(t *testing.T) {
	loc, _ := time.LoadLocation("America/Denver")
	start := time.Date(2025, 7, 4, 5, 30, 0, 0, loc)

	legs := []domain.Leg{
		leg(domain.LegKindDrive, start, "8", "400"),
		leg(domain.LegKindBreak30, start.Add(8*time.Hour), "0.5", "0"),
		leg(domain.LegKindDrive, start.Add(8*time.Hour+30*time.Minute), "3", "150"),
		leg(domain.LegKindRest10, start.Add(11*time.Hour+30*time.Minute), "10", "0"),
		leg(domain.LegKindDrive, start.Add(21*time.Hour+30*time.Minute), "4", "200"),
		leg(domain.LegKindDropoff, start.Add(25*time.Hour+30*time.Minute), "1", "0"),
	}

	logs := Build(legs, "A", "B")
	for _, log := range logs {
		if log.Periods[0].Start != "00:00" {
			t.Errorf("%s: first period starts %s, want 00:00", log.Date, log.Periods[0].Start)
		}
		if end := log.Periods[len(log.Periods)-1].End; end != "24:00" {
			t.Errorf("%s: last period ends %s, want 24:00", log.Date, end)
		}

		total := decimal.Zero
		for i, p := range log.Periods {
			if p.Start >= p.End {
				t.Errorf("%s: period %d has start %s >= end %s", log.Date, i, p.Start, p.End)
			}
			if i > 0 {
				prev := log.Periods[i-1]
				if prev.End != p.Start {
					t.Errorf("%s: gap between %s and %s", log.Date, prev.End, p.Start)
				}
				if prev.Status == p.Status {
					t.Errorf("%s: adjacent periods %d, %d share status %s", log.Date, i-1, i, p.Status)
				}
			}
		}

		total = log.OffDutyTotal.Add(log.SleeperBerthTotal).Add(log.DrivingTotal).Add(log.OnDutyTotal)
		if total.Sub(log.TotalHours).Abs().GreaterThan(dec("0.01")) {
			t.Errorf("%s: status totals %s != total hours %s", log.Date, total, log.TotalHours)
		}
	}
}

func TestQuantizationRounding(t *testing.T) {
	tests := []struct {
		minutes int
		want    int
	}{
		{0, 0},
		{7, 0},  // remainder below 8 rounds down
		{8, 15}, // remainder 8 rounds up
		{22, 15},
		{23, 30},
		{1439, 1440}, // 23:59 -> 24:00
	}
	for _, tt := range tests {
		if got := roundToGrid(tt.minutes); got != tt.want {
			t.Errorf("roundToGrid(%d) = %d, want %d", tt.minutes, got, tt.want)
		}
	}
}

func TestSlotPriorityLowerWins(t *testing.T) {
	g := newGrid()
	day := "2025-05-01"
	g.timeline[day] = map[string]domain.DutyStatus{}
	base := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	// A slot already holding sleeper_berth (priority 1) is not overwritten
	// by driving (priority 3).
	g.fillSlots(day, base, base.Add(time.Hour), domain.DutyStatusSleeperBerth)
	g.fillSlots(day, base, base.Add(time.Hour), domain.DutyStatusDriving)
	if got := g.timeline[day]["08:00"]; got != domain.DutyStatusSleeperBerth {
		t.Errorf("slot 08:00 = %s, want sleeper_berth", got)
	}

	// The lower-priority-number status does overwrite in the other order.
	g.fillSlots(day, base.Add(2*time.Hour), base.Add(3*time.Hour), domain.DutyStatusDriving)
	g.fillSlots(day, base.Add(2*time.Hour), base.Add(3*time.Hour), domain.DutyStatusOffDuty)
	if got := g.timeline[day]["10:00"]; got != domain.DutyStatusOffDuty {
		t.Errorf("slot 10:00 = %s, want off_duty", got)
	}
}

func TestRebuildIsIdempotent(t *testing.T) {
	loc, _ := time.LoadLocation("America/New_York")
	start := time.Date(2025, 2, 3, 6, 0, 0, 0, loc)
	legs := []domain.Leg{
		leg(domain.LegKindDrive, start, "8", "400"),
		leg(domain.LegKindBreak30, start.Add(8*time.Hour), "0.5", "0"),
		leg(domain.LegKindDrive, start.Add(8*time.Hour+30*time.Minute), "2", "100"),
	}

	first := Build(legs, "A", "B")
	second := Build(legs, "A", "B")

	if len(first) != len(second) {
		t.Fatalf("rebuild changed day count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		a, b := first[i], second[i]
		if a.Date != b.Date || len(a.Periods) != len(b.Periods) {
			t.Fatalf("rebuild diverged on day %s", a.Date)
		}
		for j := range a.Periods {
			if a.Periods[j] != b.Periods[j] {
				t.Errorf("day %s period %d: %+v vs %+v", a.Date, j, a.Periods[j], b.Periods[j])
			}
		}
		if !a.TotalHours.Equal(b.TotalHours) || !a.TotalMiles.Equal(b.TotalMiles) {
			t.Errorf("day %s totals diverged", a.Date)
		}
	}
}
