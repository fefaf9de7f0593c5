// Package dailylog projects a timestamped leg list onto a per-day,
// 15-minute duty-status grid, then compresses the grid into quantized
// periods with per-status totals — the driver-log-sheet view of a trip.
package dailylog

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/draymaster/services/trip-planner/internal/domain"
)

// dayBounds tracks, per calendar day, the first and last leg that touched
// it. Kept explicit (rather than a single trip-wide "is this the last day"
// boolean) so a day that starts mid-route still resolves its own last leg
// when period compression needs to clamp to a real arrival time.
type dayBounds struct {
	firstLeg domain.Leg
	lastLeg  domain.Leg
}

// grid holds per-day 15-minute slot statuses, proportional
// mileage, and per-day leg bounds.
type grid struct {
	// timeline[day][slot] holds the winning (lowest-priority-number) status
	// for that 15-minute slot.
	timeline   map[string]map[string]domain.DutyStatus
	milesByDay map[string]decimal.Decimal
	bounds     map[string]dayBounds
	days       []string // insertion order is irrelevant; sorted before use
}

func newGrid() *grid {
	return &grid{
		timeline:   make(map[string]map[string]domain.DutyStatus),
		milesByDay: make(map[string]decimal.Decimal),
		bounds:     make(map[string]dayBounds),
	}
}

// fillFromLegs fills the grid: for each leg, split at calendar-day
// boundaries, fill 15-minute grid slots with status-priority resolution,
// and distribute distance proportionally across the day split.
func fillFromLegs(legs []domain.Leg) *grid {
	g := newGrid()

	for _, leg := range legs {
		status := leg.DutyStatus()
		loc := leg.DepartureTime.Location()

		subStart := leg.DepartureTime
		end := leg.ArrivalTime
		for subStart.Before(end) {
			dayStart := time.Date(subStart.Year(), subStart.Month(), subStart.Day(), 0, 0, 0, 0, loc)
			dayEnd := dayStart.AddDate(0, 0, 1)
			subEnd := end
			if dayEnd.Before(subEnd) {
				subEnd = dayEnd
			}

			day := dayStart.Format("2006-01-02")
			g.touchDay(day, leg)
			g.fillSlots(day, subStart, subEnd, status)
			g.addProportionalMiles(day, leg, subStart, subEnd)

			subStart = subEnd
		}
	}

	return g
}

func (g *grid) touchDay(day string, leg domain.Leg) {
	b, ok := g.bounds[day]
	if !ok {
		b.firstLeg = leg
		g.days = append(g.days, day)
	}
	b.lastLeg = leg
	g.bounds[day] = b

	if _, ok := g.timeline[day]; !ok {
		g.timeline[day] = make(map[string]domain.DutyStatus)
	}
}

// fillSlots fills every grid-aligned 15-minute slot (minute % 15 == 0)
// whose start falls in [subStart, subEnd), applying the lower-priority-wins
// rule against any status already present in that slot.
func (g *grid) fillSlots(day string, subStart, subEnd time.Time, status domain.DutyStatus) {
	slot := ceilToGrid(subStart)
	for slot.Before(subEnd) {
		key := slot.Format("15:04")
		existing, ok := g.timeline[day][key]
		if !ok || domain.StatusPriority[status] < domain.StatusPriority[existing] {
			g.timeline[day][key] = status
		}
		slot = slot.Add(15 * time.Minute)
	}
}

// addProportionalMiles distributes leg.DistanceMiles across the sub-interval
// in proportion to its share of the leg's total duration.
func (g *grid) addProportionalMiles(day string, leg domain.Leg, subStart, subEnd time.Time) {
	subMinutes := subEnd.Sub(subStart).Minutes()
	subHours := decimal.NewFromFloat(subMinutes / 60.0)

	var subMiles decimal.Decimal
	if leg.DurationHours.IsPositive() {
		subMiles = leg.DistanceMiles.Mul(subHours).Div(leg.DurationHours)
	} else {
		subMiles = decimal.Zero
	}

	g.milesByDay[day] = g.milesByDay[day].Add(subMiles)
}

// ceilToGrid returns the first instant at or after t that lands on a
// 15-minute grid boundary (minute % 15 == 0, zero seconds/nanoseconds).
func ceilToGrid(t time.Time) time.Time {
	rounded := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, t.Location())
	rem := rounded.Minute() % 15
	if rem != 0 || t.Second() > 0 || t.Nanosecond() > 0 {
		add := 15 - rem
		if rem == 0 {
			add = 15
		}
		rounded = rounded.Add(time.Duration(add) * time.Minute)
	}
	return rounded
}
