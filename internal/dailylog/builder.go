package dailylog

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/draymaster/services/trip-planner/internal/domain"
)

const minutesPerDay = 24 * 60

var (
	four  = decimal.NewFromInt(4)
	sixty = decimal.NewFromInt(60)
)

// span is a period in minutes-since-midnight, the working form between
// compression and quantization. End may be 1440 ("24:00").
type span struct {
	status domain.DutyStatus
	start  int
	end    int
}

// Build converts an ordered, timestamped leg list into per-day duty logs in
// ascending date order. fromLocation/toLocation are the trip-wide endpoint
// labels applied to every day's record. Rebuilding from the same legs is
// idempotent: the output depends only on the input.
func Build(legs []domain.Leg, fromLocation, toLocation string) []domain.DailyLog {
	if len(legs) == 0 {
		return nil
	}

	g := fillFromLegs(legs)

	days := append([]string(nil), g.days...)
	sort.Strings(days)
	lastDay := days[len(days)-1]

	logs := make([]domain.DailyLog, 0, len(days))
	for _, day := range days {
		spans := g.compressDay(day, day == lastDay)
		spans = quantize(spans)
		logs = append(logs, buildRecord(day, spans, g.milesByDay[day], fromLocation, toLocation))
	}
	return logs
}

// compressDay converts one day's 15-minute slots into maximal runs of equal
// status. The trailing run closes at the real arrival time of the day's last
// leg when this is the trip's final day, and clamps at 23:59 otherwise.
// Zero-length runs are dropped.
func (g *grid) compressDay(day string, isLastDay bool) []span {
	slots := make([]string, 0, len(g.timeline[day]))
	for slot := range g.timeline[day] {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	if len(slots) == 0 {
		return nil
	}

	var spans []span
	currentStatus := g.timeline[day][slots[0]]
	runStart := slotMinutes(slots[0])

	for _, slot := range slots[1:] {
		status := g.timeline[day][slot]
		if status == currentStatus {
			continue
		}
		m := slotMinutes(slot)
		if m > runStart {
			spans = append(spans, span{status: currentStatus, start: runStart, end: m})
		}
		currentStatus = status
		runStart = m
	}

	end := minutesPerDay - 1 // "23:59"
	if isLastDay {
		end = g.lastArrivalMinutes(day)
	}
	if end > runStart {
		spans = append(spans, span{status: currentStatus, start: runStart, end: end})
	}
	return spans
}

// lastArrivalMinutes resolves the local HH:MM of the day's own last leg's
// arrival as minutes since midnight. An arrival landing exactly on the next
// local midnight reads as 24:00 of this day, not 00:00.
func (g *grid) lastArrivalMinutes(day string) int {
	arr := g.bounds[day].lastLeg.ArrivalTime
	if arr.Format("2006-01-02") != day {
		return minutesPerDay
	}
	return arr.Hour()*60 + arr.Minute()
}

// quantize is the render-tier pass: snap period boundaries to the nearest
// 15 minutes (remainder < 8 rounds down, >= 8 up), pad the day edges with
// off_duty so the periods cover [00:00, 24:00], and merge adjacent
// same-status periods.
func quantize(spans []span) []span {
	var rounded []span
	for _, s := range spans {
		start := roundToGrid(s.start)
		end := roundToGrid(s.end)
		if end <= start {
			continue
		}
		rounded = append(rounded, span{status: s.status, start: start, end: end})
	}

	if len(rounded) == 0 {
		return []span{{status: domain.DutyStatusOffDuty, start: 0, end: minutesPerDay}}
	}

	var out []span
	if rounded[0].start > 0 {
		out = append(out, span{status: domain.DutyStatusOffDuty, start: 0, end: rounded[0].start})
	}
	out = append(out, rounded...)
	if last := out[len(out)-1]; last.end < minutesPerDay {
		out = append(out, span{status: domain.DutyStatusOffDuty, start: last.end, end: minutesPerDay})
	}

	return mergeAdjacent(out)
}

func mergeAdjacent(spans []span) []span {
	out := []span{spans[0]}
	for _, s := range spans[1:] {
		last := &out[len(out)-1]
		if s.status == last.status && s.start == last.end {
			last.end = s.end
			continue
		}
		out = append(out, s)
	}
	return out
}

// buildRecord is the totals pass: per-status hour totals rounded to the
// nearest quarter hour, total hours as their sum, and miles rounded to two
// decimals.
func buildRecord(day string, spans []span, miles decimal.Decimal, fromLocation, toLocation string) domain.DailyLog {
	statusMinutes := map[domain.DutyStatus]int{}
	for _, s := range spans {
		statusMinutes[s.status] += s.end - s.start
	}

	offDuty := quarterHours(statusMinutes[domain.DutyStatusOffDuty])
	sleeper := quarterHours(statusMinutes[domain.DutyStatusSleeperBerth])
	driving := quarterHours(statusMinutes[domain.DutyStatusDriving])
	onDuty := quarterHours(statusMinutes[domain.DutyStatusOnDuty])

	periods := make([]domain.Period, len(spans))
	for i, s := range spans {
		periods[i] = domain.Period{
			Status: s.status,
			Start:  minuteString(s.start),
			End:    minuteString(s.end),
		}
	}

	date, _ := time.Parse("2006-01-02", day)

	return domain.DailyLog{
		Date:              day,
		MonthName:         date.Month().String(),
		Day:               date.Day(),
		Year:              date.Year(),
		FromLocation:      fromLocation,
		ToLocation:        toLocation,
		Periods:           periods,
		TotalMiles:        miles.Round(2),
		TotalHours:        offDuty.Add(sleeper).Add(driving).Add(onDuty),
		OffDutyTotal:      offDuty,
		SleeperBerthTotal: sleeper,
		DrivingTotal:      driving,
		OnDutyTotal:       onDuty,
	}
}

// roundToGrid snaps m to the nearest 15-minute boundary: a remainder below
// 8 rounds down, 8 or more rounds up. 23:59 therefore snaps to 24:00.
func roundToGrid(m int) int {
	rem := m % 15
	if rem < 8 {
		return m - rem
	}
	return m + 15 - rem
}

// quarterHours converts minutes to hours rounded to the nearest 0.25.
func quarterHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(sixty).Mul(four).Round(0).Div(four)
}

func slotMinutes(slot string) int {
	var h, m int
	fmt.Sscanf(slot, "%d:%d", &h, &m)
	return h*60 + m
}

func minuteString(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
