package hos

import "github.com/draymaster/services/trip-planner/internal/domain"

// stepsInWaypointRange returns the subset of steps whose waypoint range
// falls within [startIdx, endIdx]. When one routing segment is sliced into
// several drive legs, each chunk keeps only the steps that occurred within
// its own mileage range.
func stepsInWaypointRange(steps []domain.Step, startIdx, endIdx int) []domain.Step {
	var out []domain.Step
	for _, step := range steps {
		if step.WaypointStartIndex >= startIdx && step.WaypointEndIndex <= endIdx {
			out = append(out, step)
		}
	}
	return out
}
