// Package geometry builds a cumulative-distance index over a route polyline
// and answers point-at-mileage and slice-between-mileages queries. It is the
// only package permitted to use float64 for distance math: floating point
// is acceptable for geometry interpolation but never for regulatory
// headroom (that lives in internal/hos, decimal.Decimal throughout).
package geometry

import (
	"math"

	"github.com/draymaster/services/trip-planner/internal/domain"
	"github.com/draymaster/services/trip-planner/internal/platform/apperrors"
)

// earthRadiusMiles is the sphere radius used for Haversine distance.
const earthRadiusMiles = 3958.8

// entry is one node of the cumulative-mileage index.
type entry struct {
	cumMiles float64
	coord    domain.Coordinate
}

// Index is the cumulative-distance index over a route's waypoints.
// Read-only after construction; safe for concurrent use by independent
// trip computations since it holds no mutable state.
type Index struct {
	entries    []entry
	totalMiles float64
}

// Build constructs an Index from an ordered waypoint sequence. It fails
// with apperrors.EmptyGeometryError if fewer than one waypoint is given.
func Build(waypoints []domain.Coordinate) (*Index, error) {
	if len(waypoints) < 1 {
		return nil, apperrors.EmptyGeometryError()
	}

	entries := make([]entry, len(waypoints))
	entries[0] = entry{cumMiles: 0, coord: waypoints[0]}

	cum := 0.0
	for i := 1; i < len(waypoints); i++ {
		cum += haversineMiles(waypoints[i-1], waypoints[i])
		entries[i] = entry{cumMiles: cum, coord: waypoints[i]}
	}

	return &Index{entries: entries, totalMiles: cum}, nil
}

// TotalMiles returns the index's total cumulative distance.
func (idx *Index) TotalMiles() float64 {
	return idx.totalMiles
}

// PointAt returns the interpolated coordinate at mileage m along the route,
// clamping below 0 to the first point and above TotalMiles to the last.
func (idx *Index) PointAt(m float64) domain.Coordinate {
	if m <= 0 {
		return idx.entries[0].coord
	}
	if m >= idx.totalMiles {
		return idx.entries[len(idx.entries)-1].coord
	}

	// Binary search for the bracketing pair [lo, hi].
	lo, hi := 0, len(idx.entries)-1
	for lo < hi-1 {
		mid := (lo + hi) / 2
		if idx.entries[mid].cumMiles <= m {
			lo = mid
		} else {
			hi = mid
		}
	}

	a, b := idx.entries[lo], idx.entries[hi]
	span := b.cumMiles - a.cumMiles
	if span <= 0 {
		return a.coord
	}
	t := (m - a.cumMiles) / span
	return domain.Coordinate{
		Lat: a.coord.Lat + t*(b.coord.Lat-a.coord.Lat),
		Lon: a.coord.Lon + t*(b.coord.Lon-a.coord.Lon),
	}
}

// WaypointIndexRange returns the first and last waypoint index whose
// cumulative mileage falls within [mFrom, mTo]. Used to scope a drive leg's
// turn-by-turn steps to the waypoint range it actually covers.
func (idx *Index) WaypointIndexRange(mFrom, mTo float64) (start, end int) {
	start, end = -1, -1
	for i, e := range idx.entries {
		if e.cumMiles >= mFrom && e.cumMiles <= mTo {
			if start == -1 {
				start = i
			}
			end = i
		}
	}
	if start == -1 {
		return 0, 0
	}
	return start, end
}

// Slice returns every index entry whose cumulative mileage falls within
// [mFrom, mTo], preserving provider precision with no resampling.
func (idx *Index) Slice(mFrom, mTo float64) []domain.Coordinate {
	var out []domain.Coordinate
	for _, e := range idx.entries {
		if e.cumMiles >= mFrom && e.cumMiles <= mTo {
			out = append(out, e.coord)
		}
	}
	return out
}

// haversineMiles computes the great-circle distance between two points on
// a sphere of radius earthRadiusMiles.
func haversineMiles(a, b domain.Coordinate) float64 {
	phi1 := toRadians(a.Lat)
	phi2 := toRadians(b.Lat)
	dPhi := toRadians(b.Lat - a.Lat)
	dLambda := toRadians(b.Lon - a.Lon)

	sinDPhi := math.Sin(dPhi / 2)
	sinDLambda := math.Sin(dLambda / 2)

	h := sinDPhi*sinDPhi + math.Cos(phi1)*math.Cos(phi2)*sinDLambda*sinDLambda
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
