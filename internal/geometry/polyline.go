package geometry

import (
	polyline "github.com/twpayne/go-polyline"

	"github.com/draymaster/services/trip-planner/internal/domain"
)

// DecodePolyline decodes a provider-encoded polyline string into the ordered
// waypoint sequence Build expects, grounded on the same
// polyline.DecodeCoords call the routing-segment worker uses to turn a
// provider's encoded geometry into [lat, lon] pairs.
func DecodePolyline(encoded string) ([]domain.Coordinate, error) {
	coords, _, err := polyline.DecodeCoords([]byte(encoded))
	if err != nil {
		return nil, err
	}

	out := make([]domain.Coordinate, len(coords))
	for i, c := range coords {
		out[i] = domain.Coordinate{Lat: c[0], Lon: c[1]}
	}
	return out, nil
}
