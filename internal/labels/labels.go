// Package labels assigns human-readable start/end labels to legs by kind
// and route position, and derives the trip-wide from/to location strings.
package labels

import (
	"strconv"
	"strings"

	"github.com/draymaster/services/trip-planner/internal/domain"
)

var eventLabels = map[domain.LegKind]string{
	domain.LegKindRest10:  "Rest Break",
	domain.LegKindReset34: "Cycle Reset",
	domain.LegKindBreak30: "30-min Break",
	domain.LegKindFuel:    "Fuel Stop",
	domain.LegKindPickup:  "Pickup Stop",
	domain.LegKindDropoff: "Dropoff Stop",
}

var stripPrefixes = []string{"From ", "Start:", "Pickup:", "Dropoff:"}

// Resolve assigns StartLabel/EndLabel to every leg, then overrides the
// first leg's StartLabel and the last leg's EndLabel with the trip's raw
// anchor labels (current/dropoff) so trip-wide From/To can be derived from
// them. Returns a new slice; legs is not mutated in place.
func Resolve(legs []domain.Leg, currentLabel, dropoffLabel string) []domain.Leg {
	out := make([]domain.Leg, len(legs))
	pickupDriveCount := 0
	dropoffDriveCount := 0
	lastKnownLabel := currentLabel

	for i, leg := range legs {
		l := leg
		switch {
		case l.Kind == domain.LegKindDrive && l.SegmentIndex != nil && *l.SegmentIndex == 0:
			pickupDriveCount++
			label := driveLabel("Pickup Leg", pickupDriveCount)
			l.StartLabel, l.EndLabel = label, label
		case l.Kind == domain.LegKindDrive:
			dropoffDriveCount++
			label := driveLabel("Dropoff Leg", dropoffDriveCount)
			l.StartLabel, l.EndLabel = label, label
		default:
			label, ok := eventLabels[l.Kind]
			if !ok || label == "" {
				// carry forward: an event kind with no fixed label (should not
				// occur for the six known kinds) keeps the last seen label
				// instead of surfacing an empty string to the log renderer.
				label = lastKnownLabel
			}
			l.StartLabel, l.EndLabel = label, label
		}

		if l.StartLabel != "" {
			lastKnownLabel = l.StartLabel
		}
		out[i] = l
	}

	if len(out) > 0 {
		out[0].StartLabel = currentLabel
		out[len(out)-1].EndLabel = dropoffLabel
	}

	return out
}

func driveLabel(class string, k int) string {
	return class + " " + strconv.Itoa(k)
}

// TripFromTo derives the trip-wide from/to display strings from the first
// leg's StartLabel and the last leg's EndLabel, stripping the recognized
// prefixes. A "From X to Y" shaped label splits on " to ": the departure
// side feeds from, the arrival side feeds to, matching driver-log-sheet
// convention.
func TripFromTo(legs []domain.Leg) (from, to string) {
	if len(legs) == 0 {
		return "", ""
	}
	from = cleanLabel(legs[0].StartLabel, false)
	to = cleanLabel(legs[len(legs)-1].EndLabel, true)
	return from, to
}

func cleanLabel(raw string, preferArrivalSide bool) string {
	label := raw
	for _, prefix := range stripPrefixes {
		if strings.HasPrefix(label, prefix) {
			label = strings.TrimPrefix(label, prefix)
			break
		}
	}
	label = strings.TrimSpace(label)

	if idx := strings.Index(label, " to "); idx != -1 {
		if preferArrivalSide {
			return strings.TrimSpace(label[idx+len(" to "):])
		}
		return strings.TrimSpace(label[:idx])
	}
	return label
}
