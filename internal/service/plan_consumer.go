package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/draymaster/services/trip-planner/internal/events"
	"github.com/draymaster/services/trip-planner/internal/events/kafkabus"
	"github.com/draymaster/services/trip-planner/internal/platform/apperrors"
)

// HandlePlanRequested is the kafkabus.Handler for trip.plan_requested
// events: decode the payload, run the plan, and report failures on the
// plan_failed topic so the requesting side can surface them.
func (s *TripService) HandlePlanRequested(ctx context.Context, event *kafkabus.Event) error {
	payload, err := decodePlanRequested(event)
	if err != nil {
		s.logger.WithError(err).Errorw("Malformed plan request", "event_id", event.ID)
		return err
	}

	input := PlanTripInput{
		CurrentLabel:      payload.CurrentLabel,
		CurrentLatitude:   payload.CurrentLatitude,
		CurrentLongitude:  payload.CurrentLongitude,
		PickupLabel:       payload.PickupLabel,
		PickupLatitude:    payload.PickupLatitude,
		PickupLongitude:   payload.PickupLongitude,
		DropoffLabel:      payload.DropoffLabel,
		DropoffLatitude:   payload.DropoffLatitude,
		DropoffLongitude:  payload.DropoffLongitude,
		DepartureTime:     payload.DepartureTime,
		CurrentCycleHours: payload.CurrentCycleHours,
		Route:             routeDataFromPayload(payload.Route),
	}

	if _, err := s.PlanTrip(ctx, input); err != nil {
		s.publishPlanFailed(ctx, event, err)
		return err
	}
	return nil
}

// decodePlanRequested round-trips event.Data through JSON since the generic
// consumer unmarshals it as an untyped map.
func decodePlanRequested(event *kafkabus.Event) (*events.TripPlanRequestedPayload, error) {
	raw, err := json.Marshal(event.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to re-marshal event data: %w", err)
	}
	var payload events.TripPlanRequestedPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode plan request: %w", err)
	}
	return &payload, nil
}

func routeDataFromPayload(route events.RoutePayload) RouteData {
	segments := make([]RouteSegment, len(route.Segments))
	for i, seg := range route.Segments {
		steps := make([]RouteStep, len(seg.Steps))
		for j, step := range seg.Steps {
			steps[j] = RouteStep{
				DistanceMeters:  step.DistanceMeters,
				DurationSeconds: step.DurationSeconds,
				WayPoints:       step.WayPoints,
				Instruction:     step.Instruction,
			}
		}
		segments[i] = RouteSegment{
			DistanceMiles:   seg.DistanceMiles,
			DurationSeconds: seg.DurationSeconds,
			Steps:           steps,
		}
	}
	return RouteData{
		DistanceMiles:   route.DistanceMiles,
		DurationHours:   route.DurationHours,
		Segments:        segments,
		Geometry:        route.Geometry,
		EncodedPolyline: route.EncodedPolyline,
	}
}

func (s *TripService) publishPlanFailed(ctx context.Context, cause *kafkabus.Event, planErr error) {
	if s.eventProducer == nil {
		return
	}

	code := "INTERNAL"
	var appErr *apperrors.AppError
	if errors.As(planErr, &appErr) {
		code = appErr.Code
	}

	event := kafkabus.NewEvent(events.EventTypeTripPlanFailed, "trip-planner", events.TripPlanFailedPayload{
		Code:    code,
		Message: planErr.Error(),
	}).WithCorrelationID(cause.ID)

	if err := s.eventProducer.Publish(ctx, events.Topics.TripPlanFailed, event); err != nil {
		s.logger.WithError(err).Warnw("Failed to publish trip.plan_failed event", "cause_event_id", cause.ID)
	}
}
