package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/draymaster/services/trip-planner/internal/domain"
	"github.com/draymaster/services/trip-planner/internal/events"
	"github.com/draymaster/services/trip-planner/internal/events/kafkabus"
	"github.com/draymaster/services/trip-planner/internal/geometry"
	"github.com/draymaster/services/trip-planner/internal/hos"
	"github.com/draymaster/services/trip-planner/internal/planner"
	"github.com/draymaster/services/trip-planner/internal/platform/apperrors"
	"github.com/draymaster/services/trip-planner/internal/platform/logger"
	"github.com/draymaster/services/trip-planner/internal/platform/validation"
	"github.com/draymaster/services/trip-planner/internal/repository"
)

// TripService handles business logic for trip planning: validate the
// request, run the planning core, persist the result, publish the event.
// The core itself stays pure; everything with I/O lives here.
type TripService struct {
	tripRepo      repository.TripRepository
	legRepo       repository.LegRepository
	dailyLogRepo  repository.DailyLogRepository
	eventProducer *kafkabus.Producer
	validator     *validation.TripInputValidator
	limits        hos.Limits
	logger        *logger.Logger
}

// NewTripService creates a new trip service
func NewTripService(
	tripRepo repository.TripRepository,
	legRepo repository.LegRepository,
	dailyLogRepo repository.DailyLogRepository,
	eventProducer *kafkabus.Producer,
	limits hos.Limits,
	log *logger.Logger,
) *TripService {
	return &TripService{
		tripRepo:      tripRepo,
		legRepo:       legRepo,
		dailyLogRepo:  dailyLogRepo,
		eventProducer: eventProducer,
		validator:     validation.NewTripInputValidator(limits.CycleLimitHours),
		limits:        limits,
		logger:        log,
	}
}

// RouteStep is one provider turn-by-turn item, waypoint-indexed into the
// decoded polyline.
type RouteStep struct {
	DistanceMeters  float64
	DurationSeconds float64
	WayPoints       [2]int
	Instruction     string
}

// RouteSegment is one provider route partition. Distances arrive in miles,
// durations in seconds, per the routing-boundary convention.
type RouteSegment struct {
	DistanceMiles   decimal.Decimal
	DurationSeconds decimal.Decimal
	Steps           []RouteStep
}

// RouteData is the routing collaborator's response. Geometry carries the
// decoded polyline in provider (lon, lat) order; EncodedPolyline may be set
// instead, in which case it is decoded here.
type RouteData struct {
	DistanceMiles   decimal.Decimal
	DurationHours   decimal.Decimal
	Segments        []RouteSegment
	Geometry        [][2]float64
	EncodedPolyline string
}

// PlanTripInput contains input for planning a trip
type PlanTripInput struct {
	CurrentLabel     string
	CurrentLatitude  float64
	CurrentLongitude float64
	PickupLabel      string
	PickupLatitude   float64
	PickupLongitude  float64
	DropoffLabel     string
	DropoffLatitude  float64
	DropoffLongitude float64

	DepartureTime     time.Time
	CurrentCycleHours decimal.Decimal

	Route RouteData
}

// PlanTripResult is the persisted outcome of one plan
type PlanTripResult struct {
	Trip      *domain.Trip
	Legs      []domain.Leg
	DailyLogs []domain.DailyLog
}

var secondsPerHour = decimal.NewFromInt(3600)

// PlanTrip validates the request, runs the planning core, stores the trip
// with its legs and daily logs, and publishes a trip.planned event.
func (s *TripService) PlanTrip(ctx context.Context, input PlanTripInput) (*PlanTripResult, error) {
	started := time.Now()

	s.logger.Infow("Planning trip",
		"from", input.CurrentLabel,
		"pickup", input.PickupLabel,
		"dropoff", input.DropoffLabel,
		"cycle_hours", input.CurrentCycleHours.String(),
	)

	route, err := s.buildRouteInput(input)
	if err != nil {
		return nil, err
	}

	if err := s.validate(input, route); err != nil {
		return nil, err
	}

	trip := domain.TripInput{
		DepartureTime:     input.DepartureTime,
		CurrentCycleHours: input.CurrentCycleHours,
		CurrentLabel:      input.CurrentLabel,
		PickupLabel:       input.PickupLabel,
		DropoffLabel:      input.DropoffLabel,
	}

	result, err := planner.Plan(route, trip, s.limits)
	if err != nil {
		s.logger.WithError(err).Errorw("Trip planning failed",
			"from", input.CurrentLabel,
			"dropoff", input.DropoffLabel,
		)
		return nil, err
	}

	record := &domain.Trip{
		ID:                uuid.New(),
		CurrentLabel:      input.CurrentLabel,
		CurrentLatitude:   input.CurrentLatitude,
		CurrentLongitude:  input.CurrentLongitude,
		PickupLabel:       input.PickupLabel,
		PickupLatitude:    input.PickupLatitude,
		PickupLongitude:   input.PickupLongitude,
		DropoffLabel:      input.DropoffLabel,
		DropoffLatitude:   input.DropoffLatitude,
		DropoffLongitude:  input.DropoffLongitude,
		CurrentCycleHours: input.CurrentCycleHours,
		DepartureTime:     input.DepartureTime,
		PlannedDistanceMi: result.TotalDistanceMiles,
		PlannedDurationH:  result.TotalDurationHours,
		PlannedAt:         time.Now().UTC(),
	}

	if err := s.tripRepo.Create(ctx, record); err != nil {
		return nil, apperrors.DatabaseError("create trip", err)
	}

	legRecords := make([]domain.LegRecord, len(result.Legs))
	for i := range result.Legs {
		legRecords[i] = result.Legs[i].ToRecord(uuid.New(), record.ID)
	}
	if err := s.legRepo.CreateBatch(ctx, legRecords); err != nil {
		return nil, apperrors.DatabaseError("create trip legs", err)
	}

	if err := s.dailyLogRepo.ReplaceForTrip(ctx, record.ID, result.DailyLogs); err != nil {
		return nil, apperrors.DatabaseError("store daily logs", err)
	}

	s.publishTripPlanned(ctx, record, result)

	s.logger.Infow("Trip planned",
		"trip_id", record.ID,
		"legs", len(result.Legs),
		"days", len(result.DailyLogs),
		"total_miles", result.TotalDistanceMiles.String(),
		"elapsed_ms", time.Since(started).Milliseconds(),
	)

	return &PlanTripResult{
		Trip:      record,
		Legs:      result.Legs,
		DailyLogs: result.DailyLogs,
	}, nil
}

// RebuildDailyLogs recomputes and stores a trip's daily logs from its
// persisted legs. Daily logs are derived values, so this is idempotent.
func (s *TripService) RebuildDailyLogs(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error) {
	records, err := s.legRepo.GetByTripID(ctx, tripID)
	if err != nil {
		return nil, apperrors.DatabaseError("load trip legs", err)
	}
	if len(records) == 0 {
		return nil, apperrors.NotFoundError("trip legs", tripID.String())
	}

	legs := make([]domain.Leg, len(records))
	for i := range records {
		legs[i] = records[i].ToLeg()
	}

	logs := planner.RebuildDailyLogs(legs)
	if err := s.dailyLogRepo.ReplaceForTrip(ctx, tripID, logs); err != nil {
		return nil, apperrors.DatabaseError("store daily logs", err)
	}
	return logs, nil
}

// GetTrip returns a trip with its legs and daily logs
func (s *TripService) GetTrip(ctx context.Context, tripID uuid.UUID) (*domain.Trip, []domain.LegRecord, []domain.DailyLog, error) {
	trip, err := s.tripRepo.GetByID(ctx, tripID)
	if err != nil {
		return nil, nil, nil, apperrors.DatabaseError("load trip", err)
	}
	if trip == nil {
		return nil, nil, nil, apperrors.NotFoundError("trip", tripID.String())
	}

	legs, err := s.legRepo.GetByTripID(ctx, tripID)
	if err != nil {
		return nil, nil, nil, apperrors.DatabaseError("load trip legs", err)
	}

	logs, err := s.dailyLogRepo.GetByTripID(ctx, tripID)
	if err != nil {
		return nil, nil, nil, apperrors.DatabaseError("load daily logs", err)
	}

	return trip, legs, logs, nil
}

// buildRouteInput converts the routing-boundary payload into the decoded
// shapes the core operates on: (lon, lat) provider order flips to the
// internal (lat, lon) coordinate, segment durations convert from seconds
// to hours.
func (s *TripService) buildRouteInput(input PlanTripInput) (domain.RouteInput, error) {
	var waypoints []domain.Coordinate
	switch {
	case len(input.Route.Geometry) > 0:
		waypoints = make([]domain.Coordinate, len(input.Route.Geometry))
		for i, c := range input.Route.Geometry {
			waypoints[i] = domain.Coordinate{Lon: c[0], Lat: c[1]}
		}
	case input.Route.EncodedPolyline != "":
		decoded, err := geometry.DecodePolyline(input.Route.EncodedPolyline)
		if err != nil {
			return domain.RouteInput{}, apperrors.Wrap(err, "EMPTY_GEOMETRY", "failed to decode route polyline")
		}
		waypoints = decoded
	}

	segments := make([]domain.Segment, len(input.Route.Segments))
	for i, seg := range input.Route.Segments {
		steps := make([]domain.Step, len(seg.Steps))
		for j, step := range seg.Steps {
			steps[j] = domain.Step{
				WaypointStartIndex: step.WayPoints[0],
				WaypointEndIndex:   step.WayPoints[1],
				Instruction:        step.Instruction,
				DistanceMeters:     step.DistanceMeters,
				DurationSeconds:    step.DurationSeconds,
			}
		}
		segments[i] = domain.Segment{
			DistanceMiles: seg.DistanceMiles,
			DurationHours: seg.DurationSeconds.Div(secondsPerHour),
			Steps:         steps,
		}
	}

	return domain.RouteInput{
		Segments:  segments,
		Waypoints: waypoints,
		AnchorCoordinates: [3]domain.Coordinate{
			{Lat: input.CurrentLatitude, Lon: input.CurrentLongitude},
			{Lat: input.PickupLatitude, Lon: input.PickupLongitude},
			{Lat: input.DropoffLatitude, Lon: input.DropoffLongitude},
		},
	}, nil
}

func (s *TripService) validate(input PlanTripInput, route domain.RouteInput) error {
	if err := s.validator.ValidateCycleHours(input.CurrentCycleHours); err != nil {
		return err
	}

	waypoints := make([]validation.Waypoint, len(route.Waypoints))
	for i, wp := range route.Waypoints {
		waypoints[i] = validation.Waypoint{Lat: wp.Lat, Lon: wp.Lon}
	}
	if err := s.validator.ValidateWaypoints(waypoints); err != nil {
		return err
	}

	segments := make([]validation.Segment, len(route.Segments))
	for i, seg := range route.Segments {
		dist, _ := seg.DistanceMiles.Float64()
		dur, _ := seg.DurationHours.Float64()
		start, end := 0, len(route.Waypoints)-1
		if len(seg.Steps) > 0 {
			start = seg.Steps[0].WaypointStartIndex
			end = seg.Steps[len(seg.Steps)-1].WaypointEndIndex
		}
		segments[i] = validation.Segment{
			DistanceMiles: dist,
			DurationHours: dur,
			StartWaypoint: start,
			EndWaypoint:   end,
		}
	}
	return s.validator.ValidateSegments(segments, len(route.Waypoints))
}

func (s *TripService) publishTripPlanned(ctx context.Context, trip *domain.Trip, result *planner.Result) {
	if s.eventProducer == nil {
		return
	}

	var arrival time.Time
	if n := len(result.Legs); n > 0 {
		arrival = result.Legs[n-1].ArrivalTime
	}

	event := kafkabus.NewEvent(events.EventTypeTripPlanned, "trip-planner", events.TripPlannedPayload{
		TripID:             trip.ID.String(),
		LegCount:           len(result.Legs),
		DayCount:           len(result.DailyLogs),
		TotalDistanceMiles: result.TotalDistanceMiles.String(),
		TotalDurationHours: result.TotalDurationHours.String(),
		DepartureTime:      trip.DepartureTime,
		ArrivalTime:        arrival,
	})

	if err := s.eventProducer.Publish(ctx, events.Topics.TripPlanned, event); err != nil {
		// The plan is already persisted; a publish failure is observability
		// loss, not a planning failure.
		s.logger.WithError(err).Warnw("Failed to publish trip.planned event", "trip_id", trip.ID)
	}
}
