package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/draymaster/services/trip-planner/internal/domain"
)

// PostgresTripRepository implements TripRepository using PostgreSQL
type PostgresTripRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresTripRepository creates a new PostgreSQL trip repository
func NewPostgresTripRepository(pool *pgxpool.Pool) *PostgresTripRepository {
	return &PostgresTripRepository{pool: pool}
}

// Create creates a new trip
func (r *PostgresTripRepository) Create(ctx context.Context, trip *domain.Trip) error {
	query := `
		INSERT INTO trips (
			id, current_label, current_latitude, current_longitude,
			pickup_label, pickup_latitude, pickup_longitude,
			dropoff_label, dropoff_latitude, dropoff_longitude,
			current_cycle_hours, departure_time,
			planned_distance_miles, planned_duration_hours, planned_at,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17
		)`

	now := time.Now()
	if trip.ID == uuid.Nil {
		trip.ID = uuid.New()
	}
	trip.CreatedAt = now
	trip.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		trip.ID,
		trip.CurrentLabel,
		trip.CurrentLatitude,
		trip.CurrentLongitude,
		trip.PickupLabel,
		trip.PickupLatitude,
		trip.PickupLongitude,
		trip.DropoffLabel,
		trip.DropoffLatitude,
		trip.DropoffLongitude,
		trip.CurrentCycleHours,
		trip.DepartureTime,
		trip.PlannedDistanceMi,
		trip.PlannedDurationH,
		trip.PlannedAt,
		trip.CreatedAt,
		trip.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create trip: %w", err)
	}

	return nil
}

// GetByID retrieves a trip by ID
func (r *PostgresTripRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error) {
	query := `
		SELECT id, current_label, current_latitude, current_longitude,
			pickup_label, pickup_latitude, pickup_longitude,
			dropoff_label, dropoff_latitude, dropoff_longitude,
			current_cycle_hours, departure_time,
			planned_distance_miles, planned_duration_hours, planned_at,
			created_at, updated_at
		FROM trips WHERE id = $1`

	var trip domain.Trip
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&trip.ID,
		&trip.CurrentLabel,
		&trip.CurrentLatitude,
		&trip.CurrentLongitude,
		&trip.PickupLabel,
		&trip.PickupLatitude,
		&trip.PickupLongitude,
		&trip.DropoffLabel,
		&trip.DropoffLatitude,
		&trip.DropoffLongitude,
		&trip.CurrentCycleHours,
		&trip.DepartureTime,
		&trip.PlannedDistanceMi,
		&trip.PlannedDurationH,
		&trip.PlannedAt,
		&trip.CreatedAt,
		&trip.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return &trip, nil
}

// GetAll retrieves all trips, newest first
func (r *PostgresTripRepository) GetAll(ctx context.Context) ([]domain.Trip, error) {
	query := `
		SELECT id, current_label, current_latitude, current_longitude,
			pickup_label, pickup_latitude, pickup_longitude,
			dropoff_label, dropoff_latitude, dropoff_longitude,
			current_cycle_hours, departure_time,
			planned_distance_miles, planned_duration_hours, planned_at,
			created_at, updated_at
		FROM trips ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []domain.Trip
	for rows.Next() {
		var trip domain.Trip
		if err := rows.Scan(
			&trip.ID,
			&trip.CurrentLabel,
			&trip.CurrentLatitude,
			&trip.CurrentLongitude,
			&trip.PickupLabel,
			&trip.PickupLatitude,
			&trip.PickupLongitude,
			&trip.DropoffLabel,
			&trip.DropoffLatitude,
			&trip.DropoffLongitude,
			&trip.CurrentCycleHours,
			&trip.DepartureTime,
			&trip.PlannedDistanceMi,
			&trip.PlannedDurationH,
			&trip.PlannedAt,
			&trip.CreatedAt,
			&trip.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

// Update updates a trip's plan summary fields
func (r *PostgresTripRepository) Update(ctx context.Context, trip *domain.Trip) error {
	query := `
		UPDATE trips SET
			current_label = $2, current_latitude = $3, current_longitude = $4,
			pickup_label = $5, pickup_latitude = $6, pickup_longitude = $7,
			dropoff_label = $8, dropoff_latitude = $9, dropoff_longitude = $10,
			current_cycle_hours = $11, departure_time = $12,
			planned_distance_miles = $13, planned_duration_hours = $14,
			planned_at = $15, updated_at = $16
		WHERE id = $1`

	trip.UpdatedAt = time.Now()

	_, err := r.pool.Exec(ctx, query,
		trip.ID,
		trip.CurrentLabel,
		trip.CurrentLatitude,
		trip.CurrentLongitude,
		trip.PickupLabel,
		trip.PickupLatitude,
		trip.PickupLongitude,
		trip.DropoffLabel,
		trip.DropoffLatitude,
		trip.DropoffLongitude,
		trip.CurrentCycleHours,
		trip.DepartureTime,
		trip.PlannedDistanceMi,
		trip.PlannedDurationH,
		trip.PlannedAt,
		trip.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update trip: %w", err)
	}
	return nil
}

// Delete deletes a trip and, via FK cascade, its legs and daily logs
func (r *PostgresTripRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	return nil
}

// PostgresLegRepository implements LegRepository using PostgreSQL
type PostgresLegRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresLegRepository creates a new PostgreSQL leg repository
func NewPostgresLegRepository(pool *pgxpool.Pool) *PostgresLegRepository {
	return &PostgresLegRepository{pool: pool}
}

// CreateBatch inserts a trip's full leg sequence in one batch
func (r *PostgresLegRepository) CreateBatch(ctx context.Context, legs []domain.LegRecord) error {
	if len(legs) == 0 {
		return nil
	}

	query := `
		INSERT INTO trip_legs (
			id, trip_id, leg_order, kind, distance_miles, duration_hours,
			start_label, start_latitude, start_longitude,
			end_label, end_latitude, end_longitude,
			departure_time, arrival_time, notes, segment_index, created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17
		)`

	batch := &pgx.Batch{}
	now := time.Now()
	for i := range legs {
		leg := &legs[i]
		if leg.ID == uuid.Nil {
			leg.ID = uuid.New()
		}
		leg.CreatedAt = now
		batch.Queue(query,
			leg.ID,
			leg.TripID,
			leg.LegOrder,
			leg.Kind,
			leg.DistanceMiles,
			leg.DurationHours,
			leg.StartLabel,
			leg.StartLatitude,
			leg.StartLongitude,
			leg.EndLabel,
			leg.EndLatitude,
			leg.EndLongitude,
			leg.DepartureTime,
			leg.ArrivalTime,
			leg.Notes,
			leg.SegmentIndex,
			leg.CreatedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range legs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert trip leg: %w", err)
		}
	}
	return nil
}

// GetByTripID retrieves a trip's legs in order
func (r *PostgresLegRepository) GetByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.LegRecord, error) {
	query := `
		SELECT id, trip_id, leg_order, kind, distance_miles, duration_hours,
			start_label, start_latitude, start_longitude,
			end_label, end_latitude, end_longitude,
			departure_time, arrival_time, notes, segment_index, created_at
		FROM trip_legs WHERE trip_id = $1 ORDER BY leg_order`

	rows, err := r.pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list trip legs: %w", err)
	}
	defer rows.Close()

	var legs []domain.LegRecord
	for rows.Next() {
		var leg domain.LegRecord
		if err := rows.Scan(
			&leg.ID,
			&leg.TripID,
			&leg.LegOrder,
			&leg.Kind,
			&leg.DistanceMiles,
			&leg.DurationHours,
			&leg.StartLabel,
			&leg.StartLatitude,
			&leg.StartLongitude,
			&leg.EndLabel,
			&leg.EndLatitude,
			&leg.EndLongitude,
			&leg.DepartureTime,
			&leg.ArrivalTime,
			&leg.Notes,
			&leg.SegmentIndex,
			&leg.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan trip leg: %w", err)
		}
		legs = append(legs, leg)
	}
	return legs, rows.Err()
}

// DeleteByTripID removes all legs for a trip ahead of a replan
func (r *PostgresLegRepository) DeleteByTripID(ctx context.Context, tripID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM trip_legs WHERE trip_id = $1`, tripID)
	if err != nil {
		return fmt.Errorf("failed to delete trip legs: %w", err)
	}
	return nil
}

// PostgresDailyLogRepository implements DailyLogRepository using PostgreSQL
type PostgresDailyLogRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresDailyLogRepository creates a new PostgreSQL daily log repository
func NewPostgresDailyLogRepository(pool *pgxpool.Pool) *PostgresDailyLogRepository {
	return &PostgresDailyLogRepository{pool: pool}
}

// ReplaceForTrip overwrites a trip's daily logs with a freshly built set.
// Duty periods live in a JSONB column since the renderer consumes them as
// an ordered list, never relationally.
func (r *PostgresDailyLogRepository) ReplaceForTrip(ctx context.Context, tripID uuid.UUID, logs []domain.DailyLog) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM daily_logs WHERE trip_id = $1`, tripID); err != nil {
		return fmt.Errorf("failed to clear daily logs: %w", err)
	}

	query := `
		INSERT INTO daily_logs (
			id, trip_id, log_date, from_location, to_location,
			duty_periods, total_miles, total_hours,
			off_duty_total, sleeper_berth_total, driving_total, on_duty_total,
			created_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)`

	batch := &pgx.Batch{}
	now := time.Now()
	for _, log := range logs {
		periods, err := json.Marshal(log.Periods)
		if err != nil {
			return fmt.Errorf("failed to marshal duty periods: %w", err)
		}
		batch.Queue(query,
			uuid.New(),
			tripID,
			log.Date,
			log.FromLocation,
			log.ToLocation,
			periods,
			log.TotalMiles,
			log.TotalHours,
			log.OffDutyTotal,
			log.SleeperBerthTotal,
			log.DrivingTotal,
			log.OnDutyTotal,
			now,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range logs {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert daily log: %w", err)
		}
	}
	return nil
}

// GetByTripID retrieves a trip's daily logs in ascending date order
func (r *PostgresDailyLogRepository) GetByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error) {
	query := `
		SELECT log_date, from_location, to_location, duty_periods,
			total_miles, total_hours,
			off_duty_total, sleeper_berth_total, driving_total, on_duty_total
		FROM daily_logs WHERE trip_id = $1 ORDER BY log_date`

	rows, err := r.pool.Query(ctx, query, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list daily logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.DailyLog
	for rows.Next() {
		var log domain.DailyLog
		var periods []byte
		if err := rows.Scan(
			&log.Date,
			&log.FromLocation,
			&log.ToLocation,
			&periods,
			&log.TotalMiles,
			&log.TotalHours,
			&log.OffDutyTotal,
			&log.SleeperBerthTotal,
			&log.DrivingTotal,
			&log.OnDutyTotal,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		if err := json.Unmarshal(periods, &log.Periods); err != nil {
			return nil, fmt.Errorf("failed to unmarshal duty periods: %w", err)
		}
		if date, err := time.Parse("2006-01-02", log.Date); err == nil {
			log.MonthName = date.Month().String()
			log.Day = date.Day()
			log.Year = date.Year()
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
