package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/draymaster/services/trip-planner/internal/domain"
)

// TripRepository defines trip data access methods
type TripRepository interface {
	Create(ctx context.Context, trip *domain.Trip) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Trip, error)
	GetAll(ctx context.Context) ([]domain.Trip, error)
	Update(ctx context.Context, trip *domain.Trip) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// LegRepository defines planned-leg data access methods. A trip's legs are
// replaced wholesale on each (re)plan, never patched row by row.
type LegRepository interface {
	CreateBatch(ctx context.Context, legs []domain.LegRecord) error
	GetByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.LegRecord, error)
	DeleteByTripID(ctx context.Context, tripID uuid.UUID) error
}

// DailyLogRepository defines daily-log data access methods. Daily logs are
// derived values, so ReplaceForTrip is the only write: rebuilding from legs
// is idempotent and overwrites whatever was there.
type DailyLogRepository interface {
	ReplaceForTrip(ctx context.Context, tripID uuid.UUID, logs []domain.DailyLog) error
	GetByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DailyLog, error)
}
