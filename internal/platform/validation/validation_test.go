package validation

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/draymaster/services/trip-planner/internal/platform/apperrors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestValidateCoordinates(t *testing.T) {
	v := NewCoordinateValidator()

	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"valid", 41.85, -87.65, false},
		{"boundary lat", 90, 0, false},
		{"boundary lon", 0, -180, false},
		{"lat too high", 90.1, 0, true},
		{"lat too low", -90.1, 0, true},
		{"lon too high", 0, 180.1, true},
		{"lon too low", 0, -180.1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCoordinates(tt.lat, tt.lon)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateCoordinates(%f, %f) error = %v, wantErr %v", tt.lat, tt.lon, err, tt.wantErr)
			}
		})
	}
}

func TestValidateCycleHours(t *testing.T) {
	v := NewTripInputValidator(dec("70"))

	if err := v.ValidateCycleHours(dec("35.5")); err != nil {
		t.Errorf("expected 35.5 to pass, got %v", err)
	}
	if err := v.ValidateCycleHours(dec("70")); err != nil {
		t.Errorf("expected 70 exactly to pass, got %v", err)
	}

	err := v.ValidateCycleHours(dec("70.25"))
	if err == nil {
		t.Fatal("expected error above the cycle limit")
	}
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != "CYCLE_EXCEEDED" {
		t.Errorf("expected CYCLE_EXCEEDED, got %v", err)
	}

	err = v.ValidateCycleHours(dec("-1"))
	if err == nil {
		t.Fatal("expected error for negative cycle hours")
	}
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
}

func TestValidateSegments(t *testing.T) {
	v := NewTripInputValidator(dec("70"))

	valid := []Segment{
		{DistanceMiles: 120, DurationHours: 2.4, StartWaypoint: 0, EndWaypoint: 4},
		{DistanceMiles: 180, DurationHours: 3.6, StartWaypoint: 4, EndWaypoint: 9},
	}
	if err := v.ValidateSegments(valid, 10); err != nil {
		t.Errorf("expected valid segments to pass, got %v", err)
	}

	outOfRange := []Segment{
		{DistanceMiles: 120, DurationHours: 2.4, StartWaypoint: 0, EndWaypoint: 12},
	}
	err := v.ValidateSegments(outOfRange, 10)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != "INCONSISTENT_SEGMENTS" {
		t.Errorf("expected INCONSISTENT_SEGMENTS, got %v", err)
	}

	undefinedSpeed := []Segment{
		{DistanceMiles: 120, DurationHours: 0, StartWaypoint: 0, EndWaypoint: 4},
	}
	err = v.ValidateSegments(undefinedSpeed, 10)
	if !errors.As(err, &appErr) || appErr.Code != "NON_POSITIVE_DURATION" {
		t.Errorf("expected NON_POSITIVE_DURATION, got %v", err)
	}
}

func TestValidateWaypoints(t *testing.T) {
	v := NewTripInputValidator(dec("70"))

	good := []Waypoint{{Lat: 41.85, Lon: -87.65}, {Lat: 41.9, Lon: -87.7}}
	if err := v.ValidateWaypoints(good); err != nil {
		t.Errorf("expected valid waypoints to pass, got %v", err)
	}

	bad := []Waypoint{{Lat: 41.85, Lon: -87.65}, {Lat: 95, Lon: -87.7}}
	err := v.ValidateWaypoints(bad)
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) || appErr.Code != "VALIDATION_ERROR" {
		t.Errorf("expected VALIDATION_ERROR, got %v", err)
	}
}
