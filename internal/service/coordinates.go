package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Houeta/location-tracker/internal/metrics"
	"github.com/Houeta/location-tracker/internal/models"
	"github.com/Houeta/location-tracker/internal/repository"
)

// Mode values identify which code path produced a coordinate response.
const (
	// ModeMockData marks responses served from the mock dataset because no store is configured.
	ModeMockData = "mock_data"
	// ModeMockFallback marks mock responses served because the table is missing in the store.
	ModeMockFallback = "mock_fallback"
	// ModeErrorFallback marks mock responses served after an unclassified store error.
	ModeErrorFallback = "error_fallback"
	// ModeProduction marks responses served from the real store.
	ModeProduction = "production"
)

// healthTimeout bounds the single store probe issued by the health check.
const healthTimeout = 5 * time.Second

// CoordinateSet is the reader response: the records of one table plus the
// mode that produced them.
type CoordinateSet struct {
	TableName   string              `json:"table_name"`
	Coordinates []models.Coordinate `json:"coordinates"`
	Count       int                 `json:"count"`
	Mode        string              `json:"mode"`
	Message     string              `json:"message,omitempty"`
}

// SeedResult is the writer response.
type SeedResult struct {
	Message             string   `json:"message"`
	CoordinatesAdded    int      `json:"coordinates_added,omitempty"`
	TableName           string   `json:"table_name,omitempty"`
	Mode                string   `json:"mode"`
	AvailableMockTables []string `json:"available_mock_tables,omitempty"`
	Note                string   `json:"note,omitempty"`
}

// HealthReport is the health check response. Degradation is reflected in
// the body, never in the HTTP status.
type HealthReport struct {
	Status   string            `json:"status"`
	Mode     string            `json:"mode"`
	Services map[string]string `json:"services"`
	Message  string            `json:"message,omitempty"`
}

// CoordinateService implements the request branching between the real
// table store and the immutable mock dataset. It holds no mutable state,
// so a single instance serves concurrent requests.
type CoordinateService struct {
	log     *slog.Logger         // Logger for logging service activities
	repo    repository.Interface // Store access; nil when no usable credentials are configured
	metrics *metrics.Metrics     // Metrics for tracking service behavior
}

// NewCoordinateService creates a new instance of CoordinateService.
// A nil repository puts the service into mock mode: reads are answered
// from the mock dataset and writes become no-ops.
func NewCoordinateService(
	log *slog.Logger,
	repo repository.Interface,
	metrics *metrics.Metrics,
) *CoordinateService {
	return &CoordinateService{
		log:     log,
		repo:    repo,
		metrics: metrics,
	}
}

// Mode reports whether the service runs against the real store or the
// mock dataset.
func (cs *CoordinateService) Mode() string {
	if cs.repo != nil {
		return "production"
	}

	return "development (mock data)"
}

// GetCoordinates returns the records of the named table.
//
// With no store configured it answers from the mock dataset, treating an
// unknown table as an empty success. With a store it scans the table and
// falls back to mock data when the table is missing or the store fails in
// an unclassified way. A permission error never falls back.
func (cs *CoordinateService) GetCoordinates(ctx context.Context, table string) (*CoordinateSet, error) {
	if cs.repo == nil {
		return cs.mockSet(ctx, table), nil
	}

	records, skipped, err := cs.repo.ScanCoordinates(ctx, table)
	if err == nil {
		if skipped > 0 {
			cs.metrics.RecordsSkipped.Add(float64(skipped))
			cs.log.WarnContext(ctx, "Some store records were skipped during parsing",
				"table", table, "skipped", skipped)
		}
		cs.metrics.ResponsesByMode.WithLabelValues(ModeProduction).Inc()

		return &CoordinateSet{
			TableName:   table,
			Coordinates: records,
			Count:       len(records),
			Mode:        ModeProduction,
		}, nil
	}

	cs.metrics.StoreErrors.Inc()

	switch {
	case errors.Is(err, repository.ErrTableNotFound):
		if mock, ok := models.MockCoordinates(table); ok {
			cs.log.WarnContext(ctx, "Table not found in store, serving mock data", "table", table)
			cs.metrics.ResponsesByMode.WithLabelValues(ModeMockFallback).Inc()

			return &CoordinateSet{
				TableName:   table,
				Coordinates: mock,
				Count:       len(mock),
				Mode:        ModeMockFallback,
				Message:     fmt.Sprintf("DynamoDB table '%s' not found. Using mock data instead.", table),
			}, nil
		}

		return nil, fmt.Errorf(
			"table %q not found in DynamoDB and no mock data available: %w", table, repository.ErrTableNotFound)
	case errors.Is(err, repository.ErrAccessDenied):
		cs.log.ErrorContext(ctx, "Store denied access", "table", table, "error", err)
		return nil, err
	default:
		cs.log.ErrorContext(ctx, "Unexpected store error, trying mock fallback", "table", table, "error", err)

		if mock, ok := models.MockCoordinates(table); ok {
			cs.metrics.ResponsesByMode.WithLabelValues(ModeErrorFallback).Inc()

			return &CoordinateSet{
				TableName:   table,
				Coordinates: mock,
				Count:       len(mock),
				Mode:        ModeErrorFallback,
				Message:     "Error accessing DynamoDB. Using mock data instead.",
			}, nil
		}

		return nil, err
	}
}

// SeedTestData ensures the named table exists and writes the fixed sample
// records into it. The key set is stable, so the operation is idempotent.
// Without a configured store it reports mock mode and performs no writes.
func (cs *CoordinateService) SeedTestData(ctx context.Context, table string) (*SeedResult, error) {
	if cs.repo == nil {
		cs.log.InfoContext(ctx, "Test data requested in mock mode, nothing written", "table", table)

		return &SeedResult{
			Message:             "Mock mode active - no DynamoDB operations performed",
			Mode:                ModeMockData,
			AvailableMockTables: models.MockTableNames(),
			Note:                "Configure AWS credentials to create real DynamoDB tables",
		}, nil
	}

	if err := cs.repo.EnsureTable(ctx, table); err != nil {
		cs.metrics.StoreErrors.Inc()
		return nil, err
	}

	records := models.SampleCoordinates()
	if err := cs.repo.SeedCoordinates(ctx, table, records); err != nil {
		cs.metrics.StoreErrors.Inc()
		return nil, err
	}

	cs.log.InfoContext(ctx, "Test data written", "table", table, "count", len(records))

	return &SeedResult{
		Message:          fmt.Sprintf("Successfully created test data in table '%s'", table),
		CoordinatesAdded: len(records),
		TableName:        table,
		Mode:             ModeProduction,
	}, nil
}

// Health performs a single lightweight store probe and reports the result.
// This is a liveness probe, not a transactional guarantee: one attempt,
// short timeout, no retry.
func (cs *CoordinateService) Health(ctx context.Context) *HealthReport {
	report := &HealthReport{
		Status: "healthy",
		Mode:   cs.Mode(),
		Services: map[string]string{
			"api":      "running",
			"dynamodb": "unknown",
		},
	}

	if cs.repo == nil {
		report.Services["dynamodb"] = "not_configured"
		report.Message = "Using mock data for development. Configure AWS credentials for production."

		return report
	}

	probeCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if _, err := cs.repo.ListTables(probeCtx, 1); err != nil {
		cs.log.ErrorContext(ctx, "Store health probe failed", "error", err)
		cs.metrics.StoreErrors.Inc()
		report.Services["dynamodb"] = "error: " + err.Error()
		report.Status = "degraded"

		return report
	}

	report.Services["dynamodb"] = "connected"

	return report
}

// mockSet answers a read entirely from the mock dataset. An unknown table
// is an empty success, never an error.
func (cs *CoordinateService) mockSet(ctx context.Context, table string) *CoordinateSet {
	cs.metrics.ResponsesByMode.WithLabelValues(ModeMockData).Inc()

	records, ok := models.MockCoordinates(table)
	if !ok {
		cs.log.DebugContext(ctx, "No mock data for table", "table", table)

		return &CoordinateSet{
			TableName:   table,
			Coordinates: []models.Coordinate{},
			Count:       0,
			Mode:        ModeMockData,
			Message: fmt.Sprintf("No mock data available for table '%s'. Available tables: %s",
				table, strings.Join(models.MockTableNames(), ", ")),
		}
	}

	return &CoordinateSet{
		TableName:   table,
		Coordinates: records,
		Count:       len(records),
		Mode:        ModeMockData,
		Message:     "Using mock data. Configure AWS credentials for real DynamoDB access.",
	}
}
