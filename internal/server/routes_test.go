package server_test

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Houeta/location-tracker/internal/metrics"
	"github.com/Houeta/location-tracker/internal/models"
	"github.com/Houeta/location-tracker/internal/repository"
	"github.com/Houeta/location-tracker/internal/server"
	"github.com/Houeta/location-tracker/internal/service"
)

// mockService is a mock implementation of server.CoordinateService for testing.
type mockService struct {
	getFunc    func(ctx context.Context, table string) (*service.CoordinateSet, error)
	seedFunc   func(ctx context.Context, table string) (*service.SeedResult, error)
	healthFunc func(ctx context.Context) *service.HealthReport
	mode       string
}

func (m *mockService) GetCoordinates(ctx context.Context, table string) (*service.CoordinateSet, error) {
	return m.getFunc(ctx, table)
}

func (m *mockService) SeedTestData(ctx context.Context, table string) (*service.SeedResult, error) {
	return m.seedFunc(ctx, table)
}

func (m *mockService) Health(ctx context.Context) *service.HealthReport {
	return m.healthFunc(ctx)
}

func (m *mockService) Mode() string {
	return m.mode
}

func newTestServer(svc *mockService) http.Handler {
	reg := prometheus.NewRegistry()
	return server.NewServer(svc, slog.Default(), metrics.NewMetrics(reg), reg)
}

func doRequest(t *testing.T, handler http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), target))
}

func TestRootEndpoint(t *testing.T) {
	t.Parallel()
	handler := newTestServer(&mockService{mode: "development (mock data)"})

	rec := doRequest(t, handler, http.MethodGet, "/")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body server.RootResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, "Location Tracker API is running", body.Message)
	assert.Equal(t, server.Version, body.Version)
	assert.Equal(t, "development (mock data)", body.Mode)
	assert.Contains(t, body.Endpoints, "get_coordinates")
	assert.Contains(t, body.Endpoints, "health")
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("degradation stays a 200", func(t *testing.T) {
		t.Parallel()
		handler := newTestServer(&mockService{
			healthFunc: func(_ context.Context) *service.HealthReport {
				return &service.HealthReport{
					Status:   "degraded",
					Mode:     "production",
					Services: map[string]string{"api": "running", "dynamodb": "error: connection refused"},
				}
			},
		})

		rec := doRequest(t, handler, http.MethodGet, "/api/health")

		require.Equal(t, http.StatusOK, rec.Code)

		var body service.HealthReport
		decodeBody(t, rec, &body)
		assert.Equal(t, "degraded", body.Status)
		assert.Equal(t, "running", body.Services["api"])
	})
}

func TestMockTablesEndpoint(t *testing.T) {
	t.Parallel()
	handler := newTestServer(&mockService{})

	rec := doRequest(t, handler, http.MethodGet, "/api/mock-tables")

	require.Equal(t, http.StatusOK, rec.Code)

	var body server.MockTablesResponse
	decodeBody(t, rec, &body)
	assert.Equal(t, models.MockTableNames(), body.AvailableTables)
	assert.NotEmpty(t, body.Description)
}

func TestGetCoordinatesEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		handler := newTestServer(&mockService{
			getFunc: func(_ context.Context, table string) (*service.CoordinateSet, error) {
				assert.Equal(t, "bangalore", table)
				records, _ := models.MockCoordinates(table)
				return &service.CoordinateSet{
					TableName:   table,
					Coordinates: records,
					Count:       len(records),
					Mode:        service.ModeMockData,
				}, nil
			},
		})

		rec := doRequest(t, handler, http.MethodGet, "/api/coordinates/bangalore")

		require.Equal(t, http.StatusOK, rec.Code)

		var body service.CoordinateSet
		decodeBody(t, rec, &body)
		assert.Equal(t, "bangalore", body.TableName)
		assert.Equal(t, 4, body.Count)
		assert.Equal(t, service.ModeMockData, body.Mode)
		assert.Equal(t, "Bangalore Palace", body.Coordinates[0].Title)
	})

	t.Run("missing table maps to 404", func(t *testing.T) {
		t.Parallel()
		handler := newTestServer(&mockService{
			getFunc: func(_ context.Context, table string) (*service.CoordinateSet, error) {
				return nil, fmt.Errorf(
					"table %q not found in DynamoDB and no mock data available: %w",
					table, repository.ErrTableNotFound)
			},
		})

		rec := doRequest(t, handler, http.MethodGet, "/api/coordinates/atlantis")

		require.Equal(t, http.StatusNotFound, rec.Code)

		var body server.ErrorResponse
		decodeBody(t, rec, &body)
		assert.Contains(t, body.Detail, "atlantis")
	})

	t.Run("denied access maps to 403", func(t *testing.T) {
		t.Parallel()
		handler := newTestServer(&mockService{
			getFunc: func(_ context.Context, _ string) (*service.CoordinateSet, error) {
				return nil, fmt.Errorf("failed to scan: %w", repository.ErrAccessDenied)
			},
		})

		rec := doRequest(t, handler, http.MethodGet, "/api/coordinates/forbidden")

		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unclassified error maps to 500", func(t *testing.T) {
		t.Parallel()
		handler := newTestServer(&mockService{
			getFunc: func(_ context.Context, _ string) (*service.CoordinateSet, error) {
				return nil, assert.AnError
			},
		})

		rec := doRequest(t, handler, http.MethodGet, "/api/coordinates/broken")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestCreateTestDataEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		handler := newTestServer(&mockService{
			seedFunc: func(_ context.Context, table string) (*service.SeedResult, error) {
				return &service.SeedResult{
					Message:          "Successfully created test data in table 'foo'",
					CoordinatesAdded: 5,
					TableName:        table,
					Mode:             service.ModeProduction,
				}, nil
			},
		})

		rec := doRequest(t, handler, http.MethodPost, "/api/test-data/foo")

		require.Equal(t, http.StatusOK, rec.Code)

		var body service.SeedResult
		decodeBody(t, rec, &body)
		assert.Equal(t, 5, body.CoordinatesAdded)
		assert.Equal(t, "foo", body.TableName)
	})

	t.Run("denied access maps to 403", func(t *testing.T) {
		t.Parallel()
		handler := newTestServer(&mockService{
			seedFunc: func(_ context.Context, _ string) (*service.SeedResult, error) {
				return nil, fmt.Errorf("failed to create table: %w", repository.ErrAccessDenied)
			},
		})

		rec := doRequest(t, handler, http.MethodPost, "/api/test-data/foo")

		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing table is still 500 for the writer", func(t *testing.T) {
		t.Parallel()
		handler := newTestServer(&mockService{
			seedFunc: func(_ context.Context, _ string) (*service.SeedResult, error) {
				return nil, fmt.Errorf("table vanished: %w", repository.ErrTableNotFound)
			},
		})

		rec := doRequest(t, handler, http.MethodPost, "/api/test-data/foo")

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestCORSHeaders(t *testing.T) {
	t.Parallel()
	handler := newTestServer(&mockService{mode: "production"})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	t.Parallel()
	handler := newTestServer(&mockService{})

	rec := doRequest(t, handler, http.MethodGet, "/metrics")

	require.Equal(t, http.StatusOK, rec.Code)
}
