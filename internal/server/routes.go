package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Houeta/location-tracker/internal/models"
	"github.com/Houeta/location-tracker/internal/repository"
	"github.com/Houeta/location-tracker/internal/service"
)

// Version is the API version reported by the discovery endpoint.
const Version = "1.0.0"

// CoordinateService defines the operations the HTTP layer needs from the
// coordinate service.
type CoordinateService interface {
	GetCoordinates(ctx context.Context, table string) (*service.CoordinateSet, error)
	SeedTestData(ctx context.Context, table string) (*service.SeedResult, error)
	Health(ctx context.Context) *service.HealthReport
	Mode() string
}

// RootResponse describes the API for the discovery endpoint.
type RootResponse struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Mode      string            `json:"mode"`
	Endpoints map[string]string `json:"endpoints"`
}

// MockTablesResponse lists the tables of the mock dataset.
type MockTablesResponse struct {
	AvailableTables []string `json:"available_tables"`
	Description     string   `json:"description"`
	Note            string   `json:"note"`
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// Routes holds the request handlers with their injected dependencies.
type Routes struct {
	service CoordinateService
	log     *slog.Logger
}

// NewRoutes creates a new Routes instance with the provided service.
func NewRoutes(svc CoordinateService, log *slog.Logger) *Routes {
	return &Routes{service: svc, log: log}
}

// root handles GET / and describes the API.
func (rr *Routes) root(w http.ResponseWriter, r *http.Request) {
	rr.writeJSONResponse(w, r, RootResponse{
		Message: "Location Tracker API is running",
		Version: Version,
		Mode:    rr.service.Mode(),
		Endpoints: map[string]string{
			"get_coordinates":  "/api/coordinates/{table_name}",
			"create_test_data": "/api/test-data/{table_name}",
			"health":           "/api/health",
			"mock_tables":      "/api/mock-tables",
			"metrics":          "/metrics",
		},
	})
}

// health handles GET /api/health. It always answers 200; a failing store
// is reflected in the body only.
func (rr *Routes) health(w http.ResponseWriter, r *http.Request) {
	rr.writeJSONResponse(w, r, rr.service.Health(r.Context()))
}

// mockTables handles GET /api/mock-tables.
func (rr *Routes) mockTables(w http.ResponseWriter, r *http.Request) {
	rr.writeJSONResponse(w, r, MockTablesResponse{
		AvailableTables: models.MockTableNames(),
		Description:     "Mock data tables available for testing",
		Note:            "Configure AWS credentials to use real DynamoDB tables",
	})
}

// getCoordinates handles GET /api/coordinates/{table}.
func (rr *Routes) getCoordinates(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	set, err := rr.service.GetCoordinates(r.Context(), table)
	if err != nil {
		rr.writeErrorResponse(w, r, readerStatus(err), err)
		return
	}

	rr.writeJSONResponse(w, r, set)
}

// createTestData handles POST /api/test-data/{table}.
func (rr *Routes) createTestData(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	result, err := rr.service.SeedTestData(r.Context(), table)
	if err != nil {
		rr.writeErrorResponse(w, r, writerStatus(err), err)
		return
	}

	rr.writeJSONResponse(w, r, result)
}

// readerStatus maps reader errors to HTTP statuses: a missing table with
// no mock fallback is 404, denied access is 403, anything else is 500.
func readerStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrTableNotFound):
		return http.StatusNotFound
	case errors.Is(err, repository.ErrAccessDenied):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writerStatus maps writer errors: denied access is 403, everything else
// is 500. A missing table is never 404 here, the writer creates tables.
func writerStatus(err error) int {
	if errors.Is(err, repository.ErrAccessDenied) {
		return http.StatusForbidden
	}

	return http.StatusInternalServerError
}

func (rr *Routes) writeJSONResponse(w http.ResponseWriter, r *http.Request, body any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(body); err != nil {
		rr.log.ErrorContext(r.Context(), "Failed to encode response", "error", err)
	}
}

func (rr *Routes) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if encErr := json.NewEncoder(w).Encode(ErrorResponse{Detail: err.Error()}); encErr != nil {
		rr.log.ErrorContext(r.Context(), "Failed to encode error response", "error", encErr)
	}
}
