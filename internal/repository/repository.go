package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/Houeta/location-tracker/internal/models"
)

// Typed store errors. Callers classify request failures with errors.Is
// instead of inspecting AWS error codes themselves.
var (
	// ErrTableNotFound is returned when the named table does not exist in the store.
	ErrTableNotFound = errors.New("table not found")
	// ErrAccessDenied is returned when the store rejects the credentials or permissions.
	ErrAccessDenied = errors.New("access denied")
)

// DynamoAPI defines the subset of the DynamoDB client used by the repository.
// This allows for easy mocking in tests; *dynamodb.Client satisfies it.
type DynamoAPI interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput,
		optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput,
		optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput,
		optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput,
		optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
	ListTables(ctx context.Context, params *dynamodb.ListTablesInput,
		optFns ...func(*dynamodb.Options)) (*dynamodb.ListTablesOutput, error)
}

type Repository struct {
	client DynamoAPI
	log    *slog.Logger
}

type Interface interface {
	ScanCoordinates(ctx context.Context, table string) ([]models.Coordinate, int, error)
	SeedCoordinates(ctx context.Context, table string, records []models.Coordinate) error
	EnsureTable(ctx context.Context, table string) error
	ListTables(ctx context.Context, limit int32) ([]string, error)
}

// NewRepository creates a new instance of Repository with the provided DynamoDB client.
// It returns a pointer to the newly created Repository.
func NewRepository(client DynamoAPI, log *slog.Logger) *Repository {
	return &Repository{client: client, log: log}
}
