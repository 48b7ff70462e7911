package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/Houeta/location-tracker/internal/config"
	"github.com/Houeta/location-tracker/internal/models"
)

// scanProjection lists the four record fields fetched from a table.
const scanProjection = "id, title, latitude, longitude"

// Table creation is polled at a fixed interval with a hard cap, so a
// failing store cannot hang a request indefinitely.
const (
	tableWaitDelay = 1 * time.Second
	tableWaitMax   = 30 * time.Second
)

// NewClient builds a DynamoDB client from the given store configuration
// using a static credential pair. The endpoint override, when set, points
// the client at a local DynamoDB instance.
func NewClient(ctx context.Context, cfg config.AWSConfig) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})

	return client, nil
}

// ScanCoordinates retrieves every coordinate record from the named table.
// It issues a full scan projecting the four record fields and parses each
// returned item. Items whose numeric fields fail to parse are skipped and
// logged, never failing the whole request; the number of skipped records
// is returned alongside the parsed ones.
//
// Parameters:
// - ctx: The context for the operation, allowing for cancellation and timeout.
// - table: The name of the table to scan.
//
// Returns:
// - A slice of models.Coordinate with the successfully parsed records.
// - The number of records skipped due to parse failures.
// - An error if the scan itself fails, classified into the typed store errors.
func (r *Repository) ScanCoordinates(ctx context.Context, table string) ([]models.Coordinate, int, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName:            aws.String(table),
		ProjectionExpression: aws.String(scanProjection),
	})
	if err != nil {
		return nil, 0, classifyError(fmt.Sprintf("failed to scan table %q", table), err)
	}

	coordinates := make([]models.Coordinate, 0, len(out.Items))
	skipped := 0

	for _, item := range out.Items {
		coordinate, errParse := coordinateFromItem(item)
		if errParse != nil {
			skipped++
			r.log.WarnContext(ctx, "Skipping coordinate record with unparsable fields",
				"table", table, "id", stringAttr(item, "id", ""), "error", errParse)
			continue
		}
		coordinates = append(coordinates, coordinate)
	}

	return coordinates, skipped, nil
}

// SeedCoordinates writes the given records into the named table. Each
// record is written unconditionally, so repeated calls with the same key
// set stay idempotent.
func (r *Repository) SeedCoordinates(ctx context.Context, table string, records []models.Coordinate) error {
	for _, record := range records {
		item, err := attributevalue.MarshalMap(record)
		if err != nil {
			return fmt.Errorf("failed to marshal coordinate %q: %w", record.ID, err)
		}

		if _, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(table),
			Item:      item,
		}); err != nil {
			return classifyError(fmt.Sprintf("failed to put coordinate %q into table %q", record.ID, table), err)
		}

		r.log.DebugContext(ctx, "Coordinate record written", "table", table, "id", record.ID)
	}

	return nil
}

// EnsureTable creates the named table with a single string hash key "id"
// if it does not exist yet, tolerating a concurrent creation, and blocks
// until the table becomes active. The wait polls at a fixed interval and
// gives up after tableWaitMax.
func (r *Repository) EnsureTable(ctx context.Context, table string) error {
	_, err := r.client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if !errors.As(err, &inUse) {
			return classifyError(fmt.Sprintf("failed to create table %q", table), err)
		}
		r.log.DebugContext(ctx, "Table already exists, skipping creation", "table", table)
	}

	waiter := dynamodb.NewTableExistsWaiter(r.client, func(o *dynamodb.TableExistsWaiterOptions) {
		o.MinDelay = tableWaitDelay
		o.MaxDelay = tableWaitDelay
	})

	if err = waiter.Wait(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(table),
	}, tableWaitMax); err != nil {
		return fmt.Errorf("table %q did not become active: %w", table, err)
	}

	return nil
}

// ListTables returns up to limit table names from the store. It is used
// as a lightweight connectivity probe by the health check.
func (r *Repository) ListTables(ctx context.Context, limit int32) ([]string, error) {
	out, err := r.client.ListTables(ctx, &dynamodb.ListTablesInput{Limit: aws.Int32(limit)})
	if err != nil {
		return nil, classifyError("failed to list tables", err)
	}

	return out.TableNames, nil
}

// classifyError maps AWS API errors onto the typed store errors, leaving
// everything else wrapped as-is.
func classifyError(msg string, err error) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%s: %w", msg, ErrTableNotFound)
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "AccessDeniedException", "AccessDenied", "UnrecognizedClientException":
			return fmt.Errorf("%s: %w", msg, ErrAccessDenied)
		}
	}

	return fmt.Errorf("%s: %w", msg, err)
}

// coordinateFromItem converts a raw DynamoDB item into a coordinate record.
// Missing attributes fall back to defaults; malformed numeric values make
// the whole item unparsable.
func coordinateFromItem(item map[string]types.AttributeValue) (models.Coordinate, error) {
	latitude, err := numberAttr(item, "latitude")
	if err != nil {
		return models.Coordinate{}, err
	}

	longitude, err := numberAttr(item, "longitude")
	if err != nil {
		return models.Coordinate{}, err
	}

	return models.Coordinate{
		ID:        stringAttr(item, "id", ""),
		Title:     stringAttr(item, "title", "Untitled"),
		Latitude:  latitude,
		Longitude: longitude,
	}, nil
}

func stringAttr(item map[string]types.AttributeValue, key, fallback string) string {
	if attr, ok := item[key].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}

	return fallback
}

func numberAttr(item map[string]types.AttributeValue, key string) (float64, error) {
	attr, ok := item[key].(*types.AttributeValueMemberN)
	if !ok {
		return 0, nil
	}

	value, err := strconv.ParseFloat(attr.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, attr.Value, err)
	}

	return value, nil
}
