package models_test

import (
	"testing"

	"github.com/Houeta/location-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockCoordinates(t *testing.T) {
	t.Parallel()

	t.Run("known table", func(t *testing.T) {
		t.Parallel()
		records, ok := models.MockCoordinates("bangalore")

		require.True(t, ok)
		require.Len(t, records, 4)
		assert.Equal(t, models.Coordinate{
			ID:        "1",
			Title:     "Bangalore Palace",
			Latitude:  12.9984,
			Longitude: 77.5916,
		}, records[0])
	})

	t.Run("case-insensitive lookup", func(t *testing.T) {
		t.Parallel()
		upper, ok := models.MockCoordinates("BANGALORE")
		require.True(t, ok)

		lower, _ := models.MockCoordinates("bangalore")
		assert.Equal(t, lower, upper)
	})

	t.Run("unknown table", func(t *testing.T) {
		t.Parallel()
		records, ok := models.MockCoordinates("atlantis")

		assert.False(t, ok)
		assert.Nil(t, records)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		t.Parallel()
		records, ok := models.MockCoordinates("coordinates_table")
		require.True(t, ok)

		records[0].Title = "mutated"

		fresh, _ := models.MockCoordinates("coordinates_table")
		assert.Equal(t, "San Francisco City Hall", fresh[0].Title)
	})
}

func TestMockTableNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"bangalore", "coordinates_table", "test_table"}, models.MockTableNames())
}

func TestSampleCoordinates(t *testing.T) {
	t.Parallel()

	records := models.SampleCoordinates()
	require.Len(t, records, 5)

	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	assert.Equal(t, []string{"test-1", "test-2", "test-3", "test-4", "test-5"}, ids)

	// Repeated calls hand out independent copies.
	records[0].ID = "mutated"
	assert.Equal(t, "test-1", models.SampleCoordinates()[0].ID)
}
