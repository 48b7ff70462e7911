package models

import (
	"sort"
	"strings"
)

// mockCoordinates is the fixed development dataset served when no real
// store is configured. Keys are lowercase table names; the map is defined
// once and never mutated after process start.
var mockCoordinates = map[string][]Coordinate{
	"test_table": {
		{ID: "1", Title: "Golden Gate Bridge", Latitude: 37.8199, Longitude: -122.4783},
		{ID: "2", Title: "Alcatraz Island", Latitude: 37.8267, Longitude: -122.4233},
		{ID: "3", Title: "Fisherman's Wharf", Latitude: 37.8080, Longitude: -122.4177},
		{ID: "4", Title: "Lombard Street", Latitude: 37.8021, Longitude: -122.4187},
		{ID: "5", Title: "Union Square", Latitude: 37.7880, Longitude: -122.4074},
	},
	"coordinates_table": {
		{ID: "1", Title: "San Francisco City Hall", Latitude: 37.7793, Longitude: -122.4192},
		{ID: "2", Title: "Golden Gate Park", Latitude: 37.7694, Longitude: -122.4862},
		{ID: "3", Title: "Coit Tower", Latitude: 37.8024, Longitude: -122.4058},
	},
	"bangalore": {
		{ID: "1", Title: "Bangalore Palace", Latitude: 12.9984, Longitude: 77.5916},
		{ID: "2", Title: "Lalbagh Botanical Garden", Latitude: 12.9507, Longitude: 77.5848},
		{ID: "3", Title: "Cubbon Park", Latitude: 12.9716, Longitude: 77.5946},
		{ID: "4", Title: "UB City Mall", Latitude: 12.9719, Longitude: 77.6068},
	},
}

// sampleCoordinates is the fixed set of records written by the test-data
// endpoint. The key set is stable, so repeated writes stay idempotent.
var sampleCoordinates = []Coordinate{
	{ID: "test-1", Title: "Golden Gate Bridge", Latitude: 37.8199, Longitude: -122.4783},
	{ID: "test-2", Title: "Alcatraz Island", Latitude: 37.8267, Longitude: -122.4233},
	{ID: "test-3", Title: "Fisherman's Wharf", Latitude: 37.8080, Longitude: -122.4177},
	{ID: "test-4", Title: "Lombard Street", Latitude: 37.8021, Longitude: -122.4187},
	{ID: "test-5", Title: "Union Square", Latitude: 37.7880, Longitude: -122.4074},
}

// MockCoordinates looks up the mock dataset for the given table name,
// case-insensitively. It returns a copy of the records so callers can
// never mutate the dataset, and reports whether the table is known.
func MockCoordinates(table string) ([]Coordinate, bool) {
	records, ok := mockCoordinates[strings.ToLower(table)]
	if !ok {
		return nil, false
	}

	out := make([]Coordinate, len(records))
	copy(out, records)

	return out, true
}

// MockTableNames returns the sorted list of table names present in the
// mock dataset.
func MockTableNames() []string {
	names := make([]string, 0, len(mockCoordinates))
	for name := range mockCoordinates {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// SampleCoordinates returns a copy of the fixed sample records written by
// the test-data endpoint.
func SampleCoordinates() []Coordinate {
	out := make([]Coordinate, len(sampleCoordinates))
	copy(out, sampleCoordinates)

	return out
}
